package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/shandysiswandi/ambassador/internal/ambassador/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	otpentity "github.com/shandysiswandi/ambassador/internal/verification/entity"
	verification "github.com/shandysiswandi/ambassador/internal/verification/usecase"
)

type memoryRepo struct {
	mu       sync.Mutex
	apps     map[int64]entity.Application
	profiles map[int64]entity.Profile
	failWith error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		apps:     make(map[int64]entity.Application),
		profiles: make(map[int64]entity.Profile),
	}
}

func (m *memoryRepo) CreateApplication(_ context.Context, app entity.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.apps[app.ID] = app
	return nil
}

func (m *memoryRepo) GetApplication(_ context.Context, id int64) (*entity.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.apps[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &app, nil
}

func (m *memoryRepo) GetLoginApplicationByPhone(_ context.Context, phone string) (*entity.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var found *entity.Application
	for _, app := range m.apps {
		if app.Phone != phone || !app.PhoneVerified || !app.IsSubmitted() || app.SubmittedAt == nil {
			continue
		}
		if found == nil || app.SubmittedAt.After(*found.SubmittedAt) {
			found = &app
		}
	}
	if found == nil {
		return nil, goerror.ErrNotFound
	}
	return found, nil
}

func (m *memoryRepo) UpdateApplicationContact(_ context.Context, id int64, ch entity.Channel, value string) (*entity.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.apps[id]
	if !ok || app.Status != entity.ApplicationStatusDraft {
		return nil, goerror.ErrNotFound
	}

	if ch == entity.ChannelPhone {
		if app.Phone != value {
			app.PhoneVerified, app.Progress.Phone = false, false
		}
		app.Phone = value
	} else {
		if app.Email != value {
			app.EmailVerified, app.Progress.Email = false, false
		}
		app.Email = value
	}
	m.apps[id] = app

	return &app, nil
}

func (m *memoryRepo) MarkApplicationVerified(_ context.Context, id int64, ch entity.Channel, value string) (*entity.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.apps[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	if ch == entity.ChannelPhone {
		if app.Phone != value {
			return nil, goerror.ErrNotFound
		}
		app.PhoneVerified, app.Progress.Phone = true, true
	} else {
		if app.Email != value {
			return nil, goerror.ErrNotFound
		}
		app.EmailVerified, app.Progress.Email = true, true
	}
	m.apps[id] = app

	return &app, nil
}

func (m *memoryRepo) UpdateApplicationVideo(_ context.Context, id int64, video entity.VideoUpload) (*entity.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.apps[id]
	if !ok || app.Status != entity.ApplicationStatusDraft {
		return nil, goerror.ErrNotFound
	}
	if m.failWith != nil {
		return nil, m.failWith
	}

	app.VideoKey = video.Key
	app.VideoFilename = video.Filename
	app.VideoContentType = video.ContentType
	app.VideoUploaded, app.Progress.Video = true, true
	m.apps[id] = app

	return &app, nil
}

func (m *memoryRepo) SubmitApplication(_ context.Context, id int64, at time.Time) (*entity.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.apps[id]
	if !ok || app.Status != entity.ApplicationStatusDraft || !app.ReadyToSubmit() {
		return nil, goerror.ErrNotFound
	}

	app.Status = entity.ApplicationStatusSubmitted
	app.SubmittedAt = &at
	app.UpdatedAt = at
	m.apps[id] = app

	return &app, nil
}

func (m *memoryRepo) GetProfileByApplicationID(_ context.Context, applicationID int64) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[applicationID]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &p, nil
}

func (m *memoryRepo) UpsertProfile(_ context.Context, p entity.Profile) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.profiles[p.ApplicationID]; ok {
		p.ID = old.ID
		p.CreatedAt = old.CreatedAt
	}
	m.profiles[p.ApplicationID] = p
	return &p, nil
}

func (m *memoryRepo) UpdateProfile(_ context.Context, p entity.Profile) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[p.ApplicationID]; !ok {
		return nil, goerror.ErrNotFound
	}
	m.profiles[p.ApplicationID] = p
	return &p, nil
}

func (m *memoryRepo) put(app entity.Application) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apps[app.ID] = app
}

func (m *memoryRepo) get(id int64) entity.Application {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.apps[id]
}

type otpKey struct {
	subject string
	purpose otpentity.Purpose
}

// fakeEngine hands out a fixed code per subject and purpose.
type fakeEngine struct {
	mu        sync.Mutex
	code      string
	ttl       time.Duration
	now       func() time.Time
	issued    map[otpKey]int
	dropped   map[otpKey]int
	live      map[otpKey]string
	issueErr  error
	canResend *verification.CanResendOutput
}

func newFakeEngine(now func() time.Time) *fakeEngine {
	return &fakeEngine{
		code:   "4821",
		ttl:    10 * time.Minute,
		now:    now,
		issued:  make(map[otpKey]int),
		dropped: make(map[otpKey]int),
		live:    make(map[otpKey]string),
	}
}

func (f *fakeEngine) Issue(_ context.Context, in verification.IssueInput) (*verification.IssueOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.issueErr != nil {
		return nil, f.issueErr
	}
	k := otpKey{in.SubjectID, in.Purpose}
	f.issued[k]++
	f.live[k] = in.Destination + "|" + f.code
	return &verification.IssueOutput{Code: f.code, ExpiresAt: f.now().Add(f.ttl)}, nil
}

func (f *fakeEngine) Verify(_ context.Context, in verification.VerifyInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := otpKey{in.SubjectID, in.Purpose}
	if code, ok := f.live[k]; !ok || code != in.Destination+"|"+in.Code {
		return verification.ErrInvalidCode
	}
	delete(f.live, k)
	return nil
}

func (f *fakeEngine) CanResend(_ context.Context, _ verification.CanResendInput) (*verification.CanResendOutput, error) {
	if f.canResend != nil {
		return f.canResend, nil
	}
	return &verification.CanResendOutput{Allowed: true}, nil
}

func (f *fakeEngine) Invalidate(_ context.Context, in verification.InvalidateInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := otpKey{in.SubjectID, in.Purpose}
	delete(f.live, k)
	f.dropped[k]++
	return nil
}

func (f *fakeEngine) droppedCount(subject string, purpose otpentity.Purpose) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dropped[otpKey{subject, purpose}]
}

func (f *fakeEngine) issuedCount(subject string, purpose otpentity.Purpose) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issued[otpKey{subject, purpose}]
}

type recordingSender struct {
	mu    sync.Mutex
	phone []OTPMessage
	email []OTPMessage
	err   error
}

func (r *recordingSender) SendPhoneOTP(_ context.Context, msg OTPMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.phone = append(r.phone, msg)
	return nil
}

func (r *recordingSender) SendEmailOTP(_ context.Context, msg OTPMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.email = append(r.email, msg)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ApplicationSubmittedEvent
	err    error
}

func (r *recordingPublisher) PublishApplicationSubmitted(_ context.Context, msg ApplicationSubmittedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, msg)
	return r.err
}

type sequence struct {
	mu   sync.Mutex
	next int64
}

func (s *sequence) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

type fixedUUID string

func (u fixedUUID) Generate() string { return string(u) }
