package usecase

import (
	"context"
	"slices"
	"sync"

	"github.com/shandysiswandi/ambassador/internal/notification/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/mail"
	"github.com/shandysiswandi/ambassador/internal/pkg/sms"
	"github.com/shandysiswandi/ambassador/internal/pkg/valueobject"
)

type memoryRepo struct {
	mu    sync.Mutex
	items []entity.Notification
	subs  map[int64]valueobject.JSONMap
	apps  map[int64]bool
	err   error
}

func newMemoryRepo(appIDs ...int64) *memoryRepo {
	r := &memoryRepo{subs: map[int64]valueobject.JSONMap{}, apps: map[int64]bool{}}
	for _, id := range appIDs {
		r.apps[id] = true
	}
	return r
}

func (r *memoryRepo) CreateNotification(_ context.Context, n entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.items = append(r.items, n)
	return nil
}

func (r *memoryRepo) ListNotifications(_ context.Context, appID int64, limit int32) ([]entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	var out []entity.Notification
	for _, n := range slices.Backward(r.items) {
		if n.ApplicationID == appID && len(out) < int(limit) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memoryRepo) CountUnreadNotifications(_ context.Context, appID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, it := range r.items {
		if it.ApplicationID == appID && !it.Read {
			n++
		}
	}
	return n, r.err
}

func (r *memoryRepo) MarkNotificationRead(_ context.Context, appID, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	for i := range r.items {
		if r.items[i].ID == id && r.items[i].ApplicationID == appID {
			r.items[i].Read = true
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) MarkNotificationsReadAll(_ context.Context, appID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	var n int64
	for i := range r.items {
		if r.items[i].ApplicationID == appID && !r.items[i].Read {
			r.items[i].Read = true
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo) UpdatePushSubscription(_ context.Context, appID int64, sub valueobject.JSONMap) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	if !r.apps[appID] {
		return false, nil
	}
	r.subs[appID] = sub
	return true, nil
}

type recordingDelivery struct {
	mu       sync.Mutex
	emails   []mail.Message
	texts    []sms.Message
	emailErr error
	smsErr   error
}

func (d *recordingDelivery) SendEmail(_ context.Context, msg mail.Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.emails = append(d.emails, msg)
	return d.emailErr
}

func (d *recordingDelivery) SendSMS(_ context.Context, msg sms.Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.texts = append(d.texts, msg)
	return d.smsErr
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
