package usecase

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/verification/entity"
)

// memoryStore mirrors the conditional semantics of the database drivers.
type memoryStore struct {
	mu      sync.Mutex
	seq     int
	records []*entity.OTP

	errLatest  error
	errReplace error
	errFind    error
	errAttempt error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{}
}

func (m *memoryStore) newest(match func(o *entity.OTP) bool) *entity.OTP {
	candidates := make([]*entity.OTP, 0, len(m.records))
	for _, o := range m.records {
		if match(o) {
			candidates = append(candidates, o)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})
	cp := *candidates[0]
	return &cp
}

func (m *memoryStore) LatestSince(_ context.Context, subjectID string, purpose entity.Purpose, since time.Time) (*entity.OTP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.errLatest != nil {
		return nil, m.errLatest
	}

	o := m.newest(func(o *entity.OTP) bool {
		return o.SubjectID == subjectID && o.Purpose == purpose && o.CreatedAt.After(since)
	})
	if o == nil {
		return nil, goerror.ErrNotFound
	}
	return o, nil
}

func (m *memoryStore) Replace(_ context.Context, otp entity.OTP) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.errReplace != nil {
		return m.errReplace
	}

	for _, o := range m.records {
		if o.SubjectID == otp.SubjectID && o.Purpose == otp.Purpose && !o.Verified {
			o.Verified = true
		}
	}

	m.seq++
	otp.ID = strconv.Itoa(m.seq)
	m.records = append(m.records, &otp)
	return nil
}

func (m *memoryStore) Invalidate(_ context.Context, subjectID string, purpose entity.Purpose) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, o := range m.records {
		if o.SubjectID == subjectID && o.Purpose == purpose && !o.Verified {
			o.Verified = true
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) FindActive(_ context.Context, subjectID string, purpose entity.Purpose, now time.Time) (*entity.OTP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.errFind != nil {
		return nil, m.errFind
	}

	o := m.newest(func(o *entity.OTP) bool {
		return o.SubjectID == subjectID && o.Purpose == purpose && o.Usable(now)
	})
	if o == nil {
		return nil, goerror.ErrNotFound
	}
	return o, nil
}

func (m *memoryStore) RegisterAttempt(_ context.Context, id string, consume bool, maxAttempts int) (*entity.OTP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.errAttempt != nil {
		return nil, m.errAttempt
	}

	for _, o := range m.records {
		if o.ID != id || o.Verified {
			continue
		}
		o.Attempts++
		o.Verified = consume || o.Attempts >= maxAttempts
		cp := *o
		return &cp, nil
	}

	return nil, goerror.ErrNotFound
}

func (m *memoryStore) PurgeExpired(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.records[:0]
	var n int64
	for _, o := range m.records {
		if o.ExpiresAt.Before(before) {
			n++
			continue
		}
		kept = append(kept, o)
	}
	m.records = kept
	return n, nil
}

func (m *memoryStore) unverified(subjectID string, purpose entity.Purpose) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, o := range m.records {
		if o.SubjectID == subjectID && o.Purpose == purpose && !o.Verified {
			n++
		}
	}
	return n
}
