package usecase

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/reimbursement/entity"
)

type memoryRepo struct {
	mu    sync.Mutex
	items map[int64]entity.Reimbursement
	err   error
	limit int32

	// beforeUpdate runs inside UpdateReimbursementStatus ahead of the
	// conditional check, to simulate a concurrent writer.
	beforeUpdate func(items map[int64]entity.Reimbursement)
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: map[int64]entity.Reimbursement{}}
}

func (m *memoryRepo) CreateReimbursement(_ context.Context, r entity.Reimbursement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.items[r.ID] = r
	return nil
}

func (m *memoryRepo) GetReimbursement(_ context.Context, id int64) (*entity.Reimbursement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.items[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &r, nil
}

func (m *memoryRepo) ListReimbursements(_ context.Context, applicationID int64, status entity.Status, limit int32) ([]entity.Reimbursement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.limit = limit

	var out []entity.Reimbursement
	for _, r := range m.items {
		if applicationID > 0 && r.ApplicationID != applicationID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b entity.Reimbursement) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})
	return out, nil
}

func (m *memoryRepo) ReimbursementStats(_ context.Context, applicationID int64) (*entity.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	var st entity.Stats
	for _, r := range m.items {
		if r.ApplicationID != applicationID {
			continue
		}
		switch r.Status {
		case entity.StatusPending:
			st.PendingCents += r.AmountCents
		case entity.StatusApproved:
			st.ApprovedCents += r.AmountCents
		case entity.StatusPaid:
			st.PaidCents += r.AmountCents
		case entity.StatusRejected:
			st.RejectedCents += r.AmountCents
		}
	}
	return &st, nil
}

func (m *memoryRepo) UpdateReimbursementStatus(_ context.Context, id int64, from, next entity.Status, note string, at time.Time) (*entity.Reimbursement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.beforeUpdate != nil {
		m.beforeUpdate(m.items)
	}
	r, ok := m.items[id]
	if !ok || r.Status != from {
		return nil, goerror.ErrNotFound
	}
	r.Status, r.AdminNote, r.UpdatedAt = next, note, at
	m.items[id] = r
	return &r, nil
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
