package usecase

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/shandysiswandi/ambassador/internal/call/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
)

type memoryRepo struct {
	mu       sync.Mutex
	calls    map[int64]entity.Call
	contacts map[int64]int64 // contact id -> owning application
	err      error
	limit    int32
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{calls: map[int64]entity.Call{}, contacts: map[int64]int64{}}
}

func (m *memoryRepo) CreateCall(_ context.Context, c entity.Call) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if owner, ok := m.contacts[c.ContactID]; !ok || owner != c.ApplicationID {
		return goerror.ErrNotFound
	}
	m.calls[c.ID] = c
	return nil
}

func (m *memoryRepo) ListCalls(_ context.Context, applicationID, contactID int64, limit int32) ([]entity.Call, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.limit = limit

	var out []entity.Call
	for _, c := range m.calls {
		if c.ApplicationID != applicationID || (contactID > 0 && c.ContactID != contactID) {
			continue
		}
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b entity.Call) int {
		return cmp.Or(b.CalledAt.Compare(a.CalledAt), cmp.Compare(b.ID, a.ID))
	})
	return out, nil
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
