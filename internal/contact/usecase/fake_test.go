package usecase

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shandysiswandi/ambassador/internal/contact/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
)

type memoryRepo struct {
	mu    sync.Mutex
	items map[int64]entity.Contact
	err   error
	limit int32
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: map[int64]entity.Contact{}}
}

func (r *memoryRepo) CreateContact(_ context.Context, c entity.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.items[c.ID] = c
	return nil
}

func (r *memoryRepo) GetContact(_ context.Context, owner, id int64) (*entity.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.items[id]
	if !ok || c.ApplicationID != owner {
		return nil, goerror.ErrNotFound
	}
	return &c, nil
}

func (r *memoryRepo) ListContacts(_ context.Context, owner int64, query string, limit int32) ([]entity.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.limit = limit

	q := strings.ToLower(query)
	var out []entity.Contact
	for _, c := range r.items {
		if c.ApplicationID != owner {
			continue
		}
		hay := strings.ToLower(strings.Join([]string{c.Name, c.Company, c.Event, c.Note, c.Address, c.LinkedinURL}, " "))
		if q == "" || strings.Contains(hay, q) {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b entity.Contact) int {
		return cmp.Or(b.UpdatedAt.Compare(a.UpdatedAt), cmp.Compare(b.ID, a.ID))
	})
	return out, nil
}

func (r *memoryRepo) UpdateContact(_ context.Context, c entity.Contact) (*entity.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	cur, ok := r.items[c.ID]
	if !ok || cur.ApplicationID != c.ApplicationID {
		return nil, goerror.ErrNotFound
	}
	r.items[c.ID] = c
	return &c, nil
}

func (r *memoryRepo) ToggleContactStar(_ context.Context, owner, id int64, at time.Time) (*entity.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.items[id]
	if !ok || c.ApplicationID != owner {
		return nil, goerror.ErrNotFound
	}
	c.Starred = !c.Starred
	c.UpdatedAt = at
	r.items[id] = c
	return &c, nil
}

func (r *memoryRepo) DeleteContact(_ context.Context, owner, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	c, ok := r.items[id]
	if !ok || c.ApplicationID != owner {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
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
