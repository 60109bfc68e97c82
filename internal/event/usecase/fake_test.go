package usecase

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/shandysiswandi/ambassador/internal/event/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
)

type memoryRepo struct {
	mu        sync.Mutex
	events    map[int64]entity.Event
	attendees map[int64]map[int64]time.Time
	err       error
	limit     int32
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{events: map[int64]entity.Event{}, attendees: map[int64]map[int64]time.Time{}}
}

func (m *memoryRepo) CreateEvent(_ context.Context, e entity.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events[e.ID] = e
	return nil
}

func (m *memoryRepo) view(e entity.Event, viewer int64) entity.Event {
	e.AttendeeCount = len(m.attendees[e.ID])
	_, e.Joined = m.attendees[e.ID][viewer]
	return e
}

func (m *memoryRepo) GetEvent(_ context.Context, id, viewer int64) (*entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.events[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	e = m.view(e, viewer)
	return &e, nil
}

func (m *memoryRepo) ListEvents(_ context.Context, viewer int64, limit int32) ([]entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.limit = limit

	out := make([]entity.Event, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, m.view(e, viewer))
	}
	slices.SortFunc(out, func(a, b entity.Event) int {
		return cmp.Or(a.Date.Compare(b.Date), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (m *memoryRepo) AddAttendee(_ context.Context, eventID, applicationID int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[eventID]; !ok {
		return goerror.ErrNotFound
	}
	if m.attendees[eventID] == nil {
		m.attendees[eventID] = map[int64]time.Time{}
	}
	if _, ok := m.attendees[eventID][applicationID]; !ok {
		m.attendees[eventID][applicationID] = at
	}
	return nil
}

func (m *memoryRepo) RemoveAttendee(_ context.Context, eventID, applicationID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.attendees[eventID], applicationID)
	return nil
}

func (m *memoryRepo) ListAttendees(_ context.Context, eventID int64) ([]entity.Attendee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]entity.Attendee, 0, len(m.attendees[eventID]))
	for id, at := range m.attendees[eventID] {
		out = append(out, entity.Attendee{ApplicationID: id, JoinedAt: at})
	}
	slices.SortFunc(out, func(a, b entity.Attendee) int {
		return cmp.Or(a.JoinedAt.Compare(b.JoinedAt), cmp.Compare(a.ApplicationID, b.ApplicationID))
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
