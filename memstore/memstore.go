// Package memstore is an in-memory remindkit.Store, used in tests and as
// an offline stand-in for a real reminders service.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/namuan/remindkit"
)

// Store holds reminders and calendars in memory.
type Store struct {
	mu        sync.Mutex
	calendars []remindkit.Calendar
	reminders map[string]remindkit.Reminder
	order     []string // insertion order for stable listings
}

// New creates a store with the given calendars. Without arguments it seeds
// a single default "Reminders" calendar.
func New(calendars ...remindkit.Calendar) *Store {
	if len(calendars) == 0 {
		calendars = []remindkit.Calendar{
			{ID: uuid.NewString(), Name: "Reminders", IsDefault: true},
		}
	}
	return &Store{
		calendars: calendars,
		reminders: make(map[string]remindkit.Reminder),
	}
}

// AddCalendar registers another calendar.
func (s *Store) AddCalendar(cal remindkit.Calendar) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calendars = append(s.calendars, cal)
}

func (s *Store) Calendars(_ context.Context) ([]remindkit.Calendar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]remindkit.Calendar, len(s.calendars))
	copy(out, s.calendars)
	return out, nil
}

func (s *Store) DefaultCalendar(_ context.Context) (remindkit.Calendar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cal := range s.calendars {
		if cal.IsDefault {
			return cal, nil
		}
	}
	if len(s.calendars) > 0 {
		return s.calendars[0], nil
	}
	return remindkit.Calendar{}, remindkit.ErrNoDefaultCalendar
}

func (s *Store) Reminders(_ context.Context, calendarID string) ([]remindkit.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []remindkit.Reminder
	for _, id := range s.order {
		r := s.reminders[id]
		if calendarID == "" || r.CalendarID == calendarID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) Reminder(_ context.Context, id string) (remindkit.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reminders[id]
	if !ok {
		return remindkit.Reminder{}, fmt.Errorf("reminder %q: %w", id, remindkit.ErrNotFound)
	}
	return r, nil
}

func (s *Store) CreateReminder(_ context.Context, calendarID string, r remindkit.Reminder) (remindkit.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasCalendar(calendarID) {
		return remindkit.Reminder{}, fmt.Errorf("calendar %q: %w", calendarID, remindkit.ErrNotFound)
	}

	now := time.Now()
	r.ID = uuid.NewString()
	r.CalendarID = calendarID
	r.CreatedAt = now
	r.ModifiedAt = now

	s.reminders[r.ID] = r
	s.order = append(s.order, r.ID)
	return r, nil
}

func (s *Store) UpdateReminder(_ context.Context, r remindkit.Reminder) (remindkit.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.reminders[r.ID]
	if !ok {
		return remindkit.Reminder{}, fmt.Errorf("reminder %q: %w", r.ID, remindkit.ErrNotFound)
	}

	r.CalendarID = existing.CalendarID
	r.CreatedAt = existing.CreatedAt
	r.ModifiedAt = time.Now()

	s.reminders[r.ID] = r
	return r, nil
}

func (s *Store) DeleteReminder(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reminders[id]; !ok {
		return fmt.Errorf("reminder %q: %w", id, remindkit.ErrNotFound)
	}
	delete(s.reminders, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) hasCalendar(id string) bool {
	for _, cal := range s.calendars {
		if cal.ID == id {
			return true
		}
	}
	return false
}
