package remindkit

import (
	"context"
	"fmt"
	"strings"
)

// Calendar is a named reminder list. Calendars are read-only from this
// package's perspective, apart from being the target container when a
// reminder is created.
type Calendar struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	IsDefault bool   `json:"is_default,omitempty"`
}

// CalendarManager provides lookups over the store's reminder lists.
type CalendarManager struct {
	store Store
}

// List returns all calendars known to the store.
func (m *CalendarManager) List(ctx context.Context) ([]Calendar, error) {
	return m.store.Calendars(ctx)
}

// Get returns the first calendar whose name matches exactly
// (case-sensitive).
func (m *CalendarManager) Get(ctx context.Context, name string) (Calendar, error) {
	calendars, err := m.store.Calendars(ctx)
	if err != nil {
		return Calendar{}, err
	}
	for _, cal := range calendars {
		if cal.Name == name {
			return cal, nil
		}
	}
	return Calendar{}, fmt.Errorf("calendar named %q: %w", name, ErrNotFound)
}

// GetByID returns the calendar with the given identifier.
func (m *CalendarManager) GetByID(ctx context.Context, id string) (Calendar, error) {
	calendars, err := m.store.Calendars(ctx)
	if err != nil {
		return Calendar{}, err
	}
	for _, cal := range calendars {
		if cal.ID == id {
			return cal, nil
		}
	}
	return Calendar{}, fmt.Errorf("calendar %q: %w", id, ErrNotFound)
}

// Search returns calendars whose name contains query, case-insensitively.
func (m *CalendarManager) Search(ctx context.Context, query string) ([]Calendar, error) {
	calendars, err := m.store.Calendars(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var result []Calendar
	for _, cal := range calendars {
		if strings.Contains(strings.ToLower(cal.Name), q) {
			result = append(result, cal)
		}
	}
	return result, nil
}

// GetDefault returns the store's default calendar for new reminders.
func (m *CalendarManager) GetDefault(ctx context.Context) (Calendar, error) {
	return m.store.DefaultCalendar(ctx)
}
