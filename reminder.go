package remindkit

import (
	"strings"
	"time"
)

// Reminder is a to-do item held by the reminders store. The store is the
// sole source of truth: this package never keeps copies between calls.
type Reminder struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	DueDate     *time.Time  `json:"due_date,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	URL         string      `json:"url,omitempty"`
	Priority    Priority    `json:"priority"`
	Completed   bool        `json:"completed"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	Flagged     bool        `json:"flagged,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Recurrence  *Recurrence `json:"recurrence,omitempty"`
	Location    *Location   `json:"location,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	ModifiedAt  time.Time   `json:"modified_at"`
	CalendarID  string      `json:"calendar_id"`
}

// Location is a place attached to a reminder, with an optional trigger
// radius in meters.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius,omitempty"`
}

// CreateReminderRequest holds the fields for a new reminder. CalendarID may
// be left empty to target the default calendar.
type CreateReminderRequest struct {
	Title      string      `json:"title"`
	DueDate    *time.Time  `json:"due_date,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	URL        string      `json:"url,omitempty"`
	Priority   Priority    `json:"priority,omitempty"`
	Flagged    bool        `json:"flagged,omitempty"`
	Tags       []string    `json:"tags,omitempty"`
	Recurrence *Recurrence `json:"recurrence,omitempty"`
	Location   *Location   `json:"location,omitempty"`
	CalendarID string      `json:"calendar_id,omitempty"`
}

// ReminderUpdate is a partial patch: only non-nil fields are applied.
type ReminderUpdate struct {
	Title      *string     `json:"title,omitempty"`
	DueDate    *time.Time  `json:"due_date,omitempty"`
	Notes      *string     `json:"notes,omitempty"`
	URL        *string     `json:"url,omitempty"`
	Priority   *Priority   `json:"priority,omitempty"`
	Completed  *bool       `json:"completed,omitempty"`
	Flagged    *bool       `json:"flagged,omitempty"`
	Tags       []string    `json:"tags,omitempty"`
	Recurrence *Recurrence `json:"recurrence,omitempty"`
	Location   *Location   `json:"location,omitempty"`
}

func (u ReminderUpdate) apply(r *Reminder) {
	if u.Title != nil {
		r.Title = *u.Title
	}
	if u.DueDate != nil {
		due := *u.DueDate
		r.DueDate = &due
	}
	if u.Notes != nil {
		r.Notes = *u.Notes
	}
	if u.URL != nil {
		r.URL = *u.URL
	}
	if u.Priority != nil {
		r.Priority = *u.Priority
	}
	if u.Completed != nil {
		r.Completed = *u.Completed
		if *u.Completed {
			if r.CompletedAt == nil {
				now := time.Now()
				r.CompletedAt = &now
			}
		} else {
			r.CompletedAt = nil
		}
	}
	if u.Flagged != nil {
		r.Flagged = *u.Flagged
	}
	if u.Tags != nil {
		r.Tags = u.Tags
	}
	if u.Recurrence != nil {
		r.Recurrence = u.Recurrence
	}
	if u.Location != nil {
		r.Location = u.Location
	}
}

// Filter selects reminders. Set fields combine with logical AND; unset
// fields are ignored. The due-date bounds are inclusive and only match
// reminders that have a due date. Priority matches by band, so PriorityHigh
// matches any value 6-9.
type Filter struct {
	DueAfter   *time.Time
	DueBefore  *time.Time
	Completed  *bool
	Priority   *Priority
	CalendarID string
}

// Matches reports whether r satisfies every set predicate.
func (f Filter) Matches(r Reminder) bool {
	if f.DueAfter != nil {
		if r.DueDate == nil || r.DueDate.Before(*f.DueAfter) {
			return false
		}
	}
	if f.DueBefore != nil {
		if r.DueDate == nil || r.DueDate.After(*f.DueBefore) {
			return false
		}
	}
	if f.Completed != nil && r.Completed != *f.Completed {
		return false
	}
	if f.Priority != nil && r.Priority.Level() != f.Priority.Level() {
		return false
	}
	if f.CalendarID != "" && r.CalendarID != f.CalendarID {
		return false
	}
	return true
}

// matchesQuery reports whether the reminder's title or notes contain query,
// case-insensitively.
func (r Reminder) matchesQuery(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(r.Title), q) {
		return true
	}
	return r.Notes != "" && strings.Contains(strings.ToLower(r.Notes), q)
}
