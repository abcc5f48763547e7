// Package remindkit is a typed client for a reminders store. It reshapes
// the store's calendars and to-do items into a plain data model and adds
// in-memory filtering, search and next-upcoming selection on top of the
// pass-through create/update/delete calls. The store itself (Apple's
// reminders service reached over CalDAV, or an in-memory fake) is passed in
// as a dependency and remains the sole source of truth.
package remindkit

import (
	"context"
	"fmt"
	"time"
)

// Client is the entry point of the package. All calls are synchronous and
// forward to the underlying store; the client caches nothing.
type Client struct {
	store       Store
	calendars   *CalendarManager
	onCreated   []func(Reminder)
	onCompleted []func(Reminder)
}

// New creates a client over the given store.
func New(store Store) *Client {
	return &Client{
		store:     store,
		calendars: &CalendarManager{store: store},
	}
}

// Calendars returns the calendar manager for this client.
func (c *Client) Calendars() *CalendarManager {
	return c.calendars
}

// OnReminderCreated registers a callback invoked synchronously after each
// successful create.
func (c *Client) OnReminderCreated(fn func(Reminder)) {
	c.onCreated = append(c.onCreated, fn)
}

// OnReminderCompleted registers a callback invoked synchronously when an
// update transitions a reminder to completed.
func (c *Client) OnReminderCompleted(fn func(Reminder)) {
	c.onCompleted = append(c.onCompleted, fn)
}

// CreateReminder creates a reminder in the requested calendar, or in the
// default calendar when req.CalendarID is empty. The calendar must exist.
func (c *Client) CreateReminder(ctx context.Context, req CreateReminderRequest) (Reminder, error) {
	if req.Title == "" {
		return Reminder{}, fmt.Errorf("reminder title cannot be empty")
	}
	if !req.Priority.Valid() {
		return Reminder{}, fmt.Errorf("priority %d outside the 0-9 scale", req.Priority)
	}

	var cal Calendar
	var err error
	if req.CalendarID != "" {
		cal, err = c.calendars.GetByID(ctx, req.CalendarID)
	} else {
		cal, err = c.calendars.GetDefault(ctx)
	}
	if err != nil {
		return Reminder{}, err
	}

	r := Reminder{
		Title:      req.Title,
		DueDate:    req.DueDate,
		Notes:      req.Notes,
		URL:        req.URL,
		Priority:   req.Priority,
		Flagged:    req.Flagged,
		Tags:       req.Tags,
		Recurrence: req.Recurrence,
		Location:   req.Location,
	}

	created, err := c.store.CreateReminder(ctx, cal.ID, r)
	if err != nil {
		return Reminder{}, fmt.Errorf("create reminder: %w", err)
	}

	for _, fn := range c.onCreated {
		fn(created)
	}
	return created, nil
}

// GetReminderByID returns a reminder by identifier.
func (c *Client) GetReminderByID(ctx context.Context, id string) (Reminder, error) {
	return c.store.Reminder(ctx, id)
}

// UpdateReminder applies a partial patch to a reminder: only the non-nil
// fields of upd change.
func (c *Client) UpdateReminder(ctx context.Context, id string, upd ReminderUpdate) (Reminder, error) {
	existing, err := c.store.Reminder(ctx, id)
	if err != nil {
		return Reminder{}, err
	}
	if upd.Priority != nil && !upd.Priority.Valid() {
		return Reminder{}, fmt.Errorf("priority %d outside the 0-9 scale", *upd.Priority)
	}

	wasCompleted := existing.Completed
	upd.apply(&existing)

	updated, err := c.store.UpdateReminder(ctx, existing)
	if err != nil {
		return Reminder{}, fmt.Errorf("update reminder: %w", err)
	}

	if !wasCompleted && updated.Completed {
		for _, fn := range c.onCompleted {
			fn(updated)
		}
	}
	return updated, nil
}

// CompleteReminder marks a reminder as completed.
func (c *Client) CompleteReminder(ctx context.Context, id string) (Reminder, error) {
	done := true
	return c.UpdateReminder(ctx, id, ReminderUpdate{Completed: &done})
}

// ReopenReminder marks a completed reminder as incomplete again.
func (c *Client) ReopenReminder(ctx context.Context, id string) (Reminder, error) {
	done := false
	return c.UpdateReminder(ctx, id, ReminderUpdate{Completed: &done})
}

// DeleteReminder removes a reminder by identifier.
func (c *Client) DeleteReminder(ctx context.Context, id string) error {
	return c.store.DeleteReminder(ctx, id)
}

// GetReminders returns the reminders matching every set predicate of f.
// When f.CalendarID is set it must reference an existing calendar.
func (c *Client) GetReminders(ctx context.Context, f Filter) ([]Reminder, error) {
	if f.CalendarID != "" {
		if _, err := c.calendars.GetByID(ctx, f.CalendarID); err != nil {
			return nil, err
		}
	}

	reminders, err := c.store.Reminders(ctx, f.CalendarID)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}

	var result []Reminder
	for _, r := range reminders {
		if f.Matches(r) {
			result = append(result, r)
		}
	}
	return result, nil
}

// SearchReminders returns reminders whose title or notes contain query,
// case-insensitively.
func (c *Client) SearchReminders(ctx context.Context, query string) ([]Reminder, error) {
	reminders, err := c.store.Reminders(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}

	var result []Reminder
	for _, r := range reminders {
		if r.matchesQuery(query) {
			result = append(result, r)
		}
	}
	return result, nil
}

// NextReminder returns the incomplete reminder with the nearest future due
// date, or nil when there is none. Completed, past-due and undated
// reminders are ignored.
func (c *Client) NextReminder(ctx context.Context) (*Reminder, error) {
	reminders, err := c.store.Reminders(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}

	now := time.Now()
	var next *Reminder
	for i := range reminders {
		r := reminders[i]
		if r.Completed || r.DueDate == nil || !r.DueDate.After(now) {
			continue
		}
		if next == nil || r.DueDate.Before(*next.DueDate) {
			next = &r
		}
	}
	return next, nil
}
