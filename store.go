package remindkit

import "context"

// Store is the handle to the underlying reminders store. It is the system
// of record: implementations forward every call to the backing service and
// keep no state of their own. The caldav package provides the production
// implementation; memstore provides an in-memory one.
//
// Implementations wrap ErrNotFound when an identifier does not resolve and
// pass other store failures through unchanged.
type Store interface {
	// Calendars returns every reminder list in the store.
	Calendars(ctx context.Context) ([]Calendar, error)

	// DefaultCalendar returns the store's default list for new reminders,
	// or an error wrapping ErrNoDefaultCalendar.
	DefaultCalendar(ctx context.Context) (Calendar, error)

	// Reminders returns the reminders in the given calendar, or in every
	// calendar when calendarID is empty.
	Reminders(ctx context.Context, calendarID string) ([]Reminder, error)

	// Reminder returns a single reminder by identifier.
	Reminder(ctx context.Context, id string) (Reminder, error)

	// CreateReminder stores r in the given calendar and returns it with
	// the identifier and timestamps the store assigned.
	CreateReminder(ctx context.Context, calendarID string, r Reminder) (Reminder, error)

	// UpdateReminder replaces the stored reminder identified by r.ID.
	UpdateReminder(ctx context.Context, r Reminder) (Reminder, error)

	// DeleteReminder removes a reminder by identifier.
	DeleteReminder(ctx context.Context, id string) error
}
