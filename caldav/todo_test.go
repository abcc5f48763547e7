package caldav

import (
	"testing"
	"time"

	"github.com/namuan/remindkit"
)

func roundTrip(t *testing.T, r remindkit.Reminder) remindkit.Reminder {
	t.Helper()
	cal, err := todoToICS(&r)
	if err != nil {
		t.Fatalf("todoToICS: %v", err)
	}
	parsed, err := parseTodo(cal)
	if err != nil {
		t.Fatalf("parseTodo: %v", err)
	}
	return parsed
}

func TestTodoRoundTripBasic(t *testing.T) {
	due := time.Date(2026, 4, 1, 10, 30, 0, 0, time.UTC)
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	parsed := roundTrip(t, remindkit.Reminder{
		ID:         "uid-1",
		Title:      "Renew passport",
		Notes:      "bring photos",
		URL:        "https://example.org/passport",
		DueDate:    &due,
		Priority:   remindkit.PriorityHigh,
		CreatedAt:  created,
		ModifiedAt: created,
	})

	if parsed.ID != "uid-1" {
		t.Errorf("ID = %q", parsed.ID)
	}
	if parsed.Title != "Renew passport" {
		t.Errorf("Title = %q", parsed.Title)
	}
	if parsed.Notes != "bring photos" {
		t.Errorf("Notes = %q", parsed.Notes)
	}
	if parsed.URL != "https://example.org/passport" {
		t.Errorf("URL = %q", parsed.URL)
	}
	if parsed.DueDate == nil || !parsed.DueDate.Equal(due) {
		t.Errorf("DueDate = %v, want %v", parsed.DueDate, due)
	}
	if parsed.Priority != remindkit.PriorityHigh {
		t.Errorf("Priority = %d, want %d", int(parsed.Priority), int(remindkit.PriorityHigh))
	}
	if !parsed.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", parsed.CreatedAt, created)
	}
	if parsed.Completed {
		t.Error("reminder must parse as incomplete")
	}
}

func TestTodoPriorityScalePassthrough(t *testing.T) {
	// Any 0-9 value survives the trip unchanged, not just the named levels.
	for _, p := range []remindkit.Priority{0, 3, 5, 7} {
		parsed := roundTrip(t, remindkit.Reminder{ID: "u", Title: "t", Priority: p})
		if parsed.Priority != p {
			t.Errorf("Priority %d round-tripped to %d", int(p), int(parsed.Priority))
		}
	}
}

func TestTodoCompleted(t *testing.T) {
	completedAt := time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)
	parsed := roundTrip(t, remindkit.Reminder{
		ID:          "u",
		Title:       "Done thing",
		Completed:   true,
		CompletedAt: &completedAt,
	})

	if !parsed.Completed {
		t.Error("Completed must survive the round trip")
	}
	if parsed.CompletedAt == nil || !parsed.CompletedAt.Equal(completedAt) {
		t.Errorf("CompletedAt = %v, want %v", parsed.CompletedAt, completedAt)
	}
}

func TestTodoFlaggedAndTags(t *testing.T) {
	parsed := roundTrip(t, remindkit.Reminder{
		ID:      "u",
		Title:   "Tagged",
		Flagged: true,
		Tags:    []string{"errands", "home"},
	})

	if !parsed.Flagged {
		t.Error("Flagged must survive the round trip")
	}
	if len(parsed.Tags) != 2 || parsed.Tags[0] != "errands" || parsed.Tags[1] != "home" {
		t.Errorf("Tags = %v", parsed.Tags)
	}
}

func TestTodoTagWithComma(t *testing.T) {
	// A comma inside a tag must be escaped on the wire, not treated as a
	// CATEGORIES value separator.
	parsed := roundTrip(t, remindkit.Reminder{
		ID:    "u",
		Title: "Tagged",
		Tags:  []string{"home, garden", "errands"},
	})

	if len(parsed.Tags) != 2 {
		t.Fatalf("Tags = %v, want 2 entries", parsed.Tags)
	}
	if parsed.Tags[0] != "home, garden" || parsed.Tags[1] != "errands" {
		t.Errorf("Tags = %v", parsed.Tags)
	}
}

func TestTodoRecurrence(t *testing.T) {
	parsed := roundTrip(t, remindkit.Reminder{
		ID:    "u",
		Title: "Weekly review",
		Recurrence: &remindkit.Recurrence{
			Frequency: remindkit.FrequencyWeekly,
			Weekdays:  []time.Weekday{time.Friday},
		},
	})

	if parsed.Recurrence == nil {
		t.Fatal("Recurrence must survive the round trip")
	}
	if parsed.Recurrence.Frequency != remindkit.FrequencyWeekly {
		t.Errorf("Frequency = %q", parsed.Recurrence.Frequency)
	}
	if len(parsed.Recurrence.Weekdays) != 1 || parsed.Recurrence.Weekdays[0] != time.Friday {
		t.Errorf("Weekdays = %v", parsed.Recurrence.Weekdays)
	}
}

func TestTodoLocation(t *testing.T) {
	parsed := roundTrip(t, remindkit.Reminder{
		ID:    "u",
		Title: "Pick up keys",
		Location: &remindkit.Location{
			Name:      "Office",
			Latitude:  52.52,
			Longitude: 13.405,
			Radius:    100,
		},
	})

	if parsed.Location == nil {
		t.Fatal("Location must survive the round trip")
	}
	if parsed.Location.Name != "Office" {
		t.Errorf("Name = %q", parsed.Location.Name)
	}
	if parsed.Location.Latitude < 52.51 || parsed.Location.Latitude > 52.53 {
		t.Errorf("Latitude = %f", parsed.Location.Latitude)
	}
	if parsed.Location.Radius != 100 {
		t.Errorf("Radius = %f", parsed.Location.Radius)
	}
}

func TestParseTodoNoComponent(t *testing.T) {
	if _, err := parseTodo(nil); err == nil {
		t.Error("nil calendar must fail")
	}
}

func TestObjectPath(t *testing.T) {
	tests := []struct {
		calendar, uid, want string
	}{
		{"/calendars/home/", "abc", "/calendars/home/abc.ics"},
		{"/calendars/home", "abc", "/calendars/home/abc.ics"},
	}
	for _, tt := range tests {
		if got := objectPath(tt.calendar, tt.uid); got != tt.want {
			t.Errorf("objectPath(%q, %q) = %q, want %q", tt.calendar, tt.uid, got, tt.want)
		}
	}
}
