package remindkit

import (
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time { return &t }
func boolPtr(b bool) *bool           { return &b }

func priorityPtr(p Priority) *Priority { return &p }

func TestFilterMatches(t *testing.T) {
	due := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	r := Reminder{
		Title:      "Pay rent",
		DueDate:    &due,
		Priority:   7,
		Completed:  false,
		CalendarID: "cal-1",
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter matches", Filter{}, true},
		{"due after earlier time", Filter{DueAfter: timePtr(due.Add(-time.Hour))}, true},
		{"due after boundary is inclusive", Filter{DueAfter: timePtr(due)}, true},
		{"due after later time", Filter{DueAfter: timePtr(due.Add(time.Hour))}, false},
		{"due before later time", Filter{DueBefore: timePtr(due.Add(time.Hour))}, true},
		{"due before boundary is inclusive", Filter{DueBefore: timePtr(due)}, true},
		{"due before earlier time", Filter{DueBefore: timePtr(due.Add(-time.Hour))}, false},
		{"completed mismatch", Filter{Completed: boolPtr(true)}, false},
		{"completed match", Filter{Completed: boolPtr(false)}, true},
		{"priority band match", Filter{Priority: priorityPtr(PriorityHigh)}, true},
		{"priority band mismatch", Filter{Priority: priorityPtr(PriorityLow)}, false},
		{"calendar match", Filter{CalendarID: "cal-1"}, true},
		{"calendar mismatch", Filter{CalendarID: "cal-2"}, false},
		{
			"all predicates AND together",
			Filter{
				DueAfter:   timePtr(due.Add(-time.Hour)),
				DueBefore:  timePtr(due.Add(time.Hour)),
				Completed:  boolPtr(false),
				Priority:   priorityPtr(PriorityHigh),
				CalendarID: "cal-1",
			},
			true,
		},
		{
			"one failing predicate fails the AND",
			Filter{
				DueAfter:  timePtr(due.Add(-time.Hour)),
				Completed: boolPtr(true),
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(r); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterDueBoundsRequireDueDate(t *testing.T) {
	undated := Reminder{Title: "someday"}
	now := time.Now()

	if (Filter{DueAfter: &now}).Matches(undated) {
		t.Error("due_after must not match a reminder without a due date")
	}
	if (Filter{DueBefore: &now}).Matches(undated) {
		t.Error("due_before must not match a reminder without a due date")
	}
	if !(Filter{}).Matches(undated) {
		t.Error("empty filter must match a reminder without a due date")
	}
}

func TestReminderMatchesQuery(t *testing.T) {
	r := Reminder{Title: "Buy Groceries", Notes: "Milk and EGGS"}

	tests := []struct {
		query string
		want  bool
	}{
		{"groceries", true},
		{"GROCERIES", true},
		{"eggs", true},
		{"milk", true},
		{"bread", false},
	}
	for _, tt := range tests {
		if got := r.matchesQuery(tt.query); got != tt.want {
			t.Errorf("matchesQuery(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestReminderUpdateApply(t *testing.T) {
	due := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	r := Reminder{
		Title:    "Original",
		Notes:    "keep me",
		Priority: PriorityLow,
	}

	upd := ReminderUpdate{
		Title:   strPtr("Changed"),
		DueDate: &due,
	}
	upd.apply(&r)

	if r.Title != "Changed" {
		t.Errorf("Title = %q, want Changed", r.Title)
	}
	if r.DueDate == nil || !r.DueDate.Equal(due) {
		t.Errorf("DueDate = %v, want %v", r.DueDate, due)
	}
	if r.Notes != "keep me" {
		t.Errorf("Notes = %q, unsupplied field must not change", r.Notes)
	}
	if r.Priority != PriorityLow {
		t.Errorf("Priority = %v, unsupplied field must not change", r.Priority)
	}
}

func TestReminderUpdateCompletion(t *testing.T) {
	var r Reminder

	ReminderUpdate{Completed: boolPtr(true)}.apply(&r)
	if !r.Completed || r.CompletedAt == nil {
		t.Fatal("completing must set Completed and CompletedAt")
	}

	ReminderUpdate{Completed: boolPtr(false)}.apply(&r)
	if r.Completed || r.CompletedAt != nil {
		t.Fatal("reopening must clear Completed and CompletedAt")
	}
}

func strPtr(s string) *string { return &s }
