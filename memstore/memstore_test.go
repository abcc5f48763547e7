package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/namuan/remindkit"
)

func TestSeedsDefaultCalendar(t *testing.T) {
	store := New()
	cal, err := store.DefaultCalendar(context.Background())
	if err != nil {
		t.Fatalf("DefaultCalendar: %v", err)
	}
	if cal.Name != "Reminders" || !cal.IsDefault {
		t.Errorf("default calendar = %+v", cal)
	}
}

func TestCreateRequiresCalendar(t *testing.T) {
	store := New()
	_, err := store.CreateReminder(context.Background(), "missing", remindkit.Reminder{Title: "x"})
	if !errors.Is(err, remindkit.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreatePreservesTimestampsAndOrder(t *testing.T) {
	store := New()
	ctx := context.Background()
	cal, _ := store.DefaultCalendar(ctx)

	first, err := store.CreateReminder(ctx, cal.ID, remindkit.Reminder{Title: "first"})
	if err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}
	if first.ID == "" || first.CreatedAt.IsZero() {
		t.Errorf("create must assign id and timestamps, got %+v", first)
	}

	if _, err := store.CreateReminder(ctx, cal.ID, remindkit.Reminder{Title: "second"}); err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}

	all, err := store.Reminders(ctx, "")
	if err != nil {
		t.Fatalf("Reminders: %v", err)
	}
	if len(all) != 2 || all[0].Title != "first" || all[1].Title != "second" {
		t.Errorf("listing order = %v", all)
	}
}

func TestUpdateKeepsIdentity(t *testing.T) {
	store := New()
	ctx := context.Background()
	cal, _ := store.DefaultCalendar(ctx)

	r, err := store.CreateReminder(ctx, cal.ID, remindkit.Reminder{Title: "before"})
	if err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}

	r.Title = "after"
	r.CalendarID = "should-be-ignored"
	updated, err := store.UpdateReminder(ctx, r)
	if err != nil {
		t.Fatalf("UpdateReminder: %v", err)
	}
	if updated.Title != "after" {
		t.Errorf("Title = %q", updated.Title)
	}
	if updated.CalendarID != cal.ID {
		t.Errorf("CalendarID = %q, must stay %q", updated.CalendarID, cal.ID)
	}
	if !updated.CreatedAt.Equal(r.CreatedAt) {
		t.Errorf("CreatedAt changed across update")
	}
}

func TestDeleteUnknown(t *testing.T) {
	store := New()
	if err := store.DeleteReminder(context.Background(), "missing"); !errors.Is(err, remindkit.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
