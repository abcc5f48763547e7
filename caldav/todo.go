package caldav

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/namuan/remindkit"
)

// Non-standard properties Apple attaches to reminder VTODOs.
const (
	propAppleFlagged = "X-APPLE-FLAGGED"
	propAppleRadius  = "X-APPLE-RADIUS"
)

const (
	statusCompleted   = "COMPLETED"
	statusNeedsAction = "NEEDS-ACTION"
)

// todoToICS converts a reminder to an iCalendar object holding one VTODO.
func todoToICS(r *remindkit.Reminder) (*ical.Calendar, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//remindkit//CalDAV//EN")

	todo := ical.NewComponent(ical.CompToDo)
	todo.Props.SetText(ical.PropUID, r.ID)
	todo.Props.SetText(ical.PropSummary, r.Title)

	if r.Notes != "" {
		todo.Props.SetText(ical.PropDescription, r.Notes)
	}
	if r.URL != "" {
		todo.Props.SetText(ical.PropURL, r.URL)
	}
	if r.DueDate != nil {
		// Convert to UTC explicitly - iCalendar will use Z suffix
		todo.Props.SetDateTime(ical.PropDue, r.DueDate.UTC())
	}
	if r.Priority != remindkit.PriorityNone {
		todo.Props.SetText(ical.PropPriority, strconv.Itoa(int(r.Priority)))
	}

	if r.Completed {
		todo.Props.SetText(ical.PropStatus, statusCompleted)
		completedAt := time.Now().UTC()
		if r.CompletedAt != nil {
			completedAt = r.CompletedAt.UTC()
		}
		todo.Props.SetDateTime(ical.PropCompleted, completedAt)
	} else {
		todo.Props.SetText(ical.PropStatus, statusNeedsAction)
	}

	if r.Flagged {
		todo.Props.SetText(propAppleFlagged, "1")
	}
	if len(r.Tags) > 0 {
		prop := ical.NewProp(ical.PropCategories)
		prop.SetTextList(r.Tags)
		todo.Props.Set(prop)
	}
	if r.Recurrence != nil {
		rr, err := r.Recurrence.RRule()
		if err != nil {
			return nil, err
		}
		todo.Props.SetText(ical.PropRecurrenceRule, rr)
	}
	if r.Location != nil {
		if r.Location.Name != "" {
			todo.Props.SetText(ical.PropLocation, r.Location.Name)
		}
		if r.Location.Latitude != 0 || r.Location.Longitude != 0 {
			todo.Props.SetText(ical.PropGeo, fmt.Sprintf("%f;%f", r.Location.Latitude, r.Location.Longitude))
		}
		if r.Location.Radius > 0 {
			todo.Props.SetText(propAppleRadius, strconv.FormatFloat(r.Location.Radius, 'f', -1, 64))
		}
	}

	if !r.CreatedAt.IsZero() {
		todo.Props.SetDateTime(ical.PropCreated, r.CreatedAt.UTC())
	}
	if !r.ModifiedAt.IsZero() {
		todo.Props.SetDateTime(ical.PropLastModified, r.ModifiedAt.UTC())
	}
	todo.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())

	cal.Children = append(cal.Children, todo)
	return cal, nil
}

// parseTodo converts the first VTODO of an iCalendar object to a reminder.
func parseTodo(cal *ical.Calendar) (remindkit.Reminder, error) {
	var r remindkit.Reminder

	if cal == nil {
		return r, fmt.Errorf("no data in calendar object")
	}

	for _, comp := range cal.Children {
		if comp.Name != ical.CompToDo {
			continue
		}

		if prop := comp.Props.Get(ical.PropUID); prop != nil {
			r.ID = prop.Value
		}
		if prop := comp.Props.Get(ical.PropSummary); prop != nil {
			r.Title = prop.Value
		}
		if prop := comp.Props.Get(ical.PropDescription); prop != nil {
			r.Notes = prop.Value
		}
		if prop := comp.Props.Get(ical.PropURL); prop != nil {
			r.URL = prop.Value
		}
		if prop := comp.Props.Get(ical.PropDue); prop != nil {
			if t, err := prop.DateTime(time.UTC); err == nil {
				r.DueDate = &t
			}
		}
		if prop := comp.Props.Get(ical.PropPriority); prop != nil {
			if v, err := strconv.Atoi(prop.Value); err == nil {
				p := remindkit.Priority(v)
				if p.Valid() {
					r.Priority = p
				}
			}
		}
		if prop := comp.Props.Get(ical.PropStatus); prop != nil {
			r.Completed = strings.EqualFold(prop.Value, statusCompleted)
		}
		if prop := comp.Props.Get(ical.PropCompleted); prop != nil {
			if t, err := prop.DateTime(time.UTC); err == nil {
				r.CompletedAt = &t
				r.Completed = true
			}
		}
		if prop := comp.Props.Get(propAppleFlagged); prop != nil {
			r.Flagged = prop.Value == "1" || strings.EqualFold(prop.Value, "true")
		}
		if prop := comp.Props.Get(ical.PropCategories); prop != nil && prop.Value != "" {
			if tags, err := prop.TextList(); err == nil && len(tags) > 0 {
				r.Tags = tags
			}
		}
		if prop := comp.Props.Get(ical.PropRecurrenceRule); prop != nil {
			if rec, err := remindkit.ParseRRule(prop.Value); err == nil {
				r.Recurrence = rec
			}
		}
		parseTodoLocation(comp, &r)
		if prop := comp.Props.Get(ical.PropCreated); prop != nil {
			if t, err := prop.DateTime(time.UTC); err == nil {
				r.CreatedAt = t
			}
		}
		if prop := comp.Props.Get(ical.PropLastModified); prop != nil {
			if t, err := prop.DateTime(time.UTC); err == nil {
				r.ModifiedAt = t
			}
		}

		return r, nil // only the first VTODO
	}

	return r, fmt.Errorf("no VTODO component")
}

func parseTodoLocation(comp *ical.Component, r *remindkit.Reminder) {
	var loc remindkit.Location

	if prop := comp.Props.Get(ical.PropLocation); prop != nil {
		loc.Name = prop.Value
	}
	if prop := comp.Props.Get(ical.PropGeo); prop != nil {
		parts := strings.SplitN(prop.Value, ";", 2)
		if len(parts) == 2 {
			lat, errLat := strconv.ParseFloat(parts[0], 64)
			lon, errLon := strconv.ParseFloat(parts[1], 64)
			if errLat == nil && errLon == nil {
				loc.Latitude = lat
				loc.Longitude = lon
			}
		}
	}
	if prop := comp.Props.Get(propAppleRadius); prop != nil {
		if radius, err := strconv.ParseFloat(prop.Value, 64); err == nil {
			loc.Radius = radius
		}
	}

	if loc != (remindkit.Location{}) {
		r.Location = &loc
	}
}
