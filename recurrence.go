package remindkit

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// Frequency is how often a recurring reminder repeats.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Recurrence describes how a reminder repeats. Interval 0 is treated as 1.
type Recurrence struct {
	Frequency Frequency      `json:"frequency"`
	Interval  int            `json:"interval,omitempty"`
	Until     *time.Time     `json:"until,omitempty"`
	Weekdays  []time.Weekday `json:"weekdays,omitempty"`
}

var rruleFreqs = map[Frequency]rrule.Frequency{
	FrequencyDaily:   rrule.DAILY,
	FrequencyWeekly:  rrule.WEEKLY,
	FrequencyMonthly: rrule.MONTHLY,
	FrequencyYearly:  rrule.YEARLY,
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// RRule renders the recurrence as an RFC 5545 RRULE value.
func (r *Recurrence) RRule() (string, error) {
	freq, ok := rruleFreqs[r.Frequency]
	if !ok {
		return "", fmt.Errorf("unknown recurrence frequency %q", r.Frequency)
	}

	opt := rrule.ROption{
		Freq:     freq,
		Interval: r.Interval,
	}
	if r.Until != nil {
		opt.Until = r.Until.UTC()
	}
	for _, wd := range r.Weekdays {
		opt.Byweekday = append(opt.Byweekday, rruleWeekdays[wd])
	}

	if _, err := rrule.NewRRule(opt); err != nil {
		return "", fmt.Errorf("build rrule: %w", err)
	}
	return opt.RRuleString(), nil
}

// ParseRRule parses an RFC 5545 RRULE value into a Recurrence. Rule parts
// beyond frequency, interval, until and weekdays are dropped.
func ParseRRule(s string) (*Recurrence, error) {
	opt, err := rrule.StrToROption(s)
	if err != nil {
		return nil, fmt.Errorf("parse rrule: %w", err)
	}

	rec := &Recurrence{Interval: opt.Interval}
	switch opt.Freq {
	case rrule.DAILY:
		rec.Frequency = FrequencyDaily
	case rrule.WEEKLY:
		rec.Frequency = FrequencyWeekly
	case rrule.MONTHLY:
		rec.Frequency = FrequencyMonthly
	case rrule.YEARLY:
		rec.Frequency = FrequencyYearly
	default:
		return nil, fmt.Errorf("unsupported rrule frequency in %q", s)
	}
	if !opt.Until.IsZero() {
		until := opt.Until
		rec.Until = &until
	}
	for _, wd := range opt.Byweekday {
		// rrule counts days from Monday, time.Weekday from Sunday.
		rec.Weekdays = append(rec.Weekdays, time.Weekday((wd.Day()+1)%7))
	}
	return rec, nil
}
