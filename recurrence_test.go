package remindkit

import (
	"strings"
	"testing"
	"time"
)

func TestRecurrenceRRuleRoundTrip(t *testing.T) {
	until := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		rec  Recurrence
	}{
		{"daily", Recurrence{Frequency: FrequencyDaily}},
		{"every other week", Recurrence{Frequency: FrequencyWeekly, Interval: 2}},
		{"weekly on mon and fri", Recurrence{
			Frequency: FrequencyWeekly,
			Weekdays:  []time.Weekday{time.Monday, time.Friday},
		}},
		{"monthly until", Recurrence{Frequency: FrequencyMonthly, Until: &until}},
		{"yearly", Recurrence{Frequency: FrequencyYearly}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.rec.RRule()
			if err != nil {
				t.Fatalf("RRule(): %v", err)
			}

			parsed, err := ParseRRule(s)
			if err != nil {
				t.Fatalf("ParseRRule(%q): %v", s, err)
			}

			if parsed.Frequency != tt.rec.Frequency {
				t.Errorf("Frequency = %q, want %q", parsed.Frequency, tt.rec.Frequency)
			}
			if parsed.Interval != tt.rec.Interval {
				t.Errorf("Interval = %d, want %d", parsed.Interval, tt.rec.Interval)
			}
			if len(parsed.Weekdays) != len(tt.rec.Weekdays) {
				t.Fatalf("Weekdays = %v, want %v", parsed.Weekdays, tt.rec.Weekdays)
			}
			for i, wd := range tt.rec.Weekdays {
				if parsed.Weekdays[i] != wd {
					t.Errorf("Weekdays[%d] = %v, want %v", i, parsed.Weekdays[i], wd)
				}
			}
			if (parsed.Until == nil) != (tt.rec.Until == nil) {
				t.Fatalf("Until = %v, want %v", parsed.Until, tt.rec.Until)
			}
			if parsed.Until != nil && !parsed.Until.Equal(*tt.rec.Until) {
				t.Errorf("Until = %v, want %v", parsed.Until, tt.rec.Until)
			}
		})
	}
}

func TestRecurrenceRRuleFrequency(t *testing.T) {
	rec := Recurrence{Frequency: FrequencyWeekly}
	s, err := rec.RRule()
	if err != nil {
		t.Fatalf("RRule(): %v", err)
	}
	if !strings.Contains(s, "FREQ=WEEKLY") {
		t.Errorf("RRule() = %q, want FREQ=WEEKLY part", s)
	}
}

func TestRecurrenceUnknownFrequency(t *testing.T) {
	rec := Recurrence{Frequency: "fortnightly"}
	if _, err := rec.RRule(); err == nil {
		t.Error("unknown frequency must fail")
	}
}

func TestParseRRuleInvalid(t *testing.T) {
	if _, err := ParseRRule("not an rrule"); err == nil {
		t.Error("garbage input must fail")
	}
}
