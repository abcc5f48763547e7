package remindkit

import "testing"

func TestPriorityLevel(t *testing.T) {
	tests := []struct {
		value Priority
		level Priority
	}{
		{0, PriorityNone},
		{1, PriorityLow},
		{2, PriorityLow},
		{4, PriorityLow},
		{5, PriorityMedium},
		{6, PriorityHigh},
		{9, PriorityHigh},
	}
	for _, tt := range tests {
		if got := tt.value.Level(); got != tt.level {
			t.Errorf("Priority(%d).Level() = %v, want %v", int(tt.value), got, tt.level)
		}
	}
}

func TestPriorityRoundTrip(t *testing.T) {
	for _, p := range []Priority{PriorityNone, PriorityLow, PriorityMedium, PriorityHigh} {
		parsed, err := ParsePriority(p.String())
		if err != nil {
			t.Fatalf("ParsePriority(%q): %v", p.String(), err)
		}
		if parsed != p {
			t.Errorf("ParsePriority(%q) = %d, want %d", p.String(), int(parsed), int(p))
		}
	}
}

func TestPriorityNamedValues(t *testing.T) {
	// The named levels are fixed points of the store's 0-9 scale.
	if PriorityNone != 0 || PriorityLow != 1 || PriorityMedium != 5 || PriorityHigh != 9 {
		t.Errorf("named priorities = %d/%d/%d/%d, want 0/1/5/9",
			int(PriorityNone), int(PriorityLow), int(PriorityMedium), int(PriorityHigh))
	}
}

func TestParsePriority(t *testing.T) {
	if _, err := ParsePriority("urgent"); err == nil {
		t.Error("ParsePriority(\"urgent\") should fail")
	}
	p, err := ParsePriority(" HIGH ")
	if err != nil {
		t.Fatalf("ParsePriority(\" HIGH \"): %v", err)
	}
	if p != PriorityHigh {
		t.Errorf("ParsePriority(\" HIGH \") = %v, want high", p)
	}
	if p, _ := ParsePriority(""); p != PriorityNone {
		t.Errorf("ParsePriority(\"\") = %v, want none", p)
	}
}

func TestPriorityValid(t *testing.T) {
	if Priority(10).Valid() || Priority(-1).Valid() {
		t.Error("priorities outside 0-9 must not be valid")
	}
	if !Priority(7).Valid() {
		t.Error("Priority(7) must be valid")
	}
}
