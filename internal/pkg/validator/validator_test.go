package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	t.Parallel()
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	t.Parallel()
	valid := []string{"00:00", "09:00", "13:45", "23:59"}
	invalid := []string{"24:00", "9:00", "09:60", "09:00:00", "", "nine"}
	for _, clock := range valid {
		if !IsValidClock(clock) {
			t.Errorf("IsValidClock(%q) = false, want true", clock)
		}
	}
	for _, clock := range invalid {
		if IsValidClock(clock) {
			t.Errorf("IsValidClock(%q) = true, want false", clock)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	t.Parallel()
	if _, ok := IsValidDate("2026-02-13"); !ok {
		t.Error("IsValidDate(\"2026-02-13\") = false, want true")
	}
	for _, bad := range []string{"2026-13-01", "13-02-2026", "2026-02-30", ""} {
		if _, ok := IsValidDate(bad); ok {
			t.Errorf("IsValidDate(%q) = true, want false", bad)
		}
	}
}

func TestIsValidLatitudeLongitude(t *testing.T) {
	t.Parallel()
	if !IsValidLatitude(-6.2) || !IsValidLongitude(106.8) {
		t.Error("expected Jakarta coordinates to validate")
	}
	if IsValidLatitude(90.1) || IsValidLatitude(-90.1) {
		t.Error("latitude outside [-90, 90] must not validate")
	}
	if IsValidLongitude(180.1) || IsValidLongitude(-180.1) {
		t.Error("longitude outside [-180, 180] must not validate")
	}
}

func TestIsValidDateTime(t *testing.T) {
	t.Parallel()
	valid := []string{"2026-01-15T10:30:00Z", "2026-01-15T10:30:00+07:00"}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	if _, ok := IsValidDateTime("2026-01-15 10:30:00"); ok {
		t.Error("space-separated timestamp must not validate")
	}
}
