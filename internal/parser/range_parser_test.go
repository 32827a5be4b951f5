package parser

import (
	"testing"
	"time"
)

func TestParseDayAbsolute(t *testing.T) {
	day, err := ParseDay("15/12/2026")
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	want := time.Date(2026, 12, 15, 0, 0, 0, 0, time.Local)
	if !day.Equal(want) {
		t.Errorf("day = %v, want %v", day, want)
	}
}

func TestParseDayKeywords(t *testing.T) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	day, err := ParseDay("today")
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if !day.Equal(today) {
		t.Errorf("today = %v, want %v", day, today)
	}

	day, err = ParseDay("Yesterday")
	if err != nil {
		t.Fatalf("yesterday: %v", err)
	}
	if !day.Equal(today.AddDate(0, 0, -1)) {
		t.Errorf("yesterday = %v", day)
	}
}

func TestParseDayRelative(t *testing.T) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	tests := []struct {
		input string
		want  time.Time
	}{
		{"3 days", today.AddDate(0, 0, -3)},
		{"1 day", today.AddDate(0, 0, -1)},
		{"2 weeks", today.AddDate(0, 0, -14)},
		{"1 week ago", today.AddDate(0, 0, -7)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			day, err := ParseDay(tt.input)
			if err != nil {
				t.Fatalf("ParseDay(%q): %v", tt.input, err)
			}
			if !day.Equal(tt.want) {
				t.Errorf("ParseDay(%q) = %v, want %v", tt.input, day, tt.want)
			}
		})
	}
}

func TestParseDayInvalid(t *testing.T) {
	inputs := []string{
		"",
		"soon",
		"32/01/2026",
		"15/13/2026",
		"30/02/2026",
		"15/12/1999",
		"400 days",
		"0 weeks",
		"5 months",
	}

	for _, input := range inputs {
		if _, err := ParseDay(input); err == nil {
			t.Errorf("ParseDay(%q) should fail", input)
		}
	}
}

func TestEndOfDay(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	end := EndOfDay(day)
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("EndOfDay = %v", end)
	}
	if end.Day() != 10 {
		t.Errorf("EndOfDay changed the day: %v", end)
	}
}
