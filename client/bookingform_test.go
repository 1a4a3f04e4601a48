package client

import (
	"testing"

	"github.com/google/uuid"
)

func TestFormatCardNumber(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"1234", "1234"},
		{"12345", "1234 5"},
		{"1234567890123456", "1234 5678 9012 3456"},
		{"12345678901234567890", "1234 5678 9012 3456"},
		{"12a3-4 567b8", "1234 5678"},
	}
	for _, tc := range cases {
		if got := FormatCardNumber(tc.input); got != tc.want {
			t.Errorf("FormatCardNumber(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}

	if got := FormatCardNumber("12345678901234567890"); len(got) != formattedCardLen {
		t.Errorf("overlong input formats to %d chars, want %d", len(got), formattedCardLen)
	}
}

func TestFormatExpiry(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"1", "1"},
		{"12", "12"},
		{"123", "12/3"},
		{"1230", "12/30"},
		{"12/30", "12/30"},
		{"123456", "12/34"},
		{"1a2b3c0d", "12/30"},
	}
	for _, tc := range cases {
		if got := FormatExpiry(tc.input); got != tc.want {
			t.Errorf("FormatExpiry(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestFormatCVC(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"12", "12"},
		{"123", "123"},
		{"12345", "123"},
		{"1x2y3z", "123"},
	}
	for _, tc := range cases {
		if got := FormatCVC(tc.input); got != tc.want {
			t.Errorf("FormatCVC(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestBookingForm_CanSubmit(t *testing.T) {
	form := NewBookingForm(uuid.New())
	if form.CanSubmit() {
		t.Fatal("empty form must not be submittable")
	}

	form.Date = "2026-09-15"
	form.SetCardNumber("1234567890123456")
	form.SetExpiry("1230")
	form.SetCVC("123")
	if !form.CanSubmit() {
		t.Fatal("complete form must be submittable")
	}

	// Each missing field alone blocks submission.
	partials := []func(f *BookingForm){
		func(f *BookingForm) { f.Date = "" },
		func(f *BookingForm) { f.SetCardNumber("123456789012345") },
		func(f *BookingForm) { f.SetExpiry("123") },
		func(f *BookingForm) { f.SetCVC("12") },
	}
	for i, blank := range partials {
		clone := *form
		blank(&clone)
		if clone.CanSubmit() {
			t.Errorf("case %d: incomplete form reported submittable", i)
		}
	}
}

func TestBookingForm_EstimatedTotal(t *testing.T) {
	form := NewBookingForm(uuid.New())
	form.PeopleCount = 3
	if got := form.EstimatedTotal(100); got != 300 {
		t.Fatalf("EstimatedTotal(100) = %d, want 300", got)
	}
	if got := form.EstimatedTotal(0); got != 3*DefaultPersonRate {
		t.Fatalf("EstimatedTotal(0) = %d, want default rate fallback", got)
	}
}

func TestBookingForm_Reset(t *testing.T) {
	form := NewBookingForm(uuid.New())
	form.Date = "2026-09-15"
	form.PeopleCount = 4
	form.SetCardNumber("1234567890123456")
	form.SetExpiry("1230")
	form.SetCVC("123")

	form.Reset()
	if form.Date != "" || form.CardNumber != "" || form.Expiry != "" || form.CVC != "" {
		t.Fatal("Reset left card fields behind")
	}
	if form.PeopleCount != 1 {
		t.Fatalf("Reset set people count to %d, want 1", form.PeopleCount)
	}
}
