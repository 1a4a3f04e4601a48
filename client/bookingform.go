package client

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	cardDigitLimit    = 16
	expiryDigitLimit  = 4
	cvcDigitLimit     = 3
	formattedCardLen  = 19 // 16 digits in four groups plus 3 spaces
	formattedExpLen   = 5  // MM/YY
	DefaultPersonRate = 100
)

func digitsOnly(input string, limit int) string {
	var b strings.Builder
	for _, r := range input {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == limit {
			break
		}
	}
	return b.String()
}

// FormatCardNumber strips non-digits, caps at 16 digits and regroups them in
// blocks of four.
func FormatCardNumber(input string) string {
	digits := digitsOnly(input, cardDigitLimit)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatExpiry strips non-digits, caps at 4, and inserts the slash after the
// month once a third digit arrives.
func FormatExpiry(input string) string {
	digits := digitsOnly(input, expiryDigitLimit)
	if len(digits) < 3 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}

func FormatCVC(input string) string {
	return digitsOnly(input, cvcDigitLimit)
}

// BookingForm mirrors the payment dialog: trip fields plus the mock card
// fields, stored already formatted.
type BookingForm struct {
	RouteID     uuid.UUID
	Date        string
	PeopleCount int

	CardNumber string
	Expiry     string
	CVC        string
}

func NewBookingForm(routeID uuid.UUID) *BookingForm {
	return &BookingForm{RouteID: routeID, PeopleCount: 1}
}

func (f *BookingForm) SetCardNumber(input string) { f.CardNumber = FormatCardNumber(input) }
func (f *BookingForm) SetExpiry(input string)     { f.Expiry = FormatExpiry(input) }
func (f *BookingForm) SetCVC(input string)        { f.CVC = FormatCVC(input) }

// CanSubmit is the conjunction the submit button is gated on: a date chosen,
// a full card number, a full expiry and a full CVC.
func (f *BookingForm) CanSubmit() bool {
	return f.Date != "" &&
		len(f.CardNumber) == formattedCardLen &&
		len(f.Expiry) == formattedExpLen &&
		len(f.CVC) == cvcDigitLimit
}

// EstimatedTotal is display-only; the backend computes the stored total.
func (f *BookingForm) EstimatedTotal(ratePerPerson int) int {
	if ratePerPerson <= 0 {
		ratePerPerson = DefaultPersonRate
	}
	return f.PeopleCount * ratePerPerson
}

// Reset clears the form for the next use after the dialog closes.
func (f *BookingForm) Reset() {
	f.Date = ""
	f.PeopleCount = 1
	f.CardNumber = ""
	f.Expiry = ""
	f.CVC = ""
}

// BookingFlow runs the create-then-pay sequence. The delay between the two
// calls mirrors the mocked processing latency; cancelling the context
// abandons the wait without firing the pay call.
type BookingFlow struct {
	api   *Client
	delay time.Duration
}

func NewBookingFlow(api *Client, delay time.Duration) *BookingFlow {
	return &BookingFlow{api: api, delay: delay}
}

// BookAndPay creates the booking, waits out the simulated processing delay,
// then pays it. The pay step is idempotent server-side, so a caller that
// fails after create may invoke Retry with the returned booking id.
// Without a stored token it aborts locally with ErrNotAuthenticated so the
// caller can redirect to login.
func (bf *BookingFlow) BookAndPay(ctx context.Context, form *BookingForm) (*Booking, error) {
	if bf.api.Tokens().Access() == "" {
		return nil, ErrNotAuthenticated
	}
	booking, err := bf.api.CreateBooking(ctx, form.RouteID, form.Date, form.PeopleCount)
	if err != nil {
		return nil, err
	}

	if bf.delay > 0 {
		select {
		case <-time.After(bf.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return bf.api.PayBooking(ctx, booking.ID)
}

// Retry re-runs only the pay step for a booking whose payment did not get
// confirmed.
func (bf *BookingFlow) Retry(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	return bf.api.PayBooking(ctx, bookingID)
}
