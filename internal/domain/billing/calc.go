package billing

import (
	"github.com/shopspring/decimal"

	"github.com/hbill/hbill/internal/platform/apperr"
)

// Charges holds the five line items of a bill. Amounts are parsed from the
// entry form as strings; a blank entry counts as zero.
type Charges struct {
	Room     decimal.Decimal
	Doctor   decimal.Decimal
	Medicine decimal.Decimal
	Lab      decimal.Decimal
	Other    decimal.Decimal
}

// ParseCharges converts the five form fields into decimal amounts. Blank
// fields become zero; anything non-numeric is a validation error.
func ParseCharges(room, doctor, medicine, lab, other string) (Charges, error) {
	var c Charges
	var err error
	if c.Room, err = parseAmount("room charges", room); err != nil {
		return Charges{}, err
	}
	if c.Doctor, err = parseAmount("doctor fees", doctor); err != nil {
		return Charges{}, err
	}
	if c.Medicine, err = parseAmount("medicine charges", medicine); err != nil {
		return Charges{}, err
	}
	if c.Lab, err = parseAmount("lab charges", lab); err != nil {
		return Charges{}, err
	}
	if c.Other, err = parseAmount("other charges", other); err != nil {
		return Charges{}, err
	}
	return c, nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, apperr.Validationf("%s must be a number, got %q", field, raw)
	}
	return d, nil
}

// Total sums the five line items.
func (c Charges) Total() decimal.Decimal {
	return c.Room.Add(c.Doctor).Add(c.Medicine).Add(c.Lab).Add(c.Other)
}

// AmountPaidFor derives the initial amount paid from the chosen status: the
// full total for Paid, the entered amount for Partial, zero for Pending.
func AmountPaidFor(status string, total, entered decimal.Decimal) (decimal.Decimal, error) {
	switch status {
	case StatusPaid:
		return total, nil
	case StatusPartial:
		if entered.Sign() <= 0 {
			return decimal.Decimal{}, apperr.Validationf("partial payment requires a positive amount")
		}
		if entered.GreaterThan(total) {
			return decimal.Decimal{}, apperr.Validationf("partial payment %s exceeds bill total %s",
				entered.StringFixed(2), total.StringFixed(2))
		}
		return entered, nil
	case StatusPending:
		return decimal.Zero, nil
	default:
		return decimal.Decimal{}, apperr.Validationf("payment status must be %s, %s, or %s; got %q",
			StatusPending, StatusPartial, StatusPaid, status)
	}
}

// StatusFor derives the payment status from total and paid so the stored
// status always agrees with the amounts.
func StatusFor(total, paid decimal.Decimal) string {
	balance := total.Sub(paid)
	switch {
	case paid.Sign() == 0:
		return StatusPending
	case balance.Sign() <= 0:
		return StatusPaid
	default:
		return StatusPartial
	}
}
