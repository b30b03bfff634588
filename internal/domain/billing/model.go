package billing

import (
	"fmt"
	"strings"
)

const (
	StatusPending = "Pending"
	StatusPartial = "Partial"
	StatusPaid    = "Paid"
)

// Bill is one invoice for a patient stay. Amounts are stored rounded to two
// decimal places; bill_no is assigned by the store.
type Bill struct {
	BillNo          int64   `json:"bill_no" db:"bill_no"`
	PatientID       int64   `json:"patient_id" db:"patient_id"`
	PatientName     string  `json:"patient_name" db:"patient_name"`
	BillDate        string  `json:"bill_date" db:"bill_date"`
	RoomCharges     float64 `json:"room_charges" db:"room_charges"`
	DoctorFees      float64 `json:"doctor_fees" db:"doctor_fees"`
	MedicineCharges float64 `json:"medicine_charges" db:"medicine_charges"`
	LabCharges      float64 `json:"lab_charges" db:"lab_charges"`
	OtherCharges    float64 `json:"other_charges" db:"other_charges"`
	TotalAmount     float64 `json:"total_amount" db:"total_amount"`
	AmountPaid      float64 `json:"amount_paid" db:"amount_paid"`
	BalanceDue      float64 `json:"balance_due" db:"balance_due"`
	PaymentStatus   string  `json:"payment_status" db:"payment_status"`
	PaymentMethod   *string `json:"payment_method,omitempty" db:"payment_method"`
}

// Payment is one entry in a bill's payment ledger.
type Payment struct {
	ID            int64   `json:"payment_id" db:"payment_id"`
	BillNo        int64   `json:"bill_no" db:"bill_no"`
	Amount        float64 `json:"amount" db:"amount"`
	PaymentDate   string  `json:"payment_date" db:"payment_date"`
	PaymentMethod *string `json:"payment_method,omitempty" db:"payment_method"`
}

// Receipt renders the bill as a printable text receipt.
func (b *Bill) Receipt(hospitalName string) string {
	method := "N/A"
	if b.PaymentMethod != nil && *b.PaymentMethod != "" {
		method = *b.PaymentMethod
	}

	var sb strings.Builder
	line := strings.Repeat("=", 50)
	fmt.Fprintf(&sb, "%s\n", line)
	fmt.Fprintf(&sb, "%s\n", center(hospitalName, 50))
	fmt.Fprintf(&sb, "%s\n", center("BILL RECEIPT", 50))
	fmt.Fprintf(&sb, "%s\n\n", line)
	fmt.Fprintf(&sb, "Bill No       : %d\n", b.BillNo)
	fmt.Fprintf(&sb, "Bill Date     : %s\n", b.BillDate)
	fmt.Fprintf(&sb, "Patient ID    : %d\n", b.PatientID)
	fmt.Fprintf(&sb, "Patient Name  : %s\n\n", b.PatientName)
	fmt.Fprintf(&sb, "%s\n", strings.Repeat("-", 50))
	fmt.Fprintf(&sb, "Room Charges      : %12.2f\n", b.RoomCharges)
	fmt.Fprintf(&sb, "Doctor Fees       : %12.2f\n", b.DoctorFees)
	fmt.Fprintf(&sb, "Medicine Charges  : %12.2f\n", b.MedicineCharges)
	fmt.Fprintf(&sb, "Lab Charges       : %12.2f\n", b.LabCharges)
	fmt.Fprintf(&sb, "Other Charges     : %12.2f\n", b.OtherCharges)
	fmt.Fprintf(&sb, "%s\n", strings.Repeat("-", 50))
	fmt.Fprintf(&sb, "Total Amount      : %12.2f\n", b.TotalAmount)
	fmt.Fprintf(&sb, "Amount Paid       : %12.2f\n", b.AmountPaid)
	fmt.Fprintf(&sb, "Balance Due       : %12.2f\n", b.BalanceDue)
	fmt.Fprintf(&sb, "%s\n", strings.Repeat("-", 50))
	fmt.Fprintf(&sb, "Payment Status    : %s\n", b.PaymentStatus)
	fmt.Fprintf(&sb, "Payment Method    : %s\n", method)
	fmt.Fprintf(&sb, "%s\n", line)
	fmt.Fprintf(&sb, "%s\n", center("Thank you. Get well soon!", 50))
	fmt.Fprintf(&sb, "%s\n", line)
	return sb.String()
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
