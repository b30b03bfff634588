package reporting

import "context"

// Repository runs the aggregate queries behind the reports. All sums come
// back zero, not NULL, when the tables are empty.
type Repository interface {
	BillTotals(ctx context.Context) (BillTotals, error)
	StatusBreakdown(ctx context.Context) ([]StatusBreakdown, error)
	PatientCounts(ctx context.Context) (PatientCounts, error)
	TopDiseases(ctx context.Context, limit int) ([]DiseaseCount, error)
	MonthlyRevenue(ctx context.Context) ([]MonthRevenue, error)
	DayCounters(ctx context.Context, day string) (DayCounters, error)
}

// BillTotals holds the ledger-wide bill aggregates.
type BillTotals struct {
	Count       int64
	Billed      float64
	Collected   float64
	Outstanding float64
	AverageBill float64
}

// PatientCounts holds the registry aggregates. Genders are stored as
// single-letter codes; anything other than M or F lands in the other
// bucket computed by the service.
type PatientCounts struct {
	Total  int64
	Male   int64
	Female int64
	AvgAge float64
	MinAge int64
	MaxAge int64
}

// DayCounters holds the activity counters for one calendar day plus the
// ledger-wide totals the dashboard shows alongside them.
type DayCounters struct {
	Payments     int64
	NewPatients  int64
	Revenue      float64
	PendingBills int64
}
