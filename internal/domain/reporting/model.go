package reporting

import (
	"fmt"
	"strings"
)

// StatusBreakdown counts bills and sums totals for one payment status.
type StatusBreakdown struct {
	Status string  `json:"status"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

// FinancialSummary aggregates every bill in the system.
type FinancialSummary struct {
	TotalBills       int64             `json:"total_bills"`
	TotalBilled      float64           `json:"total_billed"`
	TotalCollected   float64           `json:"total_collected"`
	TotalOutstanding float64           `json:"total_outstanding"`
	AverageBill      float64           `json:"average_bill"`
	CollectionRate   float64           `json:"collection_rate"`
	ByStatus         []StatusBreakdown `json:"by_status"`
}

// Render formats the summary as a plain-text report.
func (f *FinancialSummary) Render() string {
	var sb strings.Builder
	line := strings.Repeat("=", 50)
	fmt.Fprintf(&sb, "%s\nFINANCIAL SUMMARY\n%s\n\n", line, line)
	fmt.Fprintf(&sb, "Total Bills        : %d\n", f.TotalBills)
	fmt.Fprintf(&sb, "Total Billed       : %12.2f\n", f.TotalBilled)
	fmt.Fprintf(&sb, "Total Collected    : %12.2f\n", f.TotalCollected)
	fmt.Fprintf(&sb, "Total Outstanding  : %12.2f\n", f.TotalOutstanding)
	fmt.Fprintf(&sb, "Average Bill       : %12.2f\n", f.AverageBill)
	fmt.Fprintf(&sb, "Collection Rate    : %11.1f%%\n\n", f.CollectionRate)
	fmt.Fprintf(&sb, "By Status:\n")
	for _, s := range f.ByStatus {
		fmt.Fprintf(&sb, "  %-8s : %4d bills, %12.2f\n", s.Status, s.Count, s.Amount)
	}
	fmt.Fprintf(&sb, "%s\n", line)
	return sb.String()
}

// DiseaseCount is one row of the common-diseases breakdown.
type DiseaseCount struct {
	Disease string `json:"disease"`
	Count   int64  `json:"count"`
}

// PatientStats summarizes the registry. Other counts every patient whose
// gender is not recorded as M or F.
type PatientStats struct {
	TotalPatients int64          `json:"total_patients"`
	AverageAge    float64        `json:"average_age"`
	MinAge        int64          `json:"min_age"`
	MaxAge        int64          `json:"max_age"`
	Male          int64          `json:"male"`
	Female        int64          `json:"female"`
	Other         int64          `json:"other"`
	TopDiseases   []DiseaseCount `json:"top_diseases"`
}

// Render formats the statistics as a plain-text report.
func (p *PatientStats) Render() string {
	var sb strings.Builder
	line := strings.Repeat("=", 50)
	fmt.Fprintf(&sb, "%s\nPATIENT STATISTICS\n%s\n\n", line, line)
	fmt.Fprintf(&sb, "Total Patients : %d\n", p.TotalPatients)
	fmt.Fprintf(&sb, "Average Age    : %.1f\n", p.AverageAge)
	fmt.Fprintf(&sb, "Age Range      : %d - %d\n\n", p.MinAge, p.MaxAge)
	fmt.Fprintf(&sb, "By Gender:\n")
	fmt.Fprintf(&sb, "  Male     : %d\n", p.Male)
	fmt.Fprintf(&sb, "  Female   : %d\n", p.Female)
	fmt.Fprintf(&sb, "  Other    : %d\n", p.Other)
	fmt.Fprintf(&sb, "\nMost Common Diseases:\n")
	for _, d := range p.TopDiseases {
		fmt.Fprintf(&sb, "  %-24s : %d\n", d.Disease, d.Count)
	}
	fmt.Fprintf(&sb, "%s\n", line)
	return sb.String()
}

// MonthRevenue holds one calendar month's bill aggregates.
type MonthRevenue struct {
	Month       string  `json:"month"`
	Billed      float64 `json:"billed"`
	Collected   float64 `json:"collected"`
	Outstanding float64 `json:"outstanding"`
	BillCount   int64   `json:"bill_count"`
}

// SystemStats backs the dashboard counters.
type SystemStats struct {
	Patients      int64   `json:"patients"`
	Bills         int64   `json:"bills"`
	Payments      int64   `json:"payments"`
	TodayPatients int64   `json:"today_patients"`
	TodayRevenue  float64 `json:"today_revenue"`
	PendingBills  int64   `json:"pending_bills"`
	Revenue       float64 `json:"revenue"`
	Outstanding   float64 `json:"outstanding"`
}
