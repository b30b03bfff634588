package reporting

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hbill/hbill/internal/platform/apperr"
)

const topDiseaseLimit = 10

type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// FinancialSummary aggregates all bills. The collection rate is collected
// over billed as a percentage, zero when nothing has been billed.
func (s *Service) FinancialSummary(ctx context.Context) (*FinancialSummary, error) {
	totals, err := s.repo.BillTotals(ctx)
	if err != nil {
		return nil, apperr.Storage("aggregate bills", err)
	}

	byStatus, err := s.repo.StatusBreakdown(ctx)
	if err != nil {
		return nil, apperr.Storage("aggregate bill statuses", err)
	}

	rate := 0.0
	if totals.Billed > 0 {
		rate = totals.Collected / totals.Billed * 100
	}

	return &FinancialSummary{
		TotalBills:       totals.Count,
		TotalBilled:      totals.Billed,
		TotalCollected:   totals.Collected,
		TotalOutstanding: totals.Outstanding,
		AverageBill:      totals.AverageBill,
		CollectionRate:   rate,
		ByStatus:         byStatus,
	}, nil
}

// PatientStats summarizes the registry with gender and disease breakdowns.
func (s *Service) PatientStats(ctx context.Context) (*PatientStats, error) {
	counts, err := s.repo.PatientCounts(ctx)
	if err != nil {
		return nil, apperr.Storage("count patients", err)
	}

	diseases, err := s.repo.TopDiseases(ctx, topDiseaseLimit)
	if err != nil {
		return nil, apperr.Storage("aggregate diseases", err)
	}

	return &PatientStats{
		TotalPatients: counts.Total,
		AverageAge:    counts.AvgAge,
		MinAge:        counts.MinAge,
		MaxAge:        counts.MaxAge,
		Male:          counts.Male,
		Female:        counts.Female,
		Other:         counts.Total - counts.Male - counts.Female,
		TopDiseases:   diseases,
	}, nil
}

// MonthlyRevenue returns per-month bill aggregates, newest month first.
func (s *Service) MonthlyRevenue(ctx context.Context) ([]MonthRevenue, error) {
	out, err := s.repo.MonthlyRevenue(ctx)
	if err != nil {
		return nil, apperr.Storage("aggregate monthly revenue", err)
	}
	return out, nil
}

// SystemStats backs the dashboard counters. Today is the local calendar
// day, matching how admission and payment dates are recorded.
func (s *Service) SystemStats(ctx context.Context) (*SystemStats, error) {
	counts, err := s.repo.PatientCounts(ctx)
	if err != nil {
		return nil, apperr.Storage("count patients", err)
	}
	totals, err := s.repo.BillTotals(ctx)
	if err != nil {
		return nil, apperr.Storage("aggregate bills", err)
	}
	day, err := s.repo.DayCounters(ctx, time.Now().Format("2006-01-02"))
	if err != nil {
		return nil, apperr.Storage("count today's activity", err)
	}
	return &SystemStats{
		Patients:      counts.Total,
		Bills:         totals.Count,
		Payments:      day.Payments,
		TodayPatients: day.NewPatients,
		TodayRevenue:  day.Revenue,
		PendingBills:  day.PendingBills,
		Revenue:       totals.Collected,
		Outstanding:   totals.Outstanding,
	}, nil
}
