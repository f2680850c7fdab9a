package usecases

import (
	"context"
	"fmt"
	"math"
	"time"

	"prognosis/internal/domain/prognosis"
	"prognosis/internal/shared/errors"
	"prognosis/internal/shared/logger"
)

const (
	defaultStatsDays = 30
	maxStatsDays     = 365
)

type GetTicketStatsQuery struct {
	Days int
}

// GetTicketStatsResult aggregates ticket volumes over the trailing
// window. TotalErrors counts stored error rows, so it can trail the
// tickets' alert_count snapshots. StatusBreakdown is keyed status_<n>.
type GetTicketStatsResult struct {
	Days                 int
	Period               string
	TotalTickets         int64
	TotalErrors          int64
	TotalVehicles        int64
	AvgErrorsPerTicket   float64
	AvgVehiclesPerTicket float64
	StatusBreakdown      map[string]int64
}

type GetTicketStatsExecutor interface {
	Execute(ctx context.Context, query GetTicketStatsQuery) (*GetTicketStatsResult, error)
}

type GetTicketStatsUseCase struct {
	ticketRepo prognosis.TicketRepository
	logger     logger.Interface
}

func NewGetTicketStatsUseCase(
	ticketRepo prognosis.TicketRepository,
	logger logger.Interface,
) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetTicketStatsUseCase) Execute(ctx context.Context, query GetTicketStatsQuery) (*GetTicketStatsResult, error) {
	days := query.Days
	// Out-of-range values fall back to the default window instead of
	// failing the request.
	if days < 1 || days > maxStatsDays {
		days = defaultStatsDays
	}

	uc.logger.Info("executing get ticket stats use case", "days", days)

	to := time.Now()
	from := to.AddDate(0, 0, -days)

	stats, err := uc.ticketRepo.GetStats(ctx, from, to)
	if err != nil {
		uc.logger.Error("failed to aggregate ticket stats", "error", err)
		return nil, errors.NewInternalError("failed to aggregate ticket stats")
	}

	result := &GetTicketStatsResult{
		Days:            days,
		Period:          fmt.Sprintf("Last %d days", days),
		TotalTickets:    stats.TotalTickets,
		TotalErrors:     stats.TotalErrors,
		TotalVehicles:   stats.TotalVehicles,
		StatusBreakdown: make(map[string]int64, len(stats.ByCallStatus)),
	}

	if stats.TotalTickets > 0 {
		result.AvgErrorsPerTicket = round2(float64(stats.TotalErrors) / float64(stats.TotalTickets))
		result.AvgVehiclesPerTicket = round2(float64(stats.TotalVehicles) / float64(stats.TotalTickets))
	}

	for statusID, count := range stats.ByCallStatus {
		result.StatusBreakdown[fmt.Sprintf("status_%d", statusID)] = count
	}

	return result, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
