package usecases

import (
	"context"
	"strings"
	"time"

	"prognosis/internal/application/prognosis/dto"
	"prognosis/internal/domain/prognosis"
	vo "prognosis/internal/domain/prognosis/valueobjects"
	"prognosis/internal/shared/constants"
	"prognosis/internal/shared/errors"
	"prognosis/internal/shared/logger"
)

// maxDateRangeDays bounds the list query window.
const maxDateRangeDays = 365

type ListTicketsQuery struct {
	CustomerID   *int64
	CallStatusID *int
	DateFrom     *time.Time
	DateTo       *time.Time
	MinVehicles  *int
	MaxVehicles  *int
	MinAlerts    *int
	MaxAlerts    *int
	Search       string
	Page         int
	PageSize     int
}

type ListTicketsResult struct {
	Tickets    []dto.TicketListItemDTO
	TotalCount int64
	Page       int
	PageSize   int
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type ListTicketsUseCase struct {
	ticketRepo prognosis.TicketRepository
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo prognosis.TicketRepository,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	uc.logger.Info("executing list tickets use case",
		"page", query.Page,
		"page_size", query.PageSize)

	filter, err := uc.buildFilter(query)
	if err != nil {
		return nil, err
	}

	tickets, totalCount, err := uc.ticketRepo.List(ctx, *filter)
	if err != nil {
		uc.logger.Error("failed to list tickets", "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	items := make([]dto.TicketListItemDTO, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, dto.ToTicketListItemDTO(t))
	}

	return &ListTicketsResult{
		Tickets:    items,
		TotalCount: totalCount,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}, nil
}

func (uc *ListTicketsUseCase) buildFilter(query ListTicketsQuery) (*prognosis.TicketFilter, error) {
	if query.CustomerID != nil && *query.CustomerID < 1 {
		return nil, errors.NewValidationError("customer_id must be at least 1")
	}
	rangeParams := []struct {
		name  string
		value *int
	}{
		{"min_vehicles", query.MinVehicles},
		{"max_vehicles", query.MaxVehicles},
		{"min_alerts", query.MinAlerts},
		{"max_alerts", query.MaxAlerts},
	}
	for _, p := range rangeParams {
		if p.value != nil && *p.value < 1 {
			return nil, errors.NewValidationError(p.name + " must be at least 1")
		}
	}

	search := sanitizeSearch(query.Search)
	if strings.TrimSpace(query.Search) != "" && search == "" {
		return nil, errors.NewValidationError("search term must be at least 2 characters")
	}

	filter := prognosis.TicketFilter{
		CustomerID:  query.CustomerID,
		MinVehicles: query.MinVehicles,
		MaxVehicles: query.MaxVehicles,
		MinAlerts:   query.MinAlerts,
		MaxAlerts:   query.MaxAlerts,
		Search:      search,
	}

	if query.Page < 1 {
		filter.Page = constants.DefaultPage
	} else {
		filter.Page = query.Page
	}
	if query.PageSize < 1 {
		filter.PageSize = constants.DefaultPageSize
	} else if query.PageSize > constants.MaxPageSize {
		filter.PageSize = constants.MaxPageSize
	} else {
		filter.PageSize = query.PageSize
	}

	if query.CallStatusID != nil {
		status := vo.CallStatus(*query.CallStatusID)
		if !status.IsValid() {
			return nil, errors.NewValidationError("invalid call status")
		}
		filter.CallStatus = &status
	}

	if query.DateFrom != nil && query.DateTo != nil {
		if query.DateFrom.After(*query.DateTo) {
			return nil, errors.NewValidationError("date_from must not be after date_to")
		}
		if query.DateTo.Sub(*query.DateFrom) > maxDateRangeDays*24*time.Hour {
			return nil, errors.NewValidationError("date range must not exceed 365 days")
		}
	}

	if query.DateFrom != nil {
		from := *query.DateFrom
		filter.DateFrom = &from
	}
	if query.DateTo != nil {
		// The to-date is inclusive in the API, shift one day to make the
		// stored bound exclusive.
		to := query.DateTo.Add(24 * time.Hour)
		filter.DateTo = &to
	}

	if query.MinVehicles != nil && query.MaxVehicles != nil && *query.MinVehicles > *query.MaxVehicles {
		return nil, errors.NewValidationError("min_vehicles must not exceed max_vehicles")
	}
	if query.MinAlerts != nil && query.MaxAlerts != nil && *query.MinAlerts > *query.MaxAlerts {
		return nil, errors.NewValidationError("min_alerts must not exceed max_alerts")
	}

	return &filter, nil
}
