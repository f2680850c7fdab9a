package usecases

import (
	"context"

	"prognosis/internal/application/prognosis/dto"
	"prognosis/internal/domain/prognosis"
	"prognosis/internal/shared/constants"
	"prognosis/internal/shared/errors"
	"prognosis/internal/shared/logger"
)

type ListCustomerTicketsQuery struct {
	CustomerID int64
	Page       int
	PageSize   int
}

type ListCustomerTicketsResult struct {
	CustomerID int64
	Tickets    []dto.TicketListItemDTO
	TotalCount int64
	Page       int
	PageSize   int
}

type ListCustomerTicketsExecutor interface {
	Execute(ctx context.Context, query ListCustomerTicketsQuery) (*ListCustomerTicketsResult, error)
}

type ListCustomerTicketsUseCase struct {
	ticketRepo prognosis.TicketRepository
	logger     logger.Interface
}

func NewListCustomerTicketsUseCase(
	ticketRepo prognosis.TicketRepository,
	logger logger.Interface,
) *ListCustomerTicketsUseCase {
	return &ListCustomerTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ListCustomerTicketsUseCase) Execute(ctx context.Context, query ListCustomerTicketsQuery) (*ListCustomerTicketsResult, error) {
	uc.logger.Info("executing list customer tickets use case", "customer_id", query.CustomerID)

	if query.CustomerID <= 0 {
		return nil, errors.NewValidationError("customer ID is required")
	}

	if query.Page < 1 {
		query.Page = constants.DefaultPage
	}
	if query.PageSize < 1 {
		query.PageSize = constants.DefaultPageSize
	}
	if query.PageSize > constants.MaxPageSize {
		query.PageSize = constants.MaxPageSize
	}

	filter := prognosis.TicketFilter{
		CustomerID: &query.CustomerID,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}

	tickets, totalCount, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("failed to list customer tickets", "customer_id", query.CustomerID, "error", err)
		return nil, errors.NewInternalError("failed to list customer tickets")
	}

	items := make([]dto.TicketListItemDTO, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, dto.ToTicketListItemDTO(t))
	}

	return &ListCustomerTicketsResult{
		CustomerID: query.CustomerID,
		Tickets:    items,
		TotalCount: totalCount,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}, nil
}
