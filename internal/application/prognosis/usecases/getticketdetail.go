package usecases

import (
	"context"

	"prognosis/internal/application/prognosis/dto"
	"prognosis/internal/domain/prognosis"
	"prognosis/internal/shared/errors"
	"prognosis/internal/shared/logger"
)

type GetTicketDetailQuery struct {
	TicketID uint
}

type GetTicketDetailResult struct {
	Ticket dto.TicketDetailDTO
}

type GetTicketDetailExecutor interface {
	Execute(ctx context.Context, query GetTicketDetailQuery) (*GetTicketDetailResult, error)
}

type GetTicketDetailUseCase struct {
	ticketRepo prognosis.TicketRepository
	logger     logger.Interface
}

func NewGetTicketDetailUseCase(
	ticketRepo prognosis.TicketRepository,
	logger logger.Interface,
) *GetTicketDetailUseCase {
	return &GetTicketDetailUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetTicketDetailUseCase) Execute(ctx context.Context, query GetTicketDetailQuery) (*GetTicketDetailResult, error) {
	uc.logger.Info("executing get ticket detail use case", "ticket_id", query.TicketID)

	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	ticket, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		uc.logger.Error("failed to load ticket", "ticket_id", query.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to load ticket")
	}

	return &GetTicketDetailResult{
		Ticket: dto.ToTicketDetailDTO(ticket),
	}, nil
}
