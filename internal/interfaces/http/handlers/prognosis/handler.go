package prognosis

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"prognosis/internal/application/prognosis/usecases"
	"prognosis/internal/shared/errors"
	"prognosis/internal/shared/logger"
	"prognosis/internal/shared/utils"
)

type TicketHandler struct {
	ingestAlertsUC        usecases.IngestAlertsExecutor
	listTicketsUC         usecases.ListTicketsExecutor
	getTicketDetailUC     usecases.GetTicketDetailExecutor
	listCustomerTicketsUC usecases.ListCustomerTicketsExecutor
	getTicketStatsUC      usecases.GetTicketStatsExecutor
	logger                logger.Interface
}

func NewTicketHandler(
	ingestAlertsUC usecases.IngestAlertsExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	getTicketDetailUC usecases.GetTicketDetailExecutor,
	listCustomerTicketsUC usecases.ListCustomerTicketsExecutor,
	getTicketStatsUC usecases.GetTicketStatsExecutor,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		ingestAlertsUC:        ingestAlertsUC,
		listTicketsUC:         listTicketsUC,
		getTicketDetailUC:     getTicketDetailUC,
		listCustomerTicketsUC: listCustomerTicketsUC,
		getTicketStatsUC:      getTicketStatsUC,
		logger:                logger,
	}
}

// IngestAlerts handles POST /tickets
func (h *TicketHandler) IngestAlerts(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request body for alert ingest", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body"))
		return
	}

	result, err := h.ingestAlertsUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toCreatedTicketDTOs(result), "Tickets created successfully")
}

// ListTickets handles GET /tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	query, err := parseListTicketsQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.TotalCount, result.Page, result.PageSize)
}

// GetTicketDetail handles GET /tickets/:id
func (h *TicketHandler) GetTicketDetail(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketDetailUC.Execute(c.Request.Context(), usecases.GetTicketDetailQuery{
		TicketID: ticketID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result.Ticket)
}

// ListCustomerTickets handles GET /customers/:id/tickets
func (h *TicketHandler) ListCustomerTickets(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || customerID <= 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid customer ID"))
		return
	}

	page, pageSize := parsePageParams(c)

	result, err := h.listCustomerTicketsUC.Execute(c.Request.Context(), usecases.ListCustomerTicketsQuery{
		CustomerID: customerID,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.TotalCount, result.Page, result.PageSize)
}

// GetTicketStats handles GET /tickets/stats
func (h *TicketHandler) GetTicketStats(c *gin.Context) {
	days := 0
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid days"))
			return
		}
		days = n
	}

	result, err := h.getTicketStatsUC.Execute(c.Request.Context(), usecases.GetTicketStatsQuery{
		Days: days,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toStatsResponse(result))
}

func parseTicketID(c *gin.Context) (uint, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("Invalid ticket ID")
	}
	return uint(id), nil
}
