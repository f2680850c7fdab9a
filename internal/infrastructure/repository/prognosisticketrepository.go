package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"prognosis/internal/domain/prognosis"
	"prognosis/internal/infrastructure/persistence/mappers"
	"prognosis/internal/infrastructure/persistence/models"
	db "prognosis/internal/shared/db"
	apperrors "prognosis/internal/shared/errors"
)

type PrognosisTicketRepository struct {
	db     *gorm.DB
	mapper mappers.PrognosisMapper
}

func NewPrognosisTicketRepository(database *gorm.DB) *PrognosisTicketRepository {
	return &PrognosisTicketRepository{
		db:     database,
		mapper: mappers.NewPrognosisMapper(),
	}
}

// Save stores the ticket with its vehicle and error rows. Child rows are
// created in insertion order so the caller's grouping is preserved.
func (r *PrognosisTicketRepository) Save(ctx context.Context, t *prognosis.Ticket) error {
	tx := db.GetTxFromContext(ctx, r.db)

	ticketModel := r.mapper.TicketToModel(t)
	if err := tx.Create(ticketModel).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}
	if err := t.SetID(ticketModel.ID); err != nil {
		return err
	}

	for _, vehicle := range t.Vehicles() {
		vehicle.SetTicketID(ticketModel.ID)
		vinModel := r.mapper.VehicleToModel(ticketModel.ID, vehicle)
		if err := tx.Create(vinModel).Error; err != nil {
			return fmt.Errorf("failed to save vin detail: %w", err)
		}
		if err := vehicle.SetID(vinModel.ID); err != nil {
			return err
		}

		for _, record := range vehicle.Errors() {
			record.SetTicketID(ticketModel.ID)
			record.SetVinDetailID(vinModel.ID)
			errModel := r.mapper.ErrorToModel(ticketModel.ID, vinModel.ID, record)
			if err := tx.Create(errModel).Error; err != nil {
				return fmt.Errorf("failed to save error code: %w", err)
			}
			if err := record.SetID(errModel.ID); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *PrognosisTicketRepository) GetByID(ctx context.Context, ticketID uint) (*prognosis.Ticket, error) {
	var model models.PrognosisTicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, ticketID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	t, err := r.mapper.TicketToDomain(&model)
	if err != nil {
		return nil, err
	}

	if err := r.attachChildren(ctx, []*prognosis.Ticket{t}); err != nil {
		return nil, err
	}

	return t, nil
}

func (r *PrognosisTicketRepository) List(
	ctx context.Context,
	filter prognosis.TicketFilter,
) ([]*prognosis.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.PrognosisTicketModel{})

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.CallStatus != nil {
		query = query.Where("call_status_id = ?", filter.CallStatus.Int())
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", filter.DateFrom.UnixMilli())
	}
	if filter.DateTo != nil {
		query = query.Where("created_at < ?", filter.DateTo.UnixMilli())
	}
	if filter.MinVehicles != nil {
		query = query.Where("vehicle_count >= ?", *filter.MinVehicles)
	}
	if filter.MaxVehicles != nil {
		query = query.Where("vehicle_count <= ?", *filter.MaxVehicles)
	}
	if filter.MinAlerts != nil {
		query = query.Where("alert_count >= ?", *filter.MinAlerts)
	}
	if filter.MaxAlerts != nil {
		query = query.Where("alert_count <= ?", *filter.MaxAlerts)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("remarks LIKE ? OR customer_complaint LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	query = query.Order("created_at DESC")

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var ticketModels []models.PrognosisTicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*prognosis.Ticket, len(ticketModels))
	for i, model := range ticketModels {
		t, err := r.mapper.TicketToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		tickets[i] = t
	}

	if err := r.attachChildren(ctx, tickets); err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

// GetStats aggregates ticket volumes created in [from, to).
func (r *PrognosisTicketRepository) GetStats(ctx context.Context, from, to time.Time) (*prognosis.TicketStats, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	base := func() *gorm.DB {
		return tx.Model(&models.PrognosisTicketModel{}).
			Where("created_at >= ? AND created_at < ?", from.UnixMilli(), to.UnixMilli())
	}

	stats := &prognosis.TicketStats{
		ByCallStatus: make(map[int]int64),
	}

	if err := base().Count(&stats.TotalTickets).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}

	var vehicles int64
	if err := base().
		Select("COALESCE(SUM(vehicle_count), 0)").
		Scan(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("failed to sum vehicle counts: %w", err)
	}
	stats.TotalVehicles = vehicles

	// Error totals count the rows actually persisted, which can lag the
	// tickets' alert_count snapshots when codes failed to resolve.
	if err := tx.Model(&models.TicketErrorCodeModel{}).
		Where("ticket_id IN (?)", base().Select("id")).
		Count(&stats.TotalErrors).Error; err != nil {
		return nil, fmt.Errorf("failed to count error rows: %w", err)
	}

	type statusRow struct {
		CallStatusID int
		Count        int64
	}
	var rows []statusRow
	if err := base().
		Select("call_status_id, COUNT(*) AS count").
		Group("call_status_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to group tickets by call status: %w", err)
	}
	for _, row := range rows {
		stats.ByCallStatus[row.CallStatusID] = row.Count
	}

	return stats, nil
}

// attachChildren loads vin details and error codes for the given tickets
// using one IN query per table.
func (r *PrognosisTicketRepository) attachChildren(ctx context.Context, tickets []*prognosis.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	tx := db.GetTxFromContext(ctx, r.db)

	ticketIDs := make([]uint, len(tickets))
	for i, t := range tickets {
		ticketIDs[i] = t.ID()
	}

	var vinModels []models.VinDetailModel
	if err := tx.
		Where("ticket_id IN ?", ticketIDs).
		Order("id ASC").
		Find(&vinModels).Error; err != nil {
		return fmt.Errorf("failed to load vin details: %w", err)
	}

	vinIDs := make([]uint, len(vinModels))
	for i, vm := range vinModels {
		vinIDs[i] = vm.ID
	}

	errorsByVin := make(map[uint][]*prognosis.ErrorRecord)
	if len(vinIDs) > 0 {
		var errModels []models.TicketErrorCodeModel
		if err := tx.
			Where("vin_detail_id IN ?", vinIDs).
			Order("id ASC").
			Find(&errModels).Error; err != nil {
			return fmt.Errorf("failed to load error codes: %w", err)
		}
		for _, em := range errModels {
			record, err := r.mapper.ErrorToDomain(&em)
			if err != nil {
				return err
			}
			errorsByVin[em.VinDetailID] = append(errorsByVin[em.VinDetailID], record)
		}
	}

	vehiclesByTicket := make(map[uint][]*prognosis.VehicleRecord)
	for _, vm := range vinModels {
		vehicle, err := r.mapper.VehicleToDomain(&vm)
		if err != nil {
			return err
		}
		vehicle.AttachErrors(errorsByVin[vm.ID])
		vehiclesByTicket[vm.TicketID] = append(vehiclesByTicket[vm.TicketID], vehicle)
	}

	for _, t := range tickets {
		t.AttachVehicles(vehiclesByTicket[t.ID()])
	}

	return nil
}
