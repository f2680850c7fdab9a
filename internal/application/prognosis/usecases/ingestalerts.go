package usecases

import (
	"context"

	"prognosis/internal/domain/prognosis"
	"prognosis/internal/shared/constants"
	"prognosis/internal/shared/errors"
	"prognosis/internal/shared/logger"
)

type IngestAlertsCommand struct {
	Records []AlertRecord
}

// CreatedTicket summarizes one ticket opened from a batch.
type CreatedTicket struct {
	TicketID     uint
	CustomerID   int64
	VehicleCount int
	AlertCount   int
}

type IngestAlertsResult struct {
	Tickets          []CreatedTicket
	TicketIDs        []uint
	TicketsCreated   int
	RecordsReceived  int
	RecordsProcessed int
	RecordsSkipped   int
}

type IngestAlertsExecutor interface {
	Execute(ctx context.Context, cmd IngestAlertsCommand) (*IngestAlertsResult, error)
}

// TransactionManager runs a function inside a database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// IngestAlertsUseCase turns a batch of raw alerts into tickets, one per
// customer. Records that fail validation or whose vehicle resolves to
// no customer are dropped individually, the batch fails only when
// nothing survives. An unknown error code skips just that error row,
// the record still counts toward the ticket totals. Resubmitting the
// same batch creates new tickets, there is no dedupe across requests.
type IngestAlertsUseCase struct {
	ticketRepo prognosis.TicketRepository
	masterRepo prognosis.MasterDataRepository
	txManager  TransactionManager
	validator  *BatchValidator
	logger     logger.Interface
}

func NewIngestAlertsUseCase(
	ticketRepo prognosis.TicketRepository,
	masterRepo prognosis.MasterDataRepository,
	txManager TransactionManager,
	logger logger.Interface,
) *IngestAlertsUseCase {
	return &IngestAlertsUseCase{
		ticketRepo: ticketRepo,
		masterRepo: masterRepo,
		txManager:  txManager,
		validator:  NewBatchValidator(),
		logger:     logger,
	}
}

// resolvedAlert is a validated alert with its owning customer. Error
// code resolution happens later, during ticket materialization, so a
// bad code does not remove the record from the ticket counts.
type resolvedAlert struct {
	ValidatedAlert
	customerID int64
}

func (uc *IngestAlertsUseCase) Execute(ctx context.Context, cmd IngestAlertsCommand) (*IngestAlertsResult, error) {
	received := len(cmd.Records)
	uc.logger.Info("executing ingest alerts use case", "records", received)

	if received == 0 {
		return nil, errors.NewValidationError("alert batch is empty")
	}
	if received > constants.MaxIngestBatchSize {
		return nil, errors.NewValidationError("alert batch exceeds maximum size")
	}

	resolved, skipped, err := uc.resolveRecords(ctx, cmd.Records)
	if err != nil {
		return nil, err
	}

	if len(resolved) == 0 {
		uc.logger.Warn("no valid records in alert batch", "received", received, "skipped", skipped)
		return nil, errors.NewValidationError("no valid alert records in batch")
	}

	tickets, err := uc.groupIntoTickets(ctx, resolved)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		for _, ticket := range tickets {
			if err := uc.ticketRepo.Save(txCtx, ticket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("failed to save tickets", "error", err)
		return nil, errors.NewInternalError("failed to create tickets")
	}

	ticketIDs := make([]uint, len(tickets))
	created := make([]CreatedTicket, len(tickets))
	for i, ticket := range tickets {
		ticketIDs[i] = ticket.ID()
		created[i] = CreatedTicket{
			TicketID:     ticket.ID(),
			CustomerID:   ticket.CustomerID(),
			VehicleCount: ticket.VehicleCount(),
			AlertCount:   ticket.AlertCount(),
		}
	}

	uc.logger.Info("alert batch ingested",
		"tickets_created", len(tickets),
		"records_processed", len(resolved),
		"records_skipped", skipped)

	return &IngestAlertsResult{
		Tickets:          created,
		TicketIDs:        ticketIDs,
		TicketsCreated:   len(tickets),
		RecordsReceived:  received,
		RecordsProcessed: len(resolved),
		RecordsSkipped:   skipped,
	}, nil
}

// resolveRecords validates each record and resolves its vehicle to a
// customer. Drops are logged and counted, lookup results are cached
// for the duration of the batch.
func (uc *IngestAlertsUseCase) resolveRecords(ctx context.Context, records []AlertRecord) ([]resolvedAlert, int, error) {
	customerCache := make(map[string]int64)

	resolved := make([]resolvedAlert, 0, len(records))
	skipped := 0

	for i, rec := range records {
		valid, err := uc.validator.ValidateRecord(rec)
		if err != nil {
			uc.logger.Warn("dropping invalid alert record", "index", i, "error", err)
			skipped++
			continue
		}

		customerID, ok := customerCache[valid.VehicleID]
		if !ok {
			id, found, err := uc.masterRepo.CustomerIDByVehicle(ctx, valid.VehicleID)
			if err != nil {
				// A lookup failure drops the record, not the batch. The
				// cache is left alone so a later record can retry.
				uc.logger.Error("customer lookup failed, dropping record",
					"index", i, "vehicle_id", valid.VehicleID, "error", err)
				skipped++
				continue
			}
			if !found {
				uc.logger.Warn("dropping alert for unknown vehicle", "index", i, "vehicle_id", valid.VehicleID)
				customerCache[valid.VehicleID] = 0
				skipped++
				continue
			}
			customerCache[valid.VehicleID] = id
			customerID = id
		}
		if customerID == 0 {
			skipped++
			continue
		}

		resolved = append(resolved, resolvedAlert{
			ValidatedAlert: *valid,
			customerID:     customerID,
		})
	}

	return resolved, skipped, nil
}

// groupIntoTickets partitions resolved alerts by customer, then by VIN
// within each customer. First-seen order is preserved at both levels so
// ticket creation is deterministic for a given batch.
//
// Ticket counts come from the partition sizes, before error code
// resolution. A record whose code does not resolve still counts toward
// alert_count and vehicle_count, only its error row is skipped.
func (uc *IngestAlertsUseCase) groupIntoTickets(ctx context.Context, resolved []resolvedAlert) ([]*prognosis.Ticket, error) {
	customerOrder := make([]int64, 0)
	vinOrder := make(map[int64][]string)
	alertsByVin := make(map[int64]map[string][]resolvedAlert)

	for _, alert := range resolved {
		byVin, ok := alertsByVin[alert.customerID]
		if !ok {
			byVin = make(map[string][]resolvedAlert)
			alertsByVin[alert.customerID] = byVin
			customerOrder = append(customerOrder, alert.customerID)
		}
		if _, ok := byVin[alert.VehicleID]; !ok {
			vinOrder[alert.customerID] = append(vinOrder[alert.customerID], alert.VehicleID)
		}
		byVin[alert.VehicleID] = append(byVin[alert.VehicleID], alert)
	}

	errorCodeCache := make(map[string]int64)

	tickets := make([]*prognosis.Ticket, 0, len(customerOrder))
	for _, customerID := range customerOrder {
		vehicles := make([]*prognosis.VehicleRecord, 0, len(vinOrder[customerID]))
		alertCount := 0

		for _, vin := range vinOrder[customerID] {
			alerts := alertsByVin[customerID][vin]
			alertCount += len(alerts)

			// The first alert seen for a VIN supplies its location.
			first := alerts[0]
			vehicle, err := prognosis.NewVehicleRecord(vin, first.Location, first.Latitude, first.Longitude)
			if err != nil {
				return nil, errors.NewInternalError(err.Error())
			}

			for _, alert := range alerts {
				errorCodeID := uc.resolveErrorCode(ctx, errorCodeCache, alert.ErrorCode)
				if errorCodeID == 0 {
					uc.logger.Warn("skipping error row for unknown error code",
						"vehicle_id", vin, "error_code", alert.ErrorCode)
					continue
				}

				record, err := prognosis.NewErrorRecord(errorCodeID, alert.ErrorCode, alert.OccurredAt)
				if err != nil {
					return nil, errors.NewInternalError(err.Error())
				}
				if err := vehicle.AddError(record); err != nil {
					return nil, errors.NewInternalError(err.Error())
				}
			}

			vehicles = append(vehicles, vehicle)
		}

		ticket, err := prognosis.NewTicket(customerID, alertCount, vehicles)
		if err != nil {
			return nil, errors.NewInternalError(err.Error())
		}
		tickets = append(tickets, ticket)
	}

	return tickets, nil
}

// resolveErrorCode looks up the internal identifier for a code, caching
// hits and misses for the batch. A miss returns 0, not an error. A
// lookup failure is treated like a miss for this record and is not
// cached so a later record can retry.
func (uc *IngestAlertsUseCase) resolveErrorCode(ctx context.Context, cache map[string]int64, errorCode string) int64 {
	if id, ok := cache[errorCode]; ok {
		return id
	}

	id, found, err := uc.masterRepo.ErrorCodeID(ctx, errorCode)
	if err != nil {
		uc.logger.Error("error code lookup failed", "error_code", errorCode, "error", err)
		return 0
	}
	if !found {
		cache[errorCode] = 0
		return 0
	}

	cache[errorCode] = id
	return id
}
