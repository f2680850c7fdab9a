package mappers

import (
	"time"

	"prognosis/internal/domain/prognosis"
	vo "prognosis/internal/domain/prognosis/valueobjects"
	"prognosis/internal/infrastructure/persistence/models"
)

// PrognosisMapper handles the conversion between the ticket aggregate
// and its persistence models.
type PrognosisMapper interface {
	TicketToModel(t *prognosis.Ticket) *models.PrognosisTicketModel
	TicketToDomain(model *models.PrognosisTicketModel) (*prognosis.Ticket, error)
	VehicleToModel(ticketID uint, v *prognosis.VehicleRecord) *models.VinDetailModel
	VehicleToDomain(model *models.VinDetailModel) (*prognosis.VehicleRecord, error)
	ErrorToModel(ticketID, vinDetailID uint, e *prognosis.ErrorRecord) *models.TicketErrorCodeModel
	ErrorToDomain(model *models.TicketErrorCodeModel) (*prognosis.ErrorRecord, error)
}

type PrognosisMapperImpl struct{}

func NewPrognosisMapper() PrognosisMapper {
	return &PrognosisMapperImpl{}
}

func (m *PrognosisMapperImpl) TicketToModel(t *prognosis.Ticket) *models.PrognosisTicketModel {
	return &models.PrognosisTicketModel{
		ID:                t.ID(),
		CustomerID:        t.CustomerID(),
		AlertCount:        t.AlertCount(),
		VehicleCount:      t.VehicleCount(),
		CallStatusID:      t.CallStatus().Int(),
		Remarks:           t.Remarks(),
		CustomerComplaint: t.CustomerComplaint(),
		CreatedAt:         t.CreatedAt().UnixMilli(),
		UpdatedAt:         t.UpdatedAt().UnixMilli(),
	}
}

// TicketToDomain converts a ticket row to a domain entity. Vehicles and
// errors must be loaded separately by the repository.
func (m *PrognosisMapperImpl) TicketToDomain(model *models.PrognosisTicketModel) (*prognosis.Ticket, error) {
	return prognosis.ReconstructTicket(
		model.ID,
		model.CustomerID,
		model.AlertCount,
		model.VehicleCount,
		vo.CallStatus(model.CallStatusID),
		model.Remarks,
		model.CustomerComplaint,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func (m *PrognosisMapperImpl) VehicleToModel(ticketID uint, v *prognosis.VehicleRecord) *models.VinDetailModel {
	return &models.VinDetailModel{
		ID:        v.ID(),
		TicketID:  ticketID,
		VinNo:     v.VinNo(),
		Location:  v.Location(),
		Latitude:  v.Latitude(),
		Longitude: v.Longitude(),
		CreatedAt: v.CreatedAt().UnixMilli(),
		UpdatedAt: v.UpdatedAt().UnixMilli(),
	}
}

func (m *PrognosisMapperImpl) VehicleToDomain(model *models.VinDetailModel) (*prognosis.VehicleRecord, error) {
	return prognosis.ReconstructVehicleRecord(
		model.ID,
		model.TicketID,
		model.VinNo,
		model.Location,
		model.Latitude,
		model.Longitude,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func (m *PrognosisMapperImpl) ErrorToModel(ticketID, vinDetailID uint, e *prognosis.ErrorRecord) *models.TicketErrorCodeModel {
	model := &models.TicketErrorCodeModel{
		ID:          e.ID(),
		TicketID:    ticketID,
		VinDetailID: vinDetailID,
		ErrorCodeID: e.ErrorCodeID(),
		ErrorType:   e.ErrorType(),
		ErrorDesc:   e.ErrorDesc(),
		ErrorStatus: e.ErrorStatus(),
		OccurredAt:  e.OccurredAt().UnixMilli(),
		CreatedAt:   e.CreatedAt().UnixMilli(),
		UpdatedAt:   e.UpdatedAt().UnixMilli(),
	}

	if e.ResolvedTime() != nil {
		resolved := e.ResolvedTime().UnixMilli()
		model.ResolvedTime = &resolved
	}

	return model
}

func (m *PrognosisMapperImpl) ErrorToDomain(model *models.TicketErrorCodeModel) (*prognosis.ErrorRecord, error) {
	var resolvedTime *time.Time
	if model.ResolvedTime != nil {
		t := millisToTime(*model.ResolvedTime)
		resolvedTime = &t
	}

	return prognosis.ReconstructErrorRecord(
		model.ID,
		model.TicketID,
		model.VinDetailID,
		model.ErrorCodeID,
		model.ErrorType,
		model.ErrorDesc,
		model.ErrorStatus,
		millisToTime(model.OccurredAt),
		resolvedTime,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func millisToTime(millis int64) time.Time {
	return time.Unix(0, millis*int64(time.Millisecond))
}
