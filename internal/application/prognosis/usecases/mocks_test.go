package usecases

import (
	"context"
	"time"

	"prognosis/internal/domain/prognosis"
	"prognosis/internal/shared/logger"
)

type mockTicketRepository struct {
	SaveFunc     func(ctx context.Context, t *prognosis.Ticket) error
	GetByIDFunc  func(ctx context.Context, ticketID uint) (*prognosis.Ticket, error)
	ListFunc     func(ctx context.Context, filter prognosis.TicketFilter) ([]*prognosis.Ticket, int64, error)
	GetStatsFunc func(ctx context.Context, from, to time.Time) (*prognosis.TicketStats, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *prognosis.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*prognosis.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter prognosis.TicketFilter) ([]*prognosis.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) GetStats(ctx context.Context, from, to time.Time) (*prognosis.TicketStats, error) {
	if m.GetStatsFunc != nil {
		return m.GetStatsFunc(ctx, from, to)
	}
	return &prognosis.TicketStats{ByCallStatus: map[int]int64{}}, nil
}

type mockMasterDataRepository struct {
	CustomerIDByVehicleFunc func(ctx context.Context, vehicleID string) (int64, bool, error)
	ErrorCodeIDFunc         func(ctx context.Context, errorCode string) (int64, bool, error)
}

func (m *mockMasterDataRepository) CustomerIDByVehicle(ctx context.Context, vehicleID string) (int64, bool, error) {
	if m.CustomerIDByVehicleFunc != nil {
		return m.CustomerIDByVehicleFunc(ctx, vehicleID)
	}
	return 0, false, nil
}

func (m *mockMasterDataRepository) ErrorCodeID(ctx context.Context, errorCode string) (int64, bool, error) {
	if m.ErrorCodeIDFunc != nil {
		return m.ErrorCodeIDFunc(ctx, errorCode)
	}
	return 0, false, nil
}

type mockTransactionManager struct {
	RunInTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTransactionFunc != nil {
		return m.RunInTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockLogger struct {
	DebugFunc func(msg string, args ...any)
	InfoFunc  func(msg string, args ...any)
	WarnFunc  func(msg string, args ...any)
	ErrorFunc func(msg string, args ...any)
}

func (m *mockLogger) Debug(msg string, args ...any) {
	if m.DebugFunc != nil {
		m.DebugFunc(msg, args...)
	}
}

func (m *mockLogger) Info(msg string, args ...any) {
	if m.InfoFunc != nil {
		m.InfoFunc(msg, args...)
	}
}

func (m *mockLogger) Warn(msg string, args ...any) {
	if m.WarnFunc != nil {
		m.WarnFunc(msg, args...)
	}
}

func (m *mockLogger) Error(msg string, args ...any) {
	if m.ErrorFunc != nil {
		m.ErrorFunc(msg, args...)
	}
}

func (m *mockLogger) With(args ...any) logger.Interface {
	return m
}

func (m *mockLogger) Named(name string) logger.Interface {
	return m
}
