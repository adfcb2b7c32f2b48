package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davide/gamereview/internal/analysis"
)

// MockReportRepository is a mock implementation of repository.ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) SaveReport(ctx context.Context, gameID int64, report *analysis.GameReport) error {
	args := m.Called(ctx, gameID, report)
	return args.Error(0)
}

func (m *MockReportRepository) GetReport(ctx context.Context, gameID int64) (*analysis.GameReport, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analysis.GameReport), args.Error(1)
}

func (m *MockReportRepository) DeleteReport(ctx context.Context, gameID int64) error {
	args := m.Called(ctx, gameID)
	return args.Error(0)
}
