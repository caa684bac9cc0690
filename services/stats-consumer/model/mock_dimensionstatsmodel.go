package model

import (
	"context"
	"time"
)

// MockLinkDimensionStatsModel is a test mock for LinkDimensionStatsModel interface.
type MockLinkDimensionStatsModel struct {
	IncrementStatsFunc func(ctx context.Context, data *LinkDimensionStats) error
	SumCntFunc         func(ctx context.Context, fullShortUrl string, date time.Time) (int64, error)
}

var _ LinkDimensionStatsModel = (*MockLinkDimensionStatsModel)(nil)

func (m *MockLinkDimensionStatsModel) IncrementStats(ctx context.Context, data *LinkDimensionStats) error {
	if m.IncrementStatsFunc != nil {
		return m.IncrementStatsFunc(ctx, data)
	}
	panic("MockLinkDimensionStatsModel.IncrementStatsFunc not set")
}

func (m *MockLinkDimensionStatsModel) SumCnt(ctx context.Context, fullShortUrl string, date time.Time) (int64, error) {
	if m.SumCntFunc != nil {
		return m.SumCntFunc(ctx, fullShortUrl, date)
	}
	panic("MockLinkDimensionStatsModel.SumCntFunc not set")
}
