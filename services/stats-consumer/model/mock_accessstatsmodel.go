package model

import (
	"context"
	"time"
)

// MockLinkAccessStatsModel is a test mock for LinkAccessStatsModel interface.
type MockLinkAccessStatsModel struct {
	IncrementStatsFunc func(ctx context.Context, data *LinkAccessStats) error
	FindOneFunc        func(ctx context.Context, fullShortUrl, gid string, date time.Time, hour int) (*LinkAccessStats, error)
}

var _ LinkAccessStatsModel = (*MockLinkAccessStatsModel)(nil)

func (m *MockLinkAccessStatsModel) IncrementStats(ctx context.Context, data *LinkAccessStats) error {
	if m.IncrementStatsFunc != nil {
		return m.IncrementStatsFunc(ctx, data)
	}
	panic("MockLinkAccessStatsModel.IncrementStatsFunc not set")
}

func (m *MockLinkAccessStatsModel) FindOne(ctx context.Context, fullShortUrl, gid string, date time.Time, hour int) (*LinkAccessStats, error) {
	if m.FindOneFunc != nil {
		return m.FindOneFunc(ctx, fullShortUrl, gid, date, hour)
	}
	panic("MockLinkAccessStatsModel.FindOneFunc not set")
}
