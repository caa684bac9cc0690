package model

import "context"

// MockLinkLocaleStatsModel is a test mock for LinkLocaleStatsModel interface.
type MockLinkLocaleStatsModel struct {
	IncrementStatsFunc func(ctx context.Context, data *LinkLocaleStats) error
}

var _ LinkLocaleStatsModel = (*MockLinkLocaleStatsModel)(nil)

func (m *MockLinkLocaleStatsModel) IncrementStats(ctx context.Context, data *LinkLocaleStats) error {
	if m.IncrementStatsFunc != nil {
		return m.IncrementStatsFunc(ctx, data)
	}
	panic("MockLinkLocaleStatsModel.IncrementStatsFunc not set")
}
