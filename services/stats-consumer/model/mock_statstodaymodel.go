package model

import "context"

// MockLinkStatsTodayModel is a test mock for LinkStatsTodayModel interface.
type MockLinkStatsTodayModel struct {
	IncrementStatsFunc func(ctx context.Context, data *LinkStatsToday) error
}

var _ LinkStatsTodayModel = (*MockLinkStatsTodayModel)(nil)

func (m *MockLinkStatsTodayModel) IncrementStats(ctx context.Context, data *LinkStatsToday) error {
	if m.IncrementStatsFunc != nil {
		return m.IncrementStatsFunc(ctx, data)
	}
	panic("MockLinkStatsTodayModel.IncrementStatsFunc not set")
}
