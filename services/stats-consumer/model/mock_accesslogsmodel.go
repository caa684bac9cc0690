package model

import "context"

// MockLinkAccessLogsModel is a test mock for LinkAccessLogsModel interface.
type MockLinkAccessLogsModel struct {
	InsertFunc              func(ctx context.Context, data *LinkAccessLogs) error
	CountByFullShortUrlFunc func(ctx context.Context, fullShortUrl string) (int64, error)
}

var _ LinkAccessLogsModel = (*MockLinkAccessLogsModel)(nil)

func (m *MockLinkAccessLogsModel) Insert(ctx context.Context, data *LinkAccessLogs) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, data)
	}
	panic("MockLinkAccessLogsModel.InsertFunc not set")
}

func (m *MockLinkAccessLogsModel) CountByFullShortUrl(ctx context.Context, fullShortUrl string) (int64, error) {
	if m.CountByFullShortUrlFunc != nil {
		return m.CountByFullShortUrlFunc(ctx, fullShortUrl)
	}
	panic("MockLinkAccessLogsModel.CountByFullShortUrlFunc not set")
}
