package model

import "context"

// MockLinksModel is a test mock for LinksModel interface.
type MockLinksModel struct {
	InsertFunc                func(ctx context.Context, data *Links) error
	FindOneByFullShortUrlFunc func(ctx context.Context, fullShortUrl string) (*Links, error)
	IncrementStatsFunc        func(ctx context.Context, gid, fullShortUrl string, pv, uv, uip int) error
	UpdateGidFunc             func(ctx context.Context, fullShortUrl, gid string) error
}

var _ LinksModel = (*MockLinksModel)(nil)

func (m *MockLinksModel) Insert(ctx context.Context, data *Links) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, data)
	}
	panic("MockLinksModel.InsertFunc not set")
}

func (m *MockLinksModel) FindOneByFullShortUrl(ctx context.Context, fullShortUrl string) (*Links, error) {
	if m.FindOneByFullShortUrlFunc != nil {
		return m.FindOneByFullShortUrlFunc(ctx, fullShortUrl)
	}
	panic("MockLinksModel.FindOneByFullShortUrlFunc not set")
}

func (m *MockLinksModel) IncrementStats(ctx context.Context, gid, fullShortUrl string, pv, uv, uip int) error {
	if m.IncrementStatsFunc != nil {
		return m.IncrementStatsFunc(ctx, gid, fullShortUrl, pv, uv, uip)
	}
	panic("MockLinksModel.IncrementStatsFunc not set")
}

func (m *MockLinksModel) UpdateGid(ctx context.Context, fullShortUrl, gid string) error {
	if m.UpdateGidFunc != nil {
		return m.UpdateGidFunc(ctx, fullShortUrl, gid)
	}
	panic("MockLinksModel.UpdateGidFunc not set")
}
