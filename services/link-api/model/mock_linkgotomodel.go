package model

import "context"

// MockLinkGotoModel is a test mock for LinkGotoModel interface.
type MockLinkGotoModel struct {
	InsertFunc                func(ctx context.Context, data *LinkGoto) error
	FindOneByFullShortUrlFunc func(ctx context.Context, fullShortUrl string) (*LinkGoto, error)
	UpdateGidFunc             func(ctx context.Context, fullShortUrl, gid string) error
}

var _ LinkGotoModel = (*MockLinkGotoModel)(nil)

func (m *MockLinkGotoModel) Insert(ctx context.Context, data *LinkGoto) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, data)
	}
	panic("MockLinkGotoModel.InsertFunc not set")
}

func (m *MockLinkGotoModel) FindOneByFullShortUrl(ctx context.Context, fullShortUrl string) (*LinkGoto, error) {
	if m.FindOneByFullShortUrlFunc != nil {
		return m.FindOneByFullShortUrlFunc(ctx, fullShortUrl)
	}
	panic("MockLinkGotoModel.FindOneByFullShortUrlFunc not set")
}

func (m *MockLinkGotoModel) UpdateGid(ctx context.Context, fullShortUrl, gid string) error {
	if m.UpdateGidFunc != nil {
		return m.UpdateGidFunc(ctx, fullShortUrl, gid)
	}
	panic("MockLinkGotoModel.UpdateGidFunc not set")
}
