package testutil

import (
	"context"

	"github.com/videodanza/backend/internal/model"
	"github.com/videodanza/backend/pkg/errorx"
)

type MockCatalogCaller struct {
	ListVideosFunc func(context.Context) ([]model.VideoInfo, error)
	GetVideoFunc   func(context.Context, string) (*model.VideoInfo, error)
	PinJSONFunc    func(context.Context, string, any) (string, error)
}

func (m *MockCatalogCaller) ListVideos(ctx context.Context) ([]model.VideoInfo, error) {
	if m.ListVideosFunc != nil {
		return m.ListVideosFunc(ctx)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockCatalogCaller) GetVideo(ctx context.Context, name string) (*model.VideoInfo, error) {
	if m.GetVideoFunc != nil {
		return m.GetVideoFunc(ctx, name)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockCatalogCaller) PinJSON(ctx context.Context, name string, doc any) (string, error) {
	if m.PinJSONFunc != nil {
		return m.PinJSONFunc(ctx, name, doc)
	}

	return "", errorx.New(errorx.NotImplemented, "Not implemented")
}
