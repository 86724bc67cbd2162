package domain

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/videodanza/backend/internal/model"
	"github.com/videodanza/backend/internal/repository"
	"github.com/videodanza/backend/pkg/errorx"
	"github.com/videodanza/backend/pkg/testutil"
)

func Test_catalogDomain_GetVideos_MirrorsAndFallsBack(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	online := true
	catalog := NewCatalogDomain(&testutil.MockCatalogCaller{
		ListVideosFunc: func(context.Context) ([]model.VideoInfo, error) {
			if !online {
				return nil, fmt.Errorf("connection refused")
			}
			return mockVideos(4), nil
		},
	}, repository.NewVideoRepository())

	// A live answer replaces the fixture mirror.
	resp, err := catalog.GetVideos(ctx, &model.GetVideosRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Videos, 4)

	// When the publisher goes down, the mirror keeps serving the last
	// known catalog. The fixture seeded 8 videos and the live answer
	// upserted 4 of them, so the union is still 8.
	online = false
	resp, err = catalog.GetVideos(ctx, &model.GetVideosRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Videos, 8)

	// Canonical order is by name ascending.
	for i := 1; i < len(resp.Videos); i++ {
		require.Less(t, resp.Videos[i-1].Name, resp.Videos[i].Name)
	}
}

func Test_catalogDomain_GetVideos_Unavailable(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.MigrateDb(ctx)

	catalog := NewCatalogDomain(&testutil.MockCatalogCaller{
		ListVideosFunc: func(context.Context) ([]model.VideoInfo, error) {
			return nil, fmt.Errorf("connection refused")
		},
	}, repository.NewVideoRepository())

	_, err := catalog.GetVideos(ctx, &model.GetVideosRequest{})
	require.Equal(t, errorx.New(errorx.Unavailable, "Video catalog is unavailable"), err)
}

func Test_catalogDomain_GetVideo(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	catalog := NewCatalogDomain(&testutil.MockCatalogCaller{
		GetVideoFunc: func(ctx context.Context, name string) (*model.VideoInfo, error) {
			if name == "danza_00.mp4" {
				v := mockVideos(1)[0]
				return &v, nil
			}
			return nil, fmt.Errorf("not found")
		},
	}, repository.NewVideoRepository())

	resp, err := catalog.GetVideo(ctx, &model.GetVideoRequest{Name: "danza_00.mp4"})
	require.NoError(t, err)
	require.Equal(t, "danza_00.mp4", resp.Video.Name)

	// Unknown to the publisher but present in the mirror.
	resp, err = catalog.GetVideo(ctx, &model.GetVideoRequest{Name: "danza_05.mp4"})
	require.NoError(t, err)
	require.Equal(t, "danza_05.mp4", resp.Video.Name)

	// Unknown everywhere.
	_, err = catalog.GetVideo(ctx, &model.GetVideoRequest{Name: "missing.mp4"})
	require.Equal(t, errorx.New(errorx.NotFound, "Video not found"), err)

	// Missing name.
	_, err = catalog.GetVideo(ctx, &model.GetVideoRequest{})
	require.Equal(t, errorx.New(errorx.BadRequest, "Video name required"), err)
}
