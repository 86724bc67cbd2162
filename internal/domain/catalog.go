package domain

import (
	"context"

	"github.com/videodanza/backend/internal/client"
	"github.com/videodanza/backend/internal/entity"
	"github.com/videodanza/backend/internal/generative"
	"github.com/videodanza/backend/internal/model"
	"github.com/videodanza/backend/internal/repository"
	"github.com/videodanza/backend/pkg/errorx"
	"github.com/videodanza/backend/pkg/xcontext"
)

type CatalogDomain interface {
	GetVideos(context.Context, *model.GetVideosRequest) (*model.GetVideosResponse, error)
	GetVideo(context.Context, *model.GetVideoRequest) (*model.GetVideoResponse, error)

	// LoadCatalog returns the catalog in canonical order for the builder.
	// An empty catalog is a valid result; an unreachable publisher with no
	// local mirror is an Unavailable error.
	LoadCatalog(context.Context) (generative.Catalog, error)
}

type catalogDomain struct {
	catalogCaller client.CatalogCaller
	videoRepo     repository.VideoRepository
}

func NewCatalogDomain(
	catalogCaller client.CatalogCaller,
	videoRepo repository.VideoRepository,
) *catalogDomain {
	return &catalogDomain{
		catalogCaller: catalogCaller,
		videoRepo:     videoRepo,
	}
}

func (d *catalogDomain) GetVideos(
	ctx context.Context, req *model.GetVideosRequest,
) (*model.GetVideosResponse, error) {
	videos, err := d.loadVideos(ctx)
	if err != nil {
		return nil, err
	}

	return &model.GetVideosResponse{Videos: videos}, nil
}

func (d *catalogDomain) GetVideo(
	ctx context.Context, req *model.GetVideoRequest,
) (*model.GetVideoResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Video name required")
	}

	video, err := d.catalogCaller.GetVideo(ctx, req.Name)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get video from the publisher: %v", err)

		cached, repoErr := d.videoRepo.GetByName(ctx, req.Name)
		if repoErr != nil {
			return nil, errorx.New(errorx.NotFound, "Video not found")
		}

		return &model.GetVideoResponse{Video: toVideoInfo(cached)}, nil
	}

	return &model.GetVideoResponse{Video: *video}, nil
}

func (d *catalogDomain) LoadCatalog(ctx context.Context) (generative.Catalog, error) {
	videos, err := d.loadVideos(ctx)
	if err != nil {
		return nil, err
	}

	catalog := make(generative.Catalog, 0, len(videos))
	for _, v := range videos {
		catalog = append(catalog, generative.CatalogEntry{
			Name:       v.Name,
			CID:        v.CID,
			IpfsURI:    v.IpfsURI,
			GatewayURL: v.GatewayURL,
			FileSize:   v.FileSize,
			UploadedAt: v.UploadedAt,
		})
	}

	return catalog, nil
}

// loadVideos prefers the live publisher and mirrors its answer locally, so
// later outages degrade to the last known catalog instead of failing.
func (d *catalogDomain) loadVideos(ctx context.Context) ([]model.VideoInfo, error) {
	videos, err := d.catalogCaller.ListVideos(ctx)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot list videos from the publisher: %v", err)

		cached, repoErr := d.videoRepo.GetAll(ctx)
		if repoErr != nil || len(cached) == 0 {
			return nil, errorx.New(errorx.Unavailable, "Video catalog is unavailable")
		}

		result := make([]model.VideoInfo, 0, len(cached))
		for i := range cached {
			result = append(result, toVideoInfo(&cached[i]))
		}

		return result, nil
	}

	d.mirror(ctx, videos)
	return videos, nil
}

func (d *catalogDomain) mirror(ctx context.Context, videos []model.VideoInfo) {
	entities := make([]*entity.Video, 0, len(videos))
	for _, v := range videos {
		entities = append(entities, &entity.Video{
			Name:       v.Name,
			CID:        v.CID,
			IpfsURI:    v.IpfsURI,
			GatewayURL: v.GatewayURL,
			FileSize:   v.FileSize,
			UploadedAt: v.UploadedAt,
		})
	}

	if err := d.videoRepo.Upsert(ctx, entities); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot mirror the catalog: %v", err)
	}
}

func toVideoInfo(v *entity.Video) model.VideoInfo {
	return model.VideoInfo{
		Name:       v.Name,
		CID:        v.CID,
		IpfsURI:    v.IpfsURI,
		GatewayURL: v.GatewayURL,
		FileSize:   v.FileSize,
		UploadedAt: v.UploadedAt,
	}
}
