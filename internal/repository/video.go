package repository

import (
	"context"

	"github.com/videodanza/backend/internal/entity"
	"github.com/videodanza/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type VideoRepository interface {
	Upsert(context.Context, []*entity.Video) error
	GetAll(context.Context) ([]entity.Video, error)
	GetByName(context.Context, string) (*entity.Video, error)
}

type videoRepository struct{}

func NewVideoRepository() *videoRepository {
	return &videoRepository{}
}

func (r *videoRepository) Upsert(ctx context.Context, videos []*entity.Video) error {
	if len(videos) == 0 {
		return nil
	}

	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			UpdateAll: true,
		}).
		Create(videos).Error
}

// GetAll returns videos by name, matching the canonical catalog order of
// the pinning service lookup table.
func (r *videoRepository) GetAll(ctx context.Context) ([]entity.Video, error) {
	var result []entity.Video
	err := xcontext.DB(ctx).Order("name ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *videoRepository) GetByName(ctx context.Context, name string) (*entity.Video, error) {
	var result entity.Video
	err := xcontext.DB(ctx).Where("name = ?", name).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
