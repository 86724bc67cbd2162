package repository

import (
	"context"

	"github.com/videodanza/backend/internal/entity"
	"github.com/videodanza/backend/pkg/xcontext"
)

type TokenRepository interface {
	Create(context.Context, *entity.Token) error
	GetByID(context.Context, int64) (*entity.Token, error)
	GetBySeed(context.Context, string) (*entity.Token, error)
	GetByOwner(context.Context, string) ([]entity.Token, error)
	Count(context.Context) (int64, error)
	UpdateMetadataURI(ctx context.Context, tokenID int64, uri string) error
	UpdateOwner(ctx context.Context, tokenID int64, owner string) error
}

type tokenRepository struct{}

func NewTokenRepository() *tokenRepository {
	return &tokenRepository{}
}

func (r *tokenRepository) Create(ctx context.Context, token *entity.Token) error {
	return xcontext.DB(ctx).Create(token).Error
}

func (r *tokenRepository) GetByID(ctx context.Context, tokenID int64) (*entity.Token, error) {
	var result entity.Token
	err := xcontext.DB(ctx).Where("token_id = ?", tokenID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *tokenRepository) GetBySeed(ctx context.Context, seed string) (*entity.Token, error) {
	var result entity.Token
	err := xcontext.DB(ctx).Where("seed = ?", seed).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *tokenRepository) GetByOwner(ctx context.Context, owner string) ([]entity.Token, error) {
	var result []entity.Token
	err := xcontext.DB(ctx).
		Where("owner = ?", owner).
		Order("token_id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *tokenRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Token{}).Count(&count).Error
	return count, err
}

func (r *tokenRepository) UpdateMetadataURI(ctx context.Context, tokenID int64, uri string) error {
	return xcontext.DB(ctx).
		Model(&entity.Token{}).
		Where("token_id = ?", tokenID).
		Update("metadata_uri", uri).Error
}

func (r *tokenRepository) UpdateOwner(ctx context.Context, tokenID int64, owner string) error {
	return xcontext.DB(ctx).
		Model(&entity.Token{}).
		Where("token_id = ?", tokenID).
		Update("owner", owner).Error
}
