package repository

import (
	"context"

	"github.com/videodanza/backend/internal/entity"
	"github.com/videodanza/backend/pkg/xcontext"
)

type PaymentRepository interface {
	Create(context.Context, *entity.PaymentRecord) error
	GetByToken(context.Context, int64) ([]entity.PaymentRecord, error)
}

type paymentRepository struct{}

func NewPaymentRepository() *paymentRepository {
	return &paymentRepository{}
}

func (r *paymentRepository) Create(ctx context.Context, record *entity.PaymentRecord) error {
	return xcontext.DB(ctx).Create(record).Error
}

func (r *paymentRepository) GetByToken(ctx context.Context, tokenID int64) ([]entity.PaymentRecord, error) {
	var result []entity.PaymentRecord
	err := xcontext.DB(ctx).
		Where("token_id = ?", tokenID).
		Order("id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
