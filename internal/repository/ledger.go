package repository

import (
	"context"

	"github.com/videodanza/backend/internal/entity"
	"github.com/videodanza/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type LedgerRepository interface {
	// Init creates the singleton accounting row if it does not exist yet;
	// an existing row is left untouched.
	Init(context.Context, *entity.LedgerAccount) error
	Get(context.Context) (*entity.LedgerAccount, error)
	Save(context.Context, *entity.LedgerAccount) error
}

type ledgerRepository struct{}

func NewLedgerRepository() *ledgerRepository {
	return &ledgerRepository{}
}

func (r *ledgerRepository) Init(ctx context.Context, account *entity.LedgerAccount) error {
	account.ID = entity.LedgerAccountID
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(account).Error
}

func (r *ledgerRepository) Get(ctx context.Context) (*entity.LedgerAccount, error) {
	var result entity.LedgerAccount
	err := xcontext.DB(ctx).Where("id = ?", entity.LedgerAccountID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *ledgerRepository) Save(ctx context.Context, account *entity.LedgerAccount) error {
	return xcontext.DB(ctx).Save(account).Error
}
