package repo

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"jobboard/internal/domain"
)

type AccountRepo struct{ db *gorm.DB }

func NewAccountRepo(db *gorm.DB) *AccountRepo { return &AccountRepo{db: db} }

func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	return wrapWrite(r.db.WithContext(ctx).Create(a).Error, "create account")
}

func (r *AccountRepo) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return first[domain.Account](r.db.WithContext(ctx), "find account", "id = ?", id)
}

func (r *AccountRepo) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return first[domain.Account](r.db.WithContext(ctx), "find account by username", "username = ?", username)
}

func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return first[domain.Account](r.db.WithContext(ctx), "find account by email", "email = ?", email)
}

func (r *AccountRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []domain.Account
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "find accounts")
	}
	return out, nil
}

func (r *AccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	var out []domain.Account
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list accounts")
	}
	return out, nil
}
