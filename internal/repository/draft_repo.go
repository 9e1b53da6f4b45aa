package repository

import (
	"context"
	"errors"

	"vendorhub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DraftRepository interface {
	Upsert(ctx context.Context, draft *model.RegistrationDraft) error
	FindByToken(ctx context.Context, token string) (*model.RegistrationDraft, error)
	DeleteByToken(ctx context.Context, token string) error
}

type draftRepository struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{db: db}
}

// Upsert writes a draft keyed by its token. Single writer per token is
// assumed, so last write wins.
func (r *draftRepository) Upsert(ctx context.Context, draft *model.RegistrationDraft) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "current_step", "updated_at"}),
	}).Create(draft).Error
}

func (r *draftRepository) FindByToken(ctx context.Context, token string) (*model.RegistrationDraft, error) {
	var draft model.RegistrationDraft
	err := GetDB(ctx, r.db).First(&draft, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *draftRepository) DeleteByToken(ctx context.Context, token string) error {
	return GetDB(ctx, r.db).Where("token = ?", token).Delete(&model.RegistrationDraft{}).Error
}
