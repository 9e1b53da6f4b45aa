package repository

import (
	"context"
	"errors"

	"vendorhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApprovalRepository interface {
	Create(ctx context.Context, decision *model.VendorApproval) error
	Update(ctx context.Context, decision *model.VendorApproval) error
	FindByVendorAndLevel(ctx context.Context, vendorID uuid.UUID, level string) (*model.VendorApproval, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.VendorApproval, error)
	ListPendingForApprover(ctx context.Context, approverID uuid.UUID, level string, page, limit int) ([]model.VendorApproval, int64, error)
	CountForApprover(ctx context.Context, approverID uuid.UUID, status string) (int64, error)
}

type approvalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) Create(ctx context.Context, decision *model.VendorApproval) error {
	return GetDB(ctx, r.db).Create(decision).Error
}

func (r *approvalRepository) Update(ctx context.Context, decision *model.VendorApproval) error {
	return GetDB(ctx, r.db).Save(decision).Error
}

// FindByVendorAndLevel returns the decision recorded at a level for a vendor,
// or (nil, nil) when the level has not been decided yet.
func (r *approvalRepository) FindByVendorAndLevel(ctx context.Context, vendorID uuid.UUID, level string) (*model.VendorApproval, error) {
	var decision model.VendorApproval
	err := GetDB(ctx, r.db).
		Where("vendor_id = ? AND level = ?", vendorID, level).
		First(&decision).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &decision, nil
}

func (r *approvalRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.VendorApproval, error) {
	var decisions []model.VendorApproval
	err := GetDB(ctx, r.db).
		Preload("Approver").
		Where("vendor_id = ?", vendorID).
		Order("created_at ASC").
		Find(&decisions).Error
	if err != nil {
		return nil, err
	}
	return decisions, nil
}

func (r *approvalRepository) ListPendingForApprover(ctx context.Context, approverID uuid.UUID, level string, page, limit int) ([]model.VendorApproval, int64, error) {
	var decisions []model.VendorApproval
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.VendorApproval{}).
		Where("approver_id = ? AND status = ?", approverID, model.ApprovalPending)
	if level != "" {
		query = query.Where("level = ?", level)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetchQuery := db.Where("approver_id = ? AND status = ?", approverID, model.ApprovalPending)
	if level != "" {
		fetchQuery = fetchQuery.Where("level = ?", level)
	}
	if err := fetchQuery.Order("created_at DESC").Offset(offset).Limit(limit).Find(&decisions).Error; err != nil {
		return nil, 0, err
	}

	return decisions, total, nil
}

func (r *approvalRepository) CountForApprover(ctx context.Context, approverID uuid.UUID, status string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.VendorApproval{}).
		Where("approver_id = ? AND status = ?", approverID, status).
		Count(&count).Error
	return count, err
}
