package repository

import (
	"context"

	"vendorhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *model.VendorDocument) error
	Update(ctx context.Context, doc *model.VendorDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.VendorDocument, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, documentType string) ([]model.VendorDocument, error)
	CountByVendorAndStatus(ctx context.Context, vendorID uuid.UUID, status string) (int64, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *model.VendorDocument) error {
	return GetDB(ctx, r.db).Create(doc).Error
}

func (r *documentRepository) Update(ctx context.Context, doc *model.VendorDocument) error {
	return GetDB(ctx, r.db).Save(doc).Error
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.VendorDocument{}).Error
}

func (r *documentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.VendorDocument, error) {
	var doc model.VendorDocument
	if err := GetDB(ctx, r.db).First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID, documentType string) ([]model.VendorDocument, error) {
	var docs []model.VendorDocument
	query := GetDB(ctx, r.db).Where("vendor_id = ?", vendorID)
	if documentType != "" {
		query = query.Where("document_type = ?", documentType)
	}
	if err := query.Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) CountByVendorAndStatus(ctx context.Context, vendorID uuid.UUID, status string) (int64, error) {
	var count int64
	query := GetDB(ctx, r.db).Model(&model.VendorDocument{}).Where("vendor_id = ?", vendorID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}
