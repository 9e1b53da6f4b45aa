package repository

import (
	"context"

	"vendorhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VendorFilter narrows vendor listings. Empty fields are ignored.
type VendorFilter struct {
	Search       string // matches company name, contact person, email, vendor code
	Status       string
	SupplierType string
	MSMEStatus   string
	Category     string
	Country      string
}

type VendorRepository interface {
	Create(ctx context.Context, vendor *model.Vendor) error
	Update(ctx context.Context, vendor *model.Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error)
	FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.Vendor, error)
	FindByEmail(ctx context.Context, email string) (*model.Vendor, error)
	List(ctx context.Context, filter VendorFilter, page, limit int) ([]model.Vendor, int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type vendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) Create(ctx context.Context, vendor *model.Vendor) error {
	return GetDB(ctx, r.db).Create(vendor).Error
}

func (r *vendorRepository) Update(ctx context.Context, vendor *model.Vendor) error {
	return GetDB(ctx, r.db).Save(vendor).Error
}

func (r *vendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Vendor{}).Error
}

func (r *vendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := GetDB(ctx, r.db).First(&vendor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	var vendor model.Vendor
	err := GetDB(ctx, r.db).
		Preload("Addresses").
		Preload("BankInfo").
		Preload("Compliance").
		Preload("Agreements").
		Preload("Documents").
		Preload("Approvals").
		First(&vendor, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) FindByEmail(ctx context.Context, email string) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := GetDB(ctx, r.db).First(&vendor, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func applyVendorFilter(query *gorm.DB, filter VendorFilter) *gorm.DB {
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"company_name ILIKE ? OR contact_person_name ILIKE ? OR email ILIKE ? OR vendor_code ILIKE ?",
			like, like, like, like)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.SupplierType != "" {
		query = query.Where("supplier_type = ?", filter.SupplierType)
	}
	if filter.MSMEStatus != "" {
		query = query.Where("msme_status = ?", filter.MSMEStatus)
	}
	if filter.Category != "" {
		query = query.Where("supplier_category = ?", filter.Category)
	}
	if filter.Country != "" {
		query = query.Where("country_origin = ?", filter.Country)
	}
	return query
}

func (r *vendorRepository) List(ctx context.Context, filter VendorFilter, page, limit int) ([]model.Vendor, int64, error) {
	var vendors []model.Vendor
	var total int64

	db := GetDB(ctx, r.db)
	if err := applyVendorFilter(db.Model(&model.Vendor{}), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetchQuery := applyVendorFilter(db.Model(&model.Vendor{}), filter)
	if err := fetchQuery.Order("created_at DESC").Offset(offset).Limit(limit).Find(&vendors).Error; err != nil {
		return nil, 0, err
	}

	return vendors, total, nil
}

func (r *vendorRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Vendor{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
