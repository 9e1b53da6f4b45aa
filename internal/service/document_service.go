package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vendorhub/internal/model"
	"vendorhub/internal/repository"
	ws "vendorhub/internal/websocket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDocumentNotFound    = errors.New("document not found")
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrInvalidReviewStatus = errors.New("review status must be approved or rejected")
)

// DTOs

type UploadDocumentRequest struct {
	DocumentType string `json:"document_type" binding:"required"`
	FileName     string `json:"file_name" binding:"required"`
	FilePath     string `json:"file_path" binding:"required"`
	FileSize     int64  `json:"file_size"`
	MimeType     string `json:"mime_type"`
	ExpiryDate   string `json:"expiry_date"` // RFC 3339, optional
}

type ReviewDocumentRequest struct {
	Status   string `json:"status" binding:"required"`
	Comments string `json:"comments"`
}

// DocumentStats summarizes a vendor's documents by review status.
type DocumentStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Expired  int64 `json:"expired"`
}

// DocumentService manages supporting documents attached to a vendor.
type DocumentService interface {
	Upload(ctx context.Context, vendorID string, req UploadDocumentRequest, actorID *uuid.UUID) (*model.VendorDocument, error)
	Get(ctx context.Context, documentID string) (*model.VendorDocument, error)
	Review(ctx context.Context, documentID string, req ReviewDocumentRequest, reviewerID *uuid.UUID) (*model.VendorDocument, error)
	ListByVendor(ctx context.Context, vendorID, documentType string) ([]model.VendorDocument, error)
	StatsByVendor(ctx context.Context, vendorID string) (*DocumentStats, error)
	Types() []string
	Delete(ctx context.Context, documentID string, actorID *uuid.UUID) error
}

type documentService struct {
	documents repository.DocumentRepository
	vendors   repository.VendorRepository
	audits    repository.AuditRepository
	tx        repository.TransactionManager
	hub       EventPublisher
}

func NewDocumentService(
	documents repository.DocumentRepository,
	vendors repository.VendorRepository,
	audits repository.AuditRepository,
	tx repository.TransactionManager,
	hub EventPublisher,
) DocumentService {
	return &documentService{documents: documents, vendors: vendors, audits: audits, tx: tx, hub: hub}
}

func validDocumentType(t string) bool {
	for _, known := range model.DocumentTypes {
		if known == t {
			return true
		}
	}
	return false
}

func (s *documentService) Upload(ctx context.Context, vendorID string, req UploadDocumentRequest, actorID *uuid.UUID) (*model.VendorDocument, error) {
	if !validDocumentType(req.DocumentType) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocumentType, req.DocumentType)
	}

	vID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", err)
	}
	vendor, err := s.vendors.FindByID(ctx, vID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}

	doc := &model.VendorDocument{
		VendorID:     vID,
		DocumentType: req.DocumentType,
		FileName:     req.FileName,
		FilePath:     req.FilePath,
		FileSize:     req.FileSize,
		MimeType:     req.MimeType,
		Status:       model.DocStatusPending,
		UploadedBy:   actorID,
	}
	if doc.MimeType == "" {
		doc.MimeType = "application/octet-stream"
	}
	if req.ExpiryDate != "" {
		expiry, parseErr := time.Parse(time.RFC3339, req.ExpiryDate)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid expiry date: %w", parseErr)
		}
		doc.ExpiryDate = &expiry
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.documents.Create(txCtx, doc); createErr != nil {
			return fmt.Errorf("failed to store document: %w", createErr)
		}
		details, _ := json.Marshal(map[string]interface{}{
			"document_type": doc.DocumentType,
			"file_name":     doc.FileName,
		})
		return s.audits.Log(txCtx, &model.AuditLog{
			UserID:     actorID,
			Action:     model.ActionDocumentUploaded,
			EntityID:   doc.ID.String(),
			EntityName: vendor.CompanyName,
			Details:    string(details),
		})
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Emit(ws.EventDocumentUploaded, map[string]string{
			"vendor_id":     vendor.ID.String(),
			"document_id":   doc.ID.String(),
			"document_type": doc.DocumentType,
		})
	}
	return doc, nil
}

func (s *documentService) Review(ctx context.Context, documentID string, req ReviewDocumentRequest, reviewerID *uuid.UUID) (*model.VendorDocument, error) {
	if req.Status != model.DocStatusApproved && req.Status != model.DocStatusRejected {
		return nil, ErrInvalidReviewStatus
	}

	docID, err := uuid.Parse(documentID)
	if err != nil {
		return nil, fmt.Errorf("invalid document id: %w", err)
	}
	doc, err := s.documents.FindByID(ctx, docID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}

	doc.Status = req.Status
	doc.ReviewComments = req.Comments
	doc.ReviewedBy = reviewerID

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.documents.Update(txCtx, doc); updateErr != nil {
			return fmt.Errorf("failed to update document: %w", updateErr)
		}
		details, _ := json.Marshal(map[string]interface{}{
			"status":   doc.Status,
			"comments": doc.ReviewComments,
		})
		return s.audits.Log(txCtx, &model.AuditLog{
			UserID:   reviewerID,
			Action:   model.ActionDocumentReviewed,
			EntityID: doc.ID.String(),
			Details:  string(details),
		})
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Get(ctx context.Context, documentID string) (*model.VendorDocument, error) {
	docID, err := uuid.Parse(documentID)
	if err != nil {
		return nil, fmt.Errorf("invalid document id: %w", err)
	}
	doc, err := s.documents.FindByID(ctx, docID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) StatsByVendor(ctx context.Context, vendorID string) (*DocumentStats, error) {
	vID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", err)
	}

	stats := &DocumentStats{}
	counts := []struct {
		status string
		dst    *int64
	}{
		{model.DocStatusPending, &stats.Pending},
		{model.DocStatusApproved, &stats.Approved},
		{model.DocStatusRejected, &stats.Rejected},
		{model.DocStatusExpired, &stats.Expired},
	}
	for _, c := range counts {
		n, countErr := s.documents.CountByVendorAndStatus(ctx, vID, c.status)
		if countErr != nil {
			return nil, countErr
		}
		*c.dst = n
		stats.Total += n
	}
	return stats, nil
}

func (s *documentService) Types() []string {
	return model.DocumentTypes
}

func (s *documentService) ListByVendor(ctx context.Context, vendorID, documentType string) ([]model.VendorDocument, error) {
	vID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", err)
	}
	if documentType != "" && !validDocumentType(documentType) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocumentType, documentType)
	}
	return s.documents.ListByVendor(ctx, vID, documentType)
}

func (s *documentService) Delete(ctx context.Context, documentID string, actorID *uuid.UUID) error {
	docID, err := uuid.Parse(documentID)
	if err != nil {
		return fmt.Errorf("invalid document id: %w", err)
	}
	doc, err := s.documents.FindByID(ctx, docID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrDocumentNotFound
	}
	if err != nil {
		return err
	}

	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if delErr := s.documents.Delete(txCtx, docID); delErr != nil {
			return fmt.Errorf("failed to delete document: %w", delErr)
		}
		return s.audits.Log(txCtx, &model.AuditLog{
			UserID:     actorID,
			Action:     model.ActionDocumentDeleted,
			EntityID:   doc.ID.String(),
			EntityName: doc.FileName,
		})
	})
}
