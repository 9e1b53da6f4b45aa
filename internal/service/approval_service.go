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
	"vendorhub/internal/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrVendorTerminal  = errors.New("vendor is already approved or rejected")
	ErrCommentRequired = errors.New("comments are required when requesting changes")
	ErrUnknownLevel    = errors.New("unknown approval level")
)

// QuestionnaireError reports the missing questionnaire answers that blocked
// an approval. Handlers render it as a 422 detail map.
type QuestionnaireError struct {
	Fields map[string]string
}

func (e *QuestionnaireError) Error() string {
	return fmt.Sprintf("approval questionnaire incomplete: %d missing answer(s)", len(e.Fields))
}

// RejectionError wraps an invalid rejection input.
type RejectionError struct {
	Reason error
}

func (e *RejectionError) Error() string {
	return e.Reason.Error()
}

// DTOs

type ApproveVendorRequest struct {
	Level         string                 `json:"level"`
	Comments      string                 `json:"comments"`
	Questionnaire workflow.Questionnaire `json:"questionnaire"`
}

type RejectVendorRequest struct {
	Level        string `json:"level"`
	Reason       string `json:"reason"`
	CustomReason string `json:"custom_reason"`
	Remarks      string `json:"remarks"`
}

type RequestChangesRequest struct {
	Level    string `json:"level"`
	Comments string `json:"comments"`
}

type DecisionResponse struct {
	ID              string `json:"id"`
	VendorID        string `json:"vendor_id"`
	VendorStatus    string `json:"vendor_status"`
	Level           string `json:"level"`
	Status          string `json:"status"`
	Comments        string `json:"comments"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	ApproverID      string `json:"approver_id,omitempty"`
	ApprovedAt      string `json:"approved_at,omitempty"`
}

// ApprovalStats summarizes an approver's decision workload.
type ApprovalStats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Returned int64 `json:"returned_for_revision"`
}

type QuestionnaireOptionsResponse struct {
	PaymentTerms   []workflow.Option `json:"payment_terms"`
	PaymentMethods []workflow.Option `json:"payment_methods"`
	DeliveryTerms  []workflow.Option `json:"delivery_terms"`
	DeliveryModes  []workflow.Option `json:"delivery_modes"`
	SupplierGroups []workflow.Option `json:"supplier_groups"`
	CommodityCodes []workflow.Option `json:"commodity_codes"`
}

// ApprovalService drives the vendor approval state machine. Every decision
// validates its inputs before touching storage, so an invalid request leaves
// no trace.
type ApprovalService interface {
	Approve(ctx context.Context, vendorID, approverID string, req ApproveVendorRequest) (*DecisionResponse, error)
	Reject(ctx context.Context, vendorID, approverID string, req RejectVendorRequest) (*DecisionResponse, error)
	RequestChanges(ctx context.Context, vendorID, approverID string, req RequestChangesRequest) (*DecisionResponse, error)
	ListForVendor(ctx context.Context, vendorID string) ([]model.VendorApproval, error)
	PendingForApprover(ctx context.Context, approverID, level string, page, limit int) ([]model.VendorApproval, int64, error)
	StatsForApprover(ctx context.Context, approverID string) (*ApprovalStats, error)
	QuestionnaireOptions(countryCode string) QuestionnaireOptionsResponse
	RejectionReasons() []workflow.Option
}

type approvalService struct {
	vendors   repository.VendorRepository
	approvals repository.ApprovalRepository
	audits    repository.AuditRepository
	tx        repository.TransactionManager
	hub       EventPublisher
}

func NewApprovalService(
	vendors repository.VendorRepository,
	approvals repository.ApprovalRepository,
	audits repository.AuditRepository,
	tx repository.TransactionManager,
	hub EventPublisher,
) ApprovalService {
	return &approvalService{vendors: vendors, approvals: approvals, audits: audits, tx: tx, hub: hub}
}

var approvalLevels = map[string]bool{
	model.ApprovalLevel1:     true,
	model.ApprovalLevel2:     true,
	model.ApprovalLevel3:     true,
	model.ApprovalLevelFinal: true,
}

// normalizeLevel defaults an absent level to the final sign-off.
func normalizeLevel(level string) (string, error) {
	if level == "" {
		return model.ApprovalLevelFinal, nil
	}
	if !approvalLevels[level] {
		return "", fmt.Errorf("%w: %s", ErrUnknownLevel, level)
	}
	return level, nil
}

// loadDecidableVendor fetches the vendor and enforces the terminal guard.
func (s *approvalService) loadDecidableVendor(ctx context.Context, vendorID string) (*model.Vendor, error) {
	id, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", err)
	}
	vendor, err := s.vendors.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}
	if vendor.Status == model.VendorStatusApproved || vendor.Status == model.VendorStatusRejected {
		return nil, ErrVendorTerminal
	}
	return vendor, nil
}

// upsertDecision writes the decision for (vendor, level), replacing any
// earlier decision at that level and leaving other levels untouched.
func (s *approvalService) upsertDecision(ctx context.Context, vendor *model.Vendor, approverID *uuid.UUID, level, status, comments, rejectionReason string) (*model.VendorApproval, error) {
	now := time.Now().UTC()

	decision, err := s.approvals.FindByVendorAndLevel(ctx, vendor.ID, level)
	if err != nil {
		return nil, err
	}
	if decision == nil {
		decision = &model.VendorApproval{
			VendorID: vendor.ID,
			Level:    level,
		}
	}

	decision.ApproverID = approverID
	decision.Status = status
	decision.Comments = comments
	decision.RejectionReason = rejectionReason
	if status == model.ApprovalApproved {
		decision.ApprovedAt = &now
	} else {
		decision.ApprovedAt = nil
	}

	if decision.ID == uuid.Nil {
		err = s.approvals.Create(ctx, decision)
	} else {
		err = s.approvals.Update(ctx, decision)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to record approval decision: %w", err)
	}
	return decision, nil
}

// rollupVendorStatus derives the vendor status from its recorded decisions.
// Any rejection is fatal; approval requires the final level signed off with
// nothing outstanding at other decided levels.
func rollupVendorStatus(decisions []model.VendorApproval) string {
	finalApproved := false
	allApproved := true
	for _, d := range decisions {
		switch d.Status {
		case model.ApprovalRejected:
			return model.VendorStatusRejected
		case model.ApprovalReturnedForRevision:
			return model.VendorStatusPendingLevel1
		case model.ApprovalApproved:
			if d.Level == model.ApprovalLevelFinal {
				finalApproved = true
			}
		default:
			allApproved = false
		}
	}
	if finalApproved && allApproved {
		return model.VendorStatusApproved
	}
	return model.VendorStatusUnderReview
}

// Approve records an approval decision. The questionnaire must be complete
// before anything is looked up or written.
func (s *approvalService) Approve(ctx context.Context, vendorID, approverID string, req ApproveVendorRequest) (*DecisionResponse, error) {
	if errs := req.Questionnaire.Validate(); len(errs) > 0 {
		return nil, &QuestionnaireError{Fields: errs}
	}
	level, err := normalizeLevel(req.Level)
	if err != nil {
		return nil, err
	}
	approver, err := parseApprover(approverID)
	if err != nil {
		return nil, err
	}

	vendor, err := s.loadDecidableVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	comments := req.Questionnaire.Comment()
	if req.Comments != "" {
		comments += "; " + req.Comments
	}

	var decision *model.VendorApproval
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		decision, err = s.upsertDecision(txCtx, vendor, approver, level, model.ApprovalApproved, comments, "")
		if err != nil {
			return err
		}

		decisions, listErr := s.approvals.ListByVendor(txCtx, vendor.ID)
		if listErr != nil {
			return listErr
		}
		vendor.Status = rollupVendorStatus(decisions)
		if vendor.Status == model.VendorStatusApproved {
			now := time.Now().UTC()
			vendor.ApprovedAt = &now
			vendor.ApprovedBy = approver
		}
		if updateErr := s.vendors.Update(txCtx, vendor); updateErr != nil {
			return fmt.Errorf("failed to update vendor status: %w", updateErr)
		}

		return s.logDecision(txCtx, vendor, approver, model.ActionVendorApproved, map[string]interface{}{
			"level":         level,
			"vendor_status": vendor.Status,
		})
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil && vendor.Status == model.VendorStatusApproved {
		s.hub.Emit(ws.EventVendorApproved, map[string]string{
			"vendor_id":   vendor.ID.String(),
			"vendor_code": vendor.VendorCode,
		})
	}
	return toDecisionResponse(decision, vendor), nil
}

// Reject records a rejection. The reason is validated before any lookup; a
// rejection at any level is terminal for the vendor.
func (s *approvalService) Reject(ctx context.Context, vendorID, approverID string, req RejectVendorRequest) (*DecisionResponse, error) {
	if err := workflow.ValidateRejection(req.Reason, req.CustomReason); err != nil {
		return nil, &RejectionError{Reason: err}
	}
	level, err := normalizeLevel(req.Level)
	if err != nil {
		return nil, err
	}
	approver, err := parseApprover(approverID)
	if err != nil {
		return nil, err
	}

	vendor, err := s.loadDecidableVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	comments := workflow.RejectionComment(req.Reason, req.CustomReason, req.Remarks)

	var decision *model.VendorApproval
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		decision, err = s.upsertDecision(txCtx, vendor, approver, level, model.ApprovalRejected, comments, req.Reason)
		if err != nil {
			return err
		}

		vendor.Status = model.VendorStatusRejected
		if updateErr := s.vendors.Update(txCtx, vendor); updateErr != nil {
			return fmt.Errorf("failed to update vendor status: %w", updateErr)
		}

		return s.logDecision(txCtx, vendor, approver, model.ActionVendorRejected, map[string]interface{}{
			"level":  level,
			"reason": req.Reason,
		})
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Emit(ws.EventVendorRejected, map[string]string{
			"vendor_id":   vendor.ID.String(),
			"vendor_code": vendor.VendorCode,
			"reason":      req.Reason,
		})
	}
	return toDecisionResponse(decision, vendor), nil
}

// RequestChanges returns the application to the vendor for revision.
func (s *approvalService) RequestChanges(ctx context.Context, vendorID, approverID string, req RequestChangesRequest) (*DecisionResponse, error) {
	if req.Comments == "" {
		return nil, ErrCommentRequired
	}
	level, err := normalizeLevel(req.Level)
	if err != nil {
		return nil, err
	}
	approver, err := parseApprover(approverID)
	if err != nil {
		return nil, err
	}

	vendor, err := s.loadDecidableVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	var decision *model.VendorApproval
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		decision, err = s.upsertDecision(txCtx, vendor, approver, level, model.ApprovalReturnedForRevision, req.Comments, "")
		if err != nil {
			return err
		}

		vendor.Status = model.VendorStatusPendingLevel1
		if updateErr := s.vendors.Update(txCtx, vendor); updateErr != nil {
			return fmt.Errorf("failed to update vendor status: %w", updateErr)
		}

		return s.logDecision(txCtx, vendor, approver, model.ActionChangesRequested, map[string]interface{}{
			"level":    level,
			"comments": req.Comments,
		})
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Emit(ws.EventChangesRequested, map[string]string{
			"vendor_id":   vendor.ID.String(),
			"vendor_code": vendor.VendorCode,
		})
	}
	return toDecisionResponse(decision, vendor), nil
}

func (s *approvalService) ListForVendor(ctx context.Context, vendorID string) ([]model.VendorApproval, error) {
	id, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", err)
	}
	return s.approvals.ListByVendor(ctx, id)
}

func (s *approvalService) PendingForApprover(ctx context.Context, approverID, level string, page, limit int) ([]model.VendorApproval, int64, error) {
	id, err := uuid.Parse(approverID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid approver id: %w", err)
	}
	return s.approvals.ListPendingForApprover(ctx, id, level, page, limit)
}

func (s *approvalService) StatsForApprover(ctx context.Context, approverID string) (*ApprovalStats, error) {
	id, err := uuid.Parse(approverID)
	if err != nil {
		return nil, fmt.Errorf("invalid approver id: %w", err)
	}

	stats := &ApprovalStats{}
	counts := []struct {
		status string
		dst    *int64
	}{
		{model.ApprovalPending, &stats.Pending},
		{model.ApprovalApproved, &stats.Approved},
		{model.ApprovalRejected, &stats.Rejected},
		{model.ApprovalReturnedForRevision, &stats.Returned},
	}
	for _, c := range counts {
		n, countErr := s.approvals.CountForApprover(ctx, id, c.status)
		if countErr != nil {
			return nil, countErr
		}
		*c.dst = n
	}
	return stats, nil
}

// QuestionnaireOptions returns the reviewer vocabularies for a vendor's
// country of origin.
func (s *approvalService) QuestionnaireOptions(countryCode string) QuestionnaireOptionsResponse {
	indian := workflow.IsIndia(countryCode)
	return QuestionnaireOptionsResponse{
		PaymentTerms:   workflow.PaymentTermOptions(indian),
		PaymentMethods: workflow.PaymentMethodOptions(),
		DeliveryTerms:  workflow.DeliveryTermOptions(indian),
		DeliveryModes:  workflow.DeliveryModeOptions(),
		SupplierGroups: workflow.SupplierGroupOptions(indian),
		CommodityCodes: workflow.CommodityCodeOptions(),
	}
}

func (s *approvalService) RejectionReasons() []workflow.Option {
	return workflow.RejectionReasons
}

// Helpers

func parseApprover(approverID string) (*uuid.UUID, error) {
	if approverID == "" {
		return nil, nil
	}
	id, err := uuid.Parse(approverID)
	if err != nil {
		return nil, fmt.Errorf("invalid approver id: %w", err)
	}
	return &id, nil
}

func (s *approvalService) logDecision(ctx context.Context, vendor *model.Vendor, approver *uuid.UUID, action string, details map[string]interface{}) error {
	payload, _ := json.Marshal(details)
	return s.audits.Log(ctx, &model.AuditLog{
		UserID:     approver,
		Action:     action,
		EntityID:   vendor.ID.String(),
		EntityName: vendor.CompanyName,
		Details:    string(payload),
	})
}

func toDecisionResponse(d *model.VendorApproval, vendor *model.Vendor) *DecisionResponse {
	res := &DecisionResponse{
		ID:              d.ID.String(),
		VendorID:        d.VendorID.String(),
		VendorStatus:    vendor.Status,
		Level:           d.Level,
		Status:          d.Status,
		Comments:        d.Comments,
		RejectionReason: d.RejectionReason,
	}
	if d.ApproverID != nil {
		res.ApproverID = d.ApproverID.String()
	}
	if d.ApprovedAt != nil {
		res.ApprovedAt = d.ApprovedAt.Format(time.RFC3339)
	}
	return res
}
