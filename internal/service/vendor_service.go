package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"vendorhub/internal/model"
	"vendorhub/internal/repository"
	ws "vendorhub/internal/websocket"
	"vendorhub/internal/workflow"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EventPublisher pushes realtime notifications to connected dashboards.
// Satisfied by the websocket hub; nil disables notifications.
type EventPublisher interface {
	Emit(event string, payload interface{})
}

var (
	ErrEmailRegistered   = errors.New("a vendor with this email is already registered")
	ErrVendorNotFound    = errors.New("vendor not found")
	ErrVendorNotEditable = errors.New("vendor is in a terminal state and cannot be edited")
	ErrDetailExists      = errors.New("this detail record already exists for the vendor")
	ErrDetailNotFound    = errors.New("the vendor has no such detail record")
)

// FieldError is one entry of a validation failure response.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationError carries the full list of field problems found in a
// submitted registration. Handlers render it as a 422 detail list.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("registration validation failed: %d field error(s)", len(e.Fields))
}

// DTOs

type RegistrationResponse struct {
	ID         string `json:"id"`
	VendorCode string `json:"vendor_code"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

type UpdateVendorRequest struct {
	ContactPersonName   string `json:"contact_person_name"`
	Designation         string `json:"designation"`
	PhoneNumber         string `json:"phone_number"`
	Website             string `json:"website"`
	BusinessDescription string `json:"business_description"`
	ProductsServices    string `json:"products_services"`
	IndustrySector      string `json:"industry_sector"`
	EmployeeCount       string `json:"employee_count"`
	Certifications      string `json:"certifications"`
}

type VendorSummary struct {
	ID                string `json:"id"`
	VendorCode        string `json:"vendor_code"`
	CompanyName       string `json:"company_name"`
	ContactPersonName string `json:"contact_person_name"`
	Email             string `json:"email"`
	CountryOrigin     string `json:"country_origin"`
	SupplierType      string `json:"supplier_type"`
	SupplierCategory  string `json:"supplier_category"`
	MSMEStatus        string `json:"msme_status"`
	Status            string `json:"status"`
	CreatedAt         string `json:"created_at"`
}

// AddressRequest adds one address record to an existing vendor.
type AddressRequest struct {
	AddressType string `json:"address_type" binding:"required"`
	Address     string `json:"address" binding:"required"`
	City        string `json:"city" binding:"required"`
	State       string `json:"state" binding:"required"`
	Country     string `json:"country" binding:"required"`
	Pincode     string `json:"pincode" binding:"required"`
}

type BankInfoRequest struct {
	BankName      string `json:"bank_name" binding:"required"`
	BranchName    string `json:"branch_name"`
	AccountNumber string `json:"account_number" binding:"required"`
	AccountType   string `json:"account_type"`
	IFSCCode      string `json:"ifsc_code"`
	SwiftCode     string `json:"swift_code"`
	BankAddress   string `json:"bank_address"`
	Currency      string `json:"currency"`
}

type ComplianceRequest struct {
	PreferredCurrency     string `json:"preferred_currency"`
	TaxRegistrationNumber string `json:"tax_registration_number"`
	PANNumber             string `json:"pan_number"`
	GSTNumber             string `json:"gst_number"`
	VATNumber             string `json:"vat_number"`
	BusinessLicense       string `json:"business_license"`
	GTARegistration       string `json:"gta_registration"`
	ComplianceNotes       string `json:"compliance_notes"`
	CreditRating          string `json:"credit_rating"`
	InsuranceCoverage     string `json:"insurance_coverage"`
	SpecialCertifications string `json:"special_certifications"`
}

type AgreementsRequest struct {
	NDA                 bool `json:"nda"`
	SQA                 bool `json:"sqa"`
	FourM               bool `json:"four_m"`
	CodeOfConduct       bool `json:"code_of_conduct"`
	ComplianceAgreement bool `json:"compliance_agreement"`
	SelfDeclaration     bool `json:"self_declaration"`
}

// VendorService is the business logic around vendor applications.
type VendorService interface {
	Register(ctx context.Context, form workflow.Form, draftToken string) (*RegistrationResponse, error)
	List(ctx context.Context, filter repository.VendorFilter, page, limit int) ([]VendorSummary, int64, error)
	Get(ctx context.Context, id string) (*model.Vendor, error)
	Update(ctx context.Context, id string, req UpdateVendorRequest, actorID *uuid.UUID) (*model.Vendor, error)
	Delete(ctx context.Context, id string, actorID *uuid.UUID) error
	VisibleAgreements(ctx context.Context, id string) ([]string, error)

	Addresses(ctx context.Context, id string) ([]model.VendorAddress, error)
	AddAddress(ctx context.Context, id string, req AddressRequest) (*model.VendorAddress, error)
	BankInfo(ctx context.Context, id string) (*model.VendorBankInfo, error)
	SetBankInfo(ctx context.Context, id string, req BankInfoRequest) (*model.VendorBankInfo, error)
	Compliance(ctx context.Context, id string) (*model.VendorCompliance, error)
	SetCompliance(ctx context.Context, id string, req ComplianceRequest) (*model.VendorCompliance, error)
	Agreements(ctx context.Context, id string) (*model.VendorAgreement, error)
	SetAgreements(ctx context.Context, id string, req AgreementsRequest) (*model.VendorAgreement, error)
}

type vendorService struct {
	vendors repository.VendorRepository
	drafts  repository.DraftRepository
	audits  repository.AuditRepository
	tx      repository.TransactionManager
	hub     EventPublisher
}

func NewVendorService(
	vendors repository.VendorRepository,
	drafts repository.DraftRepository,
	audits repository.AuditRepository,
	tx repository.TransactionManager,
	hub EventPublisher,
) VendorService {
	return &vendorService{vendors: vendors, drafts: drafts, audits: audits, tx: tx, hub: hub}
}

// validateRegistration assembles the 422 detail list for a submitted form:
// the cross-cutting required fields first, then the sorted step-level errors
// of the accumulated record. Each field appears at most once; fields already
// flagged by the required pass are not repeated with their step message.
func validateRegistration(form *workflow.Form) *ValidationError {
	required := []struct {
		field string
		value string
	}{
		{"business_vertical", form.BusinessVertical},
		{"company_name", form.CompanyName},
		{"country_origin", form.CountryOrigin},
		{"contact_person_name", form.ContactPersonName},
		{"email", form.Email},
		{"phone_number", form.PhoneNumber},
	}

	var fields []FieldError
	reported := map[string]bool{}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			reported[r.field] = true
			fields = append(fields, FieldError{
				Loc:  []string{"body", r.field},
				Msg:  "field required",
				Type: "value_error.missing",
			})
		}
	}

	stepErrs := workflow.ValidateAll(form)
	keys := make([]string, 0, len(stepErrs))
	for k := range stepErrs {
		if !reported[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, FieldError{
			Loc:  []string{"body", k},
			Msg:  stepErrs[k],
			Type: "value_error",
		})
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func generateVendorCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "VND" + strings.ToUpper(raw[:8])
}

// Register validates the full submitted form and persists the vendor graph
// in a single transaction. Nothing is written when validation fails.
func (s *vendorService) Register(ctx context.Context, form workflow.Form, draftToken string) (*RegistrationResponse, error) {
	if verr := validateRegistration(&form); verr != nil {
		return nil, verr
	}

	existing, err := s.vendors.FindByEmail(ctx, form.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for duplicate email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailRegistered
	}

	vendor := buildVendor(&form)
	vendor.VendorCode = generateVendorCode()

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.vendors.Create(txCtx, vendor); createErr != nil {
			return fmt.Errorf("failed to create vendor: %w", createErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"vendor_code":    vendor.VendorCode,
			"company_name":   vendor.CompanyName,
			"country_origin": vendor.CountryOrigin,
		})
		audit := &model.AuditLog{
			Action:     model.ActionVendorRegistered,
			EntityID:   vendor.ID.String(),
			EntityName: vendor.CompanyName,
			Details:    string(details),
		}
		if auditErr := s.audits.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}

		if draftToken != "" {
			if delErr := s.drafts.DeleteByToken(txCtx, draftToken); delErr != nil {
				return fmt.Errorf("failed to clear registration draft: %w", delErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Emit(ws.EventVendorRegistered, map[string]string{
			"vendor_id":    vendor.ID.String(),
			"vendor_code":  vendor.VendorCode,
			"company_name": vendor.CompanyName,
		})
	}

	return &RegistrationResponse{
		ID:         vendor.ID.String(),
		VendorCode: vendor.VendorCode,
		Status:     vendor.Status,
		Message:    "Vendor registration submitted successfully",
	}, nil
}

// buildVendor maps the validated wizard form onto the persistent vendor graph.
func buildVendor(form *workflow.Form) *model.Vendor {
	vendor := &model.Vendor{
		BusinessVertical:             form.BusinessVertical,
		CompanyName:                  form.CompanyName,
		CountryOrigin:                form.CountryOrigin,
		RegistrationNumber:           form.RegistrationNumber,
		IncorporationCertificatePath: form.IncorporationCertificate,
		ContactPersonName:            form.ContactPersonName,
		Designation:                  form.Designation,
		Email:                        form.Email,
		PhoneNumber:                  form.PhoneNumber,
		Website:                      form.Website,
		BusinessDescription:          form.BusinessDescription,
		SupplierType:                 form.SupplierType,
		SupplierGroup:                form.SupplierGroup,
		SupplierCategory:             form.SupplierCategory,
		ProductsServices:             form.ProductsServices,
		IndustrySector:               form.IndustrySector,
		EmployeeCount:                form.EmployeeCount,
		Status:                       model.VendorStatusPending,
	}

	if year, err := strconv.Atoi(strings.TrimSpace(form.YearEstablished)); err == nil {
		vendor.YearEstablished = &year
	}
	if turnover, err := decimal.NewFromString(strings.TrimSpace(form.AnnualTurnover)); err == nil {
		vendor.AnnualTurnover = &turnover
	}

	switch form.MSMEStatus {
	case workflow.MSMERegistered:
		vendor.MSMEStatus = model.MSMEStatusMSME
		vendor.MSMECategory = form.MSMECategory
		vendor.MSMENumber = form.MSMENumber
	case workflow.MSMENotRegistered:
		vendor.MSMEStatus = model.MSMEStatusNonMSME
	default:
		// Non-Indian vendors skip the MSME branch entirely.
		vendor.MSMEStatus = model.MSMEStatusPending
	}

	vendor.Addresses = []model.VendorAddress{
		{
			AddressType: model.AddressTypeRegistered,
			Address:     form.RegisteredAddress,
			City:        form.RegisteredCity,
			State:       form.RegisteredState,
			Country:     form.RegisteredCountry,
			Pincode:     form.RegisteredPincode,
		},
		{
			AddressType: model.AddressTypeSupply,
			Address:     form.SupplyAddress,
			City:        form.SupplyCity,
			State:       form.SupplyState,
			Country:     form.SupplyCountry,
			Pincode:     form.SupplyPincode,
		},
	}

	vendor.BankInfo = &model.VendorBankInfo{
		BankName:      form.BankName,
		BranchName:    form.BranchName,
		AccountNumber: form.AccountNumber,
		AccountType:   form.AccountType,
		IFSCCode:      form.IFSCCode,
		SwiftCode:     form.SwiftCode,
		BankAddress:   form.BankAddress,
	}

	vendor.Compliance = &model.VendorCompliance{
		PreferredCurrency:     form.PreferredCurrency,
		TaxRegistrationNumber: form.TaxRegistrationNumber,
		PANNumber:             form.PANNumber,
		GSTNumber:             form.GSTNumber,
		VATNumber:             form.VATNumber,
		BusinessLicense:       form.BusinessLicense,
		GTARegistration:       form.GTARegistration,
		ComplianceNotes:       form.ComplianceNotes,
		CreditRating:          form.CreditRating,
		InsuranceCoverage:     form.InsuranceCoverage,
		SpecialCertifications: form.SpecialCertifications,
	}

	vendor.Agreements = &model.VendorAgreement{
		NDA:                 form.AgreementAccepted(workflow.AgreementNDA),
		SQA:                 form.AgreementAccepted(workflow.AgreementSQA),
		FourM:               form.AgreementAccepted(workflow.AgreementFourM),
		CodeOfConduct:       form.AgreementAccepted(workflow.AgreementCodeOfConduct),
		ComplianceAgreement: form.AgreementAccepted(workflow.AgreementCompliance),
		SelfDeclaration:     form.AgreementAccepted(workflow.AgreementSelfDecl),
	}

	vendor.Documents = registrationDocuments(form)
	return vendor
}

// registrationDocuments turns the file references collected by the wizard
// into pending document records for reviewer follow-up.
func registrationDocuments(form *workflow.Form) []model.VendorDocument {
	refs := []struct {
		docType string
		path    string
	}{
		{model.DocTypeCompanyRegistration, form.IncorporationCertificate},
		{model.DocTypeBankStatement, form.BankProof},
		{model.DocTypeMSMECertificate, form.MSMECertificate},
	}

	var docs []model.VendorDocument
	for _, ref := range refs {
		if strings.TrimSpace(ref.path) == "" {
			continue
		}
		docs = append(docs, model.VendorDocument{
			DocumentType: ref.docType,
			FileName:     ref.path,
			FilePath:     ref.path,
			MimeType:     "application/octet-stream",
			Status:       model.DocStatusPending,
		})
	}
	return docs
}

func (s *vendorService) List(ctx context.Context, filter repository.VendorFilter, page, limit int) ([]VendorSummary, int64, error) {
	vendors, total, err := s.vendors.List(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]VendorSummary, 0, len(vendors))
	for _, v := range vendors {
		res = append(res, VendorSummary{
			ID:                v.ID.String(),
			VendorCode:        v.VendorCode,
			CompanyName:       v.CompanyName,
			ContactPersonName: v.ContactPersonName,
			Email:             v.Email,
			CountryOrigin:     v.CountryOrigin,
			SupplierType:      v.SupplierType,
			SupplierCategory:  v.SupplierCategory,
			MSMEStatus:        v.MSMEStatus,
			Status:            v.Status,
			CreatedAt:         v.CreatedAt.Format(time.RFC3339),
		})
	}
	return res, total, nil
}

func (s *vendorService) Get(ctx context.Context, id string) (*model.Vendor, error) {
	vendorID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", err)
	}
	vendor, err := s.vendors.FindByIDWithRelations(ctx, vendorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

// Update edits contact and profile fields. Terminal vendors are immutable; a
// vendor returned for revision is resubmitted for review by the edit.
func (s *vendorService) Update(ctx context.Context, id string, req UpdateVendorRequest, actorID *uuid.UUID) (*model.Vendor, error) {
	vendorID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", err)
	}

	vendor, err := s.vendors.FindByID(ctx, vendorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}

	if vendor.Status == model.VendorStatusApproved || vendor.Status == model.VendorStatusRejected {
		return nil, ErrVendorNotEditable
	}

	applyIfSet := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	applyIfSet(&vendor.ContactPersonName, req.ContactPersonName)
	applyIfSet(&vendor.Designation, req.Designation)
	applyIfSet(&vendor.PhoneNumber, req.PhoneNumber)
	applyIfSet(&vendor.Website, req.Website)
	applyIfSet(&vendor.BusinessDescription, req.BusinessDescription)
	applyIfSet(&vendor.ProductsServices, req.ProductsServices)
	applyIfSet(&vendor.IndustrySector, req.IndustrySector)
	applyIfSet(&vendor.EmployeeCount, req.EmployeeCount)
	applyIfSet(&vendor.Certifications, req.Certifications)

	// An edit answers a change request and puts the vendor back in the queue.
	if vendor.Status == model.VendorStatusPendingLevel1 {
		vendor.Status = model.VendorStatusPending
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.vendors.Update(txCtx, vendor); updateErr != nil {
			return fmt.Errorf("failed to update vendor: %w", updateErr)
		}
		details, _ := json.Marshal(map[string]interface{}{"status": vendor.Status})
		audit := &model.AuditLog{
			UserID:     actorID,
			Action:     model.ActionVendorUpdated,
			EntityID:   vendor.ID.String(),
			EntityName: vendor.CompanyName,
			Details:    string(details),
		}
		return s.audits.Log(txCtx, audit)
	})
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) Delete(ctx context.Context, id string, actorID *uuid.UUID) error {
	vendorID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid vendor id: %w", err)
	}

	vendor, err := s.vendors.FindByID(ctx, vendorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrVendorNotFound
	}
	if err != nil {
		return err
	}

	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if delErr := s.vendors.Delete(txCtx, vendorID); delErr != nil {
			return fmt.Errorf("failed to delete vendor: %w", delErr)
		}
		audit := &model.AuditLog{
			UserID:     actorID,
			Action:     model.ActionVendorDeleted,
			EntityID:   vendor.ID.String(),
			EntityName: vendor.CompanyName,
		}
		return s.audits.Log(txCtx, audit)
	})
}

// VisibleAgreements resolves the agreement set a stored vendor was required
// to accept, from the same resolver the registration wizard uses.
func (s *vendorService) VisibleAgreements(ctx context.Context, id string) ([]string, error) {
	vendorID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", err)
	}
	vendor, err := s.vendors.FindByID(ctx, vendorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}
	return workflow.VisibleAgreements(vendor.CountryOrigin, vendor.SupplierGroup), nil
}

// loadWithRelations resolves the id and fetches the full vendor graph.
func (s *vendorService) loadWithRelations(ctx context.Context, id string) (*model.Vendor, error) {
	vendorID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", err)
	}
	vendor, err := s.vendors.FindByIDWithRelations(ctx, vendorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

// saveDetail persists a vendor whose detail records changed, with an audit
// entry naming the touched section.
func (s *vendorService) saveDetail(ctx context.Context, vendor *model.Vendor, section string) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.vendors.Update(txCtx, vendor); err != nil {
			return fmt.Errorf("failed to save vendor %s: %w", section, err)
		}
		details, _ := json.Marshal(map[string]interface{}{"section": section})
		audit := &model.AuditLog{
			Action:     model.ActionVendorUpdated,
			EntityID:   vendor.ID.String(),
			EntityName: vendor.CompanyName,
			Details:    string(details),
		}
		return s.audits.Log(txCtx, audit)
	})
}

func (s *vendorService) Addresses(ctx context.Context, id string) ([]model.VendorAddress, error) {
	vendor, err := s.loadWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	return vendor.Addresses, nil
}

func (s *vendorService) AddAddress(ctx context.Context, id string, req AddressRequest) (*model.VendorAddress, error) {
	if req.AddressType != model.AddressTypeRegistered && req.AddressType != model.AddressTypeSupply {
		return nil, fmt.Errorf("unknown address type %q", req.AddressType)
	}
	vendor, err := s.loadWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	// One address per type.
	for _, addr := range vendor.Addresses {
		if addr.AddressType == req.AddressType {
			return nil, ErrDetailExists
		}
	}

	addr := model.VendorAddress{
		VendorID:    vendor.ID,
		AddressType: req.AddressType,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		Pincode:     req.Pincode,
	}
	vendor.Addresses = append(vendor.Addresses, addr)
	if err := s.saveDetail(ctx, vendor, "addresses"); err != nil {
		return nil, err
	}
	return &vendor.Addresses[len(vendor.Addresses)-1], nil
}

func (s *vendorService) BankInfo(ctx context.Context, id string) (*model.VendorBankInfo, error) {
	vendor, err := s.loadWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor.BankInfo == nil {
		return nil, ErrDetailNotFound
	}
	return vendor.BankInfo, nil
}

func (s *vendorService) SetBankInfo(ctx context.Context, id string, req BankInfoRequest) (*model.VendorBankInfo, error) {
	vendor, err := s.loadWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor.BankInfo != nil {
		return nil, ErrDetailExists
	}

	vendor.BankInfo = &model.VendorBankInfo{
		VendorID:      vendor.ID,
		BankName:      req.BankName,
		BranchName:    req.BranchName,
		AccountNumber: req.AccountNumber,
		AccountType:   req.AccountType,
		IFSCCode:      req.IFSCCode,
		SwiftCode:     req.SwiftCode,
		BankAddress:   req.BankAddress,
		Currency:      req.Currency,
	}
	if err := s.saveDetail(ctx, vendor, "bank_info"); err != nil {
		return nil, err
	}
	return vendor.BankInfo, nil
}

func (s *vendorService) Compliance(ctx context.Context, id string) (*model.VendorCompliance, error) {
	vendor, err := s.loadWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor.Compliance == nil {
		return nil, ErrDetailNotFound
	}
	return vendor.Compliance, nil
}

func (s *vendorService) SetCompliance(ctx context.Context, id string, req ComplianceRequest) (*model.VendorCompliance, error) {
	vendor, err := s.loadWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor.Compliance != nil {
		return nil, ErrDetailExists
	}

	vendor.Compliance = &model.VendorCompliance{
		VendorID:              vendor.ID,
		PreferredCurrency:     req.PreferredCurrency,
		TaxRegistrationNumber: req.TaxRegistrationNumber,
		PANNumber:             req.PANNumber,
		GSTNumber:             req.GSTNumber,
		VATNumber:             req.VATNumber,
		BusinessLicense:       req.BusinessLicense,
		GTARegistration:       req.GTARegistration,
		ComplianceNotes:       req.ComplianceNotes,
		CreditRating:          req.CreditRating,
		InsuranceCoverage:     req.InsuranceCoverage,
		SpecialCertifications: req.SpecialCertifications,
	}
	if err := s.saveDetail(ctx, vendor, "compliance"); err != nil {
		return nil, err
	}
	return vendor.Compliance, nil
}

func (s *vendorService) Agreements(ctx context.Context, id string) (*model.VendorAgreement, error) {
	vendor, err := s.loadWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor.Agreements == nil {
		return nil, ErrDetailNotFound
	}
	return vendor.Agreements, nil
}

func (s *vendorService) SetAgreements(ctx context.Context, id string, req AgreementsRequest) (*model.VendorAgreement, error) {
	vendor, err := s.loadWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor.Agreements != nil {
		return nil, ErrDetailExists
	}

	vendor.Agreements = &model.VendorAgreement{
		VendorID:            vendor.ID,
		NDA:                 req.NDA,
		SQA:                 req.SQA,
		FourM:               req.FourM,
		CodeOfConduct:       req.CodeOfConduct,
		ComplianceAgreement: req.ComplianceAgreement,
		SelfDeclaration:     req.SelfDeclaration,
	}
	if err := s.saveDetail(ctx, vendor, "agreements"); err != nil {
		return nil, err
	}
	return vendor.Agreements, nil
}
