package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vendorhub/internal/model"
	"vendorhub/internal/repository"
	"vendorhub/internal/service"
	"vendorhub/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeVendorService lets each test script the registration outcome without a
// database.
type fakeVendorService struct {
	registerRes *service.RegistrationResponse
	registerErr error
	lastForm    workflow.Form
	lastToken   string
	bankInfo    *model.VendorBankInfo
	bankInfoErr error
}

func (s *fakeVendorService) Register(ctx context.Context, form workflow.Form, draftToken string) (*service.RegistrationResponse, error) {
	s.lastForm = form
	s.lastToken = draftToken
	return s.registerRes, s.registerErr
}

func (s *fakeVendorService) List(ctx context.Context, filter repository.VendorFilter, page, limit int) ([]service.VendorSummary, int64, error) {
	return nil, 0, nil
}

func (s *fakeVendorService) Get(ctx context.Context, id string) (*model.Vendor, error) {
	return nil, service.ErrVendorNotFound
}

func (s *fakeVendorService) Update(ctx context.Context, id string, req service.UpdateVendorRequest, actorID *uuid.UUID) (*model.Vendor, error) {
	return nil, service.ErrVendorNotFound
}

func (s *fakeVendorService) Delete(ctx context.Context, id string, actorID *uuid.UUID) error {
	return service.ErrVendorNotFound
}

func (s *fakeVendorService) VisibleAgreements(ctx context.Context, id string) ([]string, error) {
	return nil, service.ErrVendorNotFound
}

func (s *fakeVendorService) Addresses(ctx context.Context, id string) ([]model.VendorAddress, error) {
	return nil, service.ErrVendorNotFound
}

func (s *fakeVendorService) AddAddress(ctx context.Context, id string, req service.AddressRequest) (*model.VendorAddress, error) {
	return nil, service.ErrVendorNotFound
}

func (s *fakeVendorService) BankInfo(ctx context.Context, id string) (*model.VendorBankInfo, error) {
	return s.bankInfo, s.bankInfoErr
}

func (s *fakeVendorService) SetBankInfo(ctx context.Context, id string, req service.BankInfoRequest) (*model.VendorBankInfo, error) {
	return s.bankInfo, s.bankInfoErr
}

func (s *fakeVendorService) Compliance(ctx context.Context, id string) (*model.VendorCompliance, error) {
	return nil, service.ErrVendorNotFound
}

func (s *fakeVendorService) SetCompliance(ctx context.Context, id string, req service.ComplianceRequest) (*model.VendorCompliance, error) {
	return nil, service.ErrVendorNotFound
}

func (s *fakeVendorService) Agreements(ctx context.Context, id string) (*model.VendorAgreement, error) {
	return nil, service.ErrVendorNotFound
}

func (s *fakeVendorService) SetAgreements(ctx context.Context, id string, req service.AgreementsRequest) (*model.VendorAgreement, error) {
	return nil, service.ErrVendorNotFound
}

func newRegistrationRouter(svc service.VendorService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	NewVendorHandler(svc).RegisterRoutes(api)
	return router
}

// In-memory repositories for routing the registration endpoint through the
// real vendor service.

type stubVendorRepo struct {
	created []*model.Vendor
}

func (r *stubVendorRepo) Create(ctx context.Context, vendor *model.Vendor) error {
	r.created = append(r.created, vendor)
	return nil
}

func (r *stubVendorRepo) Update(ctx context.Context, vendor *model.Vendor) error { return nil }

func (r *stubVendorRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *stubVendorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVendorRepo) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVendorRepo) FindByEmail(ctx context.Context, email string) (*model.Vendor, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVendorRepo) List(ctx context.Context, filter repository.VendorFilter, page, limit int) ([]model.Vendor, int64, error) {
	return nil, 0, nil
}

func (r *stubVendorRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	return 0, nil
}

type stubDraftRepo struct{}

func (r *stubDraftRepo) Upsert(ctx context.Context, draft *model.RegistrationDraft) error { return nil }

func (r *stubDraftRepo) FindByToken(ctx context.Context, token string) (*model.RegistrationDraft, error) {
	return nil, nil
}

func (r *stubDraftRepo) DeleteByToken(ctx context.Context, token string) error { return nil }

type stubAuditRepo struct{}

func (r *stubAuditRepo) Log(ctx context.Context, entry *model.AuditLog) error { return nil }

func (r *stubAuditRepo) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	return nil, 0, nil
}

type stubTxManager struct{}

func (t *stubTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// newLiveRegistrationRouter wires the real vendor service over in-memory
// repositories so requests exercise binding, validation and response shaping
// together.
func newLiveRegistrationRouter() (*gin.Engine, *stubVendorRepo) {
	vendors := &stubVendorRepo{}
	svc := service.NewVendorService(vendors, &stubDraftRepo{}, &stubAuditRepo{}, &stubTxManager{}, nil)
	return newRegistrationRouter(svc), vendors
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterReturnsCreated(t *testing.T) {
	svc := &fakeVendorService{
		registerRes: &service.RegistrationResponse{
			ID:         uuid.NewString(),
			VendorCode: "VNDA1B2C3D4",
			Status:     model.VendorStatusPending,
			Message:    "Vendor registration submitted successfully",
		},
	}
	router := newRegistrationRouter(svc)

	w := postJSON(t, router, "/api/v1/vendors/public-registration?draft_token=tok-123", workflow.Form{
		CompanyName: "Acme Components Pvt Ltd",
		Email:       "asha@acme.example",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var res struct {
		Error string `json:"error"`
		Data  struct {
			VendorCode string `json:"vendor_code"`
			Status     string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Empty(t, res.Error)
	assert.Equal(t, "VNDA1B2C3D4", res.Data.VendorCode)
	assert.Equal(t, model.VendorStatusPending, res.Data.Status)

	assert.Equal(t, "tok-123", svc.lastToken)
	assert.Equal(t, "Acme Components Pvt Ltd", svc.lastForm.CompanyName)
}

func TestRegisterBindsSnakeCaseBody(t *testing.T) {
	svc := &fakeVendorService{registerRes: &service.RegistrationResponse{}}
	router := newRegistrationRouter(svc)

	body := []byte(`{
		"company_name": "Acme Components Pvt Ltd",
		"country_origin": "IN",
		"contact_person_name": "Asha Rao",
		"email": "asha@acme.example",
		"ifsc_code": "HDFC0001234",
		"msme_status": "registered"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vendors/public-registration", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, "Acme Components Pvt Ltd", svc.lastForm.CompanyName)
	assert.Equal(t, "IN", svc.lastForm.CountryOrigin)
	assert.Equal(t, "Asha Rao", svc.lastForm.ContactPersonName)
	assert.Equal(t, "HDFC0001234", svc.lastForm.IFSCCode)
	assert.Equal(t, workflow.MSMERegistered, svc.lastForm.MSMEStatus)
}

func TestRegisterValidationFailureShape(t *testing.T) {
	router, vendors := newLiveRegistrationRouter()

	body := []byte(`{
		"company_name": "Acme Components Pvt Ltd",
		"country_origin": "IN",
		"ifsc_code": "hdfc0001234"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vendors/public-registration", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, vendors.created)

	var res struct {
		Error  string `json:"error"`
		Detail []struct {
			Loc  []string `json:"loc"`
			Msg  string   `json:"msg"`
			Type string   `json:"type"`
		} `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "Validation failed", res.Error)

	byField := map[string]struct{ msg, typ string }{}
	for _, d := range res.Detail {
		require.Len(t, d.Loc, 2)
		require.Equal(t, "body", d.Loc[0])
		_, dup := byField[d.Loc[1]]
		require.False(t, dup, "field %q reported twice", d.Loc[1])
		if !strings.HasPrefix(d.Loc[1], "agreements.") {
			assert.Equal(t, strings.ToLower(d.Loc[1]), d.Loc[1], "field %q is not snake_case", d.Loc[1])
		}
		byField[d.Loc[1]] = struct{ msg, typ string }{d.Msg, d.Type}
	}

	email, ok := byField["email"]
	require.True(t, ok)
	assert.Equal(t, "field required", email.msg)
	assert.Equal(t, "value_error.missing", email.typ)

	ifsc, ok := byField["ifsc_code"]
	require.True(t, ok)
	assert.Equal(t, "Invalid IFSC code format", ifsc.msg)
	assert.Equal(t, "value_error", ifsc.typ)

	// The provided fields are not reported at all.
	_, reported := byField["company_name"]
	assert.False(t, reported)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := &fakeVendorService{registerErr: service.ErrEmailRegistered}
	router := newRegistrationRouter(svc)

	w := postJSON(t, router, "/api/v1/vendors/public-registration", workflow.Form{Email: "asha@acme.example"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterMalformedBody(t *testing.T) {
	router := newRegistrationRouter(&fakeVendorService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vendors/public-registration", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicAgreementsEndpoint(t *testing.T) {
	router := newRegistrationRouter(&fakeVendorService{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/vendors/public-registration/agreements?country=FR&supplier_group=odm-amber", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data struct {
			Agreements []string `json:"agreements"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, []string{"fourM", "codeOfConduct", "selfDeclaration"}, res.Data.Agreements)
}
