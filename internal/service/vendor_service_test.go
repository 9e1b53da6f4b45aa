package service

import (
	"context"
	"strings"
	"testing"

	"vendorhub/internal/model"
	"vendorhub/internal/workflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDraftRepo struct {
	drafts  map[string]*model.RegistrationDraft
	calls   int
	deleted []string
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{drafts: map[string]*model.RegistrationDraft{}}
}

func (r *fakeDraftRepo) Upsert(ctx context.Context, draft *model.RegistrationDraft) error {
	r.calls++
	r.drafts[draft.Token] = draft
	return nil
}

func (r *fakeDraftRepo) FindByToken(ctx context.Context, token string) (*model.RegistrationDraft, error) {
	r.calls++
	return r.drafts[token], nil
}

func (r *fakeDraftRepo) DeleteByToken(ctx context.Context, token string) error {
	r.calls++
	r.deleted = append(r.deleted, token)
	delete(r.drafts, token)
	return nil
}

type vendorFixture struct {
	vendors *fakeVendorRepo
	drafts  *fakeDraftRepo
	audits  *fakeAuditRepo
	tx      *fakeTxManager
	hub     *fakeHub
	svc     VendorService
}

func newVendorFixture(existing ...*model.Vendor) *vendorFixture {
	f := &vendorFixture{
		vendors: newFakeVendorRepo(existing...),
		drafts:  newFakeDraftRepo(),
		audits:  &fakeAuditRepo{},
		tx:      &fakeTxManager{},
		hub:     &fakeHub{},
	}
	f.svc = NewVendorService(f.vendors, f.drafts, f.audits, f.tx, f.hub)
	return f
}

// registrationForm returns a submission that passes every wizard step for an
// Indian vendor.
func registrationForm() workflow.Form {
	return workflow.Form{
		BusinessVertical:      "Manufacturing",
		CompanyName:           "Acme Components Pvt Ltd",
		CountryOrigin:         "IN",
		RegistrationNumber:    "U12345MH2010PTC123456",
		ContactPersonName:     "Asha Rao",
		Email:                 "asha@acme.example",
		PhoneNumber:           "+91 9876543210",
		YearEstablished:       "2010",
		RegisteredAddress:     "12 Industrial Estate",
		RegisteredCity:        "Pune",
		RegisteredState:       "Maharashtra",
		RegisteredCountry:     "India",
		RegisteredPincode:     "411001",
		SupplyAddress:         "Plot 4, MIDC",
		SupplyCity:            "Pune",
		SupplyState:           "Maharashtra",
		SupplyCountry:         "India",
		SupplyPincode:         "411019",
		BankName:              "HDFC Bank",
		AccountNumber:         "50100123456789",
		AccountType:           "current",
		BranchName:            "Pune Camp",
		BankAddress:           "MG Road, Pune",
		BankProof:             "cancelled_cheque.pdf",
		IFSCCode:              "HDFC0001234",
		SupplierType:          "manufacturer",
		SupplierGroup:         "raw-material",
		SupplierCategory:      "category-a",
		AnnualTurnover:        "25000000",
		IndustrySector:        "electronics",
		ProductsServices:      "Heat exchanger coils",
		EmployeeCount:         "51-200",
		MSMEStatus:            workflow.MSMERegistered,
		MSMECategory:          "small",
		MSMENumber:            "UDYAM-MH-26-0012345",
		MSMECertificate:       "udyam.pdf",
		PreferredCurrency:     "INR",
		TaxRegistrationNumber: "TRN-001",
		PANNumber:             "ABCDE1234F",
		GSTNumber:             "27ABCDE1234F1Z5",
		GTARegistration:       "registered",
		Agreements: map[string]bool{
			workflow.AgreementNDA:           true,
			workflow.AgreementSQA:           true,
			workflow.AgreementFourM:         true,
			workflow.AgreementCodeOfConduct: true,
			workflow.AgreementCompliance:    true,
			workflow.AgreementSelfDecl:      true,
		},
	}
}

func TestRegisterInvalidFormWritesNothing(t *testing.T) {
	f := newVendorFixture()

	form := registrationForm()
	form.CompanyName = ""
	form.IFSCCode = "hdfc0001234"

	res, err := f.svc.Register(context.Background(), form, "tok-1")
	require.Nil(t, res)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	// The missing cross-cutting field is reported first, then the sorted
	// per-field findings.
	require.GreaterOrEqual(t, len(verr.Fields), 2)
	assert.Equal(t, []string{"body", "company_name"}, verr.Fields[0].Loc)
	assert.Equal(t, "value_error.missing", verr.Fields[0].Type)

	var sawIFSC bool
	for _, fe := range verr.Fields {
		if fe.Loc[1] == "ifsc_code" {
			sawIFSC = true
			assert.Equal(t, "Invalid IFSC code format", fe.Msg)
			assert.Equal(t, "value_error", fe.Type)
		}
	}
	assert.True(t, sawIFSC)

	assert.Zero(t, f.vendors.calls+f.drafts.calls+f.audits.calls+f.tx.calls)
	assert.Empty(t, f.hub.events)
}

func TestRegisterEmptyFormReportsEachFieldOnce(t *testing.T) {
	f := newVendorFixture()

	_, err := f.svc.Register(context.Background(), workflow.Form{}, "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	seen := map[string]int{}
	for _, fe := range verr.Fields {
		require.Len(t, fe.Loc, 2)
		key := fe.Loc[1]
		seen[key]++
		// Agreement entries are keyed by agreement id, not by a form field.
		if !strings.HasPrefix(key, "agreements.") {
			assert.Equal(t, strings.ToLower(key), key, "field %q is not snake_case", key)
		}
	}
	for key, n := range seen {
		assert.Equal(t, 1, n, "field %q reported %d times", key, n)
	}

	// The cross-cutting required fields keep their pydantic-style entry and
	// are not repeated with a step message.
	assert.Equal(t, 1, seen["company_name"])
	assert.Equal(t, 1, seen["email"])
	assert.Equal(t, 1, seen["business_vertical"])
	assert.Equal(t, "value_error.missing", verr.Fields[0].Type)
}

func TestRegisterCreatesVendorGraph(t *testing.T) {
	f := newVendorFixture()

	res, err := f.svc.Register(context.Background(), registrationForm(), "tok-1")
	require.NoError(t, err)

	assert.Equal(t, model.VendorStatusPending, res.Status)
	assert.True(t, strings.HasPrefix(res.VendorCode, "VND"))
	assert.Len(t, res.VendorCode, 11)
	assert.Equal(t, res.VendorCode, strings.ToUpper(res.VendorCode))

	require.Len(t, f.vendors.vendors, 1)
	var vendor *model.Vendor
	for _, v := range f.vendors.vendors {
		vendor = v
	}
	assert.Equal(t, model.VendorStatusPending, vendor.Status)
	assert.Equal(t, model.MSMEStatusMSME, vendor.MSMEStatus)
	assert.Equal(t, "small", vendor.MSMECategory)
	require.NotNil(t, vendor.YearEstablished)
	assert.Equal(t, 2010, *vendor.YearEstablished)
	require.NotNil(t, vendor.AnnualTurnover)
	assert.Equal(t, "25000000", vendor.AnnualTurnover.String())
	require.Len(t, vendor.Addresses, 2)
	assert.Equal(t, model.AddressTypeRegistered, vendor.Addresses[0].AddressType)
	assert.Equal(t, model.AddressTypeSupply, vendor.Addresses[1].AddressType)
	require.NotNil(t, vendor.BankInfo)
	assert.Equal(t, "HDFC0001234", vendor.BankInfo.IFSCCode)

	require.Len(t, f.audits.entries, 1)
	assert.Equal(t, model.ActionVendorRegistered, f.audits.entries[0].Action)
	assert.Equal(t, []string{"tok-1"}, f.drafts.deleted)
	assert.Equal(t, []string{"vendor_registered"}, f.hub.events)
	assert.Equal(t, 1, f.tx.calls)
}

func TestRegisterWithoutDraftTokenSkipsDraftCleanup(t *testing.T) {
	f := newVendorFixture()

	_, err := f.svc.Register(context.Background(), registrationForm(), "")
	require.NoError(t, err)
	assert.Empty(t, f.drafts.deleted)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newVendorFixture(&model.Vendor{
		ID:     uuid.New(),
		Email:  "asha@acme.example",
		Status: model.VendorStatusPending,
	})

	res, err := f.svc.Register(context.Background(), registrationForm(), "")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrEmailRegistered)
	assert.Zero(t, f.tx.calls)
}

func TestUpdateTerminalVendorRefused(t *testing.T) {
	for _, status := range []string{model.VendorStatusApproved, model.VendorStatusRejected} {
		vendor := &model.Vendor{ID: uuid.New(), Status: status}
		f := newVendorFixture(vendor)

		_, err := f.svc.Update(context.Background(), vendor.ID.String(), UpdateVendorRequest{
			ContactPersonName: "New Contact",
		}, nil)
		assert.ErrorIs(t, err, ErrVendorNotEditable, "status %s", status)
	}
}

func TestUpdateResubmitsReturnedVendor(t *testing.T) {
	vendor := &model.Vendor{ID: uuid.New(), Status: model.VendorStatusPendingLevel1}
	f := newVendorFixture(vendor)

	updated, err := f.svc.Update(context.Background(), vendor.ID.String(), UpdateVendorRequest{
		ContactPersonName: "Asha Rao",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", updated.ContactPersonName)
	assert.Equal(t, model.VendorStatusPending, updated.Status)
}

func TestSetBankInfoCreatesRecord(t *testing.T) {
	vendor := &model.Vendor{ID: uuid.New(), Status: model.VendorStatusPending, CompanyName: "Acme"}
	f := newVendorFixture(vendor)

	info, err := f.svc.SetBankInfo(context.Background(), vendor.ID.String(), BankInfoRequest{
		BankName:      "HDFC Bank",
		AccountNumber: "50100123456789",
		IFSCCode:      "HDFC0001234",
	})
	require.NoError(t, err)
	assert.Equal(t, vendor.ID, info.VendorID)
	assert.Equal(t, "HDFC0001234", info.IFSCCode)
	assert.Equal(t, 1, f.tx.calls)
	require.Len(t, f.audits.entries, 1)
	assert.Equal(t, model.ActionVendorUpdated, f.audits.entries[0].Action)
}

func TestSetBankInfoConflictsWhenPresent(t *testing.T) {
	vendor := &model.Vendor{
		ID:       uuid.New(),
		Status:   model.VendorStatusPending,
		BankInfo: &model.VendorBankInfo{BankName: "HDFC Bank"},
	}
	f := newVendorFixture(vendor)

	_, err := f.svc.SetBankInfo(context.Background(), vendor.ID.String(), BankInfoRequest{
		BankName:      "ICICI Bank",
		AccountNumber: "000123",
	})
	assert.ErrorIs(t, err, ErrDetailExists)
	assert.Zero(t, f.tx.calls)
}

func TestAddAddressRejectsDuplicateType(t *testing.T) {
	vendor := &model.Vendor{
		ID:     uuid.New(),
		Status: model.VendorStatusPending,
		Addresses: []model.VendorAddress{
			{AddressType: model.AddressTypeRegistered, City: "Pune"},
		},
	}
	f := newVendorFixture(vendor)

	_, err := f.svc.AddAddress(context.Background(), vendor.ID.String(), AddressRequest{
		AddressType: model.AddressTypeRegistered,
		Address:     "12 Industrial Estate",
		City:        "Pune",
		State:       "Maharashtra",
		Country:     "India",
		Pincode:     "411001",
	})
	assert.ErrorIs(t, err, ErrDetailExists)

	added, err := f.svc.AddAddress(context.Background(), vendor.ID.String(), AddressRequest{
		AddressType: model.AddressTypeSupply,
		Address:     "Plot 4, MIDC",
		City:        "Pune",
		State:       "Maharashtra",
		Country:     "India",
		Pincode:     "411019",
	})
	require.NoError(t, err)
	assert.Equal(t, vendor.ID, added.VendorID)

	_, err = f.svc.AddAddress(context.Background(), vendor.ID.String(), AddressRequest{
		AddressType: "billing",
		Address:     "x", City: "x", State: "x", Country: "x", Pincode: "1",
	})
	assert.Error(t, err)
}

func TestDetailGettersWhenMissing(t *testing.T) {
	vendor := &model.Vendor{ID: uuid.New(), Status: model.VendorStatusPending}
	f := newVendorFixture(vendor)
	ctx := context.Background()
	id := vendor.ID.String()

	addresses, err := f.svc.Addresses(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, addresses)

	_, err = f.svc.BankInfo(ctx, id)
	assert.ErrorIs(t, err, ErrDetailNotFound)
	_, err = f.svc.Compliance(ctx, id)
	assert.ErrorIs(t, err, ErrDetailNotFound)
	_, err = f.svc.Agreements(ctx, id)
	assert.ErrorIs(t, err, ErrDetailNotFound)

	_, err = f.svc.BankInfo(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrVendorNotFound)
}

func TestSetAgreementsCreatesRecord(t *testing.T) {
	vendor := &model.Vendor{ID: uuid.New(), Status: model.VendorStatusPending}
	f := newVendorFixture(vendor)

	agreements, err := f.svc.SetAgreements(context.Background(), vendor.ID.String(), AgreementsRequest{
		NDA:           true,
		FourM:         true,
		CodeOfConduct: true,
	})
	require.NoError(t, err)
	assert.True(t, agreements.NDA)
	assert.True(t, agreements.FourM)
	assert.False(t, agreements.SQA)

	_, err = f.svc.SetAgreements(context.Background(), vendor.ID.String(), AgreementsRequest{})
	assert.ErrorIs(t, err, ErrDetailExists)
}
