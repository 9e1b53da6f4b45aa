package service

import (
	"context"
	"testing"

	"vendorhub/internal/model"
	"vendorhub/internal/repository"
	"vendorhub/internal/workflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// In-memory fakes. Each fake counts every call so the fail-closed tests can
// assert that an invalid request never reaches storage.

type fakeVendorRepo struct {
	vendors map[uuid.UUID]*model.Vendor
	calls   int
}

func newFakeVendorRepo(vendors ...*model.Vendor) *fakeVendorRepo {
	r := &fakeVendorRepo{vendors: map[uuid.UUID]*model.Vendor{}}
	for _, v := range vendors {
		r.vendors[v.ID] = v
	}
	return r
}

func (r *fakeVendorRepo) Create(ctx context.Context, vendor *model.Vendor) error {
	r.calls++
	r.vendors[vendor.ID] = vendor
	return nil
}

func (r *fakeVendorRepo) Update(ctx context.Context, vendor *model.Vendor) error {
	r.calls++
	r.vendors[vendor.ID] = vendor
	return nil
}

func (r *fakeVendorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.calls++
	delete(r.vendors, id)
	return nil
}

func (r *fakeVendorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	r.calls++
	v, ok := r.vendors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *fakeVendorRepo) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeVendorRepo) FindByEmail(ctx context.Context, email string) (*model.Vendor, error) {
	r.calls++
	for _, v := range r.vendors {
		if v.Email == email {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVendorRepo) List(ctx context.Context, filter repository.VendorFilter, page, limit int) ([]model.Vendor, int64, error) {
	r.calls++
	out := make([]model.Vendor, 0, len(r.vendors))
	for _, v := range r.vendors {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *fakeVendorRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	r.calls++
	var n int64
	for _, v := range r.vendors {
		if v.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeApprovalRepo struct {
	decisions []*model.VendorApproval
	calls     int
}

func (r *fakeApprovalRepo) Create(ctx context.Context, d *model.VendorApproval) error {
	r.calls++
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.decisions = append(r.decisions, d)
	return nil
}

func (r *fakeApprovalRepo) Update(ctx context.Context, d *model.VendorApproval) error {
	r.calls++
	for i, existing := range r.decisions {
		if existing.ID == d.ID {
			r.decisions[i] = d
		}
	}
	return nil
}

func (r *fakeApprovalRepo) FindByVendorAndLevel(ctx context.Context, vendorID uuid.UUID, level string) (*model.VendorApproval, error) {
	r.calls++
	for _, d := range r.decisions {
		if d.VendorID == vendorID && d.Level == level {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeApprovalRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.VendorApproval, error) {
	r.calls++
	var out []model.VendorApproval
	for _, d := range r.decisions {
		if d.VendorID == vendorID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeApprovalRepo) ListPendingForApprover(ctx context.Context, approverID uuid.UUID, level string, page, limit int) ([]model.VendorApproval, int64, error) {
	r.calls++
	return nil, 0, nil
}

func (r *fakeApprovalRepo) CountForApprover(ctx context.Context, approverID uuid.UUID, status string) (int64, error) {
	r.calls++
	return 0, nil
}

type fakeAuditRepo struct {
	entries []*model.AuditLog
	calls   int
}

func (r *fakeAuditRepo) Log(ctx context.Context, entry *model.AuditLog) error {
	r.calls++
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeAuditRepo) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	r.calls++
	return nil, 0, nil
}

// fakeTxManager runs the callback directly; the context plumbing of the real
// manager is irrelevant to these tests.
type fakeTxManager struct {
	calls int
}

func (t *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type fakeHub struct {
	events []string
}

func (h *fakeHub) Emit(event string, payload interface{}) {
	h.events = append(h.events, event)
}

type approvalFixture struct {
	vendors   *fakeVendorRepo
	approvals *fakeApprovalRepo
	audits    *fakeAuditRepo
	tx        *fakeTxManager
	hub       *fakeHub
	svc       ApprovalService
	vendor    *model.Vendor
	approver  uuid.UUID
}

func newApprovalFixture(status string) *approvalFixture {
	vendor := &model.Vendor{
		ID:          uuid.New(),
		VendorCode:  "VNDA1B2C3D4",
		CompanyName: "Acme Components Pvt Ltd",
		Email:       "asha@acme.example",
		Status:      status,
	}
	f := &approvalFixture{
		vendors:   newFakeVendorRepo(vendor),
		approvals: &fakeApprovalRepo{},
		audits:    &fakeAuditRepo{},
		tx:        &fakeTxManager{},
		hub:       &fakeHub{},
		vendor:    vendor,
		approver:  uuid.New(),
	}
	f.svc = NewApprovalService(f.vendors, f.approvals, f.audits, f.tx, f.hub)
	return f
}

func (f *approvalFixture) totalRepoCalls() int {
	return f.vendors.calls + f.approvals.calls + f.audits.calls + f.tx.calls
}

func approveRequest(level string) ApproveVendorRequest {
	return ApproveVendorRequest{
		Level: level,
		Questionnaire: workflow.Questionnaire{
			SupplierTermOfPayment:  "30ADVBD",
			SupplierPaymentMethod:  "NEFT/RTGS",
			SupplierDeliveryTerms:  "FOR",
			SupplierModeOfDelivery: "BY ROAD",
			SupplierGroup:          "CR-DOM",
			CommodityCode:          "AJ",
		},
	}
}

func TestApproveIncompleteQuestionnaireTouchesNothing(t *testing.T) {
	f := newApprovalFixture(model.VendorStatusPending)

	req := approveRequest(model.ApprovalLevelFinal)
	req.Questionnaire.CommodityCode = ""
	req.Questionnaire.SupplierGroup = "  "

	res, err := f.svc.Approve(context.Background(), f.vendor.ID.String(), f.approver.String(), req)
	require.Nil(t, res)

	var qerr *QuestionnaireError
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, map[string]string{
		"commodityCode": "Required",
		"supplierGroup": "Required",
	}, qerr.Fields)

	assert.Zero(t, f.totalRepoCalls())
	assert.Equal(t, model.VendorStatusPending, f.vendor.Status)
	assert.Empty(t, f.hub.events)
}

func TestRejectInvalidReasonTouchesNothing(t *testing.T) {
	f := newApprovalFixture(model.VendorStatusUnderReview)

	cases := []RejectVendorRequest{
		{Level: model.ApprovalLevel1},
		{Level: model.ApprovalLevel1, Reason: "bogus"},
		{Level: model.ApprovalLevel1, Reason: workflow.ReasonOther},
	}
	for _, req := range cases {
		res, err := f.svc.Reject(context.Background(), f.vendor.ID.String(), f.approver.String(), req)
		require.Nil(t, res)

		var rerr *RejectionError
		assert.ErrorAs(t, err, &rerr, "reason %q", req.Reason)
	}

	assert.Zero(t, f.totalRepoCalls())
	assert.Equal(t, model.VendorStatusUnderReview, f.vendor.Status)
}

func TestApproveFinalLevelApprovesVendor(t *testing.T) {
	f := newApprovalFixture(model.VendorStatusPending)

	res, err := f.svc.Approve(context.Background(), f.vendor.ID.String(), f.approver.String(), approveRequest(""))
	require.NoError(t, err)

	assert.Equal(t, model.ApprovalLevelFinal, res.Level)
	assert.Equal(t, model.ApprovalApproved, res.Status)
	assert.Equal(t, model.VendorStatusApproved, res.VendorStatus)
	assert.Contains(t, res.Comments, "commodityCode: AJ")
	assert.NotEmpty(t, res.ApprovedAt)

	assert.Equal(t, model.VendorStatusApproved, f.vendor.Status)
	require.NotNil(t, f.vendor.ApprovedAt)
	require.NotNil(t, f.vendor.ApprovedBy)
	assert.Equal(t, f.approver, *f.vendor.ApprovedBy)

	require.Len(t, f.audits.entries, 1)
	assert.Equal(t, model.ActionVendorApproved, f.audits.entries[0].Action)
	assert.Equal(t, []string{"vendor_approved"}, f.hub.events)
}

func TestApproveIntermediateLevelKeepsVendorUnderReview(t *testing.T) {
	f := newApprovalFixture(model.VendorStatusPending)

	res, err := f.svc.Approve(context.Background(), f.vendor.ID.String(), f.approver.String(), approveRequest(model.ApprovalLevel1))
	require.NoError(t, err)

	assert.Equal(t, model.ApprovalApproved, res.Status)
	assert.Equal(t, model.VendorStatusUnderReview, f.vendor.Status)
	assert.Nil(t, f.vendor.ApprovedAt)
	assert.Empty(t, f.hub.events, "no approval event until the final sign-off")
}

func TestApproveReDecidingALevelUpdatesInPlace(t *testing.T) {
	f := newApprovalFixture(model.VendorStatusUnderReview)
	ctx := context.Background()

	_, err := f.svc.Approve(ctx, f.vendor.ID.String(), f.approver.String(), approveRequest(model.ApprovalLevel1))
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, f.vendor.ID.String(), f.approver.String(), approveRequest(model.ApprovalLevel1))
	require.NoError(t, err)

	decisions, err := f.svc.ListForVendor(ctx, f.vendor.ID.String())
	require.NoError(t, err)
	assert.Len(t, decisions, 1)
}

func TestRejectIsTerminalAtAnyLevel(t *testing.T) {
	f := newApprovalFixture(model.VendorStatusUnderReview)

	res, err := f.svc.Reject(context.Background(), f.vendor.ID.String(), f.approver.String(), RejectVendorRequest{
		Level:   model.ApprovalLevel2,
		Reason:  workflow.ReasonComplianceIssues,
		Remarks: "Expired ISO certificate",
	})
	require.NoError(t, err)

	assert.Equal(t, model.ApprovalRejected, res.Status)
	assert.Equal(t, workflow.ReasonComplianceIssues, res.RejectionReason)
	assert.Equal(t, "Compliance Issues - Expired ISO certificate", res.Comments)
	assert.Equal(t, model.VendorStatusRejected, f.vendor.Status)
	assert.Equal(t, []string{"vendor_rejected"}, f.hub.events)

	// The vendor is now terminal; any further decision is refused.
	_, err = f.svc.Approve(context.Background(), f.vendor.ID.String(), f.approver.String(), approveRequest(""))
	assert.ErrorIs(t, err, ErrVendorTerminal)
}

func TestRejectWithOtherReasonUsesCustomText(t *testing.T) {
	f := newApprovalFixture(model.VendorStatusPending)

	res, err := f.svc.Reject(context.Background(), f.vendor.ID.String(), f.approver.String(), RejectVendorRequest{
		Reason:       workflow.ReasonOther,
		CustomReason: "Vendor already onboarded under a different code",
	})
	require.NoError(t, err)
	assert.Equal(t, "Vendor already onboarded under a different code", res.Comments)
}

func TestRequestChangesReturnsVendorForRevision(t *testing.T) {
	f := newApprovalFixture(model.VendorStatusUnderReview)

	_, err := f.svc.RequestChanges(context.Background(), f.vendor.ID.String(), f.approver.String(), RequestChangesRequest{
		Level: model.ApprovalLevel1,
	})
	assert.ErrorIs(t, err, ErrCommentRequired)
	assert.Zero(t, f.totalRepoCalls())

	res, err := f.svc.RequestChanges(context.Background(), f.vendor.ID.String(), f.approver.String(), RequestChangesRequest{
		Level:    model.ApprovalLevel1,
		Comments: "Bank proof is illegible, upload a clearer scan",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalReturnedForRevision, res.Status)
	assert.Equal(t, model.VendorStatusPendingLevel1, f.vendor.Status)
	assert.Equal(t, []string{"changes_requested"}, f.hub.events)
}

func TestApproveAfterRevisionClearsTheReturnedDecision(t *testing.T) {
	f := newApprovalFixture(model.VendorStatusUnderReview)
	ctx := context.Background()

	_, err := f.svc.RequestChanges(ctx, f.vendor.ID.String(), f.approver.String(), RequestChangesRequest{
		Level:    model.ApprovalLevelFinal,
		Comments: "Missing GST certificate",
	})
	require.NoError(t, err)
	require.Equal(t, model.VendorStatusPendingLevel1, f.vendor.Status)

	// The resubmitted application is approved at the same level; the earlier
	// returned decision is overwritten and the rollup lands on approved.
	_, err = f.svc.Approve(ctx, f.vendor.ID.String(), f.approver.String(), approveRequest(model.ApprovalLevelFinal))
	require.NoError(t, err)
	assert.Equal(t, model.VendorStatusApproved, f.vendor.Status)
}

func TestDecisionsOnTerminalVendor(t *testing.T) {
	for _, status := range []string{model.VendorStatusApproved, model.VendorStatusRejected} {
		f := newApprovalFixture(status)

		_, err := f.svc.Approve(context.Background(), f.vendor.ID.String(), f.approver.String(), approveRequest(""))
		assert.ErrorIs(t, err, ErrVendorTerminal, "status %s", status)

		_, err = f.svc.Reject(context.Background(), f.vendor.ID.String(), f.approver.String(), RejectVendorRequest{
			Reason: workflow.ReasonDuplicateVendor,
		})
		assert.ErrorIs(t, err, ErrVendorTerminal, "status %s", status)
	}
}

func TestApproveUnknownVendorAndLevel(t *testing.T) {
	f := newApprovalFixture(model.VendorStatusPending)

	_, err := f.svc.Approve(context.Background(), uuid.NewString(), f.approver.String(), approveRequest(""))
	assert.ErrorIs(t, err, ErrVendorNotFound)

	_, err = f.svc.Approve(context.Background(), f.vendor.ID.String(), f.approver.String(), approveRequest("level_9"))
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestRollupVendorStatus(t *testing.T) {
	approved := func(level string) model.VendorApproval {
		return model.VendorApproval{Level: level, Status: model.ApprovalApproved}
	}

	cases := []struct {
		name      string
		decisions []model.VendorApproval
		want      string
	}{
		{"no decisions", nil, model.VendorStatusUnderReview},
		{"intermediate approvals only", []model.VendorApproval{approved(model.ApprovalLevel1), approved(model.ApprovalLevel2)}, model.VendorStatusUnderReview},
		{"final approved alone", []model.VendorApproval{approved(model.ApprovalLevelFinal)}, model.VendorStatusApproved},
		{"final approved with clean levels", []model.VendorApproval{approved(model.ApprovalLevel1), approved(model.ApprovalLevelFinal)}, model.VendorStatusApproved},
		{"final approved but one pending", []model.VendorApproval{
			{Level: model.ApprovalLevel1, Status: model.ApprovalPending},
			approved(model.ApprovalLevelFinal),
		}, model.VendorStatusUnderReview},
		{"any rejection wins", []model.VendorApproval{
			approved(model.ApprovalLevelFinal),
			{Level: model.ApprovalLevel2, Status: model.ApprovalRejected},
		}, model.VendorStatusRejected},
		{"returned for revision", []model.VendorApproval{
			{Level: model.ApprovalLevel1, Status: model.ApprovalReturnedForRevision},
		}, model.VendorStatusPendingLevel1},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, rollupVendorStatus(tc.decisions), tc.name)
	}
}

func TestQuestionnaireOptionsFollowCountry(t *testing.T) {
	f := newApprovalFixture(model.VendorStatusPending)

	indian := f.svc.QuestionnaireOptions("IN")
	foreign := f.svc.QuestionnaireOptions("DE")

	assert.Equal(t, workflow.PaymentTermOptions(true), indian.PaymentTerms)
	assert.Equal(t, workflow.PaymentTermOptions(false), foreign.PaymentTerms)
	assert.Equal(t, workflow.SupplierGroupOptions(true), indian.SupplierGroups)
	assert.Equal(t, workflow.CommodityCodeOptions(), indian.CommodityCodes)
	assert.Equal(t, indian.PaymentMethods, foreign.PaymentMethods)

	assert.Equal(t, workflow.RejectionReasons, f.svc.RejectionReasons())
}
