package service

import (
	"context"
	"testing"

	"vendorhub/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftSaveAndGetRoundTrip(t *testing.T) {
	drafts := newFakeDraftRepo()
	svc := NewDraftService(drafts)
	ctx := context.Background()

	form := workflow.Form{
		CompanyName:   "Acme Components Pvt Ltd",
		CountryOrigin: "IN",
		Email:         "asha@acme.example",
		Agreements:    map[string]bool{workflow.AgreementNDA: true},
	}

	saved, err := svc.Save(ctx, "tok-1", form, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, saved.CurrentStep)

	got, err := svc.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, form, got.Form)
	assert.Equal(t, 3, got.CurrentStep)

	// Last write wins for the same token.
	form.CompanyName = "Acme Components Limited"
	_, err = svc.Save(ctx, "tok-1", form, 4)
	require.NoError(t, err)

	got, err = svc.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Components Limited", got.Form.CompanyName)
	assert.Equal(t, 4, got.CurrentStep)
}

func TestDraftSaveRejectsBadInput(t *testing.T) {
	svc := NewDraftService(newFakeDraftRepo())
	ctx := context.Background()

	_, err := svc.Save(ctx, "", workflow.Form{}, 1)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Save(ctx, "tok-1", workflow.Form{}, 0)
	assert.ErrorIs(t, err, ErrInvalidStep)

	_, err = svc.Save(ctx, "tok-1", workflow.Form{}, 7)
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestDraftGetAndDeleteMissing(t *testing.T) {
	drafts := newFakeDraftRepo()
	svc := NewDraftService(drafts)
	ctx := context.Background()

	_, err := svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrDraftNotFound)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Deleting a token that was never saved is not an error.
	assert.NoError(t, svc.Delete(ctx, "missing"))
}

func TestDraftDeleteRemoves(t *testing.T) {
	drafts := newFakeDraftRepo()
	svc := NewDraftService(drafts)
	ctx := context.Background()

	_, err := svc.Save(ctx, "tok-1", workflow.Form{CompanyName: "Acme"}, 2)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "tok-1"))

	_, err = svc.Get(ctx, "tok-1")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
