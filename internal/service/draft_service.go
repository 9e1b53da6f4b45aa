package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vendorhub/internal/model"
	"vendorhub/internal/repository"
	"vendorhub/internal/workflow"
)

var (
	ErrDraftNotFound = errors.New("registration draft not found")
	ErrInvalidToken  = errors.New("draft token is required")
	ErrInvalidStep   = errors.New("draft step must be between 1 and 6")
)

type DraftResponse struct {
	Token       string        `json:"token"`
	Form        workflow.Form `json:"form"`
	CurrentStep int           `json:"current_step"`
	UpdatedAt   string        `json:"updated_at"`
}

// DraftService persists in-progress registrations so an applicant can resume
// the wizard later. Drafts are never validated: a half-finished form is the
// whole point.
type DraftService interface {
	Save(ctx context.Context, token string, form workflow.Form, currentStep int) (*DraftResponse, error)
	Get(ctx context.Context, token string) (*DraftResponse, error)
	Delete(ctx context.Context, token string) error
}

type draftService struct {
	drafts repository.DraftRepository
}

func NewDraftService(drafts repository.DraftRepository) DraftService {
	return &draftService{drafts: drafts}
}

func (s *draftService) Save(ctx context.Context, token string, form workflow.Form, currentStep int) (*DraftResponse, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	if currentStep < workflow.FirstStep || currentStep > workflow.LastStep {
		return nil, ErrInvalidStep
	}

	payload, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize draft: %w", err)
	}

	draft := &model.RegistrationDraft{
		Token:       token,
		Payload:     string(payload),
		CurrentStep: currentStep,
	}
	if err := s.drafts.Upsert(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	return &DraftResponse{
		Token:       token,
		Form:        form,
		CurrentStep: currentStep,
		UpdatedAt:   time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *draftService) Get(ctx context.Context, token string) (*DraftResponse, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	draft, err := s.drafts.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, ErrDraftNotFound
	}

	var form workflow.Form
	if err := json.Unmarshal([]byte(draft.Payload), &form); err != nil {
		return nil, fmt.Errorf("failed to decode draft payload: %w", err)
	}

	return &DraftResponse{
		Token:       draft.Token,
		Form:        form,
		CurrentStep: draft.CurrentStep,
		UpdatedAt:   draft.UpdatedAt.Format(time.RFC3339),
	}, nil
}

func (s *draftService) Delete(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	return s.drafts.DeleteByToken(ctx, token)
}
