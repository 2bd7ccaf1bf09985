package wizard

import (
	"context"

	"tutorhub/models"
)

// WizardService drives the multi-step registration flow: one active step per
// session, field merges, validated forward transitions, free backward
// navigation, and the terminal submission.
type WizardService interface {
	StartSession(ctx context.Context, role, teacherType string) (*models.WizardSession, string, error)
	GetSession(ctx context.Context, sessionID string) (*models.WizardSession, error)
	UpdateFields(ctx context.Context, sessionID string, patch models.DraftPatch) (*models.WizardSession, error)
	StageDocument(ctx context.Context, sessionID, tag, filename, localPath string) (*models.WizardSession, error)
	GoNext(ctx context.Context, sessionID string) (*models.WizardSession, error)
	GoBack(ctx context.Context, sessionID string) (*models.WizardSession, error)
	Submit(ctx context.Context, sessionID string) (*models.SubmitResponse, error)
	CancelSession(ctx context.Context, sessionID string) error
	View(sess *models.WizardSession) models.SessionView
}

// Registrar is the registration collaborator: it creates the account from the
// fully assembled payload.
type Registrar interface {
	Register(ctx context.Context, payload models.RegistrationPayload) (*models.CreatedAccount, error)
}

// DocumentUploader is the file-upload collaborator. Uploads are tagged with
// their semantic field name and associated to the pending session, since no
// user id exists yet; the collaborator must support that association.
type DocumentUploader interface {
	Upload(ctx context.Context, localPath, tag, sessionID string) (string, error)
}

// BankTokenizer turns the teacher's IBAN into an opaque bank token so the
// registration payload never carries raw banking credentials.
type BankTokenizer interface {
	TokenizeIBAN(ctx context.Context, iban, holderName string) (string, error)
}

// DefaultWizardService is the production implementation.
type DefaultWizardService struct {
	Sessions   SessionStore
	Registrar  Registrar
	Uploader   DocumentUploader
	BankTokens BankTokenizer
}
