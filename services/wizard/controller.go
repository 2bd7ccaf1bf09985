package wizard

import (
	"context"
	"fmt"
	"os"
	"time"

	"tutorhub/config"
	"tutorhub/models"
	"tutorhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartSession opens a wizard session seeded at the first step of the role's
// graph and issues the session token for subsequent calls. Role selection
// always succeeds for a known role.
func (s *DefaultWizardService) StartSession(ctx context.Context, role, teacherType string) (*models.WizardSession, string, error) {
	graph, err := GraphForRole(role)
	if err != nil {
		return nil, "", err
	}
	if teacherType != "" {
		if role != models.RoleTeacher {
			return nil, "", fmt.Errorf("teacher type is only valid for the teacher flow")
		}
		if teacherType != models.TeacherTypeStudent && teacherType != models.TeacherTypeProfessional {
			return nil, "", fmt.Errorf("unknown teacher type %q", teacherType)
		}
	}

	now := time.Now()
	sess := &models.WizardSession{
		SessionID:     uuid.New().String(),
		Role:          role,
		TeacherType:   teacherType,
		CurrentStep:   graph.First(),
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateSessionToken(sess.SessionID, sessionTTL())
	if err != nil {
		utils.GetLogger().Error("StartSession: failed to generate session token", zap.Error(err))
		return nil, "", fmt.Errorf("failed to start registration session")
	}
	return sess, token, nil
}

func sessionTTL() time.Duration {
	if config.AppConfig.SessionTTL > 0 {
		return config.AppConfig.SessionTTL
	}
	return 30 * time.Minute
}

// GetSession returns the current session state.
func (s *DefaultWizardService) GetSession(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	return s.Sessions.Get(ctx, sessionID)
}

// UpdateFields merges field-level updates into the draft, last write wins.
// No validation happens here; validity is a separate read-only query.
func (s *DefaultWizardService) UpdateFields(ctx context.Context, sessionID string, patch models.DraftPatch) (*models.WizardSession, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	applyPatch(sess, patch)
	sess.LastUpdatedAt = time.Now()
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func applyPatch(sess *models.WizardSession, p models.DraftPatch) {
	d := &sess.Draft
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&d.FirstName, p.FirstName)
	setString(&d.LastName, p.LastName)
	setString(&d.Email, p.Email)
	setString(&d.ConfirmEmail, p.ConfirmEmail)
	setString(&d.Password, p.Password)
	setString(&d.ConfirmPassword, p.ConfirmPassword)
	setString(&d.Grade, p.Grade)
	setString(&d.ChildFirstName, p.ChildFirstName)
	setString(&d.ChildLastName, p.ChildLastName)
	setString(&d.ChildGrade, p.ChildGrade)
	setString(&d.SponsorCode, p.SponsorCode)
	setString(&d.IBAN, p.IBAN)
	setString(&d.Address, p.Address)
	setString(&d.PostalCode, p.PostalCode)
	setString(&d.City, p.City)
	setString(&d.BirthDate, p.BirthDate)
	if p.Phone != nil {
		d.Phone = NormalizePhone(*p.Phone)
	}
	if p.Subjects != nil {
		d.Subjects = *p.Subjects
	}
	// Only the teacher flow carries a variant tag; other roles ignore it.
	if p.TeacherType != nil && sess.Role == models.RoleTeacher {
		sess.TeacherType = *p.TeacherType
	}
}

// StageDocument records a staged file handle in the draft. Staging a new file
// under the same tag replaces the previous handle and removes the superseded
// file from disk, so the replacement will be uploaded fresh at submission.
func (s *DefaultWizardService) StageDocument(ctx context.Context, sessionID, tag, filename, localPath string) (*models.WizardSession, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	handle := &models.FileHandle{Tag: tag, Filename: filename, LocalPath: localPath}
	var prev *models.FileHandle
	switch tag {
	case models.DocumentTagID:
		prev = sess.Draft.IDDocument
		sess.Draft.IDDocument = handle
	case models.DocumentTagAddressProof:
		prev = sess.Draft.AddressProof
		sess.Draft.AddressProof = handle
	default:
		return nil, fmt.Errorf("unknown document tag %q", tag)
	}
	sess.LastUpdatedAt = time.Now()
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	if prev != nil && prev.LocalPath != "" && prev.LocalPath != localPath {
		removeStagedFile(prev.LocalPath)
	}
	return sess, nil
}

// GoNext advances to the next node of the role's graph. The active step's
// validator is re-checked here regardless of what the UI showed; when it
// fails, or the terminal step is already active, the call is a no-op.
func (s *DefaultWizardService) GoNext(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	graph, err := GraphForRole(sess.Role)
	if err != nil {
		return nil, err
	}
	if !StepValid(sess, sess.CurrentStep) {
		utils.GetLogger().Debug("GoNext refused: step invalid",
			zap.String("sessionID", sessionID), zap.String("step", string(sess.CurrentStep)))
		return sess, nil
	}
	next, ok := graph.Next(sess.CurrentStep)
	if !ok {
		return sess, nil
	}
	sess.CurrentStep = next
	sess.LastUpdatedAt = time.Now()
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// GoBack moves to the previous node. Always permitted, never validated, and
// the draft is not rolled back. At the first node it is a no-op.
func (s *DefaultWizardService) GoBack(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	graph, err := GraphForRole(sess.Role)
	if err != nil {
		return nil, err
	}
	prev, ok := graph.Prev(sess.CurrentStep)
	if !ok {
		return sess, nil
	}
	sess.CurrentStep = prev
	sess.LastUpdatedAt = time.Now()
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// CancelSession abandons the draft: staged files are removed from disk and
// the session is dropped.
func (s *DefaultWizardService) CancelSession(ctx context.Context, sessionID string) error {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	s.cleanupStagedFiles(sess)
	return s.Sessions.Delete(ctx, sessionID)
}

func (s *DefaultWizardService) cleanupStagedFiles(sess *models.WizardSession) {
	for _, h := range []*models.FileHandle{sess.Draft.IDDocument, sess.Draft.AddressProof} {
		if h == nil || h.LocalPath == "" {
			continue
		}
		removeStagedFile(h.LocalPath)
	}
}

func removeStagedFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		utils.GetLogger().Warn("Failed to remove staged document", zap.String("path", path), zap.Error(err))
	}
}

// View builds the client-facing read model. Credentials and server-local file
// paths never leave the service.
func (s *DefaultWizardService) View(sess *models.WizardSession) models.SessionView {
	draft := sess.Draft
	draft.Password = ""
	draft.ConfirmPassword = ""
	if draft.IDDocument != nil {
		redacted := *draft.IDDocument
		redacted.LocalPath = ""
		draft.IDDocument = &redacted
	}
	if draft.AddressProof != nil {
		redacted := *draft.AddressProof
		redacted.LocalPath = ""
		draft.AddressProof = &redacted
	}
	return models.SessionView{
		SessionID:   sess.SessionID,
		Role:        sess.Role,
		TeacherType: sess.TeacherType,
		CurrentStep: sess.CurrentStep,
		CanProceed:  StepValid(sess, sess.CurrentStep),
		Draft:       draft,
	}
}
