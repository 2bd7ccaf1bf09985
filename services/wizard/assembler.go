package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"tutorhub/models"
	"tutorhub/utils"

	"go.uber.org/zap"
)

// ErrSubmitInFlight is returned when a second submission is attempted while
// one is already running for the same session.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// Submit orchestrates the terminal submission: defensive re-validation of
// every step, prerequisite document uploads, IBAN tokenization, then the
// registration call. On failure the draft is retained unchanged so the user
// can correct and resubmit without re-entering fields.
func (s *DefaultWizardService) Submit(ctx context.Context, sessionID string) (*models.SubmitResponse, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	graph, err := GraphForRole(sess.Role)
	if err != nil {
		return nil, err
	}
	if sess.CurrentStep != graph.Terminal() {
		return nil, fmt.Errorf("submission is only available from the %s step", graph.Terminal())
	}
	for _, node := range graph.Nodes() {
		if !StepValid(sess, node) {
			return nil, fmt.Errorf("the %s step is incomplete", node)
		}
	}

	acquired, err := s.Sessions.AcquireSubmitLock(ctx, sessionID)
	if err != nil {
		utils.GetLogger().Error("Submit: failed to acquire submit lock", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, errors.New(utils.GenericUserError)
	}
	if !acquired {
		return nil, ErrSubmitInFlight
	}
	defer func() {
		if err := s.Sessions.ReleaseSubmitLock(ctx, sessionID); err != nil {
			utils.GetLogger().Warn("Submit: failed to release submit lock", zap.String("sessionID", sessionID), zap.Error(err))
		}
	}()

	payload, err := s.assemble(ctx, sess)
	if err != nil {
		// Keep any upload URLs already recorded: a retry re-associates them
		// instead of re-uploading.
		s.retainDraft(ctx, sess)
		return nil, err
	}

	account, err := s.Registrar.Register(ctx, payload)
	if err != nil {
		s.retainDraft(ctx, sess)
		return nil, err
	}

	s.cleanupStagedFiles(sess)
	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		utils.GetLogger().Warn("Submit: failed to clear session after success", zap.String("sessionID", sessionID), zap.Error(err))
	}
	utils.GetLogger().Info("Registration submitted",
		zap.String("sessionID", sessionID), zap.String("accountID", account.ID), zap.String("role", sess.Role))
	return &models.SubmitResponse{AccountID: account.ID, NextStep: graph.FollowUp()}, nil
}

func (s *DefaultWizardService) retainDraft(ctx context.Context, sess *models.WizardSession) {
	if err := s.Sessions.Save(ctx, sess); err != nil {
		utils.GetLogger().Error("Failed to retain draft after submission failure",
			zap.String("sessionID", sess.SessionID), zap.Error(err))
	}
}

// assemble maps the accumulated flat draft into the registration API's
// payload shape, performing prerequisite uploads first for the teacher flow.
func (s *DefaultWizardService) assemble(ctx context.Context, sess *models.WizardSession) (models.RegistrationPayload, error) {
	d := &sess.Draft
	payload := models.RegistrationPayload{
		Email:       d.Email,
		Password:    d.Password,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		AccountType: models.RoleStudent,
		SponsorCode: d.SponsorCode,
	}

	switch sess.Role {
	case models.RoleStudent:
		payload.Grade = d.Grade

	case models.RoleParent:
		// The account created is the child's. The substitution happens here
		// and only here; the parent's own name stays on screen for the whole
		// flow.
		payload.FirstName = d.ChildFirstName
		payload.LastName = d.ChildLastName
		payload.Grade = d.ChildGrade
		payload.ParentPhone = d.Phone

	case models.RoleTeacher:
		payload.AccountType = models.RoleTeacher
		payload.TeacherType = sess.TeacherType
		payload.Phone = d.Phone
		payload.Address = d.Address
		payload.PostalCode = d.PostalCode
		payload.City = d.City
		payload.BirthDate = d.BirthDate
		payload.Matters = make([]models.MatterLevels, 0, len(d.Subjects))
		for _, sel := range d.Subjects {
			payload.Matters = append(payload.Matters, models.MatterLevels{
				MatterID: sel.SubjectID,
				LevelIDs: sel.LevelIDs,
			})
		}

		if err := s.uploadDocuments(ctx, sess); err != nil {
			return models.RegistrationPayload{}, err
		}
		payload.IDDocumentURL = d.IDDocument.UploadedURL
		payload.AddressProofURL = d.AddressProof.UploadedURL

		holder := strings.TrimSpace(d.FirstName + " " + d.LastName)
		bankToken, err := s.BankTokens.TokenizeIBAN(ctx, d.IBAN, holder)
		if err != nil {
			utils.GetLogger().Error("Failed to tokenize IBAN", zap.String("sessionID", sess.SessionID), zap.Error(err))
			return models.RegistrationPayload{}, errors.New(utils.GenericUserError)
		}
		payload.BankToken = bankToken

	default:
		return models.RegistrationPayload{}, fmt.Errorf("unknown role %q", sess.Role)
	}

	return payload, nil
}

// uploadDocuments uploads the staged documents concurrently and records each
// resulting URL on its handle. Registration must not start unless every
// required upload resolved; the first failure becomes the submission's
// failure. Handles already carrying an URL are skipped.
func (s *DefaultWizardService) uploadDocuments(ctx context.Context, sess *models.WizardSession) error {
	handles := []*models.FileHandle{sess.Draft.IDDocument, sess.Draft.AddressProof}

	var wg sync.WaitGroup
	errs := make(chan error, len(handles))
	for _, h := range handles {
		if h == nil || h.UploadedURL != "" {
			continue
		}
		wg.Add(1)
		go func(h *models.FileHandle) {
			defer wg.Done()
			url, err := s.Uploader.Upload(ctx, h.LocalPath, h.Tag, sess.SessionID)
			if err != nil {
				utils.GetLogger().Error("Document upload failed",
					zap.String("sessionID", sess.SessionID), zap.String("tag", h.Tag), zap.Error(err))
				errs <- fmt.Errorf("upload of %s document failed: %w", h.Tag, err)
				return
			}
			h.UploadedURL = url
		}(h)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
