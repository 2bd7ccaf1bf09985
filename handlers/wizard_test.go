package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"tutorhub/config"
	"tutorhub/handlers"
	"tutorhub/models"
	"tutorhub/routes"
	"tutorhub/services/wizard"
	"tutorhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubWizardService returns canned values so the handler tests only exercise
// transport translation, not the wizard logic itself.
type stubWizardService struct {
	sess      *models.WizardSession
	token     string
	submit    *models.SubmitResponse
	err       error
	submitErr error
}

func (s *stubWizardService) StartSession(_ context.Context, role, teacherType string) (*models.WizardSession, string, error) {
	return s.sess, s.token, s.err
}

func (s *stubWizardService) GetSession(_ context.Context, sessionID string) (*models.WizardSession, error) {
	return s.sess, s.err
}

func (s *stubWizardService) UpdateFields(_ context.Context, sessionID string, patch models.DraftPatch) (*models.WizardSession, error) {
	return s.sess, s.err
}

func (s *stubWizardService) StageDocument(_ context.Context, sessionID, tag, filename, localPath string) (*models.WizardSession, error) {
	return s.sess, s.err
}

func (s *stubWizardService) GoNext(_ context.Context, sessionID string) (*models.WizardSession, error) {
	return s.sess, s.err
}

func (s *stubWizardService) GoBack(_ context.Context, sessionID string) (*models.WizardSession, error) {
	return s.sess, s.err
}

func (s *stubWizardService) Submit(_ context.Context, sessionID string) (*models.SubmitResponse, error) {
	return s.submit, s.submitErr
}

func (s *stubWizardService) CancelSession(_ context.Context, sessionID string) error {
	return s.err
}

func (s *stubWizardService) View(sess *models.WizardSession) models.SessionView {
	return models.SessionView{
		SessionID:   sess.SessionID,
		Role:        sess.Role,
		CurrentStep: sess.CurrentStep,
		Draft:       sess.Draft,
	}
}

func newTestRouter(svc wizard.WizardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.RegisterWizardRoutes(r, handlers.NewWizardHandler(svc))
	return r
}

func sessionToken(t *testing.T, sessionID string) string {
	t.Helper()
	token, err := utils.GenerateSessionToken(sessionID, 30*time.Minute)
	require.NoError(t, err)
	return token
}

func TestStartSessionHandlerCreated(t *testing.T) {
	svc := &stubWizardService{
		sess:  &models.WizardSession{SessionID: "s1", Role: models.RoleStudent, CurrentStep: models.StepWelcome},
		token: "tok",
	}
	r := newTestRouter(svc)

	body, _ := json.Marshal(models.StartSessionRequest{Role: models.RoleStudent})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/register/session", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp models.StartSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, "s1", resp.Session.SessionID)
	assert.Equal(t, models.StepWelcome, resp.Session.CurrentStep)
}

func TestStartSessionHandlerRejectsMissingRole(t *testing.T) {
	r := newTestRouter(&stubWizardService{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/register/session", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionRoutesRequireToken(t *testing.T) {
	svc := &stubWizardService{
		sess: &models.WizardSession{SessionID: "s1", Role: models.RoleStudent, CurrentStep: models.StepWelcome},
	}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/register/session/s1", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A valid token for a different session must not open this one.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/register/session/s1", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, "s2"))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/register/session/s1", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, "s1"))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetSessionHandlerNotFound(t *testing.T) {
	svc := &stubWizardService{err: wizard.ErrSessionNotFound}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/register/session/gone", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, "gone"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitHandlerConflictOnConcurrentAttempt(t *testing.T) {
	svc := &stubWizardService{submitErr: wizard.ErrSubmitInFlight}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/register/session/s1/submit", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, "s1"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubmitHandlerPassesCollaboratorMessageThrough(t *testing.T) {
	svc := &stubWizardService{submitErr: errors.New("un compte existe déjà avec cet email")}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/register/session/s1/submit", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, "s1"))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "un compte existe déjà avec cet email", resp["error"])
}

func TestSubmitHandlerCreatedOnSuccess(t *testing.T) {
	svc := &stubWizardService{submit: &models.SubmitResponse{AccountID: "acc-1", NextStep: models.StepOnboarding}}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/register/session/s1/submit", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, "s1"))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp models.SubmitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "acc-1", resp.AccountID)
	assert.Equal(t, models.StepOnboarding, resp.NextStep)
}

func TestStageDocumentHandlerDropsFileWhenSessionExpired(t *testing.T) {
	stageDir := t.TempDir()
	prev := config.AppConfig.DocumentStagePath
	config.AppConfig.DocumentStagePath = stageDir
	t.Cleanup(func() { config.AppConfig.DocumentStagePath = prev })

	svc := &stubWizardService{err: wizard.ErrSessionNotFound}
	r := newTestRouter(svc)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "id.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("pdf"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/register/session/s1/documents/id", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, "s1"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	entries, err := os.ReadDir(stageDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "the unclaimed file must not be left behind")
}

func TestStageDocumentHandlerRejectsUnknownTag(t *testing.T) {
	svc := &stubWizardService{
		sess: &models.WizardSession{SessionID: "s1", Role: models.RoleTeacher, CurrentStep: models.StepTeacherContact},
	}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/register/session/s1/documents/selfie", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, "s1"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
