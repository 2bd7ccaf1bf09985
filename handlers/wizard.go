package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"tutorhub/models"
	"tutorhub/services/wizard"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WizardHandler exposes the registration wizard over HTTP. Each endpoint maps
// to one controller operation; the handler layer only translates transport.
type WizardHandler struct {
	Service wizard.WizardService
}

func NewWizardHandler(svc wizard.WizardService) *WizardHandler {
	return &WizardHandler{Service: svc}
}

// StartSessionHandler handles POST /api/register/session. The /register and
// /register/teacher pages call it with the role their entry point selects.
func (h *WizardHandler) StartSessionHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid start session request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	sess, token, err := h.Service.StartSession(c.Request.Context(), req.Role, req.TeacherType)
	if err != nil {
		logger.Error("Failed to start wizard session", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, models.StartSessionResponse{
		Session: h.Service.View(sess),
		Token:   token,
	})
}

// GetSessionHandler handles GET /api/register/session/:id.
func (h *WizardHandler) GetSessionHandler(c *gin.Context) {
	sess, err := h.Service.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(sessionErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.Service.View(sess))
}

// UpdateFieldsHandler handles PATCH /api/register/session/:id/fields.
func (h *WizardHandler) UpdateFieldsHandler(c *gin.Context) {
	logger := getLogger(c)

	var patch models.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		logger.Error("Invalid field patch", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	sess, err := h.Service.UpdateFields(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.JSON(sessionErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.Service.View(sess))
}

// NextHandler handles POST /api/register/session/:id/next. When the active
// step's validator fails the session comes back unchanged with canProceed
// false; navigation forward is never forced.
func (h *WizardHandler) NextHandler(c *gin.Context) {
	sess, err := h.Service.GoNext(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(sessionErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.Service.View(sess))
}

// BackHandler handles POST /api/register/session/:id/back.
func (h *WizardHandler) BackHandler(c *gin.Context) {
	sess, err := h.Service.GoBack(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(sessionErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.Service.View(sess))
}

// StageDocumentHandler handles POST /api/register/session/:id/documents/:tag.
// The file is staged on local disk; the upload to the storage collaborator
// only happens at submission.
func (h *WizardHandler) StageDocumentHandler(c *gin.Context) {
	logger := getLogger(c)
	tag := c.Param("tag")
	if tag != models.DocumentTagID && tag != models.DocumentTagAddressProof {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document tag; allowed values are 'id' and 'home-certificate'"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}

	stageDir := wizard.StageDir()
	if err := os.MkdirAll(stageDir, 0o755); err != nil {
		logger.Error("Failed to create staging directory", zap.String("dir", stageDir), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file"})
		return
	}
	stagePath := filepath.Join(stageDir, uuid.New().String()+"-"+filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, stagePath); err != nil {
		logger.Error("Failed to stage document", zap.String("tag", tag), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "detail": err.Error()})
		return
	}

	sess, err := h.Service.StageDocument(c.Request.Context(), c.Param("id"), tag, fileHeader.Filename, stagePath)
	if err != nil {
		// The session never claimed the file; drop it instead of orphaning it.
		if rmErr := os.Remove(stagePath); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Warn("Failed to remove unclaimed staged document", zap.String("path", stagePath), zap.Error(rmErr))
		}
		c.JSON(sessionErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.Service.View(sess))
}

// SubmitHandler handles POST /api/register/session/:id/submit. Collaborator
// errors come back with their message intact; the draft stays available for
// correction and resubmission.
func (h *WizardHandler) SubmitHandler(c *gin.Context) {
	logger := getLogger(c)

	result, err := h.Service.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("Submission failed", zap.String("sessionID", c.Param("id")), zap.Error(err))
		c.JSON(sessionErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

// CancelHandler handles DELETE /api/register/session/:id.
func (h *WizardHandler) CancelHandler(c *gin.Context) {
	if err := h.Service.CancelSession(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(sessionErrStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "registration session cancelled"})
}

func sessionErrStatus(err error) int {
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, wizard.ErrSubmitInFlight):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
