package certificate

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kkarthika293/Learn-Edge/internal/app_errors"
	"github.com/kkarthika293/Learn-Edge/pkg/logger"
)

type CertificateService interface {
	IssueCertificateForLatest(ctx context.Context, userID uuid.UUID) (string, error)
}

type CertificateHandler struct {
	log     logger.Log
	service CertificateService
}

func NewCertificateHandler(l logger.Log, s CertificateService) *CertificateHandler {
	return &CertificateHandler{
		log:     l,
		service: s,
	}
}

// Download issues a certificate for the user's most recent quiz attempt,
// emails it and serves the rendered file. A user without any recorded score
// gets 404.
func (h *CertificateHandler) Download(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	path, err := h.service.IssueCertificateForLatest(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, app_errors.ErrUserNotFound) || errors.Is(err, app_errors.ErrScoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("Download certificate failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
