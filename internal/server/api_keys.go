package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) APIKeyStatus(c *gin.Context) {
	resp, err := s.apiKeySvc.Status(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GenerateAPIKey issues a fresh key. The raw key appears in this response
// only; afterwards callers see the masked preview.
func (s *Server) GenerateAPIKey(c *gin.Context) {
	clientID := strings.TrimSpace(c.GetString(contextClientIDKey))
	if s.apiKeyLimiter != nil && !s.apiKeyLimiter.Allow(clientID) {
		AbortWithError(c, ErrRateLimited)
		return
	}

	resp, err := s.apiKeySvc.Generate(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.APIKeyEvent(c.Request.Context(), "generated")
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) RevokeAPIKey(c *gin.Context) {
	if err := s.apiKeySvc.Revoke(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.APIKeyEvent(c.Request.Context(), "revoked")
	}
	c.Status(http.StatusNoContent)
}
