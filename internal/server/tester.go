package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/clientctx"
	moduledomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/domain"
	"github.com/gin-gonic/gin"
)

type apiTesterRunRequest struct {
	APIKey  string         `json:"api_key"`
	Payload map[string]any `json:"payload"`
}

// APITesterSample returns a ready-to-send request for the module's public
// create endpoint, with one sample value per field.
func (s *Server) APITesterSample(c *gin.Context) {
	m, err := s.moduleSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("moduleId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	endpoint, err := s.publicRecordsURL(c, m.Slug)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	payload := make(map[string]any, len(m.Fields))
	for _, field := range m.Fields {
		payload[field.Name] = sampleFieldValue(field)
	}

	c.JSON(http.StatusOK, gin.H{
		"method":  http.MethodPost,
		"url":     endpoint,
		"headers": gin.H{HeaderAPIKey: "<your api key>"},
		"payload": payload,
	})
}

// APITesterRun sends the payload through the real public endpoint in
// process, so the tester exercises exactly what external callers hit:
// key auth, rate limiting, validation, and notifications.
func (s *Server) APITesterRun(c *gin.Context) {
	var req apiTesterRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.APIKey) == "" {
		AbortWithError(c, newValidationError("api_key", "invalid_api_key", "api key is required"))
		return
	}

	m, err := s.moduleSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("moduleId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	endpoint, err := s.publicRecordsURL(c, m.Slug)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	body, err := json.Marshal(req.Payload)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	inner, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	inner.Header.Set("Content-Type", "application/json")
	inner.Header.Set(HeaderAPIKey, strings.TrimSpace(req.APIKey))

	recorder := httptest.NewRecorder()
	s.engine.ServeHTTP(recorder, inner)

	var response any
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		response = recorder.Body.String()
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": recorder.Code,
		"url":         endpoint,
		"response":    response,
	})
}

func (s *Server) publicRecordsURL(c *gin.Context, moduleSlug string) (string, error) {
	clientID, ok := clientctx.ClientIDFromContext(c.Request.Context())
	if !ok || clientID == 0 {
		return "", ErrNotFound
	}
	client, err := s.clientRepo.FindByID(c.Request.Context(), s.db, clientID)
	if err != nil {
		return "", err
	}
	if client == nil {
		return "", ErrNotFound
	}
	return fmt.Sprintf("/api/v1/public/%s/%s/records", client.Slug, moduleSlug), nil
}

func sampleFieldValue(field moduledomain.FieldDefinition) any {
	switch field.Type.Normalize() {
	case moduledomain.FieldTypeNumber:
		return 0
	case moduledomain.FieldTypeCheckbox:
		return false
	case moduledomain.FieldTypeDate:
		return "2024-01-01"
	case moduledomain.FieldTypeEmail:
		return "test@example.com"
	case moduledomain.FieldTypeSelect:
		if len(field.Options) > 0 {
			return field.Options[0]
		}
		return ""
	default:
		return "Test " + field.Label
	}
}
