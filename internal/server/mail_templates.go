package server

import (
	"net/http"
	"strings"

	mailtemplatedomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/mailtemplate/domain"
	"github.com/gin-gonic/gin"
)

type createMailTemplateRequest struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type updateMailTemplateRequest struct {
	Name    *string `json:"name"`
	Subject *string `json:"subject"`
	Body    *string `json:"body"`
}

func (s *Server) ListMailTemplates(c *gin.Context) {
	templates, err := s.mailTemplateSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mail_templates": templates})
}

func (s *Server) CreateMailTemplate(c *gin.Context) {
	var req createMailTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.mailTemplateSvc.Create(c.Request.Context(), mailtemplatedomain.CreateRequest{
		Name:    req.Name,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) GetMailTemplate(c *gin.Context) {
	resp, err := s.mailTemplateSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("templateId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateMailTemplate(c *gin.Context) {
	var req updateMailTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.mailTemplateSvc.Update(c.Request.Context(), mailtemplatedomain.UpdateRequest{
		ID:      strings.TrimSpace(c.Param("templateId")),
		Name:    req.Name,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteMailTemplate(c *gin.Context) {
	if err := s.mailTemplateSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("templateId"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
