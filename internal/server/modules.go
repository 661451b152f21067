package server

import (
	"net/http"
	"strings"

	moduledomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/domain"
	"github.com/gin-gonic/gin"
)

type moduleFieldRequest struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Options     []string `json:"options"`
	Placeholder string   `json:"placeholder"`
}

type createModuleRequest struct {
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	Fields         []moduleFieldRequest `json:"fields"`
	MailTemplateID *string              `json:"mail_template_id"`
}

type updateModuleRequest struct {
	Name           *string              `json:"name"`
	Description    *string              `json:"description"`
	Fields         []moduleFieldRequest `json:"fields"`
	MailTemplateID *string              `json:"mail_template_id"`
}

func fieldInputs(fields []moduleFieldRequest) []moduledomain.FieldInput {
	inputs := make([]moduledomain.FieldInput, 0, len(fields))
	for _, f := range fields {
		inputs = append(inputs, moduledomain.FieldInput{
			Name:        f.Name,
			Label:       f.Label,
			Type:        f.Type,
			Required:    f.Required,
			Options:     f.Options,
			Placeholder: f.Placeholder,
		})
	}
	return inputs
}

func (s *Server) ListModules(c *gin.Context) {
	modules, err := s.moduleSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modules": modules})
}

func (s *Server) CreateModule(c *gin.Context) {
	var req createModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.moduleSvc.Create(c.Request.Context(), moduledomain.CreateRequest{
		Name:           req.Name,
		Description:    req.Description,
		Fields:         fieldInputs(req.Fields),
		MailTemplateID: req.MailTemplateID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.ModuleCreated(c.Request.Context())
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) EnsureLeadsModule(c *gin.Context) {
	resp, err := s.moduleSvc.EnsureLeads(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetModule(c *gin.Context) {
	resp, err := s.moduleSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("moduleId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateModule(c *gin.Context) {
	var req updateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.moduleSvc.Update(c.Request.Context(), moduledomain.UpdateRequest{
		ID:             strings.TrimSpace(c.Param("moduleId")),
		Name:           req.Name,
		Description:    req.Description,
		Fields:         fieldInputs(req.Fields),
		MailTemplateID: req.MailTemplateID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteModule(c *gin.Context) {
	if err := s.moduleSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("moduleId"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
