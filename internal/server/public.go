package server

import (
	"net/http"
	"strings"

	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/clientctx"
	recorddomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/record/domain"
	"github.com/gin-gonic/gin"
)

// PublicClientSlugCheck verifies that the path's client slug belongs to the
// client the API key authenticated. A key never reaches another client's
// data, whatever the URL says.
func (s *Server) PublicClientSlugCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, ok := clientctx.ClientIDFromContext(c.Request.Context())
		if !ok || clientID == 0 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		clientSlug := strings.TrimSpace(c.Param("clientSlug"))
		client, err := s.clientRepo.FindBySlug(c.Request.Context(), s.db, clientSlug)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if client == nil || client.ID != clientID {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}

func (s *Server) publicModuleRef(c *gin.Context) recorddomain.ModuleRef {
	return recorddomain.ModuleRef{ModuleSlug: strings.TrimSpace(c.Param("moduleSlug"))}
}

func (s *Server) PublicListRecords(c *gin.Context) {
	var query listRecordsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.recordSvc.List(c.Request.Context(), recorddomain.ListRequest{
		ModuleRef:  s.publicModuleRef(c),
		Query:      query.Q,
		Status:     query.Status,
		Pagination: query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) PublicCreateRecord(c *gin.Context) {
	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.recordSvc.Create(c.Request.Context(), recorddomain.CreateRequest{
		ModuleRef: s.publicModuleRef(c),
		Data:      data,
		Notify:    true,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordCreated(c.Request.Context(), strings.TrimSpace(c.Param("moduleSlug")), "public")
	}
	c.JSON(http.StatusCreated, resp)
}
