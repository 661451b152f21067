package server

import (
	"net/http"
	"strings"

	moduledomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/domain"
	recorddomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/record/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/record/format"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

type listRecordsQuery struct {
	pagination.Pagination
	Q      string `form:"q"`
	Status string `form:"status"`
}

func (s *Server) adminModuleRef(c *gin.Context) recorddomain.ModuleRef {
	return recorddomain.ModuleRef{ModuleID: strings.TrimSpace(c.Param("moduleId"))}
}

func (s *Server) ListRecords(c *gin.Context) {
	var query listRecordsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.recordSvc.List(c.Request.Context(), recorddomain.ListRequest{
		ModuleRef:  s.adminModuleRef(c),
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

func (s *Server) CreateRecord(c *gin.Context) {
	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.recordSvc.Create(c.Request.Context(), recorddomain.CreateRequest{
		ModuleRef: s.adminModuleRef(c),
		Data:      data,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordCreated(c.Request.Context(), resp.ModuleID, "admin")
	}
	c.JSON(http.StatusCreated, resp)
}

// RecordsView returns the same page of records as ListRecords, projected
// into display-ready table cells.
func (s *Server) RecordsView(c *gin.Context) {
	var query listRecordsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	m, err := s.moduleSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("moduleId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.recordSvc.List(c.Request.Context(), recorddomain.ListRequest{
		ModuleRef:  s.adminModuleRef(c),
		Query:      query.Q,
		Status:     query.Status,
		Pagination: query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	table := format.BuildTable(moduledomain.FieldList(m.Fields), resp.Records)
	c.JSON(http.StatusOK, gin.H{
		"columns":   table.Columns,
		"rows":      table.Rows,
		"page_info": resp.PageInfo,
	})
}

func (s *Server) GetRecord(c *gin.Context) {
	resp, err := s.recordSvc.GetByID(c.Request.Context(), recorddomain.GetRequest{
		ModuleRef: s.adminModuleRef(c),
		RecordID:  strings.TrimSpace(c.Param("recordId")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteRecord(c *gin.Context) {
	err := s.recordSvc.Delete(c.Request.Context(), recorddomain.DeleteRequest{
		ModuleRef: s.adminModuleRef(c),
		RecordID:  strings.TrimSpace(c.Param("recordId")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
