package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fairaudit/domain/core"
	"fairaudit/domain/fairness"
)

// AuditRequest is the POST /api/audits payload
type AuditRequest struct {
	Candidates          []fairness.FeatureRecord `json:"candidates" binding:"required"`
	Outcomes            []bool                   `json:"outcomes" binding:"required"`
	ProtectedAttributes map[string][]string      `json:"protected_attributes" binding:"required"`
	Context             fairness.Context         `json:"context"`
}

func (s *Service) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Service) handleCreateAudit(c *gin.Context) {
	var req AuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	report, err := s.auditor.ComputeReport(c.Request.Context(),
		req.Candidates, req.Outcomes, req.ProtectedAttributes, req.Context)
	if err != nil {
		if core.IsValidationError(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		s.logger.Error("[API] audit failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "audit computation failed"})
		return
	}

	if s.reports != nil {
		if err := s.reports.Save(c.Request.Context(), report); err != nil {
			// Persistence is best-effort; the caller still gets the report.
			s.logger.Warn("[API] failed to persist report %s: %v", report.ID, err)
		}
	}

	c.JSON(http.StatusCreated, report)
}

func (s *Service) handleGetAudit(c *gin.Context) {
	if s.reports == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "report persistence is not configured"})
		return
	}

	id, err := core.ParseReportID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := s.reports.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Service) handleListAudits(c *gin.Context) {
	if s.reports == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "report persistence is not configured"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	reports, err := s.reports.ListRecent(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error("[API] list audits failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (s *Service) handleGetAuditDocument(c *gin.Context) {
	if s.reports == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "report persistence is not configured"})
		return
	}

	id, err := core.ParseReportID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := s.reports.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", s.renderer.HTML(report))
}
