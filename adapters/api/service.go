package api

import (
	"github.com/gin-gonic/gin"

	"fairaudit/internal"
	"fairaudit/internal/reportdoc"
	"fairaudit/ports"
)

// Service exposes the fairness engine over HTTP. The engine stays pure;
// this layer owns persistence and rendering.
type Service struct {
	auditor  ports.FairnessAuditor
	reports  ports.ReportRepository // optional; nil disables persistence
	renderer *reportdoc.Renderer
	logger   *internal.Logger
}

// NewService creates the HTTP service
func NewService(auditor ports.FairnessAuditor, reports ports.ReportRepository, logger *internal.Logger) *Service {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Service{
		auditor:  auditor,
		reports:  reports,
		renderer: reportdoc.NewRenderer(),
		logger:   logger,
	}
}

// Router builds the gin engine with all routes registered
func (s *Service) Router(mode string) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/healthz", s.handleHealth)

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/audits", s.handleCreateAudit)
		apiGroup.GET("/audits", s.handleListAudits)
		apiGroup.GET("/audits/:id", s.handleGetAudit)
		apiGroup.GET("/audits/:id/document", s.handleGetAuditDocument)
	}

	return router
}
