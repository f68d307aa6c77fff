package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"sakay_backend/internal/middleware"
	"sakay_backend/internal/models"
	"sakay_backend/internal/services"
	"sakay_backend/internal/services/dto"
	"sakay_backend/internal/session"
	"sakay_backend/pkg/apperrors"
)

type ReportHandler struct {
	*BaseHandler
	reportService services.ReportService
}

func NewReportHandler(base *BaseHandler, reportService services.ReportService) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   base,
		reportService: reportService,
	}
}

func (h *ReportHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Submission is open to anonymous sessions as well.
	r.POST("/reports", h.Submit)

	admin := r.Group("/admin/reports")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("", h.List)
		admin.GET("/pending-count", h.PendingCount)
		admin.GET("/export", h.Export)
		admin.PATCH("/:reportId/status", h.SetStatus)
	}
}

func (h *ReportHandler) Submit(c *gin.Context) {
	var req dto.SubmitReportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	state := session.Load(c)
	report, err := h.reportService.Submit(h.GetDB(c), state.Username, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) List(c *gin.Context) {
	status := models.ReportStatus(c.Query("status"))
	switch status {
	case "", models.ReportStatusPending, models.ReportStatusVerified, models.ReportStatusRejected:
	default:
		h.HandleServiceError(c, apperrors.NewBadRequestError("Unknown report status: "+string(status)))
		return
	}

	reports, err := h.reportService.List(h.GetDB(c), status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *ReportHandler) SetStatus(c *gin.Context) {
	var req dto.SetReportStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	report, err := h.reportService.SetStatus(h.GetDB(c), c.Param("reportId"), models.ReportStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) PendingCount(c *gin.Context) {
	count, err := h.reportService.CountPending(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PendingCountResponse{Count: count})
}

// Export streams the current report list as an .xlsx workbook.
func (h *ReportHandler) Export(c *gin.Context) {
	status := models.ReportStatus(c.Query("status"))
	reports, err := h.reportService.List(h.GetDB(c), status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reports"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Issue Type", "Location", "Affected Route", "Description", "Reported By", "Status", "Timestamp"}
	for i, hdr := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, hdr)
	}

	for row, report := range reports {
		values := []interface{}{
			report.ID,
			report.IssueType,
			report.Location,
			report.AffectedRoute,
			report.Description,
			report.User,
			string(report.Status),
			report.Timestamp.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("reports-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
	}
}
