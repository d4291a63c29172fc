package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	taxreportdomain "github.com/smallbiznis/taxflow/internal/taxreport/domain"
)

const reportDateLayout = "2006-01-02"

func (s *Server) GenerateTaxReport(c *gin.Context) {
	var query struct {
		StartDate string `form:"start_date"`
		EndDate   string `form:"end_date"`
		ZoneID    string `form:"zone_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if strings.TrimSpace(query.StartDate) == "" || strings.TrimSpace(query.EndDate) == "" {
		AbortWithError(c, taxreportdomain.ErrMissingDateRange)
		return
	}

	startDate, err := time.Parse(reportDateLayout, strings.TrimSpace(query.StartDate))
	if err != nil {
		AbortWithError(c, newValidationError("start_date", "invalid_start_date", "expected YYYY-MM-DD"))
		return
	}
	endDate, err := time.Parse(reportDateLayout, strings.TrimSpace(query.EndDate))
	if err != nil {
		AbortWithError(c, newValidationError("end_date", "invalid_end_date", "expected YYYY-MM-DD"))
		return
	}

	req := taxreportdomain.Request{StartDate: startDate, EndDate: endDate}
	if zoneID := strings.TrimSpace(query.ZoneID); zoneID != "" {
		req.ZoneID = &zoneID
	}

	resp, err := s.reportSvc.Generate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
