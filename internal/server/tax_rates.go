package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	taxratedomain "github.com/smallbiznis/taxflow/internal/taxrate/domain"
)

type createTaxRateRequest struct {
	Name              string          `json:"name"`
	RatePercent       decimal.Decimal `json:"rate_percent"`
	ZoneID            *string         `json:"zone_id,omitempty"`
	ProductCategories []string        `json:"product_categories,omitempty"`
	IsCompound        bool            `json:"is_compound"`
	Priority          int             `json:"priority"`
	Active            *bool           `json:"active,omitempty"`
}

type updateTaxRateRequest struct {
	Name              *string          `json:"name,omitempty"`
	RatePercent       *decimal.Decimal `json:"rate_percent,omitempty"`
	ZoneID            *string          `json:"zone_id,omitempty"`
	ProductCategories *[]string        `json:"product_categories,omitempty"`
	IsCompound        *bool            `json:"is_compound,omitempty"`
	Priority          *int             `json:"priority,omitempty"`
	Active            *bool            `json:"active,omitempty"`
}

func (s *Server) CreateTaxRate(c *gin.Context) {
	var req createTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.rateSvc.Create(c.Request.Context(), taxratedomain.CreateRequest{
		Name:              strings.TrimSpace(req.Name),
		RatePercent:       req.RatePercent,
		ZoneID:            req.ZoneID,
		ProductCategories: req.ProductCategories,
		IsCompound:        req.IsCompound,
		Priority:          req.Priority,
		Active:            req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTaxRates(c *gin.Context) {
	var query struct {
		ZoneID  string `form:"zone_id"`
		Active  string `form:"active"`
		SortBy  string `form:"sort_by"`
		OrderBy string `form:"order_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	active, err := parseOptionalBool(query.Active)
	if err != nil {
		AbortWithError(c, newValidationError("active", "invalid_active", "invalid active"))
		return
	}

	resp, err := s.rateSvc.List(c.Request.Context(), taxratedomain.ListRequest{
		ZoneID:  strings.TrimSpace(query.ZoneID),
		Active:  active,
		SortBy:  strings.TrimSpace(query.SortBy),
		OrderBy: strings.TrimSpace(query.OrderBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTaxRateByID(c *gin.Context) {
	resp, err := s.rateSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTaxRate(c *gin.Context) {
	var req updateTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.rateSvc.Update(c.Request.Context(), taxratedomain.UpdateRequest{
		ID:                strings.TrimSpace(c.Param("id")),
		Name:              req.Name,
		RatePercent:       req.RatePercent,
		ZoneID:            req.ZoneID,
		ProductCategories: req.ProductCategories,
		IsCompound:        req.IsCompound,
		Priority:          req.Priority,
		Active:            req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DisableTaxRate(c *gin.Context) {
	resp, err := s.rateSvc.Disable(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func parseOptionalBool(value string) (*bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
