package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	taxsettingsdomain "github.com/smallbiznis/taxflow/internal/taxsettings/domain"
)

type updateTaxSettingsRequest struct {
	PricesIncludeTax    *bool   `json:"prices_include_tax,omitempty"`
	CalculateTaxBasedOn *string `json:"calculate_tax_based_on,omitempty"`
	ShippingTaxClass    *string `json:"shipping_tax_class,omitempty"`
	RoundTaxAtSubtotal  *bool   `json:"round_tax_at_subtotal,omitempty"`
}

func (s *Server) GetTaxSettings(c *gin.Context) {
	resp, err := s.settingsSvc.Current(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTaxSettings(c *gin.Context) {
	var req updateTaxSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.settingsSvc.Update(c.Request.Context(), taxsettingsdomain.UpdateRequest{
		PricesIncludeTax:    req.PricesIncludeTax,
		CalculateTaxBasedOn: req.CalculateTaxBasedOn,
		ShippingTaxClass:    req.ShippingTaxClass,
		RoundTaxAtSubtotal:  req.RoundTaxAtSubtotal,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
