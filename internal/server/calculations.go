package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	taxenginedomain "github.com/smallbiznis/taxflow/internal/taxengine/domain"
	taxzonedomain "github.com/smallbiznis/taxflow/internal/taxzone/domain"
)

type addressPayload struct {
	Country    string `json:"country"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

type calculateTaxItem struct {
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type calculateTaxRequest struct {
	Items           []calculateTaxItem `json:"items"`
	ShippingAddress addressPayload     `json:"shipping_address"`
	ShippingCost    *decimal.Decimal   `json:"shipping_cost,omitempty"`
	CouponDiscount  *decimal.Decimal   `json:"coupon_discount,omitempty"`
}

func (s *Server) CalculateTax(c *gin.Context) {
	var req calculateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	items := make([]taxenginedomain.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, taxenginedomain.ItemInput{
			ProductID: strings.TrimSpace(item.ProductID),
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	resp, err := s.engineSvc.Calculate(c.Request.Context(), taxenginedomain.CalculationRequest{
		Items: items,
		ShippingAddress: taxzonedomain.Address{
			Country:    strings.TrimSpace(req.ShippingAddress.Country),
			State:      strings.TrimSpace(req.ShippingAddress.State),
			PostalCode: strings.TrimSpace(req.ShippingAddress.PostalCode),
		},
		ShippingCost:   decimalOrZero(req.ShippingCost),
		CouponDiscount: decimalOrZero(req.CouponDiscount),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func decimalOrZero(value *decimal.Decimal) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return *value
}
