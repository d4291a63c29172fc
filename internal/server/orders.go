package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	orderdomain "github.com/smallbiznis/taxflow/internal/order/domain"
	taxenginedomain "github.com/smallbiznis/taxflow/internal/taxengine/domain"
	taxzonedomain "github.com/smallbiznis/taxflow/internal/taxzone/domain"
)

type checkoutRequest struct {
	Items           []calculateTaxItem `json:"items"`
	ShippingAddress addressPayload     `json:"shipping_address"`
	ShippingCost    *decimal.Decimal   `json:"shipping_cost,omitempty"`
	CouponDiscount  *decimal.Decimal   `json:"coupon_discount,omitempty"`
}

func (s *Server) Checkout(c *gin.Context) {
	var req checkoutRequest
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

	resp, err := s.orderSvc.Checkout(c.Request.Context(), orderdomain.CheckoutRequest{
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

func (s *Server) ListOrders(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			AbortWithError(c, newValidationError("limit", "invalid_limit", "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	resp, err := s.orderSvc.List(c.Request.Context(), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrderByID(c *gin.Context) {
	resp, err := s.orderSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
