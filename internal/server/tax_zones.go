package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	taxzonedomain "github.com/smallbiznis/taxflow/internal/taxzone/domain"
)

type zoneLocationRequest struct {
	Country           string   `json:"country"`
	States            []string `json:"states,omitempty"`
	PostalCodePattern string   `json:"postal_code_pattern,omitempty"`
}

type createTaxZoneRequest struct {
	Name        string                `json:"name"`
	Description *string               `json:"description,omitempty"`
	Locations   []zoneLocationRequest `json:"locations"`
}

type updateTaxZoneRequest struct {
	Name        *string                `json:"name,omitempty"`
	Description *string                `json:"description,omitempty"`
	Locations   *[]zoneLocationRequest `json:"locations,omitempty"`
}

func (s *Server) CreateTaxZone(c *gin.Context) {
	var req createTaxZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.zoneSvc.Create(c.Request.Context(), taxzonedomain.CreateRequest{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Locations:   toLocationRequests(req.Locations),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTaxZones(c *gin.Context) {
	resp, err := s.zoneSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTaxZoneByID(c *gin.Context) {
	resp, err := s.zoneSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTaxZone(c *gin.Context) {
	var req updateTaxZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := taxzonedomain.UpdateRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Locations != nil {
		locations := toLocationRequests(*req.Locations)
		update.Locations = &locations
	}

	resp, err := s.zoneSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteTaxZone(c *gin.Context) {
	if err := s.zoneSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func toLocationRequests(locations []zoneLocationRequest) []taxzonedomain.LocationRequest {
	out := make([]taxzonedomain.LocationRequest, 0, len(locations))
	for _, loc := range locations {
		out = append(out, taxzonedomain.LocationRequest{
			Country:           loc.Country,
			States:            loc.States,
			PostalCodePattern: loc.PostalCodePattern,
		})
	}
	return out
}
