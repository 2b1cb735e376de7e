package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	locationdomain "github.com/smallbiznis/comercio/internal/location/domain"
)

func (s *Server) ListLocations(c *gin.Context) {
	resp, err := s.locationSvc.List(c.Request.Context(), locationdomain.ListRequest{
		Search: strings.TrimSpace(c.Query("q")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetLocationByID(c *gin.Context) {
	resp, err := s.locationSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateLocation(c *gin.Context) {
	var req locationdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.locationSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) UpdateLocation(c *gin.Context) {
	var req locationdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	resp, err := s.locationSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteLocation(c *gin.Context) {
	if err := s.locationSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "deleted"}})
}

func isLocationValidationError(err error) bool {
	switch err {
	case locationdomain.ErrInvalidID,
		locationdomain.ErrInvalidName,
		locationdomain.ErrInvalidDescription:
		return true
	default:
		return false
	}
}
