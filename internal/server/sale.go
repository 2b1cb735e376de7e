package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	saledomain "github.com/smallbiznis/comercio/internal/sale/domain"
)

func (s *Server) ListSales(c *gin.Context) {
	from, err := parseOptionalTime(c.Query("from"))
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_from", "invalid from"))
		return
	}
	to, err := parseOptionalTime(c.Query("to"))
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to"))
		return
	}

	resp, err := s.saleSvc.List(c.Request.Context(), saledomain.ListRequest{
		Search: strings.TrimSpace(c.Query("q")),
		From:   from,
		To:     to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func parseOptionalTime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		d, derr := time.Parse("2006-01-02", raw)
		if derr != nil {
			return nil, err
		}
		t = d
	}
	t = t.UTC()
	return &t, nil
}

func (s *Server) GetSaleByID(c *gin.Context) {
	resp, err := s.saleSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateSale(c *gin.Context) {
	var req saledomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.saleSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) UpdateSale(c *gin.Context) {
	var req saledomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	resp, err := s.saleSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteSale(c *gin.Context) {
	if err := s.saleSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "deleted"}})
}

func isSaleValidationError(err error) bool {
	switch err {
	case saledomain.ErrInvalidID,
		saledomain.ErrInvalidProduct,
		saledomain.ErrInvalidClient,
		saledomain.ErrInvalidQuantity,
		saledomain.ErrMissingSeller:
		return true
	default:
		return false
	}
}
