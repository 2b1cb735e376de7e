package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	saledomain "github.com/smallbiznis/comercio/internal/sale/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) ExportSalesWorkbook(c *gin.Context) {
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

	sales, err := s.saleSvc.List(c.Request.Context(), saledomain.ListRequest{
		Search: strings.TrimSpace(c.Query("q")),
		From:   from,
		To:     to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.excelSvc.SalesReport(c.Request.Context(), sales)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	serveDownload(c, doc, xlsxContentType, "sales.xlsx")
}

func (s *Server) ExportSaleSheet(c *gin.Context) {
	resp, err := s.saleSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.excelSvc.SaleSheet(c.Request.Context(), *resp)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	serveDownload(c, doc, xlsxContentType, fmt.Sprintf("sale-%s.xlsx", resp.ID))
}

func (s *Server) RenderSaleInvoice(c *gin.Context) {
	resp, err := s.saleSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	inv := saledomain.Invoice{
		SaleID:      resp.ID,
		ProductName: resp.ProductName,
		ProductCode: resp.ProductCode,
		Quantity:    resp.Quantity,
		UnitPrice:   resp.UnitPrice,
		Total:       resp.Total,
		SoldAt:      resp.SoldAt,
		SellerName:  resp.SellerName,
		ClientName:  resp.ClientName,
	}
	if resp.ClientEmail != nil {
		inv.ClientEmail = *resp.ClientEmail
	}

	doc, err := s.pdfProvider.GenerateInvoice(c.Request.Context(), inv)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	serveDownload(c, doc, "application/pdf", fmt.Sprintf("invoice-%s.pdf", resp.ID))
}

func serveDownload(c *gin.Context, doc io.Reader, contentType, filename string) {
	raw, err := io.ReadAll(doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, raw)
}
