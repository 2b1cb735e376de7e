package excel

import (
	"context"
	"fmt"
	"io"

	"github.com/smallbiznis/comercio/internal/billing"
	saledomain "github.com/smallbiznis/comercio/internal/sale/domain"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName  = "Sales"
	dateFormat = "2006-01-02 15:04"
)

var header = []string{
	"Sale ID", "Date", "Product", "Client", "Seller",
	"Quantity", "Unit price", "Subtotal", "Tax (12%)", "Total",
}

type ExcelProvider struct{}

func New() Provider {
	return &ExcelProvider{}
}

func (p *ExcelProvider) SalesReport(ctx context.Context, sales []saledomain.Response) (io.Reader, error) {
	return render(sales)
}

func (p *ExcelProvider) SaleSheet(ctx context.Context, sale saledomain.Response) (io.Reader, error) {
	return render([]saledomain.Response{sale})
}

func render(sales []saledomain.Response) (io.Reader, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return nil, err
		}
	}

	for i := range sales {
		sale := &sales[i]
		breakdown := billing.Breakdown(sale.Total)

		values := []any{
			sale.ID,
			sale.SoldAt.Format(dateFormat),
			sale.ProductName,
			sale.ClientName,
			sale.SellerName,
			sale.Quantity,
			billing.FormatCents(sale.UnitPrice),
			billing.FormatCents(breakdown.Subtotal),
			billing.FormatCents(breakdown.Tax),
			billing.FormatCents(breakdown.Total),
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
