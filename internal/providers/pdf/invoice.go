package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/smallbiznis/comercio/internal/billing"
	saledomain "github.com/smallbiznis/comercio/internal/sale/domain"
)

const dateFormat = "2006-01-02"

type PDFProvider struct {
	companyName string
}

func New(companyName string) Provider {
	return &PDFProvider{companyName: companyName}
}

func (p *PDFProvider) GenerateInvoice(ctx context.Context, inv saledomain.Invoice) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(10,
		text.NewCol(12, "Invoice", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Invoice number: "+inv.SaleID, props.Text{Top: 0}),
			text.New("Date: "+inv.SoldAt.Format(dateFormat), props.Text{Top: 4}),
			text.New("Seller: "+inv.SellerName, props.Text{Top: 8}),
		),
		col.New(6).Add(
			text.New(p.companyName, props.Text{Style: fontstyle.Bold}),
			text.New("Bill to", props.Text{Top: 8, Style: fontstyle.Bold}),
			text.New(inv.ClientName, props.Text{Top: 12}),
			text.New(inv.ClientEmail, props.Text{Top: 16}),
		),
	)

	m.AddRow(10,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	description := inv.ProductName
	if inv.ProductCode != "" {
		description = fmt.Sprintf("%s (%s)", inv.ProductName, inv.ProductCode)
	}
	m.AddRow(15,
		text.NewCol(6, description, props.Text{Size: 9}),
		text.NewCol(2, fmt.Sprintf("%d", inv.Quantity), props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, billing.FormatCents(inv.UnitPrice), props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, billing.FormatCents(inv.Total), props.Text{Size: 9, Align: align.Right}),
	)

	breakdown := billing.Breakdown(inv.Total)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, billing.FormatCents(breakdown.Subtotal), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Tax (12%)", props.Text{Size: 9}),
		text.NewCol(2, billing.FormatCents(breakdown.Tax), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, billing.FormatCents(breakdown.Total), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
