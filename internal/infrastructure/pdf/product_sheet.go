// Package pdf genera la ficha imprimible de un producto del inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del producto      │  Fecha de emisión        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Descripción / Proveedor / Imagen                    │
//	│  PRECIO y STOCK                                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el id del producto + fechas de registro     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/farmasync-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 110, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// lowStockThreshold por debajo de este stock la ficha lo resalta.
const lowStockThreshold = 10

// ProductSheetGenerator genera la ficha PDF con Maroto v2.
type ProductSheetGenerator struct {
	now func() time.Time
}

// NewProductSheetGenerator construye el generador.
func NewProductSheetGenerator() *ProductSheetGenerator {
	return &ProductSheetGenerator{now: time.Now}
}

// Generate devuelve los bytes del PDF.
func (g *ProductSheetGenerator) Generate(_ context.Context, p *entity.Product) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Ficha de producto - "+p.Name, true).
		WithAuthor("FarmaSync", true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(p, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(detailRows(p)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(priceStockRow(p))
	m.AddRows(line.NewRow(4))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(p))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(p *entity.Product, now time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New("FICHA DE PRODUCTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1,
			}),
			text.New(p.Name, props.Text{
				Style: fontstyle.Bold, Size: 15, Color: colorPrimary, Top: 6,
			}),
		),
		col.New(4).Add(
			text.New("Emitida: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
		),
	)
}

func detailRows(p *entity.Product) []core.Row {
	field := func(label, value string) core.Row {
		return row.New(9).Add(
			col.New(3).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Top: 2})),
			col.New(9).Add(text.New(value, props.Text{Size: 9, Top: 2})),
		)
	}
	return []core.Row{
		field("Descripción", nonEmpty(p.Description, "-")),
		field("Proveedor", nonEmpty(p.SupplierID, "-")),
		field("Imagen", nonEmpty(p.ImageURL, "-")),
	}
}

func priceStockRow(p *entity.Product) core.Row {
	stockColor := colorPrimary
	stockLabel := fmt.Sprintf("%d unidades", p.Stock)
	if p.Stock < lowStockThreshold {
		stockColor = colorAlert
		stockLabel += " (stock bajo)"
	}
	return row.New(16).Add(
		col.New(6).Add(
			text.New("PRECIO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1}),
			text.New("$ "+p.Price.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 14, Top: 6}),
		),
		col.New(6).Add(
			text.New("STOCK", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1, Align: align.Right}),
			text.New(stockLabel, props.Text{Style: fontstyle.Bold, Size: 14, Top: 6, Align: align.Right, Color: stockColor}),
		),
	)
}

func footerRow(p *entity.Product) core.Row {
	return row.New(32).Add(
		col.New(8).Add(
			text.New("ID: "+p.ID, props.Text{Size: 8, Top: 4, Color: colorGray}),
			text.New("Registrado: "+formatDate(p.CreatedAt), props.Text{Size: 8, Top: 10, Color: colorGray}),
			text.New("Actualizado: "+formatDate(p.UpdatedAt), props.Text{Size: 8, Top: 16, Color: colorGray}),
		),
		col.New(4).Add(code.NewQr(p.ID, props.Rect{
			Center: true, Percent: 90,
		})),
	)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006 15:04")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
