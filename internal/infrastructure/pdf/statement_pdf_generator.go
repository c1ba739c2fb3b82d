// Package pdf genera el extracto de cuenta en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Extracto + período      │  Fecha de emisión         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TITULAR: Nombre + documento + ID                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Descripción | Monto                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Créditos / Débitos del período / SALDO ACTUAL     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appledger "github.com/jhoicas/ledger-api/internal/application/ledger"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDebit   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appledger.StatementPDFGenerator = (*StatementPDFGenerator)(nil)

// StatementPDFGenerator implementa ledger.StatementPDFGenerator usando Maroto v2.
type StatementPDFGenerator struct {
	printer *message.Printer
}

// NewStatementPDFGenerator construye el generador. lang define separadores de miles y decimales.
func NewStatementPDFGenerator(lang language.Tag) *StatementPDFGenerator {
	return &StatementPDFGenerator{printer: message.NewPrinter(lang)}
}

// GenerateStatementPDF genera el PDF y devuelve sus bytes.
func (g *StatementPDFGenerator) GenerateStatementPDF(_ context.Context, doc appledger.StatementDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Extracto de cuenta", true).
		WithAuthor(doc.Customer.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(holderRow(doc.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(doc.Operations) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos en el período.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	m.AddRows(g.tableDetailRows(doc.Operations)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar extracto: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *StatementPDFGenerator) headerRow(doc appledger.StatementDocument) core.Row {
	period := "Extracto completo"
	if doc.Date != nil {
		period = "Movimientos del " + doc.Date.Format("02/01/2006")
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New("EXTRACTO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Emitido: "+doc.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func holderRow(c *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("TITULAR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Documento: %s   |   Cuenta: %s", c.TaxID, c.ID), props.Text{
				Size: 8, Top: 11, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 3, align.Left),
		h("Tipo", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Monto", 3, align.Right),
	)
}

func (g *StatementPDFGenerator) tableDetailRows(ops []entity.Operation) []core.Row {
	rows := make([]core.Row, 0, len(ops))
	for _, op := range ops {
		label, sign, color := "Crédito", "+", (*props.Color)(nil)
		if op.Type == entity.OperationDebit {
			label, sign, color = "Débito", "-", colorDebit
		}
		rows = append(rows, row.New(7).Add(
			col.New(3).Add(text.New(op.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(label, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(nonEmpty(op.Description, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(sign+g.formatMoney(op.Amount), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: color,
			})),
		))
	}
	return rows
}

func (g *StatementPDFGenerator) totalsRow(doc appledger.StatementDocument) core.Row {
	credits, debits := decimal.Zero, decimal.Zero
	for _, op := range doc.Operations {
		if op.Type == entity.OperationDebit {
			debits = debits.Add(op.Amount)
		} else {
			credits = credits.Add(op.Amount)
		}
	}
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Créditos:", 0),
			label("Débitos:", 5),
			text.New("SALDO ACTUAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 12,
			}),
		),
		col.New(3).Add(
			value(g.formatMoney(credits), 0),
			value(g.formatMoney(debits), 5),
			text.New(g.formatMoney(doc.Balance), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 12,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney formatea con dos decimales y los separadores del idioma configurado.
func (g *StatementPDFGenerator) formatMoney(d decimal.Decimal) string {
	return g.printer.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
