package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/statement"
)

// Formatos de exportación soportados.
const (
	FormatPDF = "pdf"
	FormatXML = "xml"
)

// ExportedStatement documento listo para enviar al cliente HTTP.
type ExportedStatement struct {
	ContentType string
	FileName    string
	Body        []byte
}

// Export genera el extracto (completo o de un día) en el formato pedido.
func (uc *UseCase) Export(ctx context.Context, taxID, format string, date *time.Time) (*ExportedStatement, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatPDF
	}
	if (format == FormatPDF && uc.pdf == nil) || (format == FormatXML && uc.xml == nil) ||
		(format != FormatPDF && format != FormatXML) {
		return nil, domain.ErrInvalidInput
	}

	c, ok := uc.registry.FindByTaxID(taxID)
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	ops := c.Statement
	if date != nil {
		ops = statement.On(ops, *date)
	}
	doc := StatementDocument{
		Customer:    c,
		Operations:  ops,
		Balance:     statement.Balance(c.Statement),
		Date:        date,
		GeneratedAt: uc.now(),
	}

	name := "extrato-" + c.TaxID
	if date != nil {
		name += "-" + date.Format("2006-01-02")
	}

	switch format {
	case FormatXML:
		body, err := uc.xml.BuildStatementXML(doc)
		if err != nil {
			return nil, fmt.Errorf("exportar xml: %w", err)
		}
		return &ExportedStatement{ContentType: "application/xml", FileName: name + ".xml", Body: body}, nil
	default:
		body, err := uc.pdf.GenerateStatementPDF(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("exportar pdf: %w", err)
		}
		return &ExportedStatement{ContentType: "application/pdf", FileName: name + ".pdf", Body: body}, nil
	}
}
