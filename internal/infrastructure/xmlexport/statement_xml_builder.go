// Package xmlexport genera el extracto de cuenta en XML para integraciones contables.
//
//	<extrato generado="RFC3339">
//	  <titular id="..." documento="...">Nombre</titular>
//	  <operaciones cantidad="N" fecha="YYYY-MM-DD">
//	    <operacion id="..." tipo="credit|debit" fecha="RFC3339">
//	      <monto>100.00</monto>
//	      <descripcion>...</descripcion>
//	    </operacion>
//	  </operaciones>
//	  <saldo>120.00</saldo>
//	</extrato>
//
// fecha en operaciones solo aparece al exportar un día; descripcion, solo en créditos.
package xmlexport

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	appledger "github.com/jhoicas/ledger-api/internal/application/ledger"
)

var _ appledger.StatementXMLBuilder = (*StatementXMLBuilder)(nil)

// StatementXMLBuilder arma el documento con etree.
type StatementXMLBuilder struct{}

// NewStatementXMLBuilder construye el builder.
func NewStatementXMLBuilder() *StatementXMLBuilder { return &StatementXMLBuilder{} }

// BuildStatementXML serializa el extracto. Los montos van con dos decimales, sin separador de miles.
func (b *StatementXMLBuilder) BuildStatementXML(doc appledger.StatementDocument) ([]byte, error) {
	if doc.Customer == nil {
		return nil, fmt.Errorf("xmlexport: extracto sin titular")
	}
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := x.CreateElement("extrato")
	root.CreateAttr("generado", doc.GeneratedAt.Format(time.RFC3339))

	holder := root.CreateElement("titular")
	holder.CreateAttr("id", doc.Customer.ID)
	holder.CreateAttr("documento", doc.Customer.TaxID)
	holder.SetText(doc.Customer.Name)

	ops := root.CreateElement("operaciones")
	ops.CreateAttr("cantidad", strconv.Itoa(len(doc.Operations)))
	if doc.Date != nil {
		ops.CreateAttr("fecha", doc.Date.Format("2006-01-02"))
	}
	for _, op := range doc.Operations {
		el := ops.CreateElement("operacion")
		el.CreateAttr("id", op.ID)
		el.CreateAttr("tipo", string(op.Type))
		el.CreateAttr("fecha", op.CreatedAt.Format(time.RFC3339))
		el.CreateElement("monto").SetText(op.Amount.StringFixed(2))
		if op.Description != "" {
			el.CreateElement("descripcion").SetText(op.Description)
		}
	}

	root.CreateElement("saldo").SetText(doc.Balance.StringFixed(2))

	x.Indent(2)
	out, err := x.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmlexport: serializar: %w", err)
	}
	return out, nil
}
