package infra

// pdf.go renders an invoice receipt with go-pdf/fpdf: enterprise header,
// invoice id and date, one row per sale line, and the invoice total.

import (
	"bytes"
	"fmt"

	"github.com/MartinOstios/backend-posco/internal/model"

	"github.com/go-pdf/fpdf"
)

var paymentLabels = map[model.PaymentMethod]string{
	model.PaymentCash:       "Efectivo",
	model.PaymentCreditCard: "Tarjeta de crédito",
	model.PaymentDebitCard:  "Tarjeta débito",
}

// RenderInvoicePDF returns the receipt as PDF bytes. inv.Sales should be
// preloaded with their products.
func RenderInvoicePDF(inv *model.Invoice, ent *model.Enterprise) ([]byte, error) {
	// 80mm thermal roll; height grows with the number of lines
	height := 90 + float64(len(inv.Sales))*5
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 80, Ht: height},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.SetAutoPageBreak(false, 4)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, tr(ent.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, "NIT "+ent.TaxID, "", 1, "C", false, 0, "")
	if ent.Phone != "" {
		pdf.CellFormat(contentW, 4, "Tel. "+ent.Phone, "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, "Factura "+inv.ID.String()[:8], "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, inv.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Lines ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, s := range inv.Sales {
		name := ""
		if s.Product != nil {
			name = s.Product.Name
		}
		if r := []rune(name); len(r) > 24 {
			name = string(r[:23]) + "."
		}
		pdf.CellFormat(col1, 5, tr(name), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", s.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+s.TotalPrice.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL "+ent.Currency+":", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+inv.TotalPrice.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, tr("Pago: "+paymentLabels[inv.PaymentMethod]), "", 1, "L", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, tr("¡Gracias por su compra!"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render invoice: %w", err)
	}
	return buf.Bytes(), nil
}
