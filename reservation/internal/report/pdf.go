package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Astemirdum/venue-reservation/reservation/internal/model"
)

const (
	pageMargin = 15.0
	lineHeight = 6.0
)

// PDF renders one block per reservation followed by the totals.
func PDF(rows []model.ReservationSummary, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, 20, pageMargin)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetCreationDate(generatedAt)
	pdf.SetTitle("Reporte de Reservas", true)
	// core fonts are cp1252, accents need translating
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Página %d", pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Reporte de Reservas"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, lineHeight, tr("Generado: "+generatedAt.Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	var revenue float64
	for _, r := range rows {
		revenue += r.TotalPrice
		writeReservation(pdf, tr, r)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Total de reservas: %d", len(rows))), "1", 1, "L", true, 0, "")
	pdf.CellFormat(0, 8, tr("Ingresos totales: $"+money(revenue)), "1", 1, "L", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeReservation(pdf *fpdf.Fpdf, tr func(string) string, r model.ReservationSummary) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(52, 73, 94)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Reserva #%d - %s", r.ID, r.Date.Format("02/01/2006"))), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 9)
	field := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(35, lineHeight, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, lineHeight, tr(value), "", "L", false)
	}
	field("Cliente:", fmt.Sprintf("%s (%s) - Tel: %s", r.ClientName, r.ClientEmail, orDefault(r.ClientPhone, "N/A")))
	field("Salón:", fmt.Sprintf("%s - %s (capacidad %d)", r.VenueTitle, r.VenueAddress, r.VenueCapacity))
	field("Turno:", slot(r))
	field("Temática:", orDefault(r.Theme, "No especificada"))
	field("Servicios:", servicesText(r.Services))
	field("Importe salón:", "$"+money(r.VenuePrice))

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, lineHeight+1, tr("Importe total: $"+money(r.TotalPrice)), "T", 1, "R", false, 0, "")
	pdf.Ln(4)
}
