package orders

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/multierr"

	"github.com/tiendaqr/backend/pkg/db/models"
)

var exportHeader = []string{"Cliente", "Correo", "Teléfono", "Dirección", "Total", "Estado"}

func exportRow(record models.Order) []string {
	return []string{
		record.CustomerName,
		record.Email,
		record.Phone,
		record.Address,
		record.Total.StringFixed(2),
		record.Status.String(),
	}
}

// ExportCSV renders the set as a CSV document with the admin panel columns.
func ExportCSV(records []models.Order) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	var errs error
	errs = multierr.Append(errs, writer.Write(exportHeader))
	for _, record := range records {
		errs = multierr.Append(errs, writer.Write(exportRow(record)))
	}
	writer.Flush()
	errs = multierr.Append(errs, writer.Error())
	if errs != nil {
		return nil, fmt.Errorf("writing csv export: %w", errs)
	}
	return buf.Bytes(), nil
}

// ExportPDF renders the set as a simple PDF table, same columns as the CSV.
func ExportPDF(records []models.Order) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Pedidos", true)
	pdf.AddPage()

	translator := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, translator("Pedidos"))
	pdf.Ln(12)

	widths := []float64{50, 60, 35, 70, 25, 30}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, column := range exportHeader {
		pdf.CellFormat(widths[i], 8, translator(column), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, record := range records {
		for i, value := range exportRow(record) {
			pdf.CellFormat(widths[i], 7, translator(value), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf export: %w", err)
	}
	return buf.Bytes(), nil
}
