package orders

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tiendaqr/backend/pkg/db/models"
	"github.com/tiendaqr/backend/pkg/enums"
)

func exportFixture() []models.Order {
	return []models.Order{
		{
			CustomerName: "Ana Pérez",
			Email:        "ana@example.com",
			Phone:        "6000-0000",
			Address:      "Calle 50, Ciudad de Panamá",
			Total:        decimal.RequireFromString("19.98"),
			Status:       enums.OrderStatusPending,
		},
		{
			CustomerName: "Luis Gómez",
			Email:        "luis@example.com",
			Phone:        "6111-1111",
			Address:      "Vía España",
			Total:        decimal.RequireFromString("5.50"),
			Status:       enums.OrderStatusPaid,
		},
	}
}

func TestExportCSV(t *testing.T) {
	t.Parallel()

	payload, err := ExportCSV(exportFixture())
	if err != nil {
		t.Fatalf("export csv: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	wantHeader := []string{"Cliente", "Correo", "Teléfono", "Dirección", "Total", "Estado"}
	for i, column := range wantHeader {
		if rows[0][i] != column {
			t.Fatalf("header column %d: want %q, got %q", i, column, rows[0][i])
		}
	}

	if rows[1][0] != "Ana Pérez" || rows[1][4] != "19.98" || rows[1][5] != "pendiente" {
		t.Fatalf("unexpected first row %v", rows[1])
	}
	if rows[2][5] != "pagado" {
		t.Fatalf("unexpected second row %v", rows[2])
	}
}

func TestExportCSVEmptySetStillHasHeader(t *testing.T) {
	t.Parallel()

	payload, err := ExportCSV(nil)
	if err != nil {
		t.Fatalf("export csv: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}

func TestExportPDF(t *testing.T) {
	t.Parallel()

	payload, err := ExportPDF(exportFixture())
	if err != nil {
		t.Fatalf("export pdf: %v", err)
	}
	if !bytes.HasPrefix(payload, []byte("%PDF")) {
		t.Fatal("expected pdf magic header")
	}
	if len(payload) < 500 {
		t.Fatalf("suspiciously small pdf: %d bytes", len(payload))
	}
}
