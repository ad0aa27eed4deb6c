package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiendaqr/backend/internal/orders"
	"github.com/tiendaqr/backend/pkg/db/models"
	"github.com/tiendaqr/backend/pkg/enums"
	pkgerrors "github.com/tiendaqr/backend/pkg/errors"
)

type stubOrdersService struct {
	page       *orders.ListResult
	order      *models.Order
	stats      *orders.Stats
	err        error
	lastParams orders.ListParams
	lastStatus string
	deleted    []uuid.UUID
}

func (s *stubOrdersService) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	return s.order, s.err
}

func (s *stubOrdersService) List(ctx context.Context, params orders.ListParams) (*orders.ListResult, error) {
	s.lastParams = params
	return s.page, s.err
}

func (s *stubOrdersService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.order, s.err
}

func (s *stubOrdersService) UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*models.Order, error) {
	s.lastStatus = rawStatus
	return s.order, s.err
}

func (s *stubOrdersService) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

func (s *stubOrdersService) Stats(ctx context.Context) (*orders.Stats, error) {
	return s.stats, s.err
}

func exportOrder(name, email, status string) models.Order {
	return models.Order{
		ID:           uuid.New(),
		CustomerName: name,
		Email:        email,
		Phone:        "6111-2222",
		Address:      "Vía España",
		Total:        decimal.RequireFromString("19.98"),
		Status:       enums.OrderStatus(status),
	}
}

func TestAdminOrderListAppliesSearch(t *testing.T) {
	svc := &stubOrdersService{page: &orders.ListResult{Orders: []models.Order{
		exportOrder("Ana Pérez", "ana@example.com", "pendiente"),
		exportOrder("Luis Gómez", "luis@example.com", "pagado"),
	}}}
	handler := AdminOrderList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders?q=ana&limit=10", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastParams.Pagination.Limit != 10 {
		t.Fatalf("expected limit 10, got %d", svc.lastParams.Pagination.Limit)
	}

	var envelope struct {
		Data orders.ListResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Orders) != 1 || envelope.Data.Orders[0].CustomerName != "Ana Pérez" {
		t.Fatalf("expected filtered page, got %+v", envelope.Data.Orders)
	}
}

func TestAdminOrderListRejectsBadLimit(t *testing.T) {
	handler := AdminOrderList(&stubOrdersService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders?limit=9999", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminOrderUpdateStatus(t *testing.T) {
	order := exportOrder("Ana Pérez", "ana@example.com", "pagado")
	svc := &stubOrdersService{order: &order}
	handler := AdminOrderUpdateStatus(svc, nil)

	req := withURLParam(
		httptest.NewRequest(http.MethodPatch, "/api/admin/v1/orders/x/status", strings.NewReader(`{"status":"pagado"}`)),
		"orderId", order.ID.String(),
	)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastStatus != "pagado" {
		t.Fatalf("expected status pagado, got %q", svc.lastStatus)
	}
}

func TestAdminOrderUpdateStatusUnknownOrder(t *testing.T) {
	svc := &stubOrdersService{err: pkgerrors.New(pkgerrors.CodeNotFound, "pedido no existe")}
	handler := AdminOrderUpdateStatus(svc, nil)

	req := withURLParam(
		httptest.NewRequest(http.MethodPatch, "/api/admin/v1/orders/x/status", strings.NewReader(`{"status":"pagado"}`)),
		"orderId", uuid.NewString(),
	)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestAdminOrderExportCSV(t *testing.T) {
	svc := &stubOrdersService{page: &orders.ListResult{Orders: []models.Order{
		exportOrder("Ana Pérez", "ana@example.com", "pendiente"),
	}}}
	handler := AdminOrderExportCSV(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders/export/csv", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := resp.Header().Get("Content-Disposition"); !strings.Contains(cd, "pedidos-") {
		t.Fatalf("unexpected disposition %q", cd)
	}
	body := resp.Body.String()
	if !strings.Contains(body, "Cliente,Correo,Teléfono,Dirección,Total,Estado") {
		t.Fatalf("missing header row in %q", body)
	}
	if !strings.Contains(body, "Ana Pérez") {
		t.Fatalf("missing row in %q", body)
	}
}

func TestAdminOrderExportPDF(t *testing.T) {
	svc := &stubOrdersService{page: &orders.ListResult{Orders: []models.Order{
		exportOrder("Ana Pérez", "ana@example.com", "pagado"),
	}}}
	handler := AdminOrderExportPDF(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders/export/pdf", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.HasPrefix(resp.Body.String(), "%PDF") {
		t.Fatalf("expected pdf magic, got %q", resp.Body.String()[:8])
	}
}

func TestAdminOrderStats(t *testing.T) {
	svc := &stubOrdersService{stats: &orders.Stats{Pendiente: 2, Pagado: 1, Revenue: decimal.RequireFromString("50.00"), TotalCount: 3}}
	handler := AdminOrderStats(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders/stats", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data orders.Stats `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Pendiente != 2 || envelope.Data.TotalCount != 3 {
		t.Fatalf("unexpected stats %+v", envelope.Data)
	}
}
