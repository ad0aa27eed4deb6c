package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tiendaqr/backend/api/responses"
	"github.com/tiendaqr/backend/api/validators"
	"github.com/tiendaqr/backend/internal/orders"
	"github.com/tiendaqr/backend/pkg/db/models"
	pkgerrors "github.com/tiendaqr/backend/pkg/errors"
	"github.com/tiendaqr/backend/pkg/logger"
	"github.com/tiendaqr/backend/pkg/pagination"
)

const maxExportPages = 50

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func orderListParams(r *http.Request) (orders.ListParams, string, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return orders.ListParams{}, "", err
	}
	descending, err := validators.ParseQueryBool(r, "descending", true)
	if err != nil {
		return orders.ListParams{}, "", err
	}

	params := orders.ListParams{
		Pagination: pagination.Params{
			Limit:  limit,
			Cursor: validators.SanitizeString(r.URL.Query().Get("cursor"), 200),
		},
		SortBy:     orders.SortField(validators.SanitizeString(r.URL.Query().Get("sort_by"), 50)),
		Descending: descending,
	}
	query := validators.SanitizeString(r.URL.Query().Get("q"), 200)
	return params, query, nil
}

// AdminOrderList pages through orders, optionally filtered by a free-text
// search over the fetched page.
func AdminOrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		params, query, err := orderListParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if query != "" {
			page.Orders = orders.Search(page.Orders, query)
		}

		responses.WriteSuccess(w, page)
	}
}

func AdminOrderDetail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		id, err := parsePathID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

func AdminOrderUpdateStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		id, err := parsePathID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateStatus(r.Context(), id, body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

func AdminOrderDelete(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		id, err := parsePathID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func AdminOrderStats(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}

// AdminOrderExportCSV streams the filtered order set as a CSV download.
func AdminOrderExportCSV(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := collectExportOrders(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := orders.ExportCSV(records)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rendering csv"))
			return
		}

		writeAttachment(w, payload, "text/csv; charset=utf-8", "csv")
	}
}

// AdminOrderExportPDF streams the filtered order set as a PDF download.
func AdminOrderExportPDF(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := collectExportOrders(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := orders.ExportPDF(records)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rendering pdf"))
			return
		}

		writeAttachment(w, payload, "application/pdf", "pdf")
	}
}

func collectExportOrders(r *http.Request, svc orders.Service) ([]models.Order, error) {
	if svc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable")
	}

	query := validators.SanitizeString(r.URL.Query().Get("q"), 200)

	var collected []models.Order
	cursor := ""
	for page := 0; page < maxExportPages; page++ {
		result, err := svc.List(r.Context(), orders.ListParams{
			Pagination: pagination.Params{Limit: pagination.MaxLimit, Cursor: cursor},
			SortBy:     orders.SortByCreatedAt,
			Descending: true,
		})
		if err != nil {
			return nil, err
		}
		collected = append(collected, result.Orders...)
		if result.NextCursor == "" {
			break
		}
		cursor = result.NextCursor
	}

	if query != "" {
		collected = orders.Search(collected, query)
	}
	return collected, nil
}

func writeAttachment(w http.ResponseWriter, payload []byte, contentType, extension string) {
	filename := fmt.Sprintf("pedidos-%s.%s", time.Now().UTC().Format("2006-01-02"), extension)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
