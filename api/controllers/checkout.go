package controllers

import (
	"net/http"

	"github.com/tiendaqr/backend/api/middleware"
	"github.com/tiendaqr/backend/api/responses"
	"github.com/tiendaqr/backend/api/validators"
	checkoutsvc "github.com/tiendaqr/backend/internal/checkout"
	pkgerrors "github.com/tiendaqr/backend/pkg/errors"
	"github.com/tiendaqr/backend/pkg/logger"
)

// CheckoutQuote returns the cart totals plus the Yappy QR payment prompt.
func CheckoutQuote(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		quote, err := svc.Quote(r.Context(), middleware.DeviceIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

// CheckoutSubmit places the order for the device's cart.
func CheckoutSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var form checkoutsvc.ContactForm
		if err := validators.DecodeJSONBody(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.Submit(r.Context(), middleware.DeviceIDFromContext(r.Context()), form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}
