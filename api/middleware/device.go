package middleware

import (
	"net/http"
	"strings"

	"github.com/tiendaqr/backend/api/responses"
	pkgerrors "github.com/tiendaqr/backend/pkg/errors"
	"github.com/tiendaqr/backend/pkg/logger"
)

const deviceIDHeader = "X-Device-Id"

// RequireDeviceID scopes cart and checkout traffic to the device that owns
// the snapshot. Guests never authenticate, so the header is the identity.
func RequireDeviceID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deviceID := strings.TrimSpace(r.Header.Get(deviceIDHeader))
			if deviceID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "X-Device-Id header is required"))
				return
			}

			ctx := WithDeviceID(r.Context(), deviceID)
			if logg != nil {
				ctx = logg.WithDeviceID(ctx, deviceID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
