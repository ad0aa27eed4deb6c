package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/tiendaqr/backend/internal/cart"
	"github.com/tiendaqr/backend/pkg/db/models"
)

// ContactForm carries the buyer details collected at submission.
type ContactForm struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
}

// Quote is the payment prompt shown before submitting the order.
type Quote struct {
	Items     cart.Items      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	QRPayload string          `json:"qr_payload"`
	QRImage   string          `json:"qr_image_base64"`
}

// Receipt is returned once the order has been persisted.
type Receipt struct {
	Order *models.Order `json:"order"`
}
