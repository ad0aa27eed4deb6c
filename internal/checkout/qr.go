package checkout

import (
	"encoding/base64"
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/shopspring/decimal"
)

// yappyPayload builds the payment deep link encoded into the QR image.
func yappyPayload(recipient string, total decimal.Decimal) string {
	return fmt.Sprintf("yappy://pay?recipient=%s&amount=%s",
		url.QueryEscape(recipient), total.StringFixed(2))
}

func yappyQRImage(payload string, size int) (string, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return "", fmt.Errorf("encoding payment qr: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
