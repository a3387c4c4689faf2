package pdf

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// QRCode encodes content as a PNG of size x size pixels
func QRCode(content string, size int) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}
