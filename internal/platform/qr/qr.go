// Package qr renders the profile badge codes: a real scannable QR PNG and
// the legacy console art, which is decorative noise rather than an
// encoding.
package qr

import (
	"bytes"
	"image/png"
	"math/rand"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// PNG encodes data as a QR code image of size x size pixels.
func PNG(data string, size int) ([]byte, error) {
	code, err := qr.Encode(data, qr.M, qr.Auto)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const (
	artRows = 9
	artCols = 18
)

// ASCII draws the decorative block-art badge. The randomness source is
// injected so callers can seed it for deterministic output.
func ASCII(rnd *rand.Rand) string {
	var sb strings.Builder
	for i := 0; i < artRows; i++ {
		for j := 0; j < artCols; j++ {
			if rnd.Intn(2) == 0 {
				sb.WriteRune('█')
			} else {
				sb.WriteRune(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
