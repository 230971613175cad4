package qr

import (
	"bytes"
	"image/png"
	"math/rand"
	"strings"
	"testing"
)

func TestPNGProducesDecodableImage(t *testing.T) {
	data, err := PNG("EMP:101|Asha|employee", 256)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid png: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 256 || bounds.Dy() != 256 {
		t.Fatalf("wrong dimensions: %v", bounds)
	}
}

func TestASCIIDeterministicForSeed(t *testing.T) {
	first := ASCII(rand.New(rand.NewSource(7)))
	second := ASCII(rand.New(rand.NewSource(7)))
	if first != second {
		t.Fatal("same seed must draw the same art")
	}

	lines := strings.Split(strings.TrimRight(first, "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("expected 9 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if len([]rune(line)) != 18 {
			t.Fatalf("row %d: expected 18 cells, got %d", i, len([]rune(line)))
		}
	}
}
