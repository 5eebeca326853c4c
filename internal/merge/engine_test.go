package merge

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/caresign/caresign/internal/sessions"
)

func signaturePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, height/2, color.Black)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestMergeFailsFastWithoutInputs(t *testing.T) {
	sig := signaturePNG(t, 350, 200)

	tests := []struct {
		name string
		base []byte
		sig  []byte
	}{
		{"no base", nil, sig},
		{"no signature", []byte("%PDF-1.4"), nil},
		{"neither", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Merge(tt.base, tt.sig, "Date: 2026-08-28\nTime: 10:00")
			if !errors.Is(err, sessions.ErrSignatureMissing) {
				t.Fatalf("error = %v, want ErrSignatureMissing", err)
			}
			if out != nil {
				t.Error("partial output produced on fail-fast path")
			}
		})
	}
}

func TestSignatureScale(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  float64
	}{
		{"wider than target", 350, 0.5},
		{"exact target", 175, 1.0},
		{"narrower than target", 70, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scale, err := SignatureScale(signaturePNG(t, tt.width, 100))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(scale-tt.want) > 1e-9 {
				t.Errorf("scale = %g, want %g", scale, tt.want)
			}
		})
	}
}

func TestSignatureScaleRejectsGarbage(t *testing.T) {
	if _, err := SignatureScale([]byte("not a png")); err == nil {
		t.Fatal("expected error for non-png input")
	}
}
