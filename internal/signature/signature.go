// Package signature handles the drawn signature raster: data-URL
// decoding, blank-canvas rejection, and the signing timestamp text that
// the merge engine stamps next to the image.
package signature

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"regexp"
	"strings"
	"time"
)

// Artifact is a validated signature ready for storage. Re-signing
// replaces the whole artifact; there is no partial update.
type Artifact struct {
	PNG      []byte
	SignedAt string
}

// TimestampLayout is the two-line signing timestamp format.
const TimestampLayout = "Date: 2006-01-02\nTime: 15:04"

var timestampPattern = regexp.MustCompile(`^Date: \d{4}-\d{2}-\d{2}\nTime: \d{2}:\d{2}$`)

// FormatTimestamp renders the signing moment as timestamp text.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ValidTimestamp reports whether text matches the signing timestamp form.
func ValidTimestamp(text string) bool {
	return timestampPattern.MatchString(text)
}

// Decode validates a data-URL PNG and returns the artifact. The raster
// must contain at least one ink pixel; an untouched canvas is rejected
// before anything is stored. An empty signedAt defaults to now.
func Decode(dataURL, signedAt string, now time.Time) (*Artifact, error) {
	raw, err := decodeDataURL(dataURL)
	if err != nil {
		return nil, err
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: not a png", ErrInvalidData)
	}
	if IsBlank(img) {
		return nil, ErrBlank
	}

	if signedAt == "" {
		signedAt = FormatTimestamp(now)
	} else if !ValidTimestamp(signedAt) {
		return nil, fmt.Errorf("%w: malformed timestamp", ErrInvalidData)
	}

	return &Artifact{PNG: raw, SignedAt: signedAt}, nil
}

func decodeDataURL(dataURL string) ([]byte, error) {
	if !strings.HasPrefix(dataURL, "data:image/png;base64,") {
		return nil, fmt.Errorf("%w: expected png data url", ErrInvalidData)
	}

	_, encoded, _ := strings.Cut(dataURL, ",")
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: bad base64", ErrInvalidData)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidData)
	}
	return raw, nil
}

// IsBlank reports whether the raster carries no visible ink. A pixel
// counts as ink when it is non-transparent and darker than near-white,
// which covers both transparent and white canvas backgrounds.
func IsBlank(img image.Image) bool {
	const nearWhite = 0xf000

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			if r >= nearWhite && g >= nearWhite && bl >= nearWhite {
				continue
			}
			return false
		}
	}
	return true
}
