package documents

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Variant identifies how a consent document is presented.
type Variant string

const (
	// VariantReview is a read-only consent the patient reviews and signs.
	VariantReview Variant = "type1"
	// VariantFillable carries the patient-detail fields the overlay
	// engine stamps onto the first page.
	VariantFillable Variant = "type2"
)

// Document is a provisioned consent PDF.
type Document struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	StorageKey string    `json:"-"`
	PageCount  int       `json:"pageCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Classify derives the variant from the document name. Any name containing
// "type2" (case-insensitive) is fillable; everything else is plain review.
func Classify(name string) Variant {
	if strings.Contains(strings.ToLower(name), "type2") {
		return VariantFillable
	}
	return VariantReview
}

// Variant reports the document's presentation variant.
func (d *Document) Variant() Variant {
	return Classify(d.Name)
}

// Storage keys are relative blob paths scoped by document id. The
// original never changes after provisioning; the rest are transient
// per-session artifacts.

// OriginalKey is the blob key for the pristine provisioned PDF.
func OriginalKey(id uuid.UUID) string {
	return "documents/" + id.String() + "/original.pdf"
}

// CurrentKey is the blob key for the latest overlaid render.
func CurrentKey(id uuid.UUID) string {
	return "documents/" + id.String() + "/current.pdf"
}

// SignatureKey is the blob key for the signature raster.
func SignatureKey(id uuid.UUID) string {
	return "documents/" + id.String() + "/signature.png"
}

// SignedKey is the blob key for the final uploaded artifact.
func SignedKey(id uuid.UUID) string {
	return "documents/" + id.String() + "/signed.pdf"
}
