// Package pdf holds the shared pdfcpu configuration and small document
// inspection helpers used by the overlay and merge engines.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Configuration returns the pdfcpu configuration for all document
// processing. Validation is relaxed: consent PDFs come from external
// scanners and authoring tools that frequently bend the spec.
func Configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageCount reports the number of pages in the document.
func PageCount(data []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(data), Configuration())
	if err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return count, nil
}
