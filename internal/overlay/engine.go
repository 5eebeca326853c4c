// Package overlay stamps patient answers onto the first page of a
// fillable consent PDF. Every render starts from the pristine original,
// so re-rendering with corrected answers never compounds earlier stamps.
package overlay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/caresign/caresign/internal/documents"
	"github.com/caresign/caresign/internal/pdf"
	"github.com/caresign/caresign/internal/sessions"
	"github.com/caresign/caresign/internal/storage"
)

// System renders answer overlays for a document session.
type System interface {
	Render(ctx context.Context, id uuid.UUID, answers map[string]string) ([]byte, error)
}

type engine struct {
	docs     documents.System
	blobs    storage.System
	sessions sessions.System
	logger   *slog.Logger
}

// New creates the overlay engine.
func New(docs documents.System, blobs storage.System, store sessions.System, logger *slog.Logger) System {
	return &engine{
		docs:     docs,
		blobs:    blobs,
		sessions: store,
		logger:   logger.With("system", "overlay"),
	}
}

// Render produces a fresh overlaid PDF for the session's answers and
// publishes it as the current render. Each call carries an overlay token;
// if a later call finishes first, this result is discarded and
// sessions.ErrSuperseded is returned.
func (e *engine) Render(ctx context.Context, id uuid.UUID, answers map[string]string) ([]byte, error) {
	doc, original, err := e.docs.LoadOriginal(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Variant() != documents.VariantFillable {
		return nil, ErrNotFillable
	}

	token, err := e.sessions.IssueOverlayToken(ctx, id)
	if err != nil {
		return nil, err
	}

	rendered, err := Stamp(original, answers)
	if err != nil {
		e.logger.Error("overlay render failed", "id", id, "error", err)
		return nil, ErrTransform
	}

	key := documents.CurrentKey(id)
	if err := e.blobs.Store(ctx, key, rendered); err != nil {
		return nil, fmt.Errorf("store render: %w", err)
	}

	if err := e.sessions.ApplyOverlay(ctx, id, token, answers, key); err != nil {
		if errors.Is(err, sessions.ErrSuperseded) {
			return nil, err
		}
		return nil, err
	}

	e.logger.Debug("overlay rendered", "id", id, "token", token, "fields", len(Plan(answers)))
	return rendered, nil
}

// Stamp draws the planned placements onto the first page and returns the
// new document bytes. The input is never modified; an empty plan returns
// a copy of the original unchanged.
func Stamp(original []byte, answers map[string]string) ([]byte, error) {
	placements := Plan(answers)

	current := original
	for _, p := range placements {
		stamped, err := stampText(current, p)
		if err != nil {
			return nil, err
		}
		current = stamped
	}

	if len(placements) == 0 {
		out := make([]byte, len(original))
		copy(out, original)
		return out, nil
	}
	return current, nil
}

func stampText(data []byte, p Placement) ([]byte, error) {
	desc := fmt.Sprintf(
		"fontname:%s, points:%d, scale:1 abs, pos:bl, off:%g %g, rot:0, fillcolor:%s",
		FontName, FontPoints, p.Field.X, p.Field.Y, FillColor,
	)

	wm, err := api.TextWatermark(p.Text, desc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("build stamp %q: %w", p.Field.Name, err)
	}

	var buf bytes.Buffer
	err = api.AddWatermarksMap(
		bytes.NewReader(data), &buf,
		map[int]*model.Watermark{1: wm},
		pdf.Configuration(),
	)
	if err != nil {
		return nil, fmt.Errorf("apply stamp %q: %w", p.Field.Name, err)
	}
	return buf.Bytes(), nil
}
