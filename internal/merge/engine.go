// Package merge produces the final signed consent: the signature raster
// and signing timestamp stamped onto the last page of the base PDF.
package merge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
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

// Signature placement on the last page, in points from bottom-left.
const (
	SignatureX     = 350
	SignatureY     = 150
	SignatureWidth = 175

	TimestampX      = 350
	TimestampY      = 150
	TimestampPoints = 10
)

// System produces the signed document for a session.
type System interface {
	Produce(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type engine struct {
	docs     documents.System
	blobs    storage.System
	sessions sessions.System
	logger   *slog.Logger
}

// New creates the merge engine.
func New(docs documents.System, blobs storage.System, store sessions.System, logger *slog.Logger) System {
	return &engine{
		docs:     docs,
		blobs:    blobs,
		sessions: store,
		logger:   logger.With("system", "merge"),
	}
}

// Produce merges the session's signature and timestamp into its base PDF.
// The base is the latest overlaid render when one exists, otherwise the
// original. Missing base or signature fails fast with
// sessions.ErrSignatureMissing; nothing partial is ever produced.
func (e *engine) Produce(ctx context.Context, id uuid.UUID) ([]byte, error) {
	session, err := e.sessions.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := session.RequireSignature(); err != nil {
		return nil, err
	}

	base, err := e.loadBase(ctx, id, session)
	if err != nil {
		return nil, err
	}

	sig, err := e.blobs.Retrieve(ctx, session.SignatureKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, sessions.ErrSignatureMissing
		}
		return nil, fmt.Errorf("retrieve signature: %w", err)
	}

	merged, err := Merge(base, sig, session.SignedAtText)
	if err != nil {
		e.logger.Error("merge failed", "id", id, "error", err)
		return nil, err
	}

	e.logger.Info("signed document produced", "id", id, "bytes", len(merged))
	return merged, nil
}

func (e *engine) loadBase(ctx context.Context, id uuid.UUID, session *sessions.Session) ([]byte, error) {
	if session.CurrentKey != "" {
		data, err := e.blobs.Retrieve(ctx, session.CurrentKey)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("retrieve render: %w", err)
		}
	}

	_, data, err := e.docs.LoadOriginal(ctx, id)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return nil, sessions.ErrSignatureMissing
		}
		return nil, err
	}
	return data, nil
}

// Merge stamps the signature image and timestamp text onto the last page
// of base. Both inputs are required.
func Merge(base, signaturePNG []byte, timestamp string) ([]byte, error) {
	if len(base) == 0 || len(signaturePNG) == 0 {
		return nil, sessions.ErrSignatureMissing
	}

	pages, err := pdf.PageCount(base)
	if err != nil {
		return nil, err
	}

	scale, err := SignatureScale(signaturePNG)
	if err != nil {
		return nil, err
	}

	imageDesc := fmt.Sprintf("scale:%g abs, pos:bl, off:%d %d, rot:0",
		scale, SignatureX, SignatureY)
	imageWM, err := api.ImageWatermarkForReader(
		bytes.NewReader(signaturePNG), imageDesc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("build signature stamp: %w", err)
	}

	withImage, err := addToPage(base, pages, imageWM)
	if err != nil {
		return nil, fmt.Errorf("stamp signature: %w", err)
	}

	textDesc := fmt.Sprintf(
		"fontname:Helvetica, points:%d, scale:1 abs, pos:bl, off:%d %d, rot:0, fillcolor:#000000",
		TimestampPoints, TimestampX, TimestampY)
	textWM, err := api.TextWatermark(timestamp, textDesc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("build timestamp stamp: %w", err)
	}

	merged, err := addToPage(withImage, pages, textWM)
	if err != nil {
		return nil, fmt.Errorf("stamp timestamp: %w", err)
	}
	return merged, nil
}

// SignatureScale computes the pdfcpu absolute scale factor that renders
// the raster at SignatureWidth points, preserving aspect ratio.
func SignatureScale(signaturePNG []byte) (float64, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(signaturePNG))
	if err != nil {
		return 0, fmt.Errorf("decode signature: %w", err)
	}
	if cfg.Width <= 0 {
		return 0, fmt.Errorf("decode signature: zero width")
	}
	return float64(SignatureWidth) / float64(cfg.Width), nil
}

func addToPage(data []byte, page int, wm *model.Watermark) ([]byte, error) {
	var buf bytes.Buffer
	err := api.AddWatermarksMap(
		bytes.NewReader(data), &buf,
		map[int]*model.Watermark{page: wm},
		pdf.Configuration(),
	)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
