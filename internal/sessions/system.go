package sessions

import (
	"context"

	"github.com/google/uuid"
)

// System defines session store operations. All writes are keyed by the
// document UUID; the overlay token methods implement the last-issued-wins
// guard for keystroke-triggered re-renders.
type System interface {
	Create(ctx context.Context, id uuid.UUID) error
	Find(ctx context.Context, id uuid.UUID) (*Session, error)
	MarkVerified(ctx context.Context, id uuid.UUID, userType UserType) error
	IssueOverlayToken(ctx context.Context, id uuid.UUID) (int64, error)
	ApplyOverlay(ctx context.Context, id uuid.UUID, token int64, answers map[string]string, currentKey string) error
	SaveSignature(ctx context.Context, id uuid.UUID, signatureKey, signedAtText string) error
	SaveSigned(ctx context.Context, id uuid.UUID, signedKey string) error
	SetVoiceEnabled(ctx context.Context, id uuid.UUID, enabled bool) error
	ClearTransient(ctx context.Context, id uuid.UUID) error
}
