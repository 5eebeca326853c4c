// Package sessions provides the per-document signing session: the typed,
// reload-safe handoff between the stages of the consent flow. Each stage
// reads its preconditions from the session and writes its own results back,
// so any page can be reloaded without losing progress.
package sessions

import (
	"time"

	"github.com/google/uuid"
)

// UserType identifies who verified the session.
type UserType string

// User types.
const (
	UserPatient UserType = "patient"
	UserDoctor  UserType = "doctor"
)

// Session is the signing state for one document UUID.
type Session struct {
	ID           uuid.UUID         `json:"id"`
	UserType     UserType          `json:"user_type,omitempty"`
	VerifiedAt   *time.Time        `json:"verified_at,omitempty"`
	Answers      map[string]string `json:"answers"`
	OverlayToken int64             `json:"overlay_token"`
	CurrentKey   string            `json:"current_key,omitempty"`
	SignatureKey string            `json:"signature_key,omitempty"`
	SignedAtText string            `json:"signed_at_text,omitempty"`
	SignedKey    string            `json:"signed_key,omitempty"`
	VoiceEnabled bool              `json:"voice_enabled"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Verified reports whether the session passed identity verification.
func (s *Session) Verified() bool {
	return s.VerifiedAt != nil
}

// RequireVerified checks the verification stage precondition.
func (s *Session) RequireVerified() error {
	if !s.Verified() {
		return ErrNotVerified
	}
	return nil
}

// RequireSignature checks the signing stage precondition: a stored
// signature raster and its timestamp.
func (s *Session) RequireSignature() error {
	if s.SignatureKey == "" {
		return ErrSignatureMissing
	}
	return nil
}

// RequireSigned checks the submission stage precondition: a merged
// signed document ready for upload.
func (s *Session) RequireSigned() error {
	if s.SignedKey == "" {
		return ErrSignedMissing
	}
	return nil
}
