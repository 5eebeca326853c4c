package verify

import (
	"context"

	"github.com/google/uuid"
)

// Credentials checks identity claims against stored document records.
// Implementations return a non-nil error for any mismatch, including an
// unknown document id.
type Credentials interface {
	CheckBirthday(ctx context.Context, id uuid.UUID, isoBirthday string) error
	CheckPIN(ctx context.Context, id uuid.UUID, pin string) error
}

// System performs verification and records the outcome on the session.
type System interface {
	VerifyPatient(ctx context.Context, id uuid.UUID, birthday string) error
	VerifyDoctor(ctx context.Context, id uuid.UUID, pin string) error
}
