package verify

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/caresign/caresign/internal/sessions"
)

type credentials struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewCredentials creates a credential checker backed by the documents table.
func NewCredentials(db *sql.DB, logger *slog.Logger) Credentials {
	return &credentials{
		db:     db,
		logger: logger.With("system", "verify"),
	}
}

func (c *credentials) CheckBirthday(ctx context.Context, id uuid.UUID, isoBirthday string) error {
	q := `SELECT 1 FROM documents WHERE id = $1 AND birthday = $2::date`
	return c.check(ctx, q, id, isoBirthday)
}

func (c *credentials) CheckPIN(ctx context.Context, id uuid.UUID, pin string) error {
	q := `SELECT 1 FROM documents WHERE id = $1 AND doctor_pin = $2`
	return c.check(ctx, q, id, pin)
}

func (c *credentials) check(ctx context.Context, q string, id uuid.UUID, value string) error {
	var one int
	err := c.db.QueryRowContext(ctx, q, id, value).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		c.logger.Info("verification rejected", "id", id)
		return sql.ErrNoRows
	}
	if err != nil {
		c.logger.Error("credential check failed", "id", id, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

type service struct {
	creds    Credentials
	sessions sessions.System
	logger   *slog.Logger
}

// NewSystem creates a verification service that checks credentials and
// marks the session verified on success.
func NewSystem(creds Credentials, store sessions.System, logger *slog.Logger) System {
	return &service{
		creds:    creds,
		sessions: store,
		logger:   logger.With("system", "verify"),
	}
}

func (s *service) VerifyPatient(ctx context.Context, id uuid.UUID, birthday string) error {
	m := NewMachine()
	if err := m.SubmitBirthday(ctx, birthday, func(ctx context.Context, iso string) error {
		return s.creds.CheckBirthday(ctx, id, iso)
	}); err != nil {
		return err
	}

	if err := s.sessions.MarkVerified(ctx, id, sessions.UserPatient); err != nil {
		return err
	}

	s.logger.Info("patient verified", "id", id)
	return nil
}

func (s *service) VerifyDoctor(ctx context.Context, id uuid.UUID, pin string) error {
	m := NewMachine()
	if err := m.SubmitPIN(ctx, pin, func(ctx context.Context, p string) error {
		return s.creds.CheckPIN(ctx, id, p)
	}); err != nil {
		return err
	}

	if err := s.sessions.MarkVerified(ctx, id, sessions.UserDoctor); err != nil {
		return err
	}

	s.logger.Info("doctor verified", "id", id)
	return nil
}
