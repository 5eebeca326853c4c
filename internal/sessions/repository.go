package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a session repository backed by the database.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "sessions"),
	}
}

const sessionColumns = `id, user_type, verified_at, answers, overlay_token,
	current_key, signature_key, signed_at_text, signed_key, voice_enabled, updated_at`

func (r *repo) Create(ctx context.Context, id uuid.UUID) error {
	q := `INSERT INTO sessions (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Session, error) {
	q := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	s, err := scanSession(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query session: %w", err)
	}
	return s, nil
}

func (r *repo) MarkVerified(ctx context.Context, id uuid.UUID, userType UserType) error {
	q := `UPDATE sessions
		SET user_type = $2, verified_at = NOW(), updated_at = NOW()
		WHERE id = $1`

	if err := r.execExpectOne(ctx, q, id, string(userType)); err != nil {
		return err
	}

	r.logger.Info("session verified", "id", id, "user_type", userType)
	return nil
}

// IssueOverlayToken reserves the next overlay token for the session.
// Tokens increase monotonically; only the render carrying the latest
// issued token may publish its result.
func (r *repo) IssueOverlayToken(ctx context.Context, id uuid.UUID) (int64, error) {
	q := `UPDATE sessions
		SET overlay_token = overlay_token + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING overlay_token`

	var token int64
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("issue overlay token: %w", err)
	}
	return token, nil
}

// ApplyOverlay publishes an overlay result. The update is guarded on the
// token still being the latest issued; a superseded result is discarded.
func (r *repo) ApplyOverlay(ctx context.Context, id uuid.UUID, token int64, answers map[string]string, currentKey string) error {
	encoded, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	q := `UPDATE sessions
		SET answers = $3, current_key = $4, updated_at = NOW()
		WHERE id = $1 AND overlay_token = $2`

	res, err := r.db.ExecContext(ctx, q, id, token, encoded, currentKey)
	if err != nil {
		return fmt.Errorf("apply overlay: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("apply overlay: %w", err)
	}
	if affected == 0 {
		r.logger.Debug("stale overlay discarded", "id", id, "token", token)
		return ErrSuperseded
	}
	return nil
}

func (r *repo) SaveSignature(ctx context.Context, id uuid.UUID, signatureKey, signedAtText string) error {
	q := `UPDATE sessions
		SET signature_key = $2, signed_at_text = $3, signed_key = NULL, updated_at = NOW()
		WHERE id = $1`

	if err := r.execExpectOne(ctx, q, id, signatureKey, signedAtText); err != nil {
		return err
	}

	r.logger.Info("signature saved", "id", id)
	return nil
}

func (r *repo) SaveSigned(ctx context.Context, id uuid.UUID, signedKey string) error {
	q := `UPDATE sessions SET signed_key = $2, updated_at = NOW() WHERE id = $1`
	return r.execExpectOne(ctx, q, id, signedKey)
}

func (r *repo) SetVoiceEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	q := `UPDATE sessions SET voice_enabled = $2, updated_at = NOW() WHERE id = $1`
	return r.execExpectOne(ctx, q, id, enabled)
}

// ClearTransient drops everything the flow no longer needs after a
// successful upload. The signed artifact key survives for audit.
func (r *repo) ClearTransient(ctx context.Context, id uuid.UUID) error {
	q := `UPDATE sessions
		SET answers = '{}'::jsonb, overlay_token = 0, current_key = NULL,
			signature_key = NULL, signed_at_text = NULL, updated_at = NOW()
		WHERE id = $1`

	if err := r.execExpectOne(ctx, q, id); err != nil {
		return err
	}

	r.logger.Info("session transient state cleared", "id", id)
	return nil
}

func (r *repo) execExpectOne(ctx context.Context, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type row interface {
	Scan(dest ...any) error
}

func scanSession(r row) (*Session, error) {
	var (
		s            Session
		userType     sql.NullString
		verifiedAt   sql.NullTime
		answers      []byte
		currentKey   sql.NullString
		signatureKey sql.NullString
		signedAtText sql.NullString
		signedKey    sql.NullString
		updatedAt    time.Time
	)

	err := r.Scan(
		&s.ID, &userType, &verifiedAt, &answers, &s.OverlayToken,
		&currentKey, &signatureKey, &signedAtText, &signedKey,
		&s.VoiceEnabled, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userType.Valid {
		s.UserType = UserType(userType.String)
	}
	if verifiedAt.Valid {
		t := verifiedAt.Time
		s.VerifiedAt = &t
	}
	s.Answers = map[string]string{}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &s.Answers); err != nil {
			return nil, fmt.Errorf("decode answers: %w", err)
		}
	}
	s.CurrentKey = currentKey.String
	s.SignatureKey = signatureKey.String
	s.SignedAtText = signedAtText.String
	s.SignedKey = signedKey.String
	s.UpdatedAt = updatedAt

	return &s, nil
}
