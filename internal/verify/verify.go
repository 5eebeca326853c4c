// Package verify implements identity verification for the consent flow:
// birthday login for patients and PIN login for doctors, both keyed by the
// document UUID. Input validation always runs before any credential lookup,
// and rejections use a single generic message per flow so callers cannot
// probe which UUIDs exist.
package verify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// State is a verification machine state.
type State string

// Machine states. A submission moves entering -> submitting and settles in
// verified or rejected; a rejected machine accepts another submission with
// the previous input retained for correction.
const (
	StateEntering   State = "entering"
	StateSubmitting State = "submitting"
	StateVerified   State = "verified"
	StateRejected   State = "rejected"
)

// BirthdayLayout is the input format patients type.
const BirthdayLayout = "DD/MM/YYYY"

// Machine tracks a single verification attempt sequence.
type Machine struct {
	state State
	input string
}

// NewMachine creates a machine in the entering state.
func NewMachine() *Machine {
	return &Machine{state: StateEntering}
}

// State returns the current machine state.
func (m *Machine) State() State {
	return m.state
}

// Input returns the last submitted input. It is retained across
// rejections so the caller can present it for correction.
func (m *Machine) Input() string {
	return m.input
}

// SubmitBirthday validates raw DD/MM/YYYY input and, only if it is
// syntactically and calendar valid, runs the credential check with the
// normalized YYYY-MM-DD value. Invalid input never reaches the check.
// A check failure marked ErrUnavailable passes through unchanged; only
// genuine mismatches collapse into the generic rejection.
func (m *Machine) SubmitBirthday(ctx context.Context, raw string, check func(ctx context.Context, iso string) error) error {
	m.input = raw

	iso, err := NormalizeBirthday(raw)
	if err != nil {
		m.state = StateRejected
		return err
	}

	m.state = StateSubmitting
	if err := check(ctx, iso); err != nil {
		if errors.Is(err, ErrUnavailable) {
			m.state = StateEntering
			return err
		}
		m.state = StateRejected
		return ErrBirthdayIncorrect
	}

	m.state = StateVerified
	return nil
}

// SubmitPIN validates a 4-digit PIN and, only if well formed, runs the
// credential check.
func (m *Machine) SubmitPIN(ctx context.Context, raw string, check func(ctx context.Context, pin string) error) error {
	m.input = raw

	if err := ValidatePIN(raw); err != nil {
		m.state = StateRejected
		return err
	}

	m.state = StateSubmitting
	if err := check(ctx, raw); err != nil {
		if errors.Is(err, ErrUnavailable) {
			m.state = StateEntering
			return err
		}
		m.state = StateRejected
		return ErrPINInvalid
	}

	m.state = StateVerified
	return nil
}

// NormalizeBirthday converts DD/MM/YYYY input to a zero-padded YYYY-MM-DD
// string. The date must be calendar valid; 31/02/1980 is rejected even
// though each component is in range.
func NormalizeBirthday(raw string) (string, error) {
	parts := strings.Split(raw, "/")
	if len(parts) != 3 || len(parts[0]) != 2 || len(parts[1]) != 2 || len(parts[2]) != 4 {
		return "", ErrBirthdayIncorrect
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", ErrBirthdayIncorrect
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", ErrBirthdayIncorrect
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", ErrBirthdayIncorrect
	}

	if day < 1 || day > 31 || month < 1 || month > 12 || year < 1 {
		return "", ErrBirthdayIncorrect
	}

	// time.Date normalizes overflow (31 Feb becomes 2/3 Mar), so a
	// round-trip mismatch means the date does not exist.
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return "", ErrBirthdayIncorrect
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}

// ValidatePIN checks for exactly four numeric digits.
func ValidatePIN(raw string) error {
	if len(raw) != 4 {
		return ErrPINInvalid
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return ErrPINInvalid
		}
	}
	return nil
}
