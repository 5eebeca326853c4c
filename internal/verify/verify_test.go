package verify

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNormalizeBirthday(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "05/03/1980", "1980-03-05", false},
		{"valid end of month", "31/12/1999", "1999-12-31", false},
		{"leap day", "29/02/2000", "2000-02-29", false},
		{"nonexistent date", "31/02/1980", "", true},
		{"nonexistent leap day", "29/02/1999", "", true},
		{"month out of range", "01/13/1980", "", true},
		{"day zero", "00/01/1980", "", true},
		{"unpadded day", "5/03/1980", "", true},
		{"unpadded month", "05/3/1980", "", true},
		{"two digit year", "05/03/80", "", true},
		{"iso input", "1980-03-05", "", true},
		{"garbage", "abcdefgh", "", true},
		{"letters in slots", "aa/bb/cccc", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeBirthday(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrBirthdayIncorrect) {
					t.Fatalf("expected ErrBirthdayIncorrect, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidatePIN(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "1234", false},
		{"valid zeros", "0000", false},
		{"too short", "123", true},
		{"too long", "12345", true},
		{"letters", "12a4", true},
		{"empty", "", true},
		{"whitespace", "12 4", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePIN(tt.input)
			if tt.wantErr && !errors.Is(err, ErrPINInvalid) {
				t.Fatalf("expected ErrPINInvalid, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestMachineInvalidInputNeverReachesCheck(t *testing.T) {
	m := NewMachine()
	called := false

	err := m.SubmitBirthday(context.Background(), "31/02/1980", func(context.Context, string) error {
		called = true
		return nil
	})

	if !errors.Is(err, ErrBirthdayIncorrect) {
		t.Fatalf("expected ErrBirthdayIncorrect, got %v", err)
	}
	if called {
		t.Error("credential check ran for invalid input")
	}
	if m.State() != StateRejected {
		t.Errorf("state = %s, want %s", m.State(), StateRejected)
	}
	if m.Input() != "31/02/1980" {
		t.Errorf("input not retained: %q", m.Input())
	}
}

func TestMachineCheckReceivesNormalizedValue(t *testing.T) {
	m := NewMachine()
	var got string

	err := m.SubmitBirthday(context.Background(), "05/03/1980", func(_ context.Context, iso string) error {
		got = iso
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1980-03-05" {
		t.Errorf("check received %q, want %q", got, "1980-03-05")
	}
	if m.State() != StateVerified {
		t.Errorf("state = %s, want %s", m.State(), StateVerified)
	}
}

func TestMachineRejectionIsGeneric(t *testing.T) {
	m := NewMachine()

	err := m.SubmitBirthday(context.Background(), "05/03/1980", func(context.Context, string) error {
		return errors.New("row not found in table xyz")
	})

	if !errors.Is(err, ErrBirthdayIncorrect) {
		t.Fatalf("expected generic ErrBirthdayIncorrect, got %v", err)
	}
	if m.State() != StateRejected {
		t.Errorf("state = %s, want %s", m.State(), StateRejected)
	}
}

func TestMachineOutageIsNotARejection(t *testing.T) {
	m := NewMachine()

	err := m.SubmitBirthday(context.Background(), "05/03/1980", func(context.Context, string) error {
		return fmt.Errorf("%w: dial tcp: connection refused", ErrUnavailable)
	})

	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
	if errors.Is(err, ErrBirthdayIncorrect) {
		t.Error("infrastructure failure collapsed into credential rejection")
	}
	if m.State() != StateEntering {
		t.Errorf("state = %s, want %s", m.State(), StateEntering)
	}

	err = m.SubmitPIN(context.Background(), "1234", func(context.Context, string) error {
		return fmt.Errorf("%w: dial tcp: connection refused", ErrUnavailable)
	})
	if !errors.Is(err, ErrUnavailable) || errors.Is(err, ErrPINInvalid) {
		t.Fatalf("error = %v, want bare ErrUnavailable", err)
	}
}

func TestMachineRetryAfterRejection(t *testing.T) {
	m := NewMachine()

	_ = m.SubmitPIN(context.Background(), "12ab", func(context.Context, string) error { return nil })
	if m.State() != StateRejected {
		t.Fatalf("state = %s, want %s", m.State(), StateRejected)
	}

	err := m.SubmitPIN(context.Background(), "1234", func(context.Context, string) error { return nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.State() != StateVerified {
		t.Errorf("state = %s, want %s", m.State(), StateVerified)
	}
}
