package sessions

import (
	"errors"
	"testing"
	"time"
)

func TestRequireVerified(t *testing.T) {
	s := &Session{}
	if err := s.RequireVerified(); !errors.Is(err, ErrNotVerified) {
		t.Fatalf("error = %v, want ErrNotVerified", err)
	}

	now := time.Now()
	s.VerifiedAt = &now
	if err := s.RequireVerified(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Verified() {
		t.Error("Verified() = false after VerifiedAt set")
	}
}

func TestRequireSignature(t *testing.T) {
	s := &Session{}
	if err := s.RequireSignature(); !errors.Is(err, ErrSignatureMissing) {
		t.Fatalf("error = %v, want ErrSignatureMissing", err)
	}

	s.SignatureKey = "documents/x/signature.png"
	if err := s.RequireSignature(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireSigned(t *testing.T) {
	s := &Session{}
	if err := s.RequireSigned(); !errors.Is(err, ErrSignedMissing) {
		t.Fatalf("error = %v, want ErrSignedMissing", err)
	}

	s.SignedKey = "documents/x/signed.pdf"
	if err := s.RequireSigned(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrNotFound, 404},
		{ErrNotVerified, 401},
		{ErrSignatureMissing, 412},
		{ErrSignedMissing, 412},
		{ErrSuperseded, 409},
		{errors.New("boom"), 500},
	}

	for _, tt := range tests {
		if got := MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
