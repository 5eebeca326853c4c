package assist

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testResponder() *responder {
	return &responder{
		conversations: map[uuid.UUID]*conversation{},
		pick:          func(int) int { return 0 },
		now:           func() time.Time { return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) },
		logger:        slog.New(slog.DiscardHandler),
	}
}

func TestChatClassifiesAndRecords(t *testing.T) {
	r := testResponder()
	id := uuid.New()

	reply, err := r.Chat(context.Background(), id, "I'm scared about the risks")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Mood != MoodAnxious || reply.Intent != IntentExplainRisks {
		t.Errorf("classified as %s/%s", reply.Mood, reply.Intent)
	}
	if reply.Reply == "" {
		t.Error("empty reply")
	}

	entries := r.Transcript(id)
	if len(entries) != 1 {
		t.Fatalf("transcript length = %d, want 1", len(entries))
	}
	if entries[0].Answer != reply.Reply {
		t.Error("transcript answer does not match reply")
	}
}

func TestChatRemembersName(t *testing.T) {
	r := testResponder()
	id := uuid.New()

	if _, err := r.Chat(context.Background(), id, "hi, I'm maria"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reply, err := r.Chat(context.Background(), id, "just looking around")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reply.Reply) < 6 || reply.Reply[:6] != "Maria," {
		t.Errorf("reply not personalized: %q", reply.Reply)
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	r := testResponder()

	if _, err := r.Chat(context.Background(), uuid.New(), ""); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("error = %v, want ErrEmptyMessage", err)
	}
}

func TestTranscriptIsolatedPerSession(t *testing.T) {
	r := testResponder()
	a, b := uuid.New(), uuid.New()

	if _, err := r.Chat(context.Background(), a, "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := r.Transcript(b); got != nil {
		t.Errorf("session b transcript = %+v, want nil", got)
	}
	if got := r.Transcript(a); len(got) != 1 {
		t.Errorf("session a transcript length = %d, want 1", len(got))
	}
}

func TestVoiceScript(t *testing.T) {
	for _, page := range VoicePages() {
		script, err := VoiceScript(page)
		if err != nil {
			t.Errorf("page %q: %v", page, err)
		}
		if script == "" {
			t.Errorf("page %q: empty script", page)
		}
	}

	if _, err := VoiceScript("checkout"); !errors.Is(err, ErrUnknownPage) {
		t.Errorf("error = %v, want ErrUnknownPage", err)
	}
}
