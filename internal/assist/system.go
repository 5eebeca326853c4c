package assist

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Reply is a classified chat response.
type Reply struct {
	Reply  string `json:"reply"`
	Mood   Mood   `json:"mood"`
	Intent Intent `json:"intent"`
}

// Entry is one chat exchange in a session transcript.
type Entry struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	Mood     Mood      `json:"mood"`
	Intent   Intent    `json:"intent"`
	At       time.Time `json:"at"`
}

// System is the chat responder. Conversations are held in memory only;
// a restart forgets them, which is acceptable for an assistance widget.
type System interface {
	Chat(ctx context.Context, id uuid.UUID, message string) (*Reply, error)
	Transcript(id uuid.UUID) []Entry
}

type conversation struct {
	name    string
	entries []Entry
}

type responder struct {
	mu            sync.Mutex
	conversations map[uuid.UUID]*conversation
	pick          func(n int) int
	now           func() time.Time
	logger        *slog.Logger
}

// New creates the chat responder.
func New(logger *slog.Logger) System {
	return &responder{
		conversations: map[uuid.UUID]*conversation{},
		pick:          rand.IntN,
		now:           time.Now,
		logger:        logger.With("system", "assist"),
	}
}

func (r *responder) Chat(_ context.Context, id uuid.UUID, message string) (*Reply, error) {
	if message == "" {
		return nil, ErrEmptyMessage
	}

	mood := AnalyzeMood(message)
	intent := AnalyzeIntent(message)

	r.mu.Lock()
	defer r.mu.Unlock()

	conv := r.conversations[id]
	if conv == nil {
		conv = &conversation{}
		r.conversations[id] = conv
	}
	if conv.name == "" {
		conv.name = ExtractName(message)
	}

	candidates := pool(mood, intent)
	reply := personalize(candidates[r.pick(len(candidates))], conv.name)

	conv.entries = append(conv.entries, Entry{
		Question: message,
		Answer:   reply,
		Mood:     mood,
		Intent:   intent,
		At:       r.now(),
	})

	r.logger.Debug("chat reply", "id", id, "mood", mood, "intent", intent)
	return &Reply{Reply: reply, Mood: mood, Intent: intent}, nil
}

func (r *responder) Transcript(id uuid.UUID) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv := r.conversations[id]
	if conv == nil {
		return nil
	}
	out := make([]Entry, len(conv.entries))
	copy(out, conv.entries)
	return out
}
