package assist

import "testing"

func TestAnalyzeMood(t *testing.T) {
	tests := []struct {
		message string
		want    Mood
	}{
		{"I'm really scared about this procedure", MoodAnxious},
		{"I don't understand this section", MoodConfused},
		{"I'm in a hurry, no time for this", MoodRushed},
		{"thanks, that was helpful", MoodGrateful},
		{"I'm so annoyed by this form", MoodFrustrated},
		{"this whole thing makes me angry", MoodFrustrated},
		// "annoying" is not in the keyword set; only the exact keywords match.
		{"this form is so annoying", MoodNeutral},
		{"tell me about page two", MoodNeutral},
		{"", MoodNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := AnalyzeMood(tt.message); got != tt.want {
				t.Errorf("AnalyzeMood(%q) = %s, want %s", tt.message, got, tt.want)
			}
		})
	}
}

func TestAnalyzeIntent(t *testing.T) {
	tests := []struct {
		message string
		want    Intent
	}{
		{"hello there", IntentGreeting},
		{"Good morning", IntentGreeting},
		{"what is informed consent", IntentExplainConsent},
		{"tell me about the risks", IntentExplainRisks},
		{"are there side effects", IntentExplainRisks},
		{"who pays the bill", IntentExplainFinancial},
		{"is this covered by hipaa", IntentExplainPrivacy},
		{"explain this term please", IntentDefineTerm},
		{"I need some comfort", IntentSeekComfort},
		{"just looking around", IntentGeneralHelp},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := AnalyzeIntent(tt.message); got != tt.want {
				t.Errorf("AnalyzeIntent(%q) = %s, want %s", tt.message, got, tt.want)
			}
		})
	}
}

func TestIntentPrecedence(t *testing.T) {
	// "what is" appears in both the consent and define-term rules; the
	// more specific consent rule must win.
	if got := AnalyzeIntent("what is consent"); got != IntentExplainConsent {
		t.Errorf("got %s, want %s", got, IntentExplainConsent)
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"hi, I'm john", "John"},
		{"this is SARAH speaking", "Sarah"},
		{"my name is maria", "Maria"},
		{"im bob", "Bob"},
		{"no introduction here", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := ExtractName(tt.message); got != tt.want {
				t.Errorf("ExtractName(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestPoolAlwaysResolves(t *testing.T) {
	moods := []Mood{MoodAnxious, MoodConfused, MoodRushed, MoodGrateful, MoodFrustrated, MoodNeutral}
	intents := []Intent{
		IntentGreeting, IntentExplainConsent, IntentExplainRisks,
		IntentExplainFinancial, IntentExplainPrivacy, IntentDefineTerm,
		IntentSeekComfort, IntentGeneralHelp,
	}

	for _, m := range moods {
		for _, i := range intents {
			if p := pool(m, i); len(p) == 0 {
				t.Errorf("empty pool for %s/%s", m, i)
			}
		}
	}
}
