// Package assist implements the accessibility widgets: a local heuristic
// chat responder and per-page voice narration scripts. Nothing here calls
// out of process; classification is keyword matching and responses come
// from fixed pools.
package assist

import (
	"regexp"
	"strings"
)

// Mood is the detected emotional register of a message.
type Mood string

const (
	MoodAnxious    Mood = "anxious"
	MoodConfused   Mood = "confused"
	MoodRushed     Mood = "rushed"
	MoodGrateful   Mood = "grateful"
	MoodFrustrated Mood = "frustrated"
	MoodNeutral    Mood = "neutral"
)

// Intent is what the message is asking for.
type Intent string

const (
	IntentGreeting         Intent = "greeting"
	IntentExplainConsent   Intent = "explain_consent"
	IntentExplainRisks     Intent = "explain_risks"
	IntentExplainFinancial Intent = "explain_financial"
	IntentExplainPrivacy   Intent = "explain_privacy"
	IntentDefineTerm       Intent = "define_term"
	IntentSeekComfort      Intent = "seek_comfort"
	IntentGeneralHelp      Intent = "general_help"
)

// Classification rules run in order; the first match wins, so the more
// specific patterns sit above the catch-alls.
var moodRules = []struct {
	mood    Mood
	pattern *regexp.Regexp
}{
	{MoodAnxious, regexp.MustCompile(`scared|nervous|worried|anxious|afraid|frightened`)},
	{MoodConfused, regexp.MustCompile(`confused|don't understand|unclear|what does|what is|help me`)},
	{MoodRushed, regexp.MustCompile(`rushed|hurry|quick|fast|no time`)},
	{MoodGrateful, regexp.MustCompile(`thank|thanks|appreciate|helpful|good`)},
	{MoodFrustrated, regexp.MustCompile(`frustrated|angry|annoyed|upset|\bmad\b`)},
}

var intentRules = []struct {
	intent  Intent
	pattern *regexp.Regexp
}{
	{IntentGreeting, regexp.MustCompile(`\b(hello|hi|hey)\b|good morning|good afternoon`)},
	{IntentExplainConsent, regexp.MustCompile(`informed consent|consent|agree|permission`)},
	{IntentExplainRisks, regexp.MustCompile(`risk|benefit|side effect|complication`)},
	{IntentExplainFinancial, regexp.MustCompile(`financial|payment|cost|money|bill`)},
	{IntentExplainPrivacy, regexp.MustCompile(`hipaa|privacy|confidential`)},
	{IntentDefineTerm, regexp.MustCompile(`what does|what is|explain|mean`)},
	{IntentSeekComfort, regexp.MustCompile(`nervous|scared|worried|comfort`)},
}

// AnalyzeMood classifies the emotional register of a message.
func AnalyzeMood(message string) Mood {
	lower := strings.ToLower(message)
	for _, rule := range moodRules {
		if rule.pattern.MatchString(lower) {
			return rule.mood
		}
	}
	return MoodNeutral
}

// AnalyzeIntent classifies what the message is asking for.
func AnalyzeIntent(message string) Intent {
	lower := strings.ToLower(message)
	for _, rule := range intentRules {
		if rule.pattern.MatchString(lower) {
			return rule.intent
		}
	}
	return IntentGeneralHelp
}

var namePattern = regexp.MustCompile(`(?i)(?:i'm|im|this is|name is|called)\s+([a-zA-Z]+)`)

// ExtractName pulls a self-introduced first name out of a message, with
// the first letter upper-cased. Empty when no introduction is present.
func ExtractName(message string) string {
	m := namePattern.FindStringSubmatch(message)
	if m == nil {
		return ""
	}
	name := strings.ToLower(m[1])
	return strings.ToUpper(name[:1]) + name[1:]
}
