package assist

import "strings"

// Response pools keyed by mood, then intent. Lookup falls back to the
// mood's default pool, then to the neutral pools, so every mood/intent
// pair resolves to at least one response.
const intentDefault = Intent("default")

var responsePools = map[Mood]map[Intent][]string{
	MoodAnxious: {
		IntentExplainConsent: {
			"I completely understand feeling nervous about this. Informed consent is designed to protect you: it makes sure you have all the information you need before deciding anything.",
			"It's normal to feel anxious about medical documents. Informed consent means you stay in control, and you can ask as many questions as you need before agreeing.",
			"Feeling nervous is okay. Informed consent exists so you never feel pressured. Take all the time you need, and ask me about anything on the form.",
		},
		IntentExplainRisks: {
			"The risks section can feel overwhelming. Doctors are required to list even very rare possibilities; it doesn't mean they expect them to happen.",
			"It's smart to read the risks carefully. Everything that could possibly happen is listed, even the very unlikely. The common outcomes are usually the benefits above.",
		},
		intentDefault: {
			"It's completely okay to feel anxious about this. Which part of the document is worrying you most? We can go through it together.",
			"This can feel overwhelming, and asking questions is the right thing to do. Let's take it one step at a time. What would you like me to explain first?",
		},
	},
	MoodConfused: {
		IntentExplainConsent: {
			"Informed consent in simple terms: your healthcare team must explain the procedure, its benefits, the possible risks, and your other options before you agree to anything.",
			"Informed consent is your right to understand before you agree. It isn't just signing a form; it's a conversation where every question gets answered first.",
		},
		IntentExplainRisks: {
			"Benefits are the good outcomes the treatment aims for; risks are the possible negative ones, even unlikely ones. Listing both helps you and your doctor weigh the decision.",
			"Every medical decision has potential upsides and downsides. This section helps you decide whether the likely benefits are worth the possible risks in your situation.",
		},
		IntentExplainFinancial: {
			"Financial responsibility means you agree to cover costs your insurance doesn't. Your insurance pays first; you are the backup payer for the remainder.",
			"Think of it this way: insurance is the primary payer and you are the secondary payer for anything it doesn't cover. You can always ask the billing office for exact numbers.",
		},
		intentDefault: {
			"Happy to clarify. Which specific part is confusing? That way I can give you the most useful explanation.",
			"Medical documents can definitely be confusing. Which term or section would you like me to put in simpler words?",
		},
	},
	MoodNeutral: {
		IntentGreeting: {
			"Hello! I'm your document assistant. I can explain anything in your medical forms in plain language. What would you like to know?",
			"Hi! I'm here to make these documents clear and answer any questions. What can I explain for you today?",
			"Welcome! Ask me about any part of your medical forms; no question is too small.",
		},
		IntentExplainConsent: {
			"Informed consent means you fully understand a procedure before agreeing to it: what it involves, the expected benefits, the possible risks, and the alternatives.",
			"Informed consent is your right to complete understanding before any procedure. All your questions should be answered before you sign anything.",
		},
		IntentExplainRisks: {
			"The risks and benefits section is a balanced scale: the positive outcomes the treatment aims for on one side, the possible challenges on the other.",
			"Benefits are the results expected from treatment; risks are the potential negatives, including unlikely ones. Doctors must disclose all of them so you can choose well.",
		},
		IntentExplainPrivacy: {
			"The privacy section describes how your health information is protected. It may only be shared for your treatment, for payment, and where the law requires it.",
			"Your records stay confidential. The privacy notice explains exactly who can see your information and why, and you can request a copy at any time.",
		},
		intentDefault: {
			"Thanks for your question. Which section or term are you looking at? I want to make sure I give you the most relevant answer.",
			"I can help with that. Point me at the part of the document you mean and I'll explain it.",
		},
	},
	MoodGrateful: {
		intentDefault: {
			"You're very welcome! Is there anything else you'd like me to explain?",
			"Happy to help. Understanding your healthcare decisions matters; ask me anything else that comes to mind.",
			"Glad that helped. What else can I clarify for you?",
		},
	},
	MoodRushed: {
		intentDefault: {
			"I'll keep it brief. Tell me the section you're on and I'll give you the short version.",
			"Quick summary coming up; which part do you need explained fastest?",
		},
	},
	MoodFrustrated: {
		intentDefault: {
			"I'm sorry this is frustrating. Let's sort it out together; tell me exactly where you're stuck.",
			"I hear you. Point me at the part that's causing trouble and I'll walk you through it plainly.",
		},
	},
}

// pool resolves the response pool for a mood/intent pair.
func pool(mood Mood, intent Intent) []string {
	moodPools, ok := responsePools[mood]
	if !ok {
		moodPools = responsePools[MoodNeutral]
	}
	if p, ok := moodPools[intent]; ok {
		return p
	}
	if p, ok := moodPools[intentDefault]; ok {
		return p
	}
	return responsePools[MoodNeutral][intentDefault]
}

// personalize prefixes the reply with the user's name when one is known.
func personalize(reply, name string) string {
	if name == "" {
		return reply
	}
	return name + ", " + strings.ToLower(reply[:1]) + reply[1:]
}
