package assist

// Narration scripts keyed by page. The client speaks these with its own
// synthesizer; speak always replaces any in-progress utterance, so each
// script is written to stand alone.
var voiceScripts = map[string]string{
	"login": "Please enter your birthday to continue with the document signing.",
	"doctorlogin": "Please enter your 4 digit PIN to continue to the document.",
	"pdf": "Welcome. Please review your document and provide your signature when ready.",
	"sign": "You are now on the signature page. Use your finger or mouse to draw your " +
		"signature in the box. When finished, click the Save Signature button.",
	"submit": "Please review your signed document. If you need a copy, click the " +
		"download button. When ready, click submit to complete the process.",
}

// VoiceScript returns the narration script for a page.
func VoiceScript(page string) (string, error) {
	script, ok := voiceScripts[page]
	if !ok {
		return "", ErrUnknownPage
	}
	return script, nil
}

// VoicePages lists the pages with narration scripts.
func VoicePages() []string {
	return []string{"login", "doctorlogin", "pdf", "sign", "submit"}
}
