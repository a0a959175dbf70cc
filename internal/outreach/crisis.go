package outreach

import "strings"

// crisisKeywords triggers the safety short-circuit. A match suppresses every
// outreach path unconditionally and the text never reaches the model.
var crisisKeywords = []string{
	"suicide",
	"kill myself",
	"end my life",
	"want to die",
	"self harm",
	"hurt myself",
	"no reason to live",
}

// ContainsCrisisLanguage reports whether the entry contains self-harm or
// suicide-risk language.
func ContainsCrisisLanguage(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range crisisKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
