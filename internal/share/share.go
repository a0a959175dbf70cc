// Package share composes outreach drafts and messaging-app deep links.
package share

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppDeeplink builds a wa.me link that opens a prefilled message.
// WhatsApp expects '+' for spaces in the text parameter.
func WhatsAppDeeplink(text string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(text), "%20", "+")
	return "https://wa.me/?text=" + encoded
}

// ComposeDraft is the local outreach draft used when no AI-generated message
// is available. Apology tone for repair intent or low moods; a light
// celebratory tone otherwise.
func ComposeDraft(name, intent, mood string) string {
	if intent == "apologize" || mood == "sad" || mood == "nervous" {
		return fmt.Sprintf("Hey %s — I realized I might've come off a bit off earlier. I'm sorry. You matter to me. Could we chat when you're free?", name)
	}
	return fmt.Sprintf("Hey %s — I had a really nice time today! Thanks for making my day 😊 Want to do this again soon?", name)
}
