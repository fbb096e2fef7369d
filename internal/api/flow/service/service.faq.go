package flowsvc

import (
	"regexp"
	"strings"
)

// faqEntries maps normalized question fragments to canned answers.
var faqEntries = map[string]string{
	"what stores can i shop from": "Most South African stores (Takealot, PnP, Checkers, Mr Price, etc.)",
	"how do i pay":                "Pay via EcoCash, Mukuru, or bank transfer (ZWL or USD depending on option).",
	"how long":                    "Delivery usually 3-7 working days depending on your location.",
	"what can i buy":              "Groceries, clothes, tech - anything legal and shippable.",
}

var faqNormalizeRe = regexp.MustCompile(`[^a-z0-9 ]`)

// normalizeFaqKey lowercases and strips punctuation so loosely phrased
// questions still match.
func normalizeFaqKey(text string) string {
	return strings.TrimSpace(faqNormalizeRe.ReplaceAllString(strings.ToLower(text), ""))
}

// IsFaqQuestion reports whether the text matches a known FAQ.
func IsFaqQuestion(text string) bool {
	key := normalizeFaqKey(text)
	if key == "" {
		return false
	}
	for fragment := range faqEntries {
		if strings.Contains(key, fragment) {
			return true
		}
	}
	return false
}

// FaqAnswer returns the answer for a matching FAQ, or the default FAQ
// blob when nothing matches.
func FaqAnswer(text string) string {
	key := normalizeFaqKey(text)
	for fragment, answer := range faqEntries {
		if strings.Contains(key, fragment) {
			return answer
		}
	}
	return DefaultFaqs()
}

// DefaultFaqs returns the full FAQ listing.
func DefaultFaqs() string {
	return "💬 Buyza FAQs\n\n" +
		"Q: Stores? A: Takealot, PnP, Checkers, Mr Price, etc.\n" +
		"Q: How to pay? A: EcoCash, Mukuru, Bank transfer.\n" +
		"Q: Delivery time? A: 3-7 working days.\n" +
		"Reply 'Chat with Assistant' to speak to someone."
}
