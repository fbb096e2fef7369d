// Package flowsvc drives the conversational flow: intent classification,
// reply templates, and the order decision engine.
package flowsvc

import (
	"regexp"
	"strings"
)

// Intent is the classified category of an inbound message.
type Intent string

// The closed intent set.
const (
	IntentGreeting           Intent = "greeting"
	IntentMenuOnlineStart    Intent = "menu_online_start"
	IntentMenuAssistedStart  Intent = "menu_assisted_start"
	IntentMenuDeliveryInfo   Intent = "menu_delivery_info"
	IntentMenuAgentRequest   Intent = "menu_agent_request"
	IntentTrackOrder         Intent = "track_order"
	IntentCartSubmission     Intent = "cart_submission"
	IntentAssistedSubmission Intent = "assisted_submission"
	IntentQuoteAccept        Intent = "quote_accept"
	IntentQuoteReject        Intent = "quote_reject"
	IntentPaymentNotice      Intent = "payment_notice"
	IntentUnrecognized       Intent = "unrecognized"
)

var (
	greetingWords = map[string]struct{}{
		"hi": {}, "hello": {}, "hey": {}, "start": {},
	}

	// Submission keywords. Cart markers are checked before assisted
	// markers: a message carrying a cart link is an online order even
	// when it also says "need".
	cartKeywords     = []string{"cart", "cart link", "total:", "http", "takealot"}
	assistedKeywords = []string{"need", "help", "looking for", "budget", "want"}

	// Currency-prefixed amount, e.g. "R850" or "r 850.50".
	currencyAmountRe = regexp.MustCompile(`[Rr]\s*([0-9]+(?:\.[0-9]+)?)`)
	// "total: 850" fallback when no currency prefix is present.
	totalAmountRe = regexp.MustCompile(`(?i)total[:\s]*([0-9]+(?:\.[0-9]+)?)`)

	// "delivery: Gweru" style town marker.
	deliveryTownRe = regexp.MustCompile(`(?i)delivery\s*[:\-]?\s*(\w+)`)

	trackRe = regexp.MustCompile(`(?i)^track(?:\s+(\S+))?$`)
)

// Classify maps message text to an intent. First match wins; earlier
// checks are intentionally more specific.
func Classify(text string) Intent {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	if _, ok := greetingWords[lower]; ok {
		return IntentGreeting
	}

	switch trimmed {
	case "1":
		return IntentMenuOnlineStart
	case "2":
		return IntentMenuAssistedStart
	case "3":
		return IntentMenuDeliveryInfo
	case "4":
		return IntentMenuAgentRequest
	}

	if trackRe.MatchString(trimmed) {
		return IntentTrackOrder
	}

	for _, kw := range cartKeywords {
		if strings.Contains(lower, kw) {
			return IntentCartSubmission
		}
	}

	for _, kw := range assistedKeywords {
		if strings.Contains(lower, kw) {
			return IntentAssistedSubmission
		}
	}

	switch lower {
	case "yes", "y":
		return IntentQuoteAccept
	case "no", "n":
		return IntentQuoteReject
	}

	if strings.HasPrefix(lower, "paid") || strings.Contains(lower, "payment") {
		return IntentPaymentNotice
	}

	return IntentUnrecognized
}

// ExtractAmount finds a monetary amount in the text: a currency-prefixed
// number first, then a "total:"-prefixed one. No amount found is a valid
// outcome, reported through ok.
func ExtractAmount(text string) (amount float64, ok bool) {
	cleaned := strings.ReplaceAll(text, ",", "")

	if m := currencyAmountRe.FindStringSubmatch(cleaned); m != nil {
		if v, err := parseFloat(m[1]); err == nil {
			return v, true
		}
	}
	if m := totalAmountRe.FindStringSubmatch(cleaned); m != nil {
		if v, err := parseFloat(m[1]); err == nil {
			return v, true
		}
	}
	return 0, false
}

// ExtractTrackedOrderID pulls the order id out of a "track <id>" message.
func ExtractTrackedOrderID(text string) string {
	m := trackRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractTown finds a delivery town: a "delivery:" marker first, then a
// scan for known delivery points. Empty string when nothing matches.
func ExtractTown(text string) string {
	if m := deliveryTownRe.FindStringSubmatch(text); m != nil {
		return capitalize(m[1])
	}

	lower := strings.ToLower(text)
	for _, town := range deliveryTowns {
		if strings.Contains(lower, strings.ToLower(town)) {
			return town
		}
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
