package flowsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Intent
	}{
		{"greeting hi", "hi", IntentGreeting},
		{"greeting mixed case", "  Hello ", IntentGreeting},
		{"greeting start", "start", IntentGreeting},
		{"menu online", "1", IntentMenuOnlineStart},
		{"menu assisted", "2", IntentMenuAssistedStart},
		{"menu delivery", "3", IntentMenuDeliveryInfo},
		{"menu agent", "4", IntentMenuAgentRequest},
		{"track with id", "track BUYZA-4567-20250101-120000-a1b2", IntentTrackOrder},
		{"track bare", "track", IntentTrackOrder},
		{"cart link", "Cart link: https://takealot.com/x Total: R850 Delivery: Gweru", IntentCartSubmission},
		{"cart total only", "Total: R850", IntentCartSubmission},
		{"cart beats assisted keywords", "I need this, cart link: http://t.co/x", IntentCartSubmission},
		{"assisted need", "I need a blender", IntentAssistedSubmission},
		{"assisted budget", "Something nice, budget R600", IntentAssistedSubmission},
		{"accept yes", "yes", IntentQuoteAccept},
		{"accept y", "Y", IntentQuoteAccept},
		{"reject no", "no", IntentQuoteReject},
		{"reject n", "n", IntentQuoteReject},
		{"payment paid prefix", "Paid via EcoCash ref 12345", IntentPaymentNotice},
		{"payment contains", "proof of payment attached", IntentPaymentNotice},
		{"unrecognized", "banana", IntentUnrecognized},
		{"empty", "", IntentUnrecognized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.text))
		})
	}
}

func TestExtractAmount(t *testing.T) {
	t.Run("currency prefix", func(t *testing.T) {
		amount, ok := ExtractAmount("Total: R850, cart link: http://x")
		assert.True(t, ok)
		assert.Equal(t, 850.0, amount)
	})

	t.Run("currency with decimals and comma", func(t *testing.T) {
		amount, ok := ExtractAmount("budget is R1,250.50")
		assert.True(t, ok)
		assert.Equal(t, 1250.50, amount)
	})

	t.Run("total fallback without currency", func(t *testing.T) {
		amount, ok := ExtractAmount("total: 600")
		assert.True(t, ok)
		assert.Equal(t, 600.0, amount)
	})

	t.Run("no amount", func(t *testing.T) {
		_, ok := ExtractAmount("I want a kettle")
		assert.False(t, ok)
	})
}

func TestExtractTrackedOrderID(t *testing.T) {
	assert.Equal(t, "BUYZA-4567-20250101-120000-a1b2", ExtractTrackedOrderID("track BUYZA-4567-20250101-120000-a1b2"))
	assert.Equal(t, "", ExtractTrackedOrderID("track"))
	assert.Equal(t, "", ExtractTrackedOrderID("please track my order"))
}

func TestExtractTown(t *testing.T) {
	t.Run("delivery marker", func(t *testing.T) {
		assert.Equal(t, "Gweru", ExtractTown("Total: R850 Delivery: gweru"))
	})

	t.Run("known town scan", func(t *testing.T) {
		assert.Equal(t, "Bulawayo", ExtractTown("send it to bulawayo please"))
	})

	t.Run("no town", func(t *testing.T) {
		assert.Equal(t, "", ExtractTown("Total: R850"))
	})
}
