package flowsvc

import (
	"fmt"
	"strings"
)

// Reply templates. Each intent maps to a fixed template; quote replies
// additionally interpolate the computed amounts.

// WelcomeMenu is the greeting plus main menu.
func WelcomeMenu() string {
	return "👋🏾 Hi there! Welcome to Buyza - your trusted shopping assistant. " +
		"We help you buy from major retailers in South Africa and deliver it to you in Zim.\n" +
		"Reply with a number to get started:\n" +
		"1️⃣ Online Order – You already know what you want and have a cart/product link (10% service fee, plus delivery)\n" +
		"2️⃣ Assisted Order - You want help choosing or finding products (20% service fee, plus delivery)\n" +
		"3️⃣ Delivery Info - View delivery locations, costs & timelines\n" +
		"4️⃣ Chat with Assistant - Talk to an agent"
}

// OnlineOrderPrompt asks for cart details after menu option 1.
func OnlineOrderPrompt() string {
	return "💬 Awesome! You've selected *Online Order* ✅\n" +
		"\nPlease send:" +
		"\n- Cart link(s)" +
		"\n- Total value (e.g. R850)" +
		"\n- Delivery town/city in Zimbabwe\n" +
		"\nExample:" +
		"\nCart link: [Takealot link]" +
		"\nTotal: R850" +
		"\nDelivery: Gweru"
}

// AssistedOrderPrompt asks for a description after menu option 2.
func AssistedOrderPrompt() string {
	return "👋🏾 You've selected *Assisted Order* ✅\n" +
		"\nTell us:" +
		"\n- Item name/description" +
		"\n- Budget" +
		"\n- Preferences (colour/brand/feature)\n" +
		"\nExample: \"I want a 3-piece cookware set, non-stick, budget R600\""
}

// DeliveryInfoMessage lists delivery points, fees and timelines.
func DeliveryInfoMessage() string {
	var sb strings.Builder
	sb.WriteString("📦 Buyza Delivery Info:\n")
	sb.WriteString("Orders are delivered weekly/bi-weekly to Zimbabwe.\n")
	sb.WriteString("Delivery points:\n")
	for _, town := range deliveryTowns {
		sb.WriteString(fmt.Sprintf("- %s: %s (%s)\n", town, FormatRand(DeliveryFee(town)), DeliveryTimeline(town)))
	}
	sb.WriteString("Door-to-door available in some areas (extra charge).")
	return sb.String()
}

// AgentHandoff acknowledges an agent request.
func AgentHandoff() string {
	return "Connecting you to an assistant. Please wait..."
}

// QuoteReply renders the online order quote with the order id.
func QuoteReply(q Quote, orderID string) string {
	var sb strings.Builder
	sb.WriteString("✅ Thanks! Here's your quote:\n\n")
	sb.WriteString("Goods: " + FormatRand(q.Goods) + "\n")
	sb.WriteString("Service fee (10%): " + FormatRand(q.ServiceFee) + "\n")
	sb.WriteString("Payable: " + FormatRand(q.Payable) + "\n")
	if q.Town != "" {
		sb.WriteString(fmt.Sprintf("Delivery (%s): %s, %s\n", q.Town, FormatRand(q.DeliveryFee), DeliveryTimeline(q.Town)))
	}
	sb.WriteString("\nReply 'Yes' to confirm and proceed to payment (EcoCash / Mukuru / Bank), or 'No' to cancel.\n")
	sb.WriteString("Order ID: " + orderID)
	return sb.String()
}

// EstimateReply renders the assisted order estimate with the order id.
func EstimateReply(e Estimate, orderID string) string {
	var sb strings.Builder
	sb.WriteString("✅ Got it! Based on your budget:\n\n")
	sb.WriteString("Budget: " + FormatRand(e.Budget) + "\n")
	sb.WriteString("Service fee (20%): " + FormatRand(e.ServiceFee) + "\n")
	sb.WriteString("Estimated total: " + FormatRand(e.Total) + " (plus delivery)\n")
	sb.WriteString("\nAn agent will confirm availability and the final quote shortly.\n")
	sb.WriteString("Reply 'Yes' to accept, or 'No' to cancel.\n")
	sb.WriteString("Order ID: " + orderID)
	return sb.String()
}

// ClarifyOrderDetails asks for a parseable amount.
func ClarifyOrderDetails() string {
	return "I couldn't work out the total from your message. " +
		"Please include the amount (e.g. Total: R850) and your delivery town (e.g. Delivery: Gweru)."
}

// DetailsAppended confirms a continuation of an existing order.
func DetailsAppended(orderID string) string {
	return "📝 Added to your open order " + orderID + ". " +
		"Send the total (e.g. Total: R850) when your cart is complete."
}

// QuoteAccepted confirms acceptance and gives payment instructions.
func QuoteAccepted(orderID string) string {
	return "🎉 Great! Your order " + orderID + " is awaiting payment.\n" +
		"Pay via EcoCash, Mukuru, or bank transfer, then reply with the payment reference or 'Paid'."
}

// QuoteRejected confirms the cancellation.
func QuoteRejected(orderID string) string {
	return "Your order " + orderID + " has been cancelled. " +
		"Reply 'Hi' any time to start again."
}

// DetailsReceived confirms an assisted request logged without a budget.
func DetailsReceived(orderID string) string {
	return "📝 Thanks! We've logged your request under order " + orderID + ". " +
		"An agent will get back to you with options and a quote. " +
		"If you have a budget in mind, send it (e.g. R600) for an instant estimate."
}

// ServiceTrouble is the degraded reply when the ledger is unreachable.
func ServiceTrouble() string {
	return "⚠️ We hit a snag processing your message. Please try again in a few minutes."
}

// NothingPending is sent when an accept/reject has no active order.
func NothingPending() string {
	return "No pending order found. Reply 'Hi' to see the menu, or 'Chat with Assistant' for help."
}

// PaymentNoted acknowledges a payment notice.
func PaymentNoted() string {
	return "🔄 Thanks! We've noted your payment message. " +
		"An agent will verify it and confirm your order shortly."
}

// TrackingReply renders an order's status.
func TrackingReply(orderID, status string) string {
	return "Order ID: " + orderID + "\nStatus: " + status
}

// TrackingClosedReply renders a terminal order's status; nothing more
// will happen to it.
func TrackingClosedReply(orderID, status string) string {
	return "Order ID: " + orderID + "\nStatus: " + status +
		"\nThis order is closed. Send 'Hi' to start a new one."
}

// TrackingNotFound is sent when the tracked id is unknown.
func TrackingNotFound(orderID string) string {
	return "Order not found with ID: " + orderID
}

// TrackingUsage explains the track command.
func TrackingUsage() string {
	return "Please send 'track <orderId>', e.g. 'track BUYZA-4567-20250101-120000-a1b2'."
}
