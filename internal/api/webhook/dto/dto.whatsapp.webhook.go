// Package dto holds the request/response shapes of the webhook surface.
package dto

// InboundEvent is one inbound customer message after extraction from the
// Cloud API envelope.
type InboundEvent struct {
	SenderID    string `json:"senderId"`
	MessageID   string `json:"messageId"`
	MessageType string `json:"messageType"`
	Text        string `json:"text"`
}

// SimulateRequest injects a message into the flow engine without going
// through Meta. Used for local testing and agent tooling.
type SimulateRequest struct {
	From string `json:"from" validate:"required"`
	Text string `json:"text" validate:"required"`
}
