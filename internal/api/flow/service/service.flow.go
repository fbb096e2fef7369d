package flowsvc

import (
	"context"
	"strings"

	"buyza_commerce/internal/api/ledger/models"
	ledgersvc "buyza_commerce/internal/api/ledger/service"
	"buyza_commerce/internal/logger"
)

// Customer statuses written to the profile row as the conversation moves.
const (
	customerStatusEngaged        = "Engaged"
	customerStatusNewOrder       = "New Order"
	customerStatusBrowsing       = "Browsing Delivery Info"
	customerStatusAgentRequested = "Agent Requested"
	customerStatusQuoteSent      = "Quote Sent"
	customerStatusAwaitingInfo   = "Awaiting Details"
	customerStatusAwaitingPay    = "Awaiting Payment"
	customerStatusCancelled      = "Cancelled"
	customerStatusPaymentClaimed = "Payment Claimed"
)

// maxDetailsLen caps the order details cell. Sheets tolerate long cells
// but agents read these rows; anything longer is noise.
const maxDetailsLen = 200

const detailsSeparator = " || "

// IncomingMessage is the extracted inbound event handed to the engine.
type IncomingMessage struct {
	From      string
	MessageID string
	Type      string
	Text      string
}

// Messenger sends an outbound text to a phone number.
type Messenger interface {
	Send(ctx context.Context, to, body string) error
}

// FlowService is the conversation decision engine. Every inbound message
// produces exactly one reply; ledger failures degrade the reply, they
// never suppress it.
type FlowService struct {
	ledger    *ledgersvc.LedgerService
	messenger Messenger
}

// NewFlowService wires the engine to a ledger and an outbound channel.
func NewFlowService(ledger *ledgersvc.LedgerService, messenger Messenger) *FlowService {
	return &FlowService{
		ledger:    ledger,
		messenger: messenger,
	}
}

// HandleIncoming classifies the message, applies the decision policy,
// and sends the reply. It never returns an error for ledger trouble;
// the customer always gets an answer.
func (s *FlowService) HandleIncoming(ctx context.Context, msg IncomingMessage) {
	if msg.From == "" {
		return
	}

	intent := Classify(msg.Text)

	log := logger.GetAppLogger().WithFields(map[string]interface{}{
		"phone":     msg.From,
		"messageId": msg.MessageID,
		"intent":    string(intent),
	})
	log.Info("Handling inbound message")

	var reply string
	switch intent {
	case IntentGreeting:
		s.touchProfile(ctx, msg, customerStatusEngaged, "")
		reply = WelcomeMenu()

	case IntentMenuOnlineStart:
		reply = s.handleMenuStart(ctx, msg, models.OrderTypeOnline, OnlineOrderPrompt())

	case IntentMenuAssistedStart:
		reply = s.handleMenuStart(ctx, msg, models.OrderTypeAssisted, AssistedOrderPrompt())

	case IntentMenuDeliveryInfo:
		s.touchProfile(ctx, msg, customerStatusBrowsing, "")
		reply = DeliveryInfoMessage()

	case IntentMenuAgentRequest:
		s.touchProfile(ctx, msg, customerStatusAgentRequested, "")
		reply = AgentHandoff()

	case IntentTrackOrder:
		s.touchProfile(ctx, msg, "", "")
		reply = s.handleTracking(ctx, msg)

	case IntentCartSubmission:
		reply = s.handleCartSubmission(ctx, msg)

	case IntentAssistedSubmission:
		reply = s.handleAssistedSubmission(ctx, msg)

	case IntentQuoteAccept:
		reply = s.handleQuoteAccept(ctx, msg)

	case IntentQuoteReject:
		reply = s.handleQuoteReject(ctx, msg)

	case IntentPaymentNotice:
		// Payment claims touch the profile only; an agent moves the
		// order after verifying the money actually arrived.
		s.touchProfile(ctx, msg, customerStatusPaymentClaimed, "")
		reply = PaymentNoted()

	default:
		s.touchProfile(ctx, msg, "", "")
		if IsFaqQuestion(msg.Text) {
			reply = FaqAnswer(msg.Text)
		} else {
			reply = WelcomeMenu()
		}
	}

	if err := s.messenger.Send(ctx, msg.From, reply); err != nil {
		log.WithError(err).Error("Failed to send reply")
	}
}

// handleMenuStart opens a fresh order of the given type. Menu selections
// always start a new order, even when an active one exists; abandoned
// rows stay behind for agents to expire.
func (s *FlowService) handleMenuStart(ctx context.Context, msg IncomingMessage, orderType, prompt string) string {
	s.touchProfile(ctx, msg, customerStatusNewOrder, "")

	if exists, err := s.ledger.HasActiveOrder(ctx, msg.From); err == nil && exists {
		logger.GetAppLogger().WithField("phone", msg.From).Info("Opening a new order alongside an active one")
	}

	record := &models.OrderRecord{
		Phone:       msg.From,
		OrderType:   orderType,
		OrderStatus: models.StatusAwaitingDetails,
	}
	if _, err := s.ledger.CreateOrder(ctx, record); err != nil {
		logger.GetErrorLogger().WithError(err).WithField("phone", msg.From).Error("Failed to create order")
		return ServiceTrouble()
	}
	return prompt
}

// handleCartSubmission attaches cart details to the active online order,
// or opens one, then quotes when a total is parseable.
func (s *FlowService) handleCartSubmission(ctx context.Context, msg IncomingMessage) string {
	town := ExtractTown(msg.Text)
	amount, hasAmount := ExtractAmount(msg.Text)

	orderID, created, err := s.attachDetails(ctx, msg, models.OrderTypeOnline, town)
	if err != nil {
		logger.GetErrorLogger().WithError(err).WithField("phone", msg.From).Error("Failed to record cart submission")
		return ServiceTrouble()
	}

	if !hasAmount {
		s.touchProfile(ctx, msg, customerStatusAwaitingInfo, town)
		if !created {
			return DetailsAppended(orderID)
		}
		return ClarifyOrderDetails()
	}

	quote := ComputeOnlineQuote(amount, town)
	if err := s.ledger.UpdateOrder(ctx, orderID, func(r *models.OrderRecord) {
		r.QuoteAmount = FormatRand(quote.Payable)
		r.OrderStatus = models.StatusQuoteSent
		if town != "" {
			r.DeliveryTown = town
		}
	}); err != nil {
		logger.GetErrorLogger().WithError(err).WithField("orderId", orderID).Error("Failed to store quote")
		return ServiceTrouble()
	}

	s.touchProfile(ctx, msg, customerStatusQuoteSent, town)
	if created {
		logger.GetAppLogger().WithField("orderId", orderID).Info("Quoted new online order")
	}
	return QuoteReply(quote, orderID)
}

// handleAssistedSubmission records the request description and sends a
// budget-based estimate when one can be derived.
func (s *FlowService) handleAssistedSubmission(ctx context.Context, msg IncomingMessage) string {
	town := ExtractTown(msg.Text)
	budget, hasBudget := ExtractAmount(msg.Text)

	orderID, _, err := s.attachDetails(ctx, msg, models.OrderTypeAssisted, town)
	if err != nil {
		logger.GetErrorLogger().WithError(err).WithField("phone", msg.From).Error("Failed to record assisted submission")
		return ServiceTrouble()
	}

	if !hasBudget {
		if err := s.ledger.UpdateOrder(ctx, orderID, func(r *models.OrderRecord) {
			r.OrderStatus = models.StatusDetailsProvided
		}); err != nil {
			logger.GetErrorLogger().WithError(err).WithField("orderId", orderID).Error("Failed to update order status")
		}
		s.touchProfile(ctx, msg, customerStatusAwaitingInfo, town)
		return DetailsReceived(orderID)
	}

	estimate := ComputeAssistedEstimate(budget)
	if err := s.ledger.UpdateOrder(ctx, orderID, func(r *models.OrderRecord) {
		r.QuoteAmount = FormatRand(estimate.Total)
		r.OrderStatus = models.StatusQuoteSent
		if town != "" {
			r.DeliveryTown = town
		}
	}); err != nil {
		logger.GetErrorLogger().WithError(err).WithField("orderId", orderID).Error("Failed to store estimate")
		return ServiceTrouble()
	}

	s.touchProfile(ctx, msg, customerStatusQuoteSent, town)
	return EstimateReply(estimate, orderID)
}

// attachDetails appends the message text to the active order's details,
// or creates a new order carrying them when no active order exists.
// Returns the order id and whether a new row was created.
func (s *FlowService) attachDetails(ctx context.Context, msg IncomingMessage, orderType, town string) (orderID string, created bool, err error) {
	details := truncateDetails(msg.Text)

	active, err := s.ledger.FindActiveOrder(ctx, msg.From)
	if err != nil {
		return "", false, err
	}

	if active != nil {
		err = s.ledger.UpdateOrder(ctx, active.OrderID, func(r *models.OrderRecord) {
			if r.Details == "" {
				r.Details = details
			} else {
				r.Details = truncateDetails(r.Details + detailsSeparator + details)
			}
		})
		return active.OrderID, false, err
	}

	record := &models.OrderRecord{
		Phone:        msg.From,
		OrderType:    orderType,
		Details:      details,
		DeliveryTown: town,
		OrderStatus:  models.StatusDetailsProvided,
	}
	orderID, err = s.ledger.CreateOrder(ctx, record)
	return orderID, true, err
}

// handleQuoteAccept moves the active order to awaiting payment.
func (s *FlowService) handleQuoteAccept(ctx context.Context, msg IncomingMessage) string {
	active, err := s.ledger.FindActiveOrder(ctx, msg.From)
	if err != nil {
		logger.GetErrorLogger().WithError(err).WithField("phone", msg.From).Error("Failed to look up active order")
		return NothingPending()
	}
	if active == nil {
		s.touchProfile(ctx, msg, "", "")
		return NothingPending()
	}

	if err := s.ledger.UpdateOrder(ctx, active.OrderID, func(r *models.OrderRecord) {
		r.PaymentStatus = models.StatusAwaitingPayment
		r.OrderStatus = models.StatusAwaitingPayment
	}); err != nil {
		logger.GetErrorLogger().WithError(err).WithField("orderId", active.OrderID).Error("Failed to accept quote")
		return ServiceTrouble()
	}

	s.touchProfile(ctx, msg, customerStatusAwaitingPay, "")
	return QuoteAccepted(active.OrderID)
}

// handleQuoteReject cancels the active order.
func (s *FlowService) handleQuoteReject(ctx context.Context, msg IncomingMessage) string {
	active, err := s.ledger.FindActiveOrder(ctx, msg.From)
	if err != nil {
		logger.GetErrorLogger().WithError(err).WithField("phone", msg.From).Error("Failed to look up active order")
		return NothingPending()
	}
	if active == nil {
		s.touchProfile(ctx, msg, "", "")
		return NothingPending()
	}

	if err := s.ledger.UpdateOrder(ctx, active.OrderID, func(r *models.OrderRecord) {
		r.OrderStatus = models.StatusCancelled
	}); err != nil {
		logger.GetErrorLogger().WithError(err).WithField("orderId", active.OrderID).Error("Failed to cancel order")
		return ServiceTrouble()
	}

	s.touchProfile(ctx, msg, customerStatusCancelled, "")
	return QuoteRejected(active.OrderID)
}

// handleTracking looks up the requested order id; read-only.
func (s *FlowService) handleTracking(ctx context.Context, msg IncomingMessage) string {
	orderID := ExtractTrackedOrderID(msg.Text)
	if orderID == "" {
		return TrackingUsage()
	}

	record, err := s.ledger.FindOrderByID(ctx, orderID)
	if err != nil {
		logger.GetErrorLogger().WithError(err).WithField("orderId", orderID).Error("Failed to look up order")
		return TrackingNotFound(orderID)
	}
	if record == nil {
		return TrackingNotFound(orderID)
	}
	if models.IsTerminalStatus(record.OrderStatus) {
		return TrackingClosedReply(record.OrderID, record.OrderStatus)
	}
	return TrackingReply(record.OrderID, record.OrderStatus)
}

// touchProfile records the interaction on the customer row. Profile
// drift is tolerable; failures are logged and the flow continues.
func (s *FlowService) touchProfile(ctx context.Context, msg IncomingMessage, status, town string) {
	if err := s.ledger.UpsertCustomerProfile(ctx, msg.From, truncateDetails(msg.Text), status, town); err != nil {
		logger.GetAppLogger().WithError(err).WithField("phone", msg.From).Warn("Failed to update customer profile")
	}
}

func truncateDetails(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= maxDetailsLen {
		return text
	}
	return string(runes[:maxDetailsLen-3]) + "..."
}
