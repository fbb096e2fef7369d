package flowsvc

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buyza_commerce/internal/api/ledger/models"
	ledgersvc "buyza_commerce/internal/api/ledger/service"
	"buyza_commerce/internal/api/ledger/store"
)

type fakeMessenger struct {
	sent []sentMessage
}

type sentMessage struct {
	to   string
	body string
}

func (f *fakeMessenger) Send(ctx context.Context, to, body string) error {
	f.sent = append(f.sent, sentMessage{to: to, body: body})
	return nil
}

func (f *fakeMessenger) last(t *testing.T) sentMessage {
	t.Helper()
	require.NotEmpty(t, f.sent, "expected at least one outbound message")
	return f.sent[len(f.sent)-1]
}

func newTestFlow(t *testing.T) (*FlowService, *ledgersvc.LedgerService, *fakeMessenger) {
	t.Helper()
	ledger := ledgersvc.NewLedgerService(store.NewMemoryStore())
	ledger.SetClock(func() time.Time {
		return time.Date(2025, 1, 6, 9, 30, 0, 0, time.UTC)
	})
	require.NoError(t, ledger.EnsureSheets(context.Background()))

	messenger := &fakeMessenger{}
	return NewFlowService(ledger, messenger), ledger, messenger
}

func send(flow *FlowService, from, text string) {
	flow.HandleIncoming(context.Background(), IncomingMessage{
		From: from,
		Type: "text",
		Text: text,
	})
}

const testPhone = "263771234567"

func TestHandleIncoming_GreetingShowsMenu(t *testing.T) {
	flow, ledger, messenger := newTestFlow(t)

	send(flow, testPhone, "hi")

	reply := messenger.last(t)
	assert.Equal(t, testPhone, reply.to)
	assert.Contains(t, reply.body, "1️⃣ Online Order")
	assert.Contains(t, reply.body, "4️⃣ Chat with Assistant")

	profile, err := ledger.FindCustomerProfile(context.Background(), testPhone)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Engaged", profile.CurrentStatus)

	active, err := ledger.FindActiveOrder(context.Background(), testPhone)
	require.NoError(t, err)
	assert.Nil(t, active, "greeting must not open an order")
}

func TestHandleIncoming_MenuAssistedStart(t *testing.T) {
	flow, ledger, messenger := newTestFlow(t)

	send(flow, testPhone, "2")

	reply := messenger.last(t)
	assert.Contains(t, reply.body, "Assisted Order")

	active, err := ledger.FindActiveOrder(context.Background(), testPhone)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, models.OrderTypeAssisted, active.OrderType)
	assert.Equal(t, models.StatusAwaitingDetails, active.OrderStatus)

	profile, err := ledger.FindCustomerProfile(context.Background(), testPhone)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "New Order", profile.CurrentStatus)
}

func TestHandleIncoming_MenuStartWithActiveOrderOpensNew(t *testing.T) {
	flow, ledger, messenger := newTestFlow(t)
	ctx := context.Background()

	send(flow, testPhone, "Cart link: http://a Total: R850")
	first, err := ledger.FindActiveOrder(ctx, testPhone)
	require.NoError(t, err)
	require.NotNil(t, first)

	send(flow, testPhone, "1")

	reply := messenger.last(t)
	assert.Contains(t, reply.body, "Online Order")

	active, err := ledger.FindActiveOrder(ctx, testPhone)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.NotEqual(t, first.OrderID, active.OrderID, "menu selection must open a fresh order")
	assert.Equal(t, models.OrderTypeOnline, active.OrderType)
	assert.Equal(t, models.StatusAwaitingDetails, active.OrderStatus)
	assert.Empty(t, active.Details)

	// the quoted order stays on the books for agents to expire
	prior, err := ledger.FindOrderByID(ctx, first.OrderID)
	require.NoError(t, err)
	require.NotNil(t, prior)
	assert.Equal(t, models.StatusQuoteSent, prior.OrderStatus)
}

func TestHandleIncoming_OnlineOrderEndToEnd(t *testing.T) {
	flow, ledger, messenger := newTestFlow(t)
	ctx := context.Background()

	send(flow, testPhone, "1")
	send(flow, testPhone, "Cart link: https://takealot.com/x Total: R850 Delivery: Gweru")

	reply := messenger.last(t)
	assert.Contains(t, reply.body, "R850.00")
	assert.Contains(t, reply.body, "R85.00")
	assert.Contains(t, reply.body, "R935.00")
	assert.Contains(t, reply.body, "Gweru")

	active, err := ledger.FindActiveOrder(ctx, testPhone)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Contains(t, reply.body, active.OrderID)
	assert.Equal(t, models.StatusQuoteSent, active.OrderStatus)
	assert.Equal(t, "R935.00", active.QuoteAmount)
	assert.Equal(t, "Gweru", active.DeliveryTown)
	assert.Contains(t, active.Details, "takealot.com")
}

func TestHandleIncoming_SecondSubmissionAppendsDetails(t *testing.T) {
	flow, ledger, _ := newTestFlow(t)
	ctx := context.Background()

	send(flow, testPhone, "1")
	send(flow, testPhone, "Cart link: http://a Total: R100")
	firstActive, err := ledger.FindActiveOrder(ctx, testPhone)
	require.NoError(t, err)
	require.NotNil(t, firstActive)

	send(flow, testPhone, "Also add this cart: http://b Total: R200")

	active, err := ledger.FindActiveOrder(ctx, testPhone)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, firstActive.OrderID, active.OrderID, "continuation must not open a new order")
	assert.Contains(t, active.Details, "http://a")
	assert.Contains(t, active.Details, " || ")
	assert.Contains(t, active.Details, "http://b")
}

func TestHandleIncoming_CartWithoutAmountAsksForTotal(t *testing.T) {
	flow, _, messenger := newTestFlow(t)

	send(flow, testPhone, "here is my cart link http://takealot.com/x")

	reply := messenger.last(t)
	assert.Contains(t, reply.body, "include the amount")
}

func TestHandleIncoming_CartContinuationWithoutAmountConfirmsAppend(t *testing.T) {
	flow, ledger, messenger := newTestFlow(t)
	ctx := context.Background()

	send(flow, testPhone, "here is my cart link http://a")
	assert.Contains(t, messenger.last(t).body, "include the amount")

	send(flow, testPhone, "also add http://b please")

	reply := messenger.last(t)
	assert.Contains(t, reply.body, "Added to your open order")

	active, err := ledger.FindActiveOrder(ctx, testPhone)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Contains(t, reply.body, active.OrderID)
	assert.Contains(t, active.Details, "http://a")
	assert.Contains(t, active.Details, " || ")
	assert.Contains(t, active.Details, "http://b")
}

func TestHandleIncoming_AssistedEstimate(t *testing.T) {
	flow, ledger, messenger := newTestFlow(t)

	send(flow, testPhone, "I need a 3-piece cookware set, budget R600")

	reply := messenger.last(t)
	assert.Contains(t, reply.body, "R600.00")
	assert.Contains(t, reply.body, "R120.00")
	assert.Contains(t, reply.body, "R720.00")

	active, err := ledger.FindActiveOrder(context.Background(), testPhone)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, models.OrderTypeAssisted, active.OrderType)
	assert.Equal(t, "R720.00", active.QuoteAmount)
}

func TestHandleIncoming_QuoteAccept(t *testing.T) {
	flow, ledger, messenger := newTestFlow(t)
	ctx := context.Background()

	send(flow, testPhone, "Cart link: http://a Total: R850")
	send(flow, testPhone, "yes")

	active, err := ledger.FindActiveOrder(ctx, testPhone)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, models.StatusAwaitingPayment, active.OrderStatus)
	assert.Equal(t, models.StatusAwaitingPayment, active.PaymentStatus)

	reply := messenger.last(t)
	assert.Contains(t, reply.body, active.OrderID)
	assert.Contains(t, reply.body, "awaiting payment")
}

func TestHandleIncoming_QuoteRejectCancels(t *testing.T) {
	flow, ledger, messenger := newTestFlow(t)
	ctx := context.Background()

	send(flow, testPhone, "Cart link: http://a Total: R850")
	rejected, err := ledger.FindActiveOrder(ctx, testPhone)
	require.NoError(t, err)
	require.NotNil(t, rejected)

	send(flow, testPhone, "no")

	reply := messenger.last(t)
	assert.Contains(t, reply.body, "cancelled")

	active, err := ledger.FindActiveOrder(ctx, testPhone)
	require.NoError(t, err)
	assert.Nil(t, active)

	record, err := ledger.FindOrderByID(ctx, rejected.OrderID)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, models.StatusCancelled, record.OrderStatus)

	// A fresh submission after cancellation opens a new record.
	send(flow, testPhone, "Cart link: http://b Total: R100")
	active, err = ledger.FindActiveOrder(ctx, testPhone)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.NotEqual(t, rejected.OrderID, active.OrderID)
}

func TestHandleIncoming_AcceptWithoutOrder(t *testing.T) {
	flow, _, messenger := newTestFlow(t)

	send(flow, testPhone, "yes")

	reply := messenger.last(t)
	assert.Contains(t, reply.body, "No pending order")
}

func TestHandleIncoming_PaymentNoticeNeverMutatesOrders(t *testing.T) {
	flow, ledger, messenger := newTestFlow(t)
	ctx := context.Background()

	send(flow, testPhone, "Cart link: http://a Total: R850")
	send(flow, testPhone, "yes")
	before, err := ledger.FindActiveOrder(ctx, testPhone)
	require.NoError(t, err)
	require.NotNil(t, before)

	send(flow, testPhone, "Paid via EcoCash ref 998877")

	after, err := ledger.FindOrderByID(ctx, before.OrderID)
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.Equal(t, before.OrderStatus, after.OrderStatus)
	assert.Equal(t, before.PaymentStatus, after.PaymentStatus)

	profile, err := ledger.FindCustomerProfile(ctx, testPhone)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Payment Claimed", profile.CurrentStatus)

	reply := messenger.last(t)
	assert.Contains(t, reply.body, "noted your payment")
}

func TestHandleIncoming_Tracking(t *testing.T) {
	flow, ledger, messenger := newTestFlow(t)
	ctx := context.Background()

	send(flow, testPhone, "Cart link: http://a Total: R850")
	active, err := ledger.FindActiveOrder(ctx, testPhone)
	require.NoError(t, err)
	require.NotNil(t, active)

	t.Run("known order", func(t *testing.T) {
		send(flow, testPhone, "track "+active.OrderID)
		reply := messenger.last(t)
		assert.Contains(t, reply.body, active.OrderID)
		assert.Contains(t, reply.body, models.StatusQuoteSent)
	})

	t.Run("unknown order", func(t *testing.T) {
		send(flow, testPhone, "track BUYZA-0000-19700101-000000-0000")
		reply := messenger.last(t)
		assert.Contains(t, reply.body, "not found")
	})

	t.Run("missing id", func(t *testing.T) {
		send(flow, testPhone, "track")
		reply := messenger.last(t)
		assert.Contains(t, reply.body, "track <orderId>")
	})

	t.Run("closed order", func(t *testing.T) {
		send(flow, testPhone, "no")
		send(flow, testPhone, "track "+active.OrderID)
		reply := messenger.last(t)
		assert.Contains(t, reply.body, models.StatusCancelled)
		assert.Contains(t, reply.body, "This order is closed")
	})
}

func TestHandleIncoming_UnrecognizedFallsBack(t *testing.T) {
	flow, _, messenger := newTestFlow(t)

	t.Run("faq question", func(t *testing.T) {
		send(flow, testPhone, "How do I pay?")
		reply := messenger.last(t)
		assert.Contains(t, reply.body, "EcoCash")
	})

	t.Run("gibberish shows the menu", func(t *testing.T) {
		send(flow, testPhone, "banana")
		reply := messenger.last(t)
		assert.Contains(t, reply.body, "Reply with a number")
	})
}

func TestHandleIncoming_MissingSenderIsIgnored(t *testing.T) {
	flow, _, messenger := newTestFlow(t)

	flow.HandleIncoming(context.Background(), IncomingMessage{Text: "hi"})
	assert.Empty(t, messenger.sent)
}

func TestTruncateDetails(t *testing.T) {
	long := strings.Repeat("x", 500)
	got := truncateDetails(long)
	assert.Len(t, got, maxDetailsLen)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, "short", truncateDetails("  short  "))

	emoji := strings.Repeat("🛒", 500)
	got = truncateDetails(emoji)
	assert.Equal(t, maxDetailsLen, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got), "truncation must not split a rune")
	assert.True(t, strings.HasSuffix(got, "..."))
}
