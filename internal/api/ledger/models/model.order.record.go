package models

import (
	"strconv"
	"strings"
)

// OrdersSheet is the sheet title for order records
const OrdersSheet = "Orders"

// OrderHeaders is the fixed header row of the Orders sheet.
var OrderHeaders = []string{
	"Order ID", "Phone Number", "Order Type", "Order Details", "Quote Amount",
	"Payment Status", "Order Status", "Delivery Town", "Created Date", "Last Updated",
}

// Order types
const (
	OrderTypeOnline   = "Online Order"
	OrderTypeAssisted = "Assisted Order"
	OrderTypeGeneral  = "General Order"
)

// Order statuses. A record whose status is in the active set is eligible
// to be continued; terminal statuses are reached by transition only,
// rows are never deleted.
const (
	StatusNew             = "New"
	StatusPending         = "Pending"
	StatusAwaitingDetails = "Awaiting Details"
	StatusDetailsProvided = "Details Provided"
	StatusQuoteSent       = "Quote Sent"
	StatusAwaitingPayment = "Awaiting Payment"
	StatusPaymentPending  = "Payment Pending"
	StatusProcessing      = "Processing"

	StatusCompleted = "Completed"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
	StatusRejected  = "Rejected"
	StatusExpired   = "Expired"
)

var activeOrderStatuses = map[string]struct{}{
	StatusNew:             {},
	StatusPending:         {},
	StatusAwaitingDetails: {},
	StatusDetailsProvided: {},
	StatusQuoteSent:       {},
	StatusAwaitingPayment: {},
	StatusPaymentPending:  {},
	StatusProcessing:      {},
}

var terminalOrderStatuses = map[string]struct{}{
	StatusCompleted: {},
	StatusDelivered: {},
	StatusCancelled: {},
	StatusRejected:  {},
	StatusExpired:   {},
}

// IsActiveStatus reports whether status marks an order as continuable.
func IsActiveStatus(status string) bool {
	_, ok := activeOrderStatuses[strings.TrimSpace(status)]
	return ok
}

// IsTerminalStatus reports whether status is terminal.
func IsTerminalStatus(status string) bool {
	_, ok := terminalOrderStatuses[strings.TrimSpace(status)]
	return ok
}

// OrderRecord is one row of the Orders sheet.
type OrderRecord struct {
	OrderID       string // A - unique, immutable once assigned
	Phone         string // B - foreign key to CustomerProfile, not enforced structurally
	OrderType     string // C
	Details       string // D - free text, appended-to on continuation
	QuoteAmount   string // E
	PaymentStatus string // F
	OrderStatus   string // G
	DeliveryTown  string // H
	CreatedAt     string // I - "2006-01-02 15:04:05"
	LastUpdated   string // J
}

// ToRow encodes the order as a sheet row in header order.
func (o *OrderRecord) ToRow() []string {
	return []string{
		o.OrderID,
		o.Phone,
		o.OrderType,
		o.Details,
		o.QuoteAmount,
		o.PaymentStatus,
		o.OrderStatus,
		o.DeliveryTown,
		o.CreatedAt,
		o.LastUpdated,
	}
}

// OrderRecordFromRow decodes a sheet row, padding short rows.
func OrderRecordFromRow(row []string) *OrderRecord {
	row = padRow(row, len(OrderHeaders))
	return &OrderRecord{
		OrderID:       row[0],
		Phone:         row[1],
		OrderType:     row[2],
		Details:       row[3],
		QuoteAmount:   row[4],
		PaymentStatus: row[5],
		OrderStatus:   row[6],
		DeliveryTown:  row[7],
		CreatedAt:     row[8],
		LastUpdated:   row[9],
	}
}

// padRow extends row with empty cells up to size.
func padRow(row []string, size int) []string {
	if len(row) >= size {
		return row
	}
	padded := make([]string, size)
	copy(padded, row)
	return padded
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// atoi parses a cell as int, returning 0 for anything unparseable.
func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
