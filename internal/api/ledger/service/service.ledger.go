// Package ledgersvc implements the order ledger on the tabular store.
//
// Row lookups are linear scans over all historical rows of a sheet. The
// bot's throughput is low, so this is an accepted scalability ceiling of
// the design, not an oversight. Every mutation reads the full row,
// changes fields in memory, and writes the full row back; the store has
// no column-level atomic update. Two near-simultaneous messages from the
// same phone can therefore race and lose one update - callers must not
// assume sequential consistency per phone.
package ledgersvc

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"buyza_commerce/internal/api/ledger/models"
	"buyza_commerce/internal/api/ledger/store"
	"buyza_commerce/internal/logger"
)

// TimestampFormat is the wall-clock format stored in sheet rows.
const TimestampFormat = "2006-01-02 15:04:05"

const orderIDPrefix = "BUYZA"

// LedgerService holds the customer and order tables and the decision
// primitives over them.
type LedgerService struct {
	store store.SheetStore
	now   func() time.Time
}

// NewLedgerService creates a ledger over the given store.
func NewLedgerService(s store.SheetStore) *LedgerService {
	return &LedgerService{
		store: s,
		now:   time.Now,
	}
}

// SetClock overrides the wall clock, for tests.
func (l *LedgerService) SetClock(now func() time.Time) {
	l.now = now
}

// EnsureSheets creates the Customers and Orders sheets when absent.
// Called once at startup.
func (l *LedgerService) EnsureSheets(ctx context.Context) error {
	if err := l.store.EnsureSheet(ctx, models.CustomersSheet, models.CustomerHeaders); err != nil {
		return fmt.Errorf("ensure customers sheet: %w", err)
	}
	if err := l.store.EnsureSheet(ctx, models.OrdersSheet, models.OrderHeaders); err != nil {
		return fmt.Errorf("ensure orders sheet: %w", err)
	}
	return nil
}

// FindActiveOrder returns the latest active order for the phone, or nil
// when none exists. Latest means last inserted among active rows.
func (l *LedgerService) FindActiveOrder(ctx context.Context, phone string) (*models.OrderRecord, error) {
	rows, err := l.store.ReadRange(ctx, models.OrdersSheet+"!A2:J")
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}

	var latest *models.OrderRecord
	for _, row := range rows {
		record := models.OrderRecordFromRow(row)
		if record.Phone == phone && models.IsActiveStatus(record.OrderStatus) {
			latest = record
		}
	}
	return latest, nil
}

// HasActiveOrder reports whether the phone has any active order.
func (l *LedgerService) HasActiveOrder(ctx context.Context, phone string) (bool, error) {
	record, err := l.FindActiveOrder(ctx, phone)
	if err != nil {
		return false, err
	}
	return record != nil, nil
}

// FindOrderByID returns the order with the given id, or nil when absent.
func (l *LedgerService) FindOrderByID(ctx context.Context, orderID string) (*models.OrderRecord, error) {
	rowIdx, err := l.findOrderRow(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if rowIdx == -1 {
		return nil, nil
	}
	return l.readOrderRow(ctx, rowIdx)
}

// CreateOrder appends a new order row, assigning the order id and
// timestamps, and bumps the customer's order counter. Returns the id.
func (l *LedgerService) CreateOrder(ctx context.Context, record *models.OrderRecord) (string, error) {
	now := l.now().Format(TimestampFormat)

	record.OrderID = l.generateOrderID(record.Phone)
	if record.PaymentStatus == "" {
		record.PaymentStatus = models.StatusPending
	}
	if record.OrderStatus == "" {
		record.OrderStatus = models.StatusNew
	}
	record.CreatedAt = now
	record.LastUpdated = now

	if err := l.store.AppendRow(ctx, models.OrdersSheet+"!A:J", record.ToRow()); err != nil {
		return "", fmt.Errorf("append order: %w", err)
	}

	if err := l.incrementCustomerOrderCount(ctx, record.Phone); err != nil {
		// Counter drift is tolerable; the order row is the source of truth.
		logger.GetAppLogger().WithError(err).WithField("phone", record.Phone).Warn("Failed to increment customer order count")
	}

	logger.GetAppLogger().WithFields(map[string]interface{}{
		"orderId": record.OrderID,
		"phone":   record.Phone,
		"type":    record.OrderType,
	}).Info("Created order")

	return record.OrderID, nil
}

// UpdateOrder applies mutate to the order row under the read-modify-write
// discipline: read full row, mutate in memory, write full row back.
// The order id and created date are restored after mutate; they are
// immutable once assigned.
func (l *LedgerService) UpdateOrder(ctx context.Context, orderID string, mutate func(*models.OrderRecord)) error {
	rowIdx, err := l.findOrderRow(ctx, orderID)
	if err != nil {
		return err
	}
	if rowIdx == -1 {
		return fmt.Errorf("order %q not found", orderID)
	}

	record, err := l.readOrderRow(ctx, rowIdx)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("order row %d is empty", rowIdx)
	}

	id, created := record.OrderID, record.CreatedAt
	mutate(record)
	record.OrderID = id
	record.CreatedAt = created
	record.LastUpdated = l.now().Format(TimestampFormat)

	rangeA1 := fmt.Sprintf("%s!A%d:J%d", models.OrdersSheet, rowIdx, rowIdx)
	if err := l.store.UpdateRange(ctx, rangeA1, [][]string{record.ToRow()}); err != nil {
		return fmt.Errorf("write order row: %w", err)
	}
	return nil
}

// UpsertCustomerProfile creates the customer row on first contact, or
// updates last interaction, current status, and last updated in place.
// The preferred town is only seeded at creation; agents maintain it
// afterwards.
func (l *LedgerService) UpsertCustomerProfile(ctx context.Context, phone, lastMessage, status, preferredTown string) error {
	rowIdx, err := l.findCustomerRow(ctx, phone)
	if err != nil {
		return err
	}
	now := l.now().Format(TimestampFormat)

	if rowIdx == -1 {
		profile := &models.CustomerProfile{
			Phone:               phone,
			TotalOrders:         0,
			LastInteractionText: lastMessage,
			CurrentStatus:       status,
			PreferredTown:       preferredTown,
			Tier:                "New",
			LastUpdated:         now,
		}
		if err := l.store.AppendRow(ctx, models.CustomersSheet+"!A:I", profile.ToRow()); err != nil {
			return fmt.Errorf("append customer: %w", err)
		}
		return nil
	}

	profile, err := l.readCustomerRow(ctx, rowIdx)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("customer row %d is empty", rowIdx)
	}

	if lastMessage != "" {
		profile.LastInteractionText = lastMessage
	}
	if status != "" {
		profile.CurrentStatus = status
	}
	profile.LastUpdated = now

	rangeA1 := fmt.Sprintf("%s!A%d:I%d", models.CustomersSheet, rowIdx, rowIdx)
	if err := l.store.UpdateRange(ctx, rangeA1, [][]string{profile.ToRow()}); err != nil {
		return fmt.Errorf("write customer row: %w", err)
	}
	return nil
}

// FindCustomerProfile returns the profile for the phone, or nil when absent.
func (l *LedgerService) FindCustomerProfile(ctx context.Context, phone string) (*models.CustomerProfile, error) {
	rowIdx, err := l.findCustomerRow(ctx, phone)
	if err != nil {
		return nil, err
	}
	if rowIdx == -1 {
		return nil, nil
	}
	return l.readCustomerRow(ctx, rowIdx)
}

// incrementCustomerOrderCount bumps the total orders counter through the
// same full-row read-modify-write path as every other mutation.
func (l *LedgerService) incrementCustomerOrderCount(ctx context.Context, phone string) error {
	rowIdx, err := l.findCustomerRow(ctx, phone)
	if err != nil {
		return err
	}
	if rowIdx == -1 {
		return nil
	}

	profile, err := l.readCustomerRow(ctx, rowIdx)
	if err != nil {
		return err
	}
	if profile == nil {
		return nil
	}

	profile.TotalOrders++
	profile.LastUpdated = l.now().Format(TimestampFormat)

	rangeA1 := fmt.Sprintf("%s!A%d:I%d", models.CustomersSheet, rowIdx, rowIdx)
	return l.store.UpdateRange(ctx, rangeA1, [][]string{profile.ToRow()})
}

// generateOrderID builds "BUYZA-<last4>-<yyyyMMdd-HHmmss>-<4hex>". The
// random suffix closes the sub-second collision window that a timestamp
// alone leaves open.
func (l *LedgerService) generateOrderID(phone string) string {
	last4 := "0000"
	if len(phone) >= 4 {
		last4 = phone[len(phone)-4:]
	} else if phone != "" {
		last4 = phone
	}

	suffix := make([]byte, 2)
	if _, err := rand.Read(suffix); err != nil {
		nanos := l.now().UnixNano()
		suffix[0] = byte(nanos >> 8)
		suffix[1] = byte(nanos)
	}

	return fmt.Sprintf("%s-%s-%s-%s",
		orderIDPrefix,
		last4,
		l.now().Format("20060102-150405"),
		hex.EncodeToString(suffix),
	)
}

// findOrderRow returns the 1-based sheet row of the order id, or -1.
func (l *LedgerService) findOrderRow(ctx context.Context, orderID string) (int, error) {
	rows, err := l.store.ReadRange(ctx, models.OrdersSheet+"!A2:A")
	if err != nil {
		return -1, fmt.Errorf("scan order ids: %w", err)
	}
	for i, row := range rows {
		if len(row) > 0 && row[0] == orderID {
			return i + 2, nil
		}
	}
	return -1, nil
}

// findCustomerRow returns the 1-based sheet row of the phone, or -1.
func (l *LedgerService) findCustomerRow(ctx context.Context, phone string) (int, error) {
	rows, err := l.store.ReadRange(ctx, models.CustomersSheet+"!A2:A")
	if err != nil {
		return -1, fmt.Errorf("scan customer phones: %w", err)
	}
	for i, row := range rows {
		if len(row) > 0 && row[0] == phone {
			return i + 2, nil
		}
	}
	return -1, nil
}

func (l *LedgerService) readOrderRow(ctx context.Context, rowIdx int) (*models.OrderRecord, error) {
	rangeA1 := fmt.Sprintf("%s!A%d:J%d", models.OrdersSheet, rowIdx, rowIdx)
	rows, err := l.store.ReadRange(ctx, rangeA1)
	if err != nil {
		return nil, fmt.Errorf("read order row: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return models.OrderRecordFromRow(rows[0]), nil
}

func (l *LedgerService) readCustomerRow(ctx context.Context, rowIdx int) (*models.CustomerProfile, error) {
	rangeA1 := fmt.Sprintf("%s!A%d:I%d", models.CustomersSheet, rowIdx, rowIdx)
	rows, err := l.store.ReadRange(ctx, rangeA1)
	if err != nil {
		return nil, fmt.Errorf("read customer row: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return models.CustomerProfileFromRow(rows[0]), nil
}
