package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"budgethero/internal/amqp"
	"budgethero/internal/cache"
	"budgethero/internal/core"
	"budgethero/internal/sheets"
)

// TransactionReader loads a stored transaction by id.
type TransactionReader interface {
	GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
}

// SyncWorker mirrors transactions from SQLite to a spreadsheet.
type SyncWorker struct {
	storage TransactionReader
	sheets  sheets.TransactionWriter
	// synced remembers recent appends so redelivered messages are not mirrored twice.
	synced *cache.LRUCache[string]
}

func NewSyncWorker(storage TransactionReader, sheets sheets.TransactionWriter) *SyncWorker {
	return &SyncWorker{
		storage: storage,
		sheets:  sheets,
		synced:  cache.NewLRUCache[string](4096, 24*time.Hour),
	}
}

// HandleSyncMessage processes a single transaction sync message from AMQP.
// A returned error makes the consumer requeue the message.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID)

	key := strconv.FormatInt(msg.ID, 10)
	if ref, ok := w.synced.Get(key); ok {
		slog.InfoContext(ctx, "Transaction already mirrored, skipping", "id", msg.ID, "sheets_ref", ref)
		return nil
	}

	t, err := w.storage.GetTransaction(ctx, msg.ID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			slog.WarnContext(ctx, "Transaction not found, nothing to mirror", "id", msg.ID)
			return nil
		}
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	ref, err := w.sheets.AppendTransaction(ctx, t)
	if err != nil {
		return fmt.Errorf("append to sheets: %w", err)
	}
	w.synced.Set(key, ref)

	slog.InfoContext(ctx, "Successfully synced transaction",
		"id", t.ID,
		"sheets_ref", ref,
		"category", t.Category,
		"amount_cents", t.Amount.Cents,
		"recent_synced", w.synced.Size())

	return nil
}
