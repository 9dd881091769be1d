package sheets

import (
	"context"

	"budgethero/internal/core"
)

// Ports for outbound adapters.
type (
	// TransactionWriter appends one ledger row and returns a reference to it.
	TransactionWriter interface {
		AppendTransaction(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}
)
