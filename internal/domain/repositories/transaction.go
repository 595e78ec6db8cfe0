package repositories

import "context"

// TxFn is the unit of work of one transaction. Its ctx carries the
// transaction (see GetTx).
type TxFn func(ctx context.Context) error

// TransactionManager groups the statements of one folder mutation.
type TransactionManager interface {
	// ExecTx commits when fn returns nil and rolls back otherwise. A ctx that
	// already carries a transaction runs fn inside it.
	ExecTx(ctx context.Context, fn TxFn) error
}
