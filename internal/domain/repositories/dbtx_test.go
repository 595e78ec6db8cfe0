package repositories

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
)

// fakeTx satisfies pgx.Tx; only its identity matters here.
type fakeTx struct {
	pgx.Tx
	name string
}

func TestTxContext(t *testing.T) {
	ctx := context.Background()
	if GetTx(ctx) != nil {
		t.Fatal("expected no transaction on a bare context")
	}

	tx := &fakeTx{name: "outer"}
	txCtx := SetTx(ctx, tx)
	if got := GetTx(txCtx); got != tx {
		t.Errorf("expected the stored transaction, got %v", got)
	}
	if GetTx(ctx) != nil {
		t.Error("expected the parent context untouched")
	}

	// a string key with the same text must not collide
	type otherKey string
	shadowed := context.WithValue(ctx, otherKey("pgx_tx"), tx)
	if GetTx(shadowed) != nil {
		t.Error("expected foreign keys ignored")
	}
}
