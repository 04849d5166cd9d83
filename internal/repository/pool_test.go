package repository

import (
	"testing"

	"github.com/questdrop/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_poolRepository_guardedDebit(t *testing.T) {
	ctx := testutil.MockContext(t)
	r := NewPoolRepository()

	require.NoError(t, r.Credit(ctx, 10_000_000))

	balance, err := r.Balance(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(10_000_000), balance)

	// Two debits that each fit the balance as it was before either ran. The
	// guard lets only the first one through, the pool can never go negative.
	require.NoError(t, r.Debit(ctx, 6_000_000))
	require.ErrorIs(t, r.Debit(ctx, 6_000_000), ErrInsufficientPoolBalance)

	balance, err = r.Balance(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(4_000_000), balance)

	require.NoError(t, r.Debit(ctx, 4_000_000))
	require.ErrorIs(t, r.Debit(ctx, 1), ErrInsufficientPoolBalance)
}

func Test_poolRepository_emptyLedger(t *testing.T) {
	ctx := testutil.MockContext(t)
	r := NewPoolRepository()

	balance, err := r.Balance(ctx)
	require.NoError(t, err)
	require.Zero(t, balance)

	require.ErrorIs(t, r.Debit(ctx, 1), ErrInsufficientPoolBalance)

	// The first credit opens the account.
	require.NoError(t, r.Credit(ctx, 500))
	balance, err = r.Balance(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(500), balance)
}
