package domain_test

import (
	"testing"

	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAccountKindCanWithdraw(t *testing.T) {
	tests := []struct {
		name    string
		kind    domain.AccountKind
		balance string
		amount  string
		want    bool
	}{
		{"checking down to zero", domain.AccountKindChecking, "50", "50", true},
		{"checking overdraw", domain.AccountKindChecking, "50", "50.01", false},
		{"savings keeps minimum", domain.AccountKindSavings, "150", "50", true},
		{"savings would dip below minimum", domain.AccountKindSavings, "150", "50.01", false},
		{"savings lands exactly on minimum", domain.AccountKindSavings, "140", "40", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.CanWithdraw(dec(tt.balance), dec(tt.amount)))
		})
	}
}

func TestAccountDeposit(t *testing.T) {
	account := domain.NewAccount("acc-1", domain.AccountKindChecking, dec("100"), domain.TierDefault)

	tx, err := account.Deposit(dec("25.50"))
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionTypeDeposit, tx.Type)
	assert.Equal(t, "acc-1", tx.AccountID)
	assert.True(t, account.Balance.Equal(dec("125.50")))
	require.Len(t, account.Transactions, 1)
	assert.Equal(t, tx.ID, account.Transactions[0].ID)
}

func TestAccountDepositRejectsNonPositiveAmount(t *testing.T) {
	account := domain.NewAccount("acc-1", domain.AccountKindChecking, dec("100"), domain.TierDefault)

	_, err := account.Deposit(decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = account.Deposit(dec("-10"))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	assert.True(t, account.Balance.Equal(dec("100")))
	assert.Empty(t, account.Transactions)
}

func TestAccountWithdrawSavingsMinimumBalance(t *testing.T) {
	account := domain.NewAccount("sav-1", domain.AccountKindSavings, dec("150"), domain.TierDefault)

	_, err := account.Withdraw(dec("40"))
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(dec("110")))

	_, err = account.Withdraw(dec("11"))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.True(t, account.Balance.Equal(dec("110")))
	assert.Len(t, account.Transactions, 1)
}

func TestAccountWithdrawCheckingInsufficientFunds(t *testing.T) {
	account := domain.NewAccount("chk-1", domain.AccountKindChecking, dec("30"), domain.TierDefault)

	_, err := account.Withdraw(dec("30.01"))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, err = account.Withdraw(dec("30"))
	require.NoError(t, err)
	assert.True(t, account.Balance.IsZero())
}

func TestClosedAccountRejectsMutations(t *testing.T) {
	account := domain.NewAccount("acc-1", domain.AccountKindChecking, dec("100"), domain.TierDefault)
	account.Close()

	_, err := account.Deposit(dec("10"))
	assert.ErrorIs(t, err, domain.ErrAccountInactive)

	_, err = account.Withdraw(dec("10"))
	assert.ErrorIs(t, err, domain.ErrAccountInactive)

	dest := domain.NewAccount("acc-2", domain.AccountKindChecking, dec("100"), domain.TierDefault)
	_, _, err = account.TransferTo(dest, dec("10"))
	assert.ErrorIs(t, err, domain.ErrAccountInactive)

	assert.True(t, account.Balance.Equal(dec("100")))
	assert.Empty(t, account.Transactions)
}

func TestTransferToMovesFundsAndRecordsBothLegs(t *testing.T) {
	source := domain.NewAccount("src", domain.AccountKindChecking, dec("500"), domain.TierDefault)
	dest := domain.NewAccount("dst", domain.AccountKindChecking, dec("300"), domain.TierDefault)

	sourceLeg, destLeg, err := source.TransferTo(dest, dec("200"))
	require.NoError(t, err)

	assert.True(t, source.Balance.Equal(dec("300")))
	assert.True(t, dest.Balance.Equal(dec("500")))

	assert.Equal(t, domain.TransactionTypeTransfer, sourceLeg.Type)
	assert.Equal(t, domain.TransactionTypeTransfer, destLeg.Type)
	assert.Equal(t, "src", sourceLeg.AccountID)
	assert.Equal(t, "dst", destLeg.AccountID)
	for _, leg := range []domain.Transaction{sourceLeg, destLeg} {
		assert.Equal(t, "src", leg.SourceAccountID)
		assert.Equal(t, "dst", leg.DestinationAccountID)
		assert.True(t, leg.Amount.Equal(dec("200")))
	}

	require.Len(t, source.Transactions, 1)
	require.Len(t, dest.Transactions, 1)
}

func TestTransferToRejectsSameAccount(t *testing.T) {
	source := domain.NewAccount("src", domain.AccountKindChecking, dec("500"), domain.TierDefault)

	_, _, err := source.TransferTo(source, dec("10"))
	assert.ErrorIs(t, err, domain.ErrTransferSameAccount)

	_, _, err = source.TransferTo(nil, dec("10"))
	assert.ErrorIs(t, err, domain.ErrTransferSameAccount)
}

func TestTransferToInsufficientFundsLeavesBothUntouched(t *testing.T) {
	source := domain.NewAccount("src", domain.AccountKindSavings, dec("150"), domain.TierDefault)
	dest := domain.NewAccount("dst", domain.AccountKindChecking, dec("10"), domain.TierDefault)

	_, _, err := source.TransferTo(dest, dec("100"))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	assert.True(t, source.Balance.Equal(dec("150")))
	assert.True(t, dest.Balance.Equal(dec("10")))
	assert.Empty(t, source.Transactions)
	assert.Empty(t, dest.Transactions)
}

func TestCloneIsolatesTransactionHistory(t *testing.T) {
	account := domain.NewAccount("acc-1", domain.AccountKindChecking, dec("100"), domain.TierDefault)
	_, err := account.Deposit(dec("10"))
	require.NoError(t, err)

	clone := account.Clone()
	_, err = clone.Deposit(dec("5"))
	require.NoError(t, err)

	assert.Len(t, account.Transactions, 1)
	assert.Len(t, clone.Transactions, 2)
	assert.True(t, account.Balance.Equal(dec("110")))
	assert.True(t, clone.Balance.Equal(dec("115")))
}

func TestNewAccountDefaultsTier(t *testing.T) {
	account := domain.NewAccount("acc-1", domain.AccountKindChecking, decimal.Zero, "")
	assert.Equal(t, domain.TierDefault, account.Tier)
	assert.Equal(t, domain.AccountStatusActive, account.Status)
	assert.True(t, account.AccruedInterest.IsZero())
}
