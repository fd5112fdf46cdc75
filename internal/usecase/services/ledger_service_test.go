package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/genericodex/Group5-SWConstruction/internal/adapter/repository/memory"
	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/genericodex/Group5-SWConstruction/internal/usecase/services"
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

var testDefaultLimits = domain.TransactionLimits{Daily: dec("1000"), Monthly: dec("20000")}

type ledgerFixture struct {
	accounts *memory.AccountRepository
	entries  *memory.TransactionRepository
	limits   *memory.TransactionLimitRepository
	limitSvc *services.LimitEnforcementService
	ledger   *services.LedgerService
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	accounts := memory.NewAccountRepository()
	entries := memory.NewTransactionRepository()
	limits := memory.NewTransactionLimitRepository(testDefaultLimits)
	limitSvc := services.NewLimitEnforcementService(limits)
	ledger := services.NewLedgerService(accounts, entries, limitSvc, services.NewNotificationService())
	return &ledgerFixture{
		accounts: accounts,
		entries:  entries,
		limits:   limits,
		limitSvc: limitSvc,
		ledger:   ledger,
	}
}

func (f *ledgerFixture) seedAccount(t *testing.T, id string, kind domain.AccountKind, balance string) {
	t.Helper()
	require.NoError(t, f.accounts.Save(context.Background(), domain.NewAccount(id, kind, dec(balance), domain.TierDefault)))
}

func TestLedgerDepositWithdrawRoundTrip(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	f.seedAccount(t, "acc-1", domain.AccountKindChecking, "100")

	_, err := f.ledger.Deposit(ctx, "acc-1", dec("50"))
	require.NoError(t, err)

	_, err = f.ledger.Withdraw(ctx, "acc-1", dec("30"))
	require.NoError(t, err)

	account, err := f.accounts.GetByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(dec("120")))
	assert.Len(t, account.Transactions, 2)

	history, err := f.ledger.GetTransactions(ctx, "acc-1")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestLedgerDepositUnknownAccount(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.ledger.Deposit(context.Background(), "missing", dec("50"))
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestLedgerWithdrawRejectionsLeaveStateUntouched(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	f.seedAccount(t, "acc-1", domain.AccountKindChecking, "100")

	_, err := f.ledger.Withdraw(ctx, "acc-1", dec("100.01"))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, err = f.ledger.Withdraw(ctx, "acc-1", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	account, err := f.accounts.GetByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(dec("100")))
	assert.Empty(t, account.Transactions)

	usage, err := f.limits.GetUsage(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, usage.Daily.IsZero())
}

func TestLedgerClosedAccountRejected(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	account := domain.NewAccount("acc-1", domain.AccountKindChecking, dec("100"), domain.TierDefault)
	account.Close()
	require.NoError(t, f.accounts.Save(ctx, account))

	_, err := f.ledger.Deposit(ctx, "acc-1", dec("10"))
	assert.ErrorIs(t, err, domain.ErrAccountInactive)

	_, err = f.ledger.Withdraw(ctx, "acc-1", dec("10"))
	assert.ErrorIs(t, err, domain.ErrAccountInactive)
}

func TestLedgerDepositRecordsUsageOnce(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	f.seedAccount(t, "acc-1", domain.AccountKindChecking, "100")

	_, err := f.ledger.Deposit(ctx, "acc-1", dec("250"))
	require.NoError(t, err)

	usage, err := f.limits.GetUsage(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, usage.Daily.Equal(dec("250")))
	assert.True(t, usage.Monthly.Equal(dec("250")))
}

func TestLedgerRejectsOverLimit(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	f.seedAccount(t, "acc-1", domain.AccountKindChecking, "5000")
	require.NoError(t, f.limits.AddUsage(ctx, "acc-1", dec("900")))

	_, err := f.ledger.Withdraw(ctx, "acc-1", dec("150"))
	require.ErrorIs(t, err, domain.ErrLimitExceeded)

	var limitErr *domain.LimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, domain.LimitBoundaryDaily, limitErr.Boundary)

	account, err := f.accounts.GetByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(dec("5000")))

	usage, err := f.limits.GetUsage(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, usage.Daily.Equal(dec("900")), "rejected transaction must not consume limit")
}

func TestLedgerAllowsExactLimitBoundary(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	f.seedAccount(t, "acc-1", domain.AccountKindChecking, "5000")
	require.NoError(t, f.limits.AddUsage(ctx, "acc-1", dec("900")))

	_, err := f.ledger.Withdraw(ctx, "acc-1", dec("100"))
	require.NoError(t, err)

	usage, err := f.limits.GetUsage(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, usage.Daily.Equal(dec("1000")))
}

func TestLedgerTransfer(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	f.seedAccount(t, "src", domain.AccountKindChecking, "500")
	f.seedAccount(t, "dst", domain.AccountKindChecking, "300")

	leg, err := f.ledger.Transfer(ctx, "src", "dst", dec("200"))
	require.NoError(t, err)
	assert.Equal(t, "src", leg.AccountID)

	source, err := f.accounts.GetByID(ctx, "src")
	require.NoError(t, err)
	dest, err := f.accounts.GetByID(ctx, "dst")
	require.NoError(t, err)

	assert.True(t, source.Balance.Equal(dec("300")))
	assert.True(t, dest.Balance.Equal(dec("500")))
	require.Len(t, source.Transactions, 1)
	require.Len(t, dest.Transactions, 1)
	assert.Equal(t, domain.TransactionTypeTransfer, source.Transactions[0].Type)
	assert.Equal(t, domain.TransactionTypeTransfer, dest.Transactions[0].Type)

	// Only the source account consumes limit budget.
	srcUsage, err := f.limits.GetUsage(ctx, "src")
	require.NoError(t, err)
	dstUsage, err := f.limits.GetUsage(ctx, "dst")
	require.NoError(t, err)
	assert.True(t, srcUsage.Daily.Equal(dec("200")))
	assert.True(t, dstUsage.Daily.IsZero())

	srcHistory, err := f.ledger.GetTransactions(ctx, "src")
	require.NoError(t, err)
	dstHistory, err := f.ledger.GetTransactions(ctx, "dst")
	require.NoError(t, err)
	assert.Len(t, srcHistory, 1)
	assert.Len(t, dstHistory, 1)
}

func TestLedgerTransferSameAccount(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedAccount(t, "src", domain.AccountKindChecking, "500")

	_, err := f.ledger.Transfer(context.Background(), "src", "src", dec("10"))
	assert.ErrorIs(t, err, domain.ErrTransferSameAccount)
}

func TestLedgerTransferMissingDestination(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	f.seedAccount(t, "src", domain.AccountKindChecking, "500")

	_, err := f.ledger.Transfer(ctx, "src", "missing", dec("10"))
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	source, err := f.accounts.GetByID(ctx, "src")
	require.NoError(t, err)
	assert.True(t, source.Balance.Equal(dec("500")))
}

// failingAccountRepo wraps the in-memory store and fails writes on demand.
type failingAccountRepo struct {
	*memory.AccountRepository
	failWrites bool
}

var errStorageDown = errors.New("storage down")

func (r *failingAccountRepo) Save(ctx context.Context, account *domain.Account) error {
	if r.failWrites {
		return errStorageDown
	}
	return r.AccountRepository.Save(ctx, account)
}

func (r *failingAccountRepo) SaveAll(ctx context.Context, accounts []*domain.Account) error {
	if r.failWrites {
		return errStorageDown
	}
	return r.AccountRepository.SaveAll(ctx, accounts)
}

func TestLedgerPersistenceFailureCompensatesUsage(t *testing.T) {
	ctx := context.Background()
	accounts := &failingAccountRepo{AccountRepository: memory.NewAccountRepository()}
	limits := memory.NewTransactionLimitRepository(testDefaultLimits)
	ledger := services.NewLedgerService(accounts, memory.NewTransactionRepository(),
		services.NewLimitEnforcementService(limits), services.NewNotificationService())

	require.NoError(t, accounts.Save(ctx, domain.NewAccount("acc-1", domain.AccountKindChecking, dec("100"), domain.TierDefault)))
	accounts.failWrites = true

	_, err := ledger.Deposit(ctx, "acc-1", dec("50"))
	require.ErrorIs(t, err, errStorageDown)

	account, err := accounts.GetByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(dec("100")), "durable balance must be unchanged")
	assert.Empty(t, account.Transactions)

	usage, err := limits.GetUsage(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, usage.Daily.IsZero(), "usage must be compensated after persistence failure")
	assert.True(t, usage.Monthly.IsZero())
}

func TestLedgerTransferPersistenceFailureCompensatesUsage(t *testing.T) {
	ctx := context.Background()
	accounts := &failingAccountRepo{AccountRepository: memory.NewAccountRepository()}
	limits := memory.NewTransactionLimitRepository(testDefaultLimits)
	ledger := services.NewLedgerService(accounts, memory.NewTransactionRepository(),
		services.NewLimitEnforcementService(limits), services.NewNotificationService())

	require.NoError(t, accounts.Save(ctx, domain.NewAccount("src", domain.AccountKindChecking, dec("500"), domain.TierDefault)))
	require.NoError(t, accounts.Save(ctx, domain.NewAccount("dst", domain.AccountKindChecking, dec("300"), domain.TierDefault)))
	accounts.failWrites = true

	_, err := ledger.Transfer(ctx, "src", "dst", dec("200"))
	require.ErrorIs(t, err, errStorageDown)

	source, err := accounts.GetByID(ctx, "src")
	require.NoError(t, err)
	dest, err := accounts.GetByID(ctx, "dst")
	require.NoError(t, err)
	assert.True(t, source.Balance.Equal(dec("500")))
	assert.True(t, dest.Balance.Equal(dec("300")))

	usage, err := limits.GetUsage(ctx, "src")
	require.NoError(t, err)
	assert.True(t, usage.Daily.IsZero())
}

func TestLedgerConcurrentWithdrawalsDrainToExactlyZero(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	const workers = 20
	f.seedAccount(t, "acc-1", domain.AccountKindChecking, "100")
	require.NoError(t, f.limits.SetLimits(ctx, "acc-1", domain.TransactionLimits{
		Daily:   dec("100000"),
		Monthly: dec("100000"),
	}))

	amount := dec("5") // workers * 5 == 100
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := f.ledger.Withdraw(ctx, "acc-1", amount)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	account, err := f.accounts.GetByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.IsZero(), "balance is %s", account.Balance)
	assert.Len(t, account.Transactions, workers)
}

func TestLedgerSavingsConcurrentWithdrawalsStopAtMinimum(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	const workers = 20
	f.seedAccount(t, "sav-1", domain.AccountKindSavings, "200")

	amount := dec("5") // workers * 5 drains exactly the headroom above the minimum
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := f.ledger.Withdraw(ctx, "sav-1", amount)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	account, err := f.accounts.GetByID(ctx, "sav-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(domain.MinimumBalance), "balance is %s", account.Balance)
	assert.Len(t, account.Transactions, workers)

	_, err = f.ledger.Withdraw(ctx, "sav-1", dec("0.01"))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestLedgerOpposingConcurrentTransfersConserveFunds(t *testing.T) {
	f := newLedgerFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	f.seedAccount(t, "a", domain.AccountKindChecking, "1000")
	f.seedAccount(t, "b", domain.AccountKindChecking, "1000")
	big := domain.TransactionLimits{Daily: dec("1000000"), Monthly: dec("1000000")}
	require.NoError(t, f.limits.SetLimits(ctx, "a", big))
	require.NoError(t, f.limits.SetLimits(ctx, "b", big))

	const rounds = 50
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, err := f.ledger.Transfer(ctx, "a", "b", dec("1"))
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, err := f.ledger.Transfer(ctx, "b", "a", dec("1"))
			assert.NoError(t, err)
		}
	}()
	wg.Wait()

	a, err := f.accounts.GetByID(ctx, "a")
	require.NoError(t, err)
	b, err := f.accounts.GetByID(ctx, "b")
	require.NoError(t, err)

	assert.True(t, a.Balance.Add(b.Balance).Equal(dec("2000")),
		"total is %s", a.Balance.Add(b.Balance))
	assert.True(t, a.Balance.Equal(dec("1000")))
	assert.True(t, b.Balance.Equal(dec("1000")))
}

// blockingAccountRepo parks reads until released, keeping the caller inside
// its critical section so another operation can contend for the account lock.
type blockingAccountRepo struct {
	*memory.AccountRepository
	entered chan struct{}
	release chan struct{}
}

func (r *blockingAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.entered <- struct{}{}
	<-r.release
	return r.AccountRepository.GetByID(ctx, id)
}

func TestLedgerLockTimeout(t *testing.T) {
	ctx := context.Background()
	accounts := &blockingAccountRepo{
		AccountRepository: memory.NewAccountRepository(),
		entered:           make(chan struct{}),
		release:           make(chan struct{}),
	}
	limits := memory.NewTransactionLimitRepository(testDefaultLimits)
	ledger := services.NewLedgerService(accounts, memory.NewTransactionRepository(),
		services.NewLimitEnforcementService(limits), services.NewNotificationService())

	require.NoError(t, accounts.Save(ctx, domain.NewAccount("acc-1", domain.AccountKindChecking, dec("100"), domain.TierDefault)))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := ledger.Deposit(ctx, "acc-1", dec("10"))
		assert.NoError(t, err)
	}()
	<-accounts.entered // first deposit now holds the account lock

	timed, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err := ledger.Withdraw(timed, "acc-1", dec("10"))
	assert.ErrorIs(t, err, domain.ErrLockTimeout)

	close(accounts.release)
	<-done
}

func TestLedgerGetTransactionsUnknownAccount(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.ledger.GetTransactions(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}
