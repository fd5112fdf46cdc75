package services_test

import (
	"context"
	"testing"

	"github.com/genericodex/Group5-SWConstruction/internal/adapter/repository/memory"
	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/genericodex/Group5-SWConstruction/internal/usecase/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitService() (*services.LimitEnforcementService, *memory.TransactionLimitRepository) {
	repo := memory.NewTransactionLimitRepository(testDefaultLimits)
	return services.NewLimitEnforcementService(repo), repo
}

func TestCheckLimitBoundaries(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		usage        string
		amount       string
		wantErr      bool
		wantBoundary string
	}{
		{"well under limit", "0", "500", false, ""},
		{"lands exactly on daily limit", "900", "100", false, ""},
		{"one cent over daily limit", "900", "100.01", true, domain.LimitBoundaryDaily},
		{"typical rejection", "900", "150", true, domain.LimitBoundaryDaily},
		{"single amount above daily limit", "0", "1000.01", true, domain.LimitBoundaryDaily},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newLimitService()
			require.NoError(t, repo.AddUsage(ctx, "acc-1", dec(tt.usage)))

			err := svc.CheckLimit(ctx, "acc-1", dec(tt.amount))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrLimitExceeded)
			var limitErr *domain.LimitExceededError
			require.ErrorAs(t, err, &limitErr)
			assert.Equal(t, tt.wantBoundary, limitErr.Boundary)
		})
	}
}

func TestCheckLimitMonthlyBoundary(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLimitService()

	// Daily usage freshly reset, monthly nearly exhausted: the monthly
	// ceiling must still catch the transaction.
	require.NoError(t, repo.AddUsage(ctx, "acc-1", dec("19900")))
	require.NoError(t, repo.ResetDaily(ctx, "acc-1"))

	err := svc.CheckLimit(ctx, "acc-1", dec("150"))
	require.ErrorIs(t, err, domain.ErrLimitExceeded)
	var limitErr *domain.LimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, domain.LimitBoundaryMonthly, limitErr.Boundary)

	assert.NoError(t, svc.CheckLimit(ctx, "acc-1", dec("100")))
}

func TestCheckLimitReportsDailyBeforeMonthly(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLimitService()
	require.NoError(t, repo.SetLimits(ctx, "acc-1", domain.TransactionLimits{
		Daily:   dec("100"),
		Monthly: dec("100"),
	}))
	require.NoError(t, repo.AddUsage(ctx, "acc-1", dec("100")))

	err := svc.CheckLimit(ctx, "acc-1", dec("1"))
	var limitErr *domain.LimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, domain.LimitBoundaryDaily, limitErr.Boundary)
}

func TestCheckLimitDoesNotConsumeBudget(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLimitService()

	require.NoError(t, svc.CheckLimit(ctx, "acc-1", dec("500")))
	require.NoError(t, svc.CheckLimit(ctx, "acc-1", dec("500")))

	usage, err := repo.GetUsage(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, usage.Daily.IsZero())
	assert.True(t, usage.Monthly.IsZero())
}

func TestRecordAndCompensateUsage(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLimitService()

	require.NoError(t, svc.RecordUsage(ctx, "acc-1", dec("300")))
	usage, err := repo.GetUsage(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, usage.Daily.Equal(dec("300")))
	assert.True(t, usage.Monthly.Equal(dec("300")))

	require.NoError(t, svc.CompensateUsage(ctx, "acc-1", dec("300")))
	usage, err = repo.GetUsage(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, usage.Daily.IsZero())
	assert.True(t, usage.Monthly.IsZero())
}

func TestResetDailyLeavesMonthlyUntouched(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLimitService()
	require.NoError(t, svc.RecordUsage(ctx, "acc-1", dec("400")))

	require.NoError(t, svc.ResetDaily(ctx, "acc-1"))

	usage, err := repo.GetUsage(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, usage.Daily.IsZero())
	assert.True(t, usage.Monthly.Equal(dec("400")))
}

func TestResetMonthlyLeavesDailyUntouched(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLimitService()
	require.NoError(t, svc.RecordUsage(ctx, "acc-1", dec("400")))

	require.NoError(t, svc.ResetMonthly(ctx, "acc-1"))

	usage, err := repo.GetUsage(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, usage.Daily.Equal(dec("400")))
	assert.True(t, usage.Monthly.IsZero())
}

func TestUpdateLimitsValidation(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLimitService()

	assert.ErrorIs(t, svc.UpdateLimits(ctx, "acc-1", dec("0"), dec("100")), domain.ErrInvalidLimit)
	assert.ErrorIs(t, svc.UpdateLimits(ctx, "acc-1", dec("100"), dec("-1")), domain.ErrInvalidLimit)
	assert.ErrorIs(t, svc.UpdateLimits(ctx, "acc-1", dec("500"), dec("400")), domain.ErrInvalidLimit)

	require.NoError(t, svc.UpdateLimits(ctx, "acc-1", dec("500"), dec("500")))
	limits, err := repo.GetLimits(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, limits.Daily.Equal(dec("500")))
	assert.True(t, limits.Monthly.Equal(dec("500")))
}

func TestGetStatus(t *testing.T) {
	ctx := context.Background()
	svc, repo := newLimitService()
	require.NoError(t, repo.AddUsage(ctx, "acc-1", dec("123.45")))

	limits, usage, err := svc.GetStatus(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, limits.Daily.Equal(testDefaultLimits.Daily))
	assert.True(t, limits.Monthly.Equal(testDefaultLimits.Monthly))
	assert.True(t, usage.Daily.Equal(dec("123.45")))
}
