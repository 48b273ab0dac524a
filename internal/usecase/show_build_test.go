package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/solbuild/internal/domain"
	"github.com/trebuchet-org/solbuild/internal/domain/models"
	"github.com/trebuchet-org/solbuild/internal/usecase"
)

func TestShowBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the build with its sources", func(t *testing.T) {
		ledger := new(MockBuildLedger)
		build := &models.Build{
			ID:      "b1",
			Network: "development",
			Status:  models.BuildStatusSucceeded,
			Sources: []models.SourceFile{{Path: "Token.sol", Hash: "0xabc", Size: 17}},
		}
		ledger.On("Get", ctx, "b1").Return(build, nil)

		result, err := usecase.NewShowBuild(newRuntime(t, withDB()), ledger).Run(ctx, usecase.ShowBuildParams{ID: " b1 "})
		require.NoError(t, err)
		assert.Equal(t, build, result.Build)
		ledger.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		ledger := new(MockBuildLedger)
		ledger.On("Get", ctx, "nope").Return(nil, fmt.Errorf("build nope: %w", domain.ErrNotFound))

		_, err := usecase.NewShowBuild(newRuntime(t, withDB()), ledger).Run(ctx, usecase.ShowBuildParams{ID: "nope"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		ledger := new(MockBuildLedger)

		_, err := usecase.NewShowBuild(newRuntime(t, withDB()), ledger).Run(ctx, usecase.ShowBuildParams{})
		require.Error(t, err)
		ledger.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("db disabled", func(t *testing.T) {
		ledger := new(MockBuildLedger)

		_, err := usecase.NewShowBuild(newRuntime(t), ledger).Run(ctx, usecase.ShowBuildParams{ID: "b1"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDBDisabled)
		ledger.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}
