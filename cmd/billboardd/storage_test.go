package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billboard-hub-backend/config"
	"billboard-hub-backend/internal/store"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		s, closeFn, err := openStore(ctx, &config.StorageConfig{Driver: config.DriverMemory})
		require.NoError(t, err)
		defer closeFn()
		require.NoError(t, store.WriteJSON(ctx, s, "k", []string{"v"}))
	})

	t.Run("sqlite", func(t *testing.T) {
		s, closeFn, err := openStore(ctx, &config.StorageConfig{
			Driver: config.DriverSQLite,
			DSN:    "file:open_store_test?mode=memory&cache=shared",
		})
		require.NoError(t, err)
		defer closeFn()

		require.NoError(t, store.WriteJSON(ctx, s, "k", []string{"v"}))
		var got []string
		assert.True(t, store.ReadJSON(ctx, s, "k", &got))
		assert.Equal(t, []string{"v"}, got)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, _, err := openStore(ctx, &config.StorageConfig{Driver: "floppy"})
		assert.Error(t, err)
	})
}
