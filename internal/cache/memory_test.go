package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	var got []entry
	assert.ErrorIs(t, c.Get(ctx, "report", &got), ErrMiss)

	value := []entry{{Name: "cats", Amount: 100}}
	require.NoError(t, c.Set(ctx, "report", value, time.Minute))
	value[0].Amount = 1

	require.NoError(t, c.Get(ctx, "report", &got))
	assert.Equal(t, []entry{{Name: "cats", Amount: 100}}, got)

	require.NoError(t, c.Delete(ctx, "report"))
	assert.ErrorIs(t, c.Get(ctx, "report", &got), ErrMiss)
}

func TestMemoryCacheExpires(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	require.NoError(t, c.Set(ctx, "k", entry{Name: "x"}, time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var got entry
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrMiss)
}
