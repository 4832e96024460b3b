package dashboard

import (
	"context"
	"testing"
	"time"

	"freightdesk-backend/internal/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidateMetrics(t *testing.T) {
	store := cache.NewMemoryAdapter()
	ctx := context.Background()
	now := time.Now()

	standard := []Period{PeriodCurrentWeek, PeriodCurrentMonth, PeriodCurrentQuarter, PeriodCurrentFinancialYear}
	for _, p := range standard {
		start, end, resolved := ResolveRange(p, "", "", now)
		require.NoError(t, store.Set(ctx, metricsCacheKey(resolved, start, end), []byte("cached"), 0))
	}

	customStart, customEnd, customPeriod := ResolveRange(PeriodCustom, "2024-01-01", "2024-01-31", now)
	customKey := metricsCacheKey(customPeriod, customStart, customEnd)
	require.NoError(t, store.Set(ctx, customKey, []byte("cached"), 0))

	InvalidateMetrics(ctx, store)

	for _, p := range standard {
		start, end, resolved := ResolveRange(p, "", "", now)
		_, err := store.Get(ctx, metricsCacheKey(resolved, start, end))
		assert.ErrorIs(t, err, cache.ErrNotFound, "period %s should be invalidated", p)
	}

	// custom ranges are not enumerable, they age out via the TTL
	val, err := store.Get(ctx, customKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("cached"), val)
}
