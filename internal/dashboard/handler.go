package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freightdesk-backend/internal/cache"
	"freightdesk-backend/internal/database"
	"freightdesk-backend/internal/logger"
	"freightdesk-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type MetricsResponse struct {
	Period    string `json:"period"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Report
}

// Cached metric responses live this long. The key is derived from the
// resolved inputs, so a changed filter selection misses naturally and a
// stale selection can never overwrite a newer one. Mutations additionally
// invalidate the standard-period keys, the TTL only covers custom ranges.
const metricsCacheTTL = 60 * time.Second

func metricsCacheKey(period Period, start, end time.Time) string {
	return fmt.Sprintf("dashboard:%s:%s:%s", period, start.Format(dateLayout), end.Format(dateLayout))
}

// InvalidateMetrics drops the cached reports for the standard periods as
// resolved right now. Custom ranges cannot be enumerated and age out via the
// TTL instead. Called by the shipment mutation paths.
func InvalidateMetrics(ctx context.Context, store cache.Cache) {
	now := time.Now()
	for _, p := range []Period{PeriodCurrentWeek, PeriodCurrentMonth, PeriodCurrentQuarter, PeriodCurrentFinancialYear} {
		start, end, resolved := ResolveRange(p, "", "", now)
		key := metricsCacheKey(resolved, start, end)
		if err := store.Delete(ctx, key); err != nil {
			logger.Get().Warn("Could not invalidate dashboard metrics", zap.String("key", key), zap.Error(err))
		}
	}
}

// GET /api/dashboard/metrics?period=current_month
// For period=custom pass start and end as YYYY-MM-DD.
func MetricsHandler(store cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := Period(c.Query("period", string(PeriodCurrentMonth)))
		start, end, resolved := ResolveRange(period, c.Query("start"), c.Query("end"), time.Now())

		key := metricsCacheKey(resolved, start, end)
		if cached, err := store.Get(c.Context(), key); err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(cached)
		}

		var items []models.Shipment
		if err := database.DB.
			Where("date >= ? AND date <= ?", start, end).
			Order("date ASC, created_at ASC").
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load shipments")
		}

		resp := MetricsResponse{
			Period:    string(resolved),
			StartDate: start.Format(dateLayout),
			EndDate:   end.Format(dateLayout),
			Report:    Aggregate(items),
		}

		payload, err := json.Marshal(resp)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not encode metrics")
		}

		if err := store.Set(c.Context(), key, payload, metricsCacheTTL); err != nil {
			logger.Get().Warn("Could not cache dashboard metrics", zap.String("key", key), zap.Error(err))
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(payload)
	}
}
