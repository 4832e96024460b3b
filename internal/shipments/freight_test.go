package shipments

import (
	"testing"

	"freightdesk-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFreight(t *testing.T) {
	t.Run("StandardFormula", func(t *testing.T) {
		// (1000/1000)*50 + 20
		assert.InDelta(t, 70.00, ComputeFreight(1000, "50", 20), 0.001)
	})

	t.Run("ZeroWeightKeepsDeliveryCharge", func(t *testing.T) {
		assert.InDelta(t, 20.00, ComputeFreight(0, "50", 20), 0.001)
	})

	t.Run("NegativeInputClampsToZero", func(t *testing.T) {
		assert.Equal(t, 0.0, ComputeFreight(-2000, "50", 20))
	})

	t.Run("UnparseableRateCountsAsZero", func(t *testing.T) {
		assert.InDelta(t, 15.0, ComputeFreight(500, "Fix", 15), 0.001)
		assert.InDelta(t, 15.0, ComputeFreight(500, "", 15), 0.001)
	})

	t.Run("FractionalWeight", func(t *testing.T) {
		// (250/1000)*100 + 0
		assert.InDelta(t, 25.0, ComputeFreight(250, "100", 0), 0.001)
	})
}

func TestApplyRate(t *testing.T) {
	t.Run("FixedModeStoresSentinel", func(t *testing.T) {
		s := models.Shipment{Weight: 1000, DeliveryCharge: 20}
		require.NoError(t, applyRate(&s, RateTypeFixed, 50, 300))

		assert.Equal(t, models.RateFixed, s.Rate)
		assert.True(t, s.FixedRate())
		// fixed mode takes the freight as entered, rate input is ignored
		assert.Equal(t, 300.0, s.Freight)
	})

	t.Run("CalculatedModeDerivesFreight", func(t *testing.T) {
		s := models.Shipment{Weight: 1000, DeliveryCharge: 20}
		require.NoError(t, applyRate(&s, RateTypeCalculated, 50, 999))

		assert.Equal(t, "50", s.Rate)
		assert.False(t, s.FixedRate())
		assert.InDelta(t, 70.0, s.Freight, 0.001)
	})

	t.Run("EmptyModeDefaultsToCalculated", func(t *testing.T) {
		s := models.Shipment{Weight: 500, DeliveryCharge: 0}
		require.NoError(t, applyRate(&s, "", 100, 0))

		assert.Equal(t, "100", s.Rate)
		assert.InDelta(t, 50.0, s.Freight, 0.001)
	})

	t.Run("UnknownModeRejected", func(t *testing.T) {
		s := models.Shipment{}
		assert.Error(t, applyRate(&s, "manual", 50, 0))
	})
}
