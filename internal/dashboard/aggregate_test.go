package dashboard

import (
	"testing"

	"freightdesk-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ship(date, truck, consignor string, weight, freight, deliveryCharge float64) models.Shipment {
	return models.Shipment{
		Date:           at(date),
		TruckNumber:    truck,
		Consignor:      consignor,
		Weight:         weight,
		Freight:        freight,
		DeliveryCharge: deliveryCharge,
	}
}

func TestAggregate_EmptyCollection(t *testing.T) {
	report := Aggregate(nil)

	assert.Equal(t, 0, report.Summary.TotalTrips)
	assert.Equal(t, 0.0, report.Summary.TotalRevenue)
	assert.Equal(t, 0.0, report.Summary.AverageWeight, "no division by zero")
	assert.Equal(t, 0, report.Summary.UniqueTrucks)
	assert.Equal(t, 0, report.Summary.UniqueConsignors)
	assert.Empty(t, report.TruckBreakdown)
	assert.Empty(t, report.ConsignorBreakdown)
	assert.Empty(t, report.DailyBreakdown)
}

func TestAggregate_TruckBreakdownScenario(t *testing.T) {
	// TRK1: 2 trips, freight 100+50; TRK2: 1 trip, freight 200; no delivery charges
	items := []models.Shipment{
		ship("2024-05-01", "TRK1", "Acme", 100, 100, 0),
		ship("2024-05-02", "TRK2", "Acme", 100, 200, 0),
		ship("2024-05-03", "TRK1", "Acme", 100, 50, 0),
	}

	report := Aggregate(items)

	assert.Equal(t, 3, report.Summary.TotalTrips)
	assert.InDelta(t, 500.0, report.Summary.TotalRevenue, 0.001)
	assert.Equal(t, 2, report.Summary.UniqueTrucks)

	require.Len(t, report.TruckBreakdown, 2)
	assert.Equal(t, TruckRow{Truck: "TRK1", Trips: 2, Revenue: 150}, report.TruckBreakdown[0])
	assert.Equal(t, TruckRow{Truck: "TRK2", Trips: 1, Revenue: 200}, report.TruckBreakdown[1])
}

func TestAggregate_SummaryKPIs(t *testing.T) {
	items := []models.Shipment{
		ship("2024-05-01", "TRK1", "Acme", 1000, 70, 20),
		ship("2024-05-01", "TRK2", "Deccan", 500, 25, 0),
		ship("2024-05-02", "TRK1", "Acme", 1500, 90, 10),
	}

	report := Aggregate(items)

	assert.Equal(t, 3, report.Summary.TotalTrips)
	assert.InDelta(t, 70+20+25+90+10, report.Summary.TotalRevenue, 0.001)
	assert.InDelta(t, 3000, report.Summary.TotalWeight, 0.001)
	assert.InDelta(t, 1000, report.Summary.AverageWeight, 0.001)
	assert.Equal(t, 2, report.Summary.UniqueTrucks)
	assert.Equal(t, 2, report.Summary.UniqueConsignors)
}

func TestAggregate_ConsignorBreakdownSortedByRevenue(t *testing.T) {
	items := []models.Shipment{
		ship("2024-05-01", "TRK1", "Small Co", 100, 10, 0),
		ship("2024-05-01", "TRK1", "Big Co", 100, 500, 0),
		ship("2024-05-02", "TRK1", "Small Co", 100, 20, 0),
	}

	report := Aggregate(items)

	require.Len(t, report.ConsignorBreakdown, 2)
	assert.Equal(t, "Big Co", report.ConsignorBreakdown[0].Consignor)
	assert.InDelta(t, 500, report.ConsignorBreakdown[0].Revenue, 0.001)
	assert.Equal(t, "Small Co", report.ConsignorBreakdown[1].Consignor)
	assert.Equal(t, 2, report.ConsignorBreakdown[1].Trips)
}

func TestAggregate_EmptyConsignorGroupsAsUnknownButCountsDistinct(t *testing.T) {
	items := []models.Shipment{
		ship("2024-05-01", "TRK1", "", 100, 50, 0),
		ship("2024-05-01", "TRK1", "Acme", 100, 10, 0),
		ship("2024-05-02", "TRK2", "  ", 100, 30, 0),
	}

	report := Aggregate(items)

	// "" and "  " are distinct raw values alongside "Acme"
	assert.Equal(t, 3, report.Summary.UniqueConsignors)

	require.Len(t, report.ConsignorBreakdown, 2)
	assert.Equal(t, UnknownConsignor, report.ConsignorBreakdown[0].Consignor)
	assert.InDelta(t, 80, report.ConsignorBreakdown[0].Revenue, 0.001)
	assert.Equal(t, 2, report.ConsignorBreakdown[0].Trips)
}

func TestAggregate_DailyBreakdownChronological(t *testing.T) {
	// insertion order is not chronological
	items := []models.Shipment{
		ship("2024-05-10", "TRK1", "Acme", 100, 10, 0),
		ship("2024-05-01", "TRK1", "Acme", 100, 20, 5),
		ship("2024-05-10", "TRK2", "Acme", 100, 30, 0),
		ship("2024-05-05", "TRK1", "Acme", 100, 40, 0),
	}

	report := Aggregate(items)

	require.Len(t, report.DailyBreakdown, 3)
	assert.Equal(t, DailyRow{Date: "2024-05-01", Revenue: 25, Trips: 1}, report.DailyBreakdown[0])
	assert.Equal(t, DailyRow{Date: "2024-05-05", Revenue: 40, Trips: 1}, report.DailyBreakdown[1])
	assert.Equal(t, DailyRow{Date: "2024-05-10", Revenue: 40, Trips: 2}, report.DailyBreakdown[2])
}

func TestAggregate_BreakdownTotalsMatchSummary(t *testing.T) {
	items := []models.Shipment{
		ship("2024-05-01", "TRK1", "Acme", 100, 70, 20),
		ship("2024-05-02", "TRK2", "", 200, 25, 0),
		ship("2024-05-02", "TRK1", "Deccan", 300, 90, 10),
		ship("2024-05-07", "TRK3", "Acme", 400, 15, 5),
	}

	report := Aggregate(items)

	sum := func(rows []TruckRow) (float64, int) {
		var r float64
		var n int
		for _, row := range rows {
			r += row.Revenue
			n += row.Trips
		}
		return r, n
	}

	truckRevenue, truckTrips := sum(report.TruckBreakdown)
	assert.InDelta(t, report.Summary.TotalRevenue, truckRevenue, 0.001)
	assert.Equal(t, report.Summary.TotalTrips, truckTrips)

	var consignorRevenue float64
	var consignorTrips int
	for _, row := range report.ConsignorBreakdown {
		consignorRevenue += row.Revenue
		consignorTrips += row.Trips
	}
	assert.InDelta(t, report.Summary.TotalRevenue, consignorRevenue, 0.001)
	assert.Equal(t, report.Summary.TotalTrips, consignorTrips)

	var dailyRevenue float64
	var dailyTrips int
	for _, row := range report.DailyBreakdown {
		dailyRevenue += row.Revenue
		dailyTrips += row.Trips
	}
	assert.InDelta(t, report.Summary.TotalRevenue, dailyRevenue, 0.001)
	assert.Equal(t, report.Summary.TotalTrips, dailyTrips)
}

func TestAggregate_TruckTiesKeepEncounterOrder(t *testing.T) {
	items := []models.Shipment{
		ship("2024-05-01", "TRK9", "Acme", 100, 10, 0),
		ship("2024-05-01", "TRK2", "Acme", 100, 10, 0),
		ship("2024-05-01", "TRK5", "Acme", 100, 10, 0),
	}

	report := Aggregate(items)

	require.Len(t, report.TruckBreakdown, 3)
	assert.Equal(t, "TRK9", report.TruckBreakdown[0].Truck)
	assert.Equal(t, "TRK2", report.TruckBreakdown[1].Truck)
	assert.Equal(t, "TRK5", report.TruckBreakdown[2].Truck)
}
