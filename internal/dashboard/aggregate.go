package dashboard

import (
	"sort"
	"strings"

	"freightdesk-backend/internal/models"
)

// UnknownConsignor labels shipments with an empty consignor in the
// per-consignor breakdown. The distinct-consignor KPI counts raw values, so
// an empty consignor still counts as one distinct value there.
const UnknownConsignor = "Unknown"

type Summary struct {
	TotalTrips       int     `json:"total_trips"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalWeight      float64 `json:"total_weight"`
	AverageWeight    float64 `json:"average_weight"`
	UniqueTrucks     int     `json:"unique_trucks"`
	UniqueConsignors int     `json:"unique_consignors"`
}

type TruckRow struct {
	Truck   string  `json:"truck"`
	Trips   int     `json:"trips"`
	Revenue float64 `json:"revenue"`
}

type ConsignorRow struct {
	Consignor string  `json:"consignor"`
	Revenue   float64 `json:"revenue"`
	Trips     int     `json:"trips"`
}

type DailyRow struct {
	Date    string  `json:"date"` // YYYY-MM-DD, UTC
	Revenue float64 `json:"revenue"`
	Trips   int     `json:"trips"`
}

// Report is the full aggregation output for one (date-filtered) collection.
type Report struct {
	Summary            Summary        `json:"summary"`
	TruckBreakdown     []TruckRow     `json:"truck_breakdown"`
	ConsignorBreakdown []ConsignorRow `json:"consignor_breakdown"`
	DailyBreakdown     []DailyRow     `json:"daily_breakdown"`
}

// revenue of a single shipment as reported everywhere: freight plus the
// delivery charge.
func revenue(s models.Shipment) float64 {
	return s.Freight + s.DeliveryCharge
}

// group is the accumulator shared by all three breakdowns.
type group struct {
	Key     string
	Trips   int
	Revenue float64
}

// groupBy buckets shipments by an extracted key, accumulating trip count and
// revenue per bucket. Buckets come back in first-encounter order, which keeps
// downstream stable sorts deterministic.
func groupBy(items []models.Shipment, key func(models.Shipment) string) []group {
	index := make(map[string]int, len(items))
	groups := make([]group, 0, len(items))

	for _, s := range items {
		k := key(s)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group{Key: k})
		}
		groups[i].Trips++
		groups[i].Revenue += revenue(s)
	}
	return groups
}

// Aggregate computes the summary KPIs and the three breakdowns over an
// already date-filtered collection. An empty input produces a zero report.
func Aggregate(items []models.Shipment) Report {
	report := Report{
		TruckBreakdown:     []TruckRow{},
		ConsignorBreakdown: []ConsignorRow{},
		DailyBreakdown:     []DailyRow{},
	}

	trucks := make(map[string]struct{})
	consignors := make(map[string]struct{})
	for _, s := range items {
		report.Summary.TotalRevenue += revenue(s)
		report.Summary.TotalWeight += s.Weight
		trucks[s.TruckNumber] = struct{}{}
		consignors[s.Consignor] = struct{}{}
	}
	report.Summary.TotalTrips = len(items)
	report.Summary.UniqueTrucks = len(trucks)
	report.Summary.UniqueConsignors = len(consignors)
	if len(items) == 0 {
		return report
	}
	report.Summary.AverageWeight = report.Summary.TotalWeight / float64(len(items))

	// trips per truck, busiest first
	byTruck := groupBy(items, func(s models.Shipment) string { return s.TruckNumber })
	sort.SliceStable(byTruck, func(i, j int) bool { return byTruck[i].Trips > byTruck[j].Trips })
	for _, g := range byTruck {
		report.TruckBreakdown = append(report.TruckBreakdown, TruckRow{Truck: g.Key, Trips: g.Trips, Revenue: g.Revenue})
	}

	// revenue per consignor, highest first
	byConsignor := groupBy(items, func(s models.Shipment) string {
		if strings.TrimSpace(s.Consignor) == "" {
			return UnknownConsignor
		}
		return s.Consignor
	})
	sort.SliceStable(byConsignor, func(i, j int) bool { return byConsignor[i].Revenue > byConsignor[j].Revenue })
	for _, g := range byConsignor {
		report.ConsignorBreakdown = append(report.ConsignorBreakdown, ConsignorRow{Consignor: g.Key, Revenue: g.Revenue, Trips: g.Trips})
	}

	// revenue per calendar day, chronological
	byDay := groupBy(items, func(s models.Shipment) string { return s.Date.UTC().Format(dateLayout) })
	sort.SliceStable(byDay, func(i, j int) bool { return byDay[i].Key < byDay[j].Key })
	for _, g := range byDay {
		report.DailyBreakdown = append(report.DailyBreakdown, DailyRow{Date: g.Key, Revenue: g.Revenue, Trips: g.Trips})
	}

	return report
}
