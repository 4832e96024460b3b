package shipments

import (
	"strings"
	"time"

	"freightdesk-backend/internal/models"
)

// FilterCriteria is the explicit filter selection passed into the engine.
// Zero values impose no constraint.
type FilterCriteria struct {
	Search string // case-insensitive substring over the searched fields

	// Exact-match facet filters, ANDed together.
	Consignor         string
	Consignee         string
	ConsignorLocation string
	ConsigneeLocation string
	TruckNumber       string
	NatureOfGoods     string

	// Optional date range, inclusive on both ends.
	From *time.Time
	To   *time.Time
}

// Filter returns the subsequence of shipments matching all criteria,
// preserving the relative order of the input.
func Filter(items []models.Shipment, fc FilterCriteria) []models.Shipment {
	out := make([]models.Shipment, 0, len(items))
	term := strings.ToLower(strings.TrimSpace(fc.Search))

	for _, s := range items {
		if !matchesSearch(s, term) {
			continue
		}
		if !matchesFacets(s, fc) {
			continue
		}
		if fc.From != nil && s.Date.Before(*fc.From) {
			continue
		}
		if fc.To != nil && s.Date.After(*fc.To) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matchesSearch(s models.Shipment, term string) bool {
	if term == "" {
		return true
	}
	for _, field := range []string{
		s.ConsignmentNumber,
		s.TruckNumber,
		s.Consignee,
		s.Consignor,
		s.ConsigneeLocation,
		s.ConsignorLocation,
		s.NatureOfGoods,
	} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchesFacets(s models.Shipment, fc FilterCriteria) bool {
	return (fc.Consignor == "" || s.Consignor == fc.Consignor) &&
		(fc.Consignee == "" || s.Consignee == fc.Consignee) &&
		(fc.ConsignorLocation == "" || s.ConsignorLocation == fc.ConsignorLocation) &&
		(fc.ConsigneeLocation == "" || s.ConsigneeLocation == fc.ConsigneeLocation) &&
		(fc.TruckNumber == "" || s.TruckNumber == fc.TruckNumber) &&
		(fc.NatureOfGoods == "" || s.NatureOfGoods == fc.NatureOfGoods)
}
