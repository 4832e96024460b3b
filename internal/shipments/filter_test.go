package shipments

import (
	"testing"
	"time"

	"freightdesk-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleShipments() []models.Shipment {
	return []models.Shipment{
		{ID: 1, Date: day("2024-05-01"), ConsignmentNumber: "CN-1001", TruckNumber: "TRK1", Consignor: "Acme Mills", ConsignorLocation: "Nagpur", Consignee: "Bharat Traders", ConsigneeLocation: "Pune", NatureOfGoods: "Wheat"},
		{ID: 2, Date: day("2024-05-03"), ConsignmentNumber: "CN-1002", TruckNumber: "TRK2", Consignor: "Acme Mills", ConsignorLocation: "Nagpur", Consignee: "City Stores", ConsigneeLocation: "Mumbai", NatureOfGoods: "Rice"},
		{ID: 3, Date: day("2024-05-10"), ConsignmentNumber: "CN-1003", TruckNumber: "TRK1", Consignor: "Deccan Agro", ConsignorLocation: "Akola", Consignee: "Bharat Traders", ConsigneeLocation: "Pune", NatureOfGoods: "Cotton"},
	}
}

func TestFilter_EmptyCriteriaIsPassThrough(t *testing.T) {
	in := sampleShipments()
	out := Filter(in, FilterCriteria{})

	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i].ID, out[i].ID, "order must be preserved")
	}
}

func TestFilter_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	in := sampleShipments()

	out := Filter(in, FilterCriteria{Search: "trk1"})
	require.Len(t, out, 2)
	assert.Equal(t, uint(1), out[0].ID)
	assert.Equal(t, uint(3), out[1].ID)

	out = Filter(in, FilterCriteria{Search: "cn-1002"})
	require.Len(t, out, 1)
	assert.Equal(t, uint(2), out[0].ID)

	// consignor is a searched field too
	out = Filter(in, FilterCriteria{Search: "deccan"})
	require.Len(t, out, 1)
	assert.Equal(t, uint(3), out[0].ID)

	out = Filter(in, FilterCriteria{Search: "no-such-thing"})
	assert.Empty(t, out)
}

func TestFilter_FacetsAreExactMatchAndANDed(t *testing.T) {
	in := sampleShipments()

	out := Filter(in, FilterCriteria{Consignor: "Acme Mills"})
	require.Len(t, out, 2)

	out = Filter(in, FilterCriteria{Consignor: "Acme Mills", ConsigneeLocation: "Pune"})
	require.Len(t, out, 1)
	assert.Equal(t, uint(1), out[0].ID)

	// facets are exact, not substring
	out = Filter(in, FilterCriteria{Consignor: "Acme"})
	assert.Empty(t, out)
}

func TestFilter_SearchAndFacetsCombine(t *testing.T) {
	in := sampleShipments()

	out := Filter(in, FilterCriteria{Search: "bharat", TruckNumber: "TRK1"})
	require.Len(t, out, 2)
	assert.Equal(t, uint(1), out[0].ID)
	assert.Equal(t, uint(3), out[1].ID)
}

func TestFilter_DateRangeIsInclusive(t *testing.T) {
	in := sampleShipments()
	from := day("2024-05-03")
	to := day("2024-05-10")

	out := Filter(in, FilterCriteria{From: &from, To: &to})
	require.Len(t, out, 2)
	assert.Equal(t, uint(2), out[0].ID)
	assert.Equal(t, uint(3), out[1].ID)

	// single-day range keeps boundary records
	out = Filter(in, FilterCriteria{From: &from, To: &from})
	require.Len(t, out, 1)
	assert.Equal(t, uint(2), out[0].ID)
}
