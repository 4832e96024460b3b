package models

import "time"

type ResourceType string

// The six dropdown lists maintained by the user. Values are never pruned
// automatically when a shipment referencing them is deleted.
const (
	ResourceConsignors         ResourceType = "consignors"
	ResourceConsignees         ResourceType = "consignees"
	ResourceConsignorLocations ResourceType = "consignor_locations"
	ResourceConsigneeLocations ResourceType = "consignee_locations"
	ResourceTruckNumbers       ResourceType = "truck_numbers"
	ResourceNatureOfGoods      ResourceType = "nature_of_goods"
)

var ResourceTypes = []ResourceType{
	ResourceConsignors,
	ResourceConsignees,
	ResourceConsignorLocations,
	ResourceConsigneeLocations,
	ResourceTruckNumbers,
	ResourceNatureOfGoods,
}

func ValidResourceType(t ResourceType) bool {
	for _, rt := range ResourceTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// ResourceEntry: one value of one dropdown list.
// (type, value) is unique, case-sensitive exact match.
type ResourceEntry struct {
	ID        uint         `gorm:"primaryKey"`
	Type      ResourceType `gorm:"size:30;not null;uniqueIndex:idx_resource_type_value"`
	Value     string       `gorm:"size:100;not null;uniqueIndex:idx_resource_type_value"`
	Position  int          `gorm:"not null"` // user-defined ordering within the list
	CreatedAt time.Time
}
