package models

import "time"

// RateFixed is the sentinel stored in Shipment.Rate when the freight was
// entered by hand instead of being derived from weight and rate.
const RateFixed = "Fix"

// Shipment: one consignment entry as written on the lorry receipt.
type Shipment struct {
	ID                uint      `gorm:"primaryKey"`
	Date              time.Time `gorm:"index;not null"` // consignment date, day precision, UTC
	ConsignmentNumber string    `gorm:"size:100;not null"`
	TruckNumber       string    `gorm:"size:50;index;not null"`
	Consignor         string    `gorm:"size:100;index"`
	ConsignorLocation string    `gorm:"size:100"`
	Consignee         string    `gorm:"size:100"`
	ConsigneeLocation string    `gorm:"size:100"`
	Weight            float64   `gorm:"not null"` // kg
	Rate              string    `gorm:"size:20;not null"` // per-1000-kg price, or "Fix"
	DeliveryCharge    float64   `gorm:"not null"`
	Freight           float64   `gorm:"not null"` // derived unless rate is "Fix"
	NumberOfArticles  string    `gorm:"size:50"` // free text, e.g. "12" or "Loose"
	NatureOfGoods     string    `gorm:"size:100"`
	Notes             string    `gorm:"size:255"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FixedRate reports whether the shipment freight is hand-entered.
func (s *Shipment) FixedRate() bool {
	return s.Rate == RateFixed
}
