package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EquipmentStatus string

const (
	EquipmentStatusAvailable   EquipmentStatus = "available"
	EquipmentStatusUnavailable EquipmentStatus = "unavailable"
)

// StockStatus is a derived presentation value; it is never stored.
type StockStatus string

const (
	StockStatusAvailable  StockStatus = "available"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// DefaultMinStockThreshold applies when a listing carries no threshold.
const DefaultMinStockThreshold int32 = 5

type Equipment struct {
	ID          int32           `json:"id"`
	VendorEmail string          `json:"vendor_email"`
	VendorPhone string          `json:"vendor_phone,omitempty"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	PriceUnit   string          `json:"price_unit"`
	Location    string          `json:"location"`
	ImageURL    string          `json:"image_url,omitempty"`

	Status            EquipmentStatus `json:"status"`
	StockQuantity     int32           `json:"stock_quantity"`
	MinStockThreshold int32           `json:"min_stock_threshold"`

	Rating       float64   `json:"rating"`
	ReviewsCount int32     `json:"reviews_count"`
	CreatedOn    time.Time `json:"created_on"`

	StockStatus StockStatus `json:"stock_status,omitempty"`
}

// ComputeStockStatus classifies the current stock against the listing's
// threshold. A zero threshold falls back to the default.
func (e *Equipment) ComputeStockStatus() StockStatus {
	threshold := e.MinStockThreshold
	if threshold <= 0 {
		threshold = DefaultMinStockThreshold
	}
	switch {
	case e.StockQuantity <= 0:
		return StockStatusOutOfStock
	case e.StockQuantity <= threshold:
		return StockStatusLowStock
	default:
		return StockStatusAvailable
	}
}
