package models

import (
	"time"

	"github.com/google/uuid"
)

// Item represents a physical product that can be packed into a shipment.
// Dimensions are in inches, weight in ounces. Items are company-scoped and
// treated as an immutable snapshot for the duration of a packing run.
type Item struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID string    `json:"companyId" gorm:"type:varchar(255);not null;index:idx_items_company"`
	SKU       string    `json:"sku" gorm:"type:varchar(100);not null;index:idx_items_sku"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Length    float64   `json:"length" gorm:"type:decimal(10,2);not null"`
	Width     float64   `json:"width" gorm:"type:decimal(10,2);not null"`
	Height    float64   `json:"height" gorm:"type:decimal(10,2);not null"`
	Weight    float64   `json:"weight" gorm:"type:decimal(10,2);not null"`
	IsActive  bool      `json:"isActive" gorm:"default:true"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Item
func (Item) TableName() string {
	return "items"
}

// Volume returns the item volume in cubic inches.
func (i Item) Volume() float64 {
	return i.Length * i.Width * i.Height
}

// Box represents a shipping container available to a company. Dimensions are
// internal, MaxWeight is the weight capacity in ounces and Cost is the price
// of the packaging itself.
type Box struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID string    `json:"companyId" gorm:"type:varchar(255);not null;index:idx_boxes_company"`
	SKU       string    `json:"sku" gorm:"type:varchar(100)"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Length    float64   `json:"length" gorm:"type:decimal(10,2);not null"`
	Width     float64   `json:"width" gorm:"type:decimal(10,2);not null"`
	Height    float64   `json:"height" gorm:"type:decimal(10,2);not null"`
	MaxWeight float64   `json:"maxWeight" gorm:"type:decimal(10,2);not null"`
	Cost      float64   `json:"cost" gorm:"type:decimal(10,2);default:0"`
	IsActive  bool      `json:"isActive" gorm:"default:true"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Box
func (Box) TableName() string {
	return "boxes"
}

// Volume returns the internal box volume in cubic inches.
func (b Box) Volume() float64 {
	return b.Length * b.Width * b.Height
}

// BoxTemplate is a global (non-company-scoped) box definition that companies
// can instantiate into their own catalog. Seeded at startup.
type BoxTemplate struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU         string    `json:"sku" gorm:"type:varchar(100);uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text"`
	Length      float64   `json:"length" gorm:"type:decimal(10,2);not null"`
	Width       float64   `json:"width" gorm:"type:decimal(10,2);not null"`
	Height      float64   `json:"height" gorm:"type:decimal(10,2);not null"`
	MaxWeight   float64   `json:"maxWeight" gorm:"type:decimal(10,2);not null"`
	Cost        float64   `json:"cost" gorm:"type:decimal(10,2);default:0"`
	IsActive    bool      `json:"isActive" gorm:"default:true"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for BoxTemplate
func (BoxTemplate) TableName() string {
	return "box_templates"
}

// ItemQuantity pairs an item with the quantity ordered. Quantity must be >= 1.
type ItemQuantity struct {
	Item     Item `json:"item"`
	Quantity int  `json:"quantity"`
}

// PackedItem is an item placed into a shipping group with the quantity of
// units that group holds.
type PackedItem struct {
	Item     Item `json:"item"`
	Quantity int  `json:"quantity"`
}

// ShippingGroup pairs a chosen box with the items packed into it.
type ShippingGroup struct {
	Box   Box          `json:"box"`
	Items []PackedItem `json:"items"`
}

// ItemWeight returns the summed weight of the items in the group, excluding
// the box itself.
func (g ShippingGroup) ItemWeight() float64 {
	total := 0.0
	for _, pi := range g.Items {
		total += pi.Item.Weight * float64(pi.Quantity)
	}
	return total
}

// ItemVolume returns the summed volume of the items in the group.
func (g ShippingGroup) ItemVolume() float64 {
	total := 0.0
	for _, pi := range g.Items {
		total += pi.Item.Volume() * float64(pi.Quantity)
	}
	return total
}

// PackingResult is the outcome of a cartonization run. Every item+quantity
// from the request appears in exactly one group; groups are ordered by when
// their box was opened.
type PackingResult struct {
	Groups []ShippingGroup `json:"groups"`
}

// TotalBoxCost returns the summed packaging cost across groups.
func (r PackingResult) TotalBoxCost() float64 {
	total := 0.0
	for _, g := range r.Groups {
		total += g.Box.Cost
	}
	return total
}
