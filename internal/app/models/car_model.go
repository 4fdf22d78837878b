package models

import (
	"github.com/shopspring/decimal"
)

type CarStatus string

const (
	CarStatusAvailable CarStatus = "AVAILABLE"
	CarStatusSold      CarStatus = "SOLD"
	CarStatusDeleted   CarStatus = "DELETED"
)

// Car is a catalog item. DELETED cars are hidden from customer-facing
// queries but kept for referential integrity with historical orders.
type Car struct {
	ID          int64            `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string           `json:"name" gorm:"type:varchar(100);not null"`
	Brand       string           `json:"brand" gorm:"type:varchar(50);not null"`
	Price       *decimal.Decimal `json:"price,omitempty" gorm:"type:decimal(18,2)"`
	ModelYear   *int16           `json:"model_year,omitempty"`
	Description string           `json:"description" gorm:"type:text"`
	ImageRef    string           `json:"image_ref" gorm:"type:varchar(255)"`
	Status      CarStatus        `json:"status" gorm:"type:varchar(20);not null;default:'AVAILABLE'"`
}

func (Car) TableName() string {
	return "cars"
}

// CarSearchFilter carries the optional catalog listing predicates. Blank or
// nil fields are not included in the generated query.
type CarSearchFilter struct {
	Search   string
	Brand    string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Year     *int16
	Page     int
	PageSize int
}

type CarCreateRequest struct {
	Name        string           `json:"name" validate:"required,max=100"`
	Brand       string           `json:"brand" validate:"required,max=50"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	ModelYear   *int16           `json:"model_year,omitempty" validate:"omitempty,min=1900,max=2100"`
	Description string           `json:"description" validate:"max=4000"`
	ImageRef    string           `json:"image_ref" validate:"max=255"`
	Status      CarStatus        `json:"status" validate:"omitempty,oneof=AVAILABLE SOLD DELETED"`
}

type CarUpdateRequest struct {
	Name        string           `json:"name" validate:"required,max=100"`
	Brand       string           `json:"brand" validate:"required,max=50"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	ModelYear   *int16           `json:"model_year,omitempty" validate:"omitempty,min=1900,max=2100"`
	Description string           `json:"description" validate:"max=4000"`
	ImageRef    string           `json:"image_ref" validate:"max=255"`
	Status      CarStatus        `json:"status" validate:"required,oneof=AVAILABLE SOLD DELETED"`
}

type CarStatusRequest struct {
	Status CarStatus `json:"status" validate:"required,oneof=AVAILABLE SOLD DELETED"`
}

// CarDetail is the public detail view with sibling suggestions.
type CarDetail struct {
	Car     *Car  `json:"car"`
	Related []Car `json:"related"`
}
