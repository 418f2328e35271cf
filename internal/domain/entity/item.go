package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un producto o servicio facturable.
type Item struct {
	ID          string
	CompanyID   string
	Code        string // único por empresa
	Name        string
	Price       decimal.Decimal // precio de venta por defecto
	UnitMeasure string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
