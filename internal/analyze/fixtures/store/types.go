// Package store holds record types used by the loader tests.
package store

import (
	"time"

	tz "time"
)

// Product represents an individual item available for sale.
//
//fieldaccessor:generate
type Product struct {
	ID          int64     `json:"id"`
	SKU         string    `access:"sku"`
	Name        string    `access:"name,omitempty" json:"name"`
	Description string    `access:"-"`
	PriceCents  int64     `access:"price_cents"`
	CreatedAt   time.Time `access:"created_at"`
	Tags        []string  `access:"tags"`
}

// Describe reports the product name.
func (p *Product) Describe() string { return p.SKU + " " + p.Name }

func (p Product) Price() int64 { return p.PriceCents }

// Customer embeds its audit fields.
//
//fieldaccessor:generate
type Customer struct {
	Audit
	Email    string
	Address  *string
	IsActive bool
}

// Audit carries timestamps.
type Audit struct {
	CreatedAt, UpdatedAt tz.Time
}

// Order is not marked and is only loaded when asked for by name.
type Order struct {
	ID         int64
	CustomerID int64
	Status     OrderStatus
	Items      map[string]int
	Audit      `access:"-"`
	_          struct{}
}

type (
	// Shape is a variant.
	//
	//fieldaccessor:generate
	Shape interface {
		Area() float64
	}

	// Empty has nothing to access.
	//
	//fieldaccessor:generate
	Empty struct{}

	// Box is generic.
	//
	//fieldaccessor:generate
	Box[T any] struct {
		Value T
	}
)

// OrderStatus is a custom type for type-safe status handling.
//
//fieldaccessor:generate
type OrderStatus string

const (
	StatusPending OrderStatus = "PENDING"
	StatusPaid    OrderStatus = "PAID"
)

var defaultStatus = StatusPending
