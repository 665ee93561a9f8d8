package models

import "github.com/shopspring/decimal"

type Product struct {
	Code     string          `json:"code" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Stock    int             `json:"stock" binding:"gte=0"`
	Supplier string          `json:"supplier"`
	Price    decimal.Decimal `json:"price"`
}

// ProductUpdate carries the editable fields; the code is immutable.
type ProductUpdate struct {
	Name     string          `json:"name" binding:"required"`
	Stock    int             `json:"stock" binding:"gte=0"`
	Supplier string          `json:"supplier"`
	Price    decimal.Decimal `json:"price"`
}
