package models

import "github.com/shopspring/decimal"

type LowStockAlert struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Threshold int    `json:"low_stock_threshold"`
}

// SalesSummary aggregates the non-voided sales of one product.
type SalesSummary struct {
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	SaleCount   int             `json:"sale_count"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// Snapshot is the full content of the ledger tables.
type Snapshot struct {
	Products []Product
	Clients  []Client
	Sales    []Sale
}
