package models

import "github.com/shopspring/decimal"

// Sale is one ledger row. Date is a calendar day formatted YYYY-MM-DD.
type Sale struct {
	ID          int             `json:"id"`
	Date        string          `json:"date"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	ClientCode  string          `json:"client_code"`
	ClientName  string          `json:"client_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	Voided      bool            `json:"voided"`
}

type SaleInput struct {
	ProductCode string           `json:"product_code" binding:"required"`
	ClientCode  string           `json:"client_code" binding:"required"`
	Quantity    int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price"` // defaults to the product price
	Date        string           `json:"date"`       // defaults to today
}

// SaleUpdate replaces the quantity; empty or nil fields keep their value.
type SaleUpdate struct {
	Quantity   int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice  *decimal.Decimal `json:"unit_price"`
	Date       string           `json:"date"`
	ClientCode string           `json:"client_code"`
}

const (
	SaleStatusActive = "active"
	SaleStatusVoided = "voided"
)

// SaleFilter narrows a sales listing. Client and Product match names by
// substring; Status is empty (all), "active" or "voided".
type SaleFilter struct {
	From    string `form:"from"`
	To      string `form:"to"`
	Client  string `form:"client"`
	Product string `form:"product"`
	Status  string `form:"status"`
}
