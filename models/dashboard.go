package models

type DashboardSummary struct {
	ProductCount  int          `json:"product_count"`
	ClientCount   int          `json:"client_count"`
	LowStockCount int          `json:"low_stock_count"`
	SalesToday    int          `json:"sales_today"`
	TopProducts   []TopProduct `json:"top_products"`
}

type TopProduct struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
