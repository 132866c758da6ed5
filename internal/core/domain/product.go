package domain

// Product is the catalog record the stock oracle returns for a product id.
type Product struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Stock is the number of units currently available for a product.
type Stock struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}
