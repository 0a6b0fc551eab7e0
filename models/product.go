package models

// Product represents the business domain model
type Product struct {
	ID    int64
	Name  string
	Price float64
}

// ProductResponse represents output for product data
type ProductResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (p Product) Response() ProductResponse {
	return ProductResponse{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
	}
}
