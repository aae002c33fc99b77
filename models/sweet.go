package models

import "time"

// MaxStock is the largest quantity the quantity_in_stock column can hold.
const MaxStock = 1<<31 - 1

type Sweet struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Price           float64   `json:"price"`
	QuantityInStock int       `json:"quantityInStock"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SweetPatch carries the fields of a partial update. Nil fields are left untouched.
type SweetPatch struct {
	Name            *string
	Category        *string
	Price           *float64
	QuantityInStock *int
}

func (p SweetPatch) Apply(s *Sweet) {
	if p.Name != nil && *p.Name != "" {
		s.Name = *p.Name
	}
	if p.Category != nil && *p.Category != "" {
		s.Category = *p.Category
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.QuantityInStock != nil {
		s.QuantityInStock = *p.QuantityInStock
	}
}

type SweetFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

func (f SweetFilter) IsEmpty() bool {
	return f.Name == "" && f.Category == "" && f.MinPrice == nil && f.MaxPrice == nil
}
