package models

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateSweetRequest struct {
	Name            string   `json:"name" binding:"required"`
	Category        string   `json:"category" binding:"required"`
	Price           *float64 `json:"price" binding:"required"`
	QuantityInStock *int     `json:"quantityInStock" binding:"omitempty,min=0,max=2147483647"`
}

type UpdateSweetRequest struct {
	Name            *string  `json:"name"`
	Category        *string  `json:"category"`
	Price           *float64 `json:"price"`
	QuantityInStock *int     `json:"quantityInStock" binding:"omitempty,min=0,max=2147483647"`
}

func (r UpdateSweetRequest) Patch() SweetPatch {
	return SweetPatch{
		Name:            r.Name,
		Category:        r.Category,
		Price:           r.Price,
		QuantityInStock: r.QuantityInStock,
	}
}

type RestockRequest struct {
	Quantity *int `json:"quantity" binding:"omitempty,min=1,max=2147483647"`
}
