package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type InventoryResponse struct {
	Message string `json:"message"`
	Sweet   Sweet  `json:"sweet"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
