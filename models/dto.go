package models

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	City     string `json:"city" binding:"omitempty"`
	State    string `json:"state" binding:"omitempty"`
	Address  string `json:"address" binding:"omitempty"`
	Phone    string `json:"phone" binding:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AddItemRequest struct {
	CartCode  string `json:"cart_code" binding:"required"`
	ProductID int    `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequest struct {
	ItemID   int  `json:"item_id" binding:"required"`
	Quantity *int `json:"quantity" binding:"required"`
}

type InitiatePaymentRequest struct {
	CartCode string `json:"cart_code" binding:"required"`
}

// PaymentCallbackRequest carries the provider's redirect/webhook fields.
// They arrive as query parameters on the GET redirect and as a JSON body
// on the POST webhook.
type PaymentCallbackRequest struct {
	Status        string `json:"status" form:"status"`
	TxRef         string `json:"tx_ref" form:"tx_ref"`
	TransactionID string `json:"transaction_id" form:"transaction_id"`
}

type ImportProductRequest struct {
	Title              string  `json:"title" binding:"required"`
	Description        string  `json:"description"`
	Thumbnail          string  `json:"thumbnail"`
	Price              string  `json:"price" binding:"required"`
	Category           string  `json:"category" binding:"required"`
	Brand              string  `json:"brand"`
	Stock              int     `json:"stock"`
	Rating             float64 `json:"rating"`
	DiscountPercentage float64 `json:"discountPercentage"`
}

type ImportProductsRequest struct {
	Products []ImportProductRequest `json:"products" binding:"required"`
}

type ImportResult struct {
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
	Error  string `json:"errors,omitempty"`
}
