package dto

import "encoding/json"

type CreateOrderRequest struct {
	Email string          `json:"email"`
	Order json.RawMessage `json:"order"`
}

type ReplaceOrderRequest struct {
	Order json.RawMessage `json:"order"`
}

type UpsertUserRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Education string `json:"education"`
}

type UpsertUserResponse struct {
	Result any    `json:"result"`
	Token  string `json:"token"`
}

type AdminCheckResponse struct {
	Admin bool `json:"admin"`
}

type PaymentIntentRequest struct {
	Price float64 `json:"price"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type CreateReviewRequest struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type DecrementQuantityRequest struct {
	Quantity int `json:"quantity"`
}
