package dto

import "fashion-cart/internal/model"

type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type MergeCartRequest struct {
	Items []AddToCartRequest `json:"items"`
}

type CartResponse struct {
	Response
	Data []*model.CartLine `json:"data"`
}

type CartItemResponse struct {
	Response
	Data *model.CartItem `json:"data"`
}

type AddressInput struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
	IsDefault  bool   `json:"isDefault"`
}

type AddressResponse struct {
	Response
	Address *model.Address `json:"address"`
}

type AddressListResponse struct {
	Response
	Address []*model.Address `json:"address"`
}
