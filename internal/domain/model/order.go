package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文APIに送る明細。価格は送らない（サーバー側が正）。
type OrderItemRequest struct {
	SareeID  int64 `json:"sareeId"`
	Quantity int64 `json:"quantity"`
}

// POST /orders/place-order のリクエストボディ。
type PlaceOrderRequest struct {
	CustomerID      int64              `json:"customerId"`
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress string             `json:"shippingAddress"`
	Notes           string             `json:"notes"`
}

// 注文APIが返す確定済み注文。ローカルでは書き換えない（表示専用）。
type PlacedOrder struct {
	ID          int64           `json:"id"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
	OrderDate   time.Time       `json:"orderDate"`
}

// 注文履歴の1件。
type OrderSummary struct {
	ID          int64           `json:"id"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
	OrderDate   time.Time       `json:"orderDate"`
	Items       []OrderItem     `json:"items"`
}

type OrderItem struct {
	SareeID   int64           `json:"sareeId"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int64           `json:"quantity"`
}
