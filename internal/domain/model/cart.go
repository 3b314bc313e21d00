package model

import "github.com/shopspring/decimal"

// カートの明細。saree_idごとに1行（同一商品は数量加算）。
// UnitPrice / StockQuantity は追加時点のスナップショット。
type CartLine struct {
	SareeID       int64           `json:"saree_id"`
	Title         string          `json:"title"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int64           `json:"quantity"`
	StockQuantity int64           `json:"stock_quantity"`
	Fabric        string          `json:"fabric"`
	Color         string          `json:"color"`
	ImageURL      string          `json:"image_url"`
}

// 未ログインで追加しようとした商品。ログイン完了までの一時置き場。
// 同時に持てるのは1件だけ。
type PendingCartItem struct {
	Saree    Saree `json:"saree"`
	Quantity int64 `json:"quantity"`
}

// Saree から明細を作る（数量は呼び出し側が決める）。
func NewCartLine(s Saree, qty int64) CartLine {
	return CartLine{
		SareeID:       s.ID,
		Title:         s.Title,
		UnitPrice:     s.SellingPrice,
		Quantity:      qty,
		StockQuantity: s.StockQuantity,
		Fabric:        s.Fabric,
		Color:         s.Color,
		ImageURL:      s.ImageURL,
	}
}
