package model

import "github.com/shopspring/decimal"

// カタログAPIが返す商品（サリー）。
// 価格は浮動小数で受けると誤差が出るのでdecimalで受ける。
type Saree struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Fabric        string          `json:"fabric"`
	Color         string          `json:"color"`
	Description   string          `json:"description"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	StockQuantity int64           `json:"stockQuantity"`
	ImageURL      string          `json:"imageUrl"`
}
