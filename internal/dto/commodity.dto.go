package dto

type CommodityPriceDTO struct {
	Commodity string  `json:"commodity"`
	Currency  string  `json:"currency"`
	Price     float64 `json:"price"`
	Unit      string  `json:"unit"`
	Source    string  `json:"source"`
}
