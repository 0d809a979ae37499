package types

import "github.com/google/uuid"

// CartLine is one rendered row of the cart panel
type CartLine struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit"`
	Image        string    `json:"image"`
	Price        float64   `json:"price"`
	Discount     float64   `json:"discount"`
	UnitPrice    float64   `json:"unit_price"`
	DisplayPrice string    `json:"display_price"`
	Quantity     int       `json:"quantity"`
	LineTotal    float64   `json:"line_total"`
}

// BillDetails is the summary block under the cart lines
type BillDetails struct {
	ItemsTotalOriginal        float64 `json:"items_total_original"`
	DisplayItemsTotalOriginal string  `json:"display_items_total_original"`
	ItemsTotal                float64 `json:"items_total"`
	DisplayItemsTotal         string  `json:"display_items_total"`
	TotalQty                  int     `json:"total_qty"`
	DeliveryCharge            float64 `json:"delivery_charge"`
	DeliveryDisplay           string  `json:"delivery_display"`
	GrandTotal                float64 `json:"grand_total"`
	DisplayGrandTotal         string  `json:"display_grand_total"`
}

// CartPanel is everything the storefront needs to draw the cart drawer
type CartPanel struct {
	Items               []CartLine   `json:"items"`
	Empty               bool         `json:"empty"`
	TotalSavings        float64      `json:"total_savings"`
	DisplayTotalSavings string       `json:"display_total_savings"`
	Bill                *BillDetails `json:"bill,omitempty"`
	CheckoutPath        string       `json:"checkout_path"`
	ShopPath            string       `json:"shop_path"`
}
