// Package pricing holds the cart arithmetic shown on the cart panel: per-item
// discounted prices, cart totals and rupee formatting.
package pricing

import (
	"math"
	"strconv"
	"strings"
)

// Line is one cart entry as far as pricing is concerned
type Line struct {
	Price    float64
	Discount float64
	Quantity int
}

// Summary aggregates a cart
type Summary struct {
	TotalQty              int     `json:"total_qty"`
	TotalPrice            float64 `json:"total_price"`
	NotDiscountTotalPrice float64 `json:"not_discount_total_price"`
	Savings               float64 `json:"savings"`
}

// PriceWithDiscount applies a percentage discount, rounding the discount amount up
// to the next whole rupee.
func PriceWithDiscount(price, discount float64) float64 {
	if discount <= 0 {
		return price
	}
	off := math.Ceil(price * discount / 100)
	if off >= price {
		return 0
	}
	return price - off
}

// Totals sums quantities and prices across the cart
func Totals(lines []Line) Summary {
	var s Summary
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		qty := float64(l.Quantity)
		s.TotalQty += l.Quantity
		s.TotalPrice += PriceWithDiscount(l.Price, l.Discount) * qty
		s.NotDiscountTotalPrice += l.Price * qty
	}
	s.Savings = s.NotDiscountTotalPrice - s.TotalPrice
	return s
}

// FormatRupees renders an amount the way en-IN currency formatting does,
// e.g. 123456.5 -> ₹1,23,456.50
func FormatRupees(amount float64) string {
	fixed := strconv.FormatFloat(math.Abs(amount), 'f', 2, 64)
	// the sign follows the rounded value so -0.001 prints as ₹0.00
	neg := amount < 0 && fixed != "0.00"
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("₹")
	b.WriteString(groupIndian(whole))
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// groupIndian inserts separators after the last three digits, then every two
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}
