package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Allowed tax tiers, percent
var TaxTiers = []int{0, 1, 5, 10}

type Invoice struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Tax       int
	Discount  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalPrice is quantity times unit price
func (i Invoice) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TaxAmount is the tax tier percentage of the line total
func (i Invoice) TaxAmount() decimal.Decimal {
	if i.Tax == 0 {
		return decimal.Zero
	}
	return i.TotalPrice().Mul(decimal.NewFromInt(int64(i.Tax))).Div(decimal.NewFromInt(100))
}

// DiscountAmount is the discount percentage of the line total
func (i Invoice) DiscountAmount() decimal.Decimal {
	if i.Discount == 0 {
		return decimal.Zero
	}
	return i.TotalPrice().Mul(decimal.NewFromInt(int64(i.Discount))).Div(decimal.NewFromInt(100))
}
