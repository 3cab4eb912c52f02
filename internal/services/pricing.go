package service

import (
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PriceLookup returns the current catalog price of a product. ok is false when
// the product no longer exists.
type PriceLookup func(productID primitive.ObjectID) (price float64, ok bool)

// ComputeTotal sums price × quantity over lines that still resolve to a
// product, rounded to cents.
func ComputeTotal(lines []models.CartItem, lookup PriceLookup) float64 {

	total := decimal.Zero

	for _, line := range lines {
		price, ok := lookup(line.ProductID)
		if !ok {
			continue
		}

		total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	return total.Round(2).InexactFloat64()
}

// toMinorUnits converts a major-unit amount to the gateway's integer minor
// units, rounding half away from zero.
func toMinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
}

func productPrices(products map[primitive.ObjectID]*models.Product) PriceLookup {
	return func(id primitive.ObjectID) (float64, bool) {
		p, ok := products[id]
		if !ok {
			return 0, false
		}

		return p.Price, true
	}
}
