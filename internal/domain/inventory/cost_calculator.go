package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost costo promedio ponderado tras una entrada de stock.
// nuevo = ((stock * costo) + (entrada * costoEntrada)) / (stock + entrada)
func WeightedAverageCost(stock, cost, incoming, incomingCost decimal.Decimal) decimal.Decimal {
	total := stock.Add(incoming)
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return stock.Mul(cost).Add(incoming.Mul(incomingCost)).Div(total)
}

// SuggestedOrder cantidad a pedir para llevar el stock a 1.5 veces el mínimo.
// Cero si el stock ya alcanza ese nivel.
func SuggestedOrder(quantity, minStock int) int {
	ideal := decimal.NewFromInt(int64(minStock)).Mul(decimal.NewFromFloat(1.5)).Ceil()
	n := int(ideal.IntPart()) - quantity
	if n < 0 {
		return 0
	}
	return n
}
