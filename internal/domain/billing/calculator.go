package billing

import "github.com/shopspring/decimal"

// Line línea de factura hospitalaria (servicio o insumo).
type Line struct {
	Description string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
}

// Totals montos de una factura, redondeados a 2 decimales.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// LineAmount Importe = Cantidad * Tarifa (2 decimales).
func LineAmount(l Line) decimal.Decimal {
	return l.Quantity.Mul(l.Rate).Round(2)
}

// Calculate Subtotal = Σ importes; Impuesto = Subtotal * taxRate; Total = Subtotal + Impuesto.
func Calculate(lines []Line, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineAmount(l))
	}
	tax := subtotal.Mul(taxRate).Round(2)
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal.Add(tax)}
}
