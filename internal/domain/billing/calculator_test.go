package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculate(t *testing.T) {
	tests := []struct {
		name    string
		lines   []Line
		rate    string
		wantSub string
		wantTax string
		wantTot string
	}{
		{
			name:    "sin líneas",
			rate:    "0.05",
			wantSub: "0", wantTax: "0", wantTot: "0",
		},
		{
			name: "consulta y medicamentos al 5%",
			lines: []Line{
				{Description: "Consulta", Quantity: d("1"), Rate: d("500")},
				{Description: "Paracetamol", Quantity: d("10"), Rate: d("5")},
			},
			rate:    "0.05",
			wantSub: "550", wantTax: "27.5", wantTot: "577.5",
		},
		{
			name:    "redondeo a dos decimales",
			lines:   []Line{{Description: "Gasa", Quantity: d("3"), Rate: d("0.333")}},
			rate:    "0.05",
			wantSub: "1", wantTax: "0.05", wantTot: "1.05",
		},
		{
			name:    "sin impuesto",
			lines:   []Line{{Description: "Cama", Quantity: d("2.5"), Rate: d("1200")}},
			rate:    "0",
			wantSub: "3000", wantTax: "0", wantTot: "3000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.lines, d(tt.rate))
			assert.True(t, d(tt.wantSub).Equal(got.Subtotal), "subtotal %s", got.Subtotal)
			assert.True(t, d(tt.wantTax).Equal(got.Tax), "tax %s", got.Tax)
			assert.True(t, d(tt.wantTot).Equal(got.Total), "total %s", got.Total)
		})
	}
}

func TestLineAmount(t *testing.T) {
	assert.Equal(t, "12.35", LineAmount(Line{Quantity: d("1"), Rate: d("12.345")}).StringFixed(2))
}
