package dto

import "github.com/shopspring/decimal"

// StockMovementRequest entrada (IN) o salida (OUT) de un artículo de farmacia o inventario.
// Quantity y UnitCost llegan como texto desde el formulario; UnitCost solo aplica a entradas.
type StockMovementRequest struct {
	ItemID   string `json:"itemId"`
	Quantity string `json:"quantity"`
	UnitCost string `json:"unitCost,omitempty"`
}

// StockMovementResponse resultado del movimiento con el saldo resultante.
type StockMovementResponse struct {
	MovementID string          `json:"movementId"`
	ItemID     string          `json:"itemId"`
	Type       string          `json:"type"`
	Quantity   int             `json:"quantity"`
	Balance    int             `json:"balance"`
	Price      decimal.Decimal `json:"price"`
	LowStock   bool            `json:"lowStock"`
}

// ReplenishmentSuggestionDTO sugerencia de pedido para un artículo bajo el stock mínimo.
type ReplenishmentSuggestionDTO struct {
	ItemID        string          `json:"itemId"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Quantity      int             `json:"quantity"`
	MinStock      int             `json:"minStock"`
	SuggestedQty  int             `json:"suggestedQty"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	EstimatedCost decimal.Decimal `json:"estimatedCost"`
	Priority      int             `json:"priority"`
}
