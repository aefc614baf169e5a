package inventory

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/caresync-hms/internal/application/dto"
	"github.com/jhoicas/caresync-hms/internal/domain"
	"github.com/jhoicas/caresync-hms/internal/domain/entity"
	"github.com/jhoicas/caresync-hms/internal/domain/inventory"
	"github.com/jhoicas/caresync-hms/internal/domain/repository"
	"github.com/jhoicas/caresync-hms/pkg/logger"
)

// StockUseCase registra entradas y salidas de artículos y mantiene el saldo y el costo promedio.
// Cada movimiento queda guardado como stockMovement.
type StockUseCase struct {
	// mu serializa lectura y escritura del saldo de un artículo.
	mu    sync.Mutex
	store repository.EntityStore
	log   *logger.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(store repository.EntityStore, log *logger.Logger) *StockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &StockUseCase{store: store, log: log}
}

// Receive suma la cantidad al saldo y recalcula el precio con el costo promedio ponderado.
// Sin costo unitario la entrada se valora al precio vigente.
func (uc *StockUseCase) Receive(in dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	qty, verr := parseQuantity(in)
	cost, hasCost := decimal.Zero, strings.TrimSpace(in.UnitCost) != ""
	if hasCost {
		c, err := decimal.NewFromString(strings.TrimSpace(in.UnitCost))
		switch {
		case err != nil:
			verr.Add("unitCost", "debe ser un número")
		case c.IsNegative():
			verr.Add("unitCost", "no puede ser negativo")
		default:
			cost = c
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	item, err := uc.store.Get(entity.TypeInventoryItem, in.ItemID)
	if err != nil {
		return nil, err
	}
	stock, _ := item.Int("quantity")
	price, _ := item.Decimal("price")
	if !hasCost {
		cost = price
	}
	newPrice := inventory.WeightedAverageCost(
		decimal.NewFromInt(int64(stock)), price, decimal.NewFromInt(int64(qty)), cost,
	).Round(2)

	return uc.apply(item, entity.MovementIn, qty, stock+qty, newPrice, cost)
}

// Dispense descuenta la cantidad del saldo; falla con ErrInsufficientStock si no alcanza.
func (uc *StockUseCase) Dispense(in dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	qty, verr := parseQuantity(in)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	item, err := uc.store.Get(entity.TypeInventoryItem, in.ItemID)
	if err != nil {
		return nil, err
	}
	stock, _ := item.Int("quantity")
	if qty > stock {
		return nil, fmt.Errorf("%w: %s tiene %d %s", domain.ErrInsufficientStock, item.ID, stock, item.Str("unit"))
	}
	price, _ := item.Decimal("price")
	return uc.apply(item, entity.MovementOut, qty, stock-qty, price, price)
}

func (uc *StockUseCase) apply(item entity.Record, kind string, qty, balance int, price, unitCost decimal.Decimal) (*dto.StockMovementResponse, error) {
	fields := item.Clone().Fields
	fields["quantity"] = balance
	fields["price"] = price
	updated, err := uc.store.Update(entity.TypeInventoryItem, item.ID, fields)
	if err != nil {
		return nil, err
	}
	mov, err := uc.store.Create(entity.TypeStockMovement, map[string]any{
		"itemId":   item.ID,
		"type":     kind,
		"quantity": qty,
		"unitCost": unitCost,
		"balance":  balance,
	})
	if err != nil {
		if _, rerr := uc.store.Update(entity.TypeInventoryItem, item.ID, item.Clone().Fields); rerr != nil {
			uc.log.Error().Err(rerr).Str("item_id", item.ID).Msg("no se pudo revertir el saldo")
		}
		return nil, err
	}

	low := entity.IsLowStock(updated)
	ev := uc.log.Info()
	if low {
		ev = uc.log.Warn()
	}
	ev.Str("item_id", item.ID).Str("type", kind).Int("quantity", qty).Int("balance", balance).
		Bool("low_stock", low).Msg("movimiento de stock registrado")

	return &dto.StockMovementResponse{
		MovementID: mov.ID,
		ItemID:     item.ID,
		Type:       kind,
		Quantity:   qty,
		Balance:    balance,
		Price:      price,
		LowStock:   low,
	}, nil
}

// Movements movimientos de un artículo en orden de registro.
func (uc *StockUseCase) Movements(itemID string) ([]entity.Record, error) {
	return uc.store.Search(entity.TypeStockMovement, func(r entity.Record) bool {
		return r.Str("itemId") == itemID
	})
}

// Replenishment lista de pedido para los artículos bajo mínimo.
// Prioridad 1 es el mayor déficit relativo; empates por id.
func (uc *StockUseCase) Replenishment() ([]dto.ReplenishmentSuggestionDTO, error) {
	low, err := uc.store.Search(entity.TypeInventoryItem, entity.IsLowStock)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, r := range low {
		qty, _ := r.Int("quantity")
		minStock, _ := r.Int("minStock")
		price, _ := r.Decimal("price")
		suggested := inventory.SuggestedOrder(qty, minStock)
		out = append(out, dto.ReplenishmentSuggestionDTO{
			ItemID:        r.ID,
			Name:          r.Str("name"),
			Category:      r.Str("category"),
			Quantity:      qty,
			MinStock:      minStock,
			SuggestedQty:  suggested,
			UnitPrice:     price,
			EstimatedCost: price.Mul(decimal.NewFromInt(int64(suggested))).Round(2),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := deficit(out[i]), deficit(out[j])
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return out[i].ItemID < out[j].ItemID
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}

// deficit fracción del mínimo que falta: (mínimo - saldo) / mínimo.
func deficit(s dto.ReplenishmentSuggestionDTO) decimal.Decimal {
	if s.MinStock <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.MinStock - s.Quantity)).Div(decimal.NewFromInt(int64(s.MinStock)))
}

func parseQuantity(in dto.StockMovementRequest) (int, *domain.ValidationError) {
	verr := domain.NewValidationError()
	if strings.TrimSpace(in.ItemID) == "" {
		verr.Add("itemId", "requerido")
	}
	qty, err := strconv.Atoi(strings.TrimSpace(in.Quantity))
	switch {
	case err != nil:
		verr.Add("quantity", "debe ser un número entero")
	case qty <= 0:
		verr.Add("quantity", "debe ser mayor que cero")
	}
	return qty, verr
}
