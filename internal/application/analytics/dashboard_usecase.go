// Package analytics contiene los indicadores del panel principal y la ocupación de salas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/caresync-hms/internal/application/dto"
	"github.com/jhoicas/caresync-hms/internal/domain/entity"
	"github.com/jhoicas/caresync-hms/internal/domain/repository"
	"github.com/jhoicas/caresync-hms/internal/domain/ward"
)

// DashboardUseCase calcula los KPIs del panel a partir del almacén de entidades.
// Solo lectura: no modifica ninguna colección.
type DashboardUseCase struct {
	store repository.EntityStore
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(store repository.EntityStore) *DashboardUseCase {
	return &DashboardUseCase{store: store, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cada indicador se calcula en su propia goroutine; el primer error cancela el resto.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	today := now.Format(entity.DateLayout)

	var (
		patients, todayAppts, admissions int
		lowStock, staff, pendingLab      int
		revenue                          decimal.Decimal
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		patients, err = uc.count(ctx, entity.TypePatient, entity.All)
		return err
	})
	g.Go(func() (err error) {
		todayAppts, err = uc.count(ctx, entity.TypeAppointment, func(r entity.Record) bool {
			return r.Str("date") == today
		})
		return err
	})
	g.Go(func() (err error) {
		admissions, err = uc.count(ctx, entity.TypeAdmission, entity.All)
		return err
	})
	g.Go(func() (err error) {
		lowStock, err = uc.count(ctx, entity.TypeInventoryItem, entity.IsLowStock)
		return err
	})
	g.Go(func() (err error) {
		staff, err = uc.count(ctx, entity.TypeStaff, entity.All)
		return err
	})
	g.Go(func() (err error) {
		pendingLab, err = uc.count(ctx, entity.TypeLabOrder, func(r entity.Record) bool {
			return r.Str("status") == "pending"
		})
		return err
	})
	g.Go(func() (err error) {
		revenue, err = uc.revenue(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := ward.TotalBeds()
	return &dto.DashboardSummaryDTO{
		TotalPatients:     patients,
		TodayAppointments: todayAppts,
		ActiveAdmissions:  admissions,
		TotalBeds:         total,
		BedOccupancy:      occupancy(admissions, total),
		Revenue:           revenue.Round(2),
		LowStockItems:     lowStock,
		StaffCount:        staff,
		PendingLabOrders:  pendingLab,
		DateLabel:         dayLabel(now),
	}, nil
}

// LowStockItems ítems de inventario con quantity < minStock.
func (uc *DashboardUseCase) LowStockItems() ([]entity.Record, error) {
	return uc.store.Search(entity.TypeInventoryItem, entity.IsLowStock)
}

// WardOccupancy ocupación de cada sala según las hospitalizaciones registradas.
func (uc *DashboardUseCase) WardOccupancy() ([]dto.WardOccupancyDTO, error) {
	admissions, err := uc.store.List(entity.TypeAdmission)
	if err != nil {
		return nil, fmt.Errorf("dashboard: hospitalizaciones: %w", err)
	}
	taken := make(map[string]map[string]bool)
	for _, a := range admissions {
		w := a.Str("wardType")
		if taken[w] == nil {
			taken[w] = make(map[string]bool)
		}
		taken[w][a.Str("bedNumber")] = true
	}

	out := make([]dto.WardOccupancyDTO, 0, len(ward.Types()))
	for _, w := range ward.Types() {
		beds := ward.Beds(w)
		free := ward.Free(w, taken[w])
		out = append(out, dto.WardOccupancyDTO{
			WardType: w,
			Total:    len(beds),
			Occupied: len(beds) - len(free),
			Free:     free,
		})
	}
	return out, nil
}

func (uc *DashboardUseCase) count(ctx context.Context, t entity.EntityType, pred entity.Predicate) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	recs, err := uc.store.Search(t, pred)
	if err != nil {
		return 0, fmt.Errorf("dashboard: %s: %w", t, err)
	}
	return len(recs), nil
}

func (uc *DashboardUseCase) revenue(ctx context.Context) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	bills, err := uc.store.List(entity.TypeBill)
	if err != nil {
		return decimal.Zero, fmt.Errorf("dashboard: facturas: %w", err)
	}
	sum := decimal.Zero
	for _, b := range bills {
		if amount, ok := b.Decimal("amount"); ok {
			sum = sum.Add(amount)
		}
	}
	return sum, nil
}

// occupancy porcentaje de camas ocupadas, sin decimales.
func occupancy(occupied, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(occupied)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(0)
}

// dayLabel etiqueta legible del día, ej: "20 de Enero 2024".
func dayLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%d de %s %d", t.Day(), months[t.Month()-1], t.Year())
}
