package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/caresync-hms/internal/application/dto"
	"github.com/jhoicas/caresync-hms/internal/domain"
	domainbilling "github.com/jhoicas/caresync-hms/internal/domain/billing"
	"github.com/jhoicas/caresync-hms/internal/domain/entity"
	"github.com/jhoicas/caresync-hms/internal/domain/repository"
	"github.com/jhoicas/caresync-hms/pkg/logger"
)

// BillUseCase genera y consulta facturas hospitalarias (bill + billItem).
type BillUseCase struct {
	store    repository.EntityStore
	taxRate  decimal.Decimal
	currency string
	log      *logger.Logger
}

// NewBillUseCase construye el caso de uso con la tasa de impuesto y moneda configuradas.
func NewBillUseCase(store repository.EntityStore, taxRate decimal.Decimal, currency string, log *logger.Logger) *BillUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &BillUseCase{store: store, taxRate: taxRate, currency: currency, log: log}
}

// TaxRate tasa de impuesto aplicada.
func (uc *BillUseCase) TaxRate() decimal.Decimal { return uc.taxRate }

// Preview calcula los montos sin guardar nada (vista previa del formulario).
func (uc *BillUseCase) Preview(lines []dto.BillLineRequest) (domainbilling.Totals, error) {
	parsed, err := parseLines(lines)
	if err != nil {
		return domainbilling.Totals{}, err
	}
	return domainbilling.Calculate(parsed, uc.taxRate), nil
}

// CreateBill guarda la factura y sus líneas. Requiere paciente existente (ErrNotFound)
// y al menos una línea válida (ErrValidationFailed). Si falla una escritura se
// eliminan los registros ya creados.
func (uc *BillUseCase) CreateBill(in dto.CreateBillRequest) (*dto.BillResponse, error) {
	patientID := strings.TrimSpace(in.PatientID)
	if patientID == "" {
		return nil, domain.NewValidationError(domain.FieldError{Field: "patientId", Reason: "requerido"})
	}
	patient, err := uc.store.Get(entity.TypePatient, patientID)
	if err != nil {
		return nil, fmt.Errorf("factura: paciente: %w", err)
	}
	lines, err := parseLines(in.Lines)
	if err != nil {
		return nil, err
	}
	totals := domainbilling.Calculate(lines, uc.taxRate)

	bill, err := uc.store.Create(entity.TypeBill, map[string]any{
		"patientId":   patient.ID,
		"patientName": patient.Str("name"),
		"subtotal":    totals.Subtotal,
		"tax":         totals.Tax,
		"amount":      totals.Total,
	})
	if err != nil {
		return nil, fmt.Errorf("factura: %w", err)
	}

	created := make([]entity.Record, 0, len(lines))
	for _, l := range lines {
		item, err := uc.store.Create(entity.TypeBillItem, map[string]any{
			"billId":      bill.ID,
			"description": l.Description,
			"quantity":    l.Quantity,
			"rate":        l.Rate,
			"amount":      domainbilling.LineAmount(l),
		})
		if err != nil {
			uc.rollback(bill, created)
			return nil, fmt.Errorf("factura: línea: %w", err)
		}
		created = append(created, item)
	}

	uc.log.Info().Str("bill_id", bill.ID).Str("patient_id", patient.ID).
		Str("total", totals.Total.StringFixed(2)).Msg("factura generada")
	return uc.toResponse(bill, created), nil
}

// GetBill factura con sus líneas.
func (uc *BillUseCase) GetBill(id string) (*dto.BillResponse, error) {
	bill, err := uc.store.Get(entity.TypeBill, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.store.Search(entity.TypeBillItem, func(r entity.Record) bool {
		return r.Str("billId") == id
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(bill, items), nil
}

// DeleteBill elimina la factura y sus líneas.
func (uc *BillUseCase) DeleteBill(id string) error {
	bill, err := uc.store.Get(entity.TypeBill, id)
	if err != nil {
		return err
	}
	items, err := uc.store.Search(entity.TypeBillItem, func(r entity.Record) bool {
		return r.Str("billId") == id
	})
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := uc.store.Delete(entity.TypeBillItem, item.ID); err != nil {
			return fmt.Errorf("factura: eliminar línea %s: %w", item.ID, err)
		}
	}
	if err := uc.store.Delete(entity.TypeBill, bill.ID); err != nil {
		return err
	}
	uc.log.Info().Str("bill_id", id).Msg("factura eliminada")
	return nil
}

func (uc *BillUseCase) rollback(bill entity.Record, items []entity.Record) {
	for _, item := range items {
		if err := uc.store.Delete(entity.TypeBillItem, item.ID); err != nil {
			uc.log.Error().Err(err).Str("id", item.ID).Msg("no se pudo revertir la línea de factura")
		}
	}
	if err := uc.store.Delete(entity.TypeBill, bill.ID); err != nil {
		uc.log.Error().Err(err).Str("id", bill.ID).Msg("no se pudo revertir la factura")
	}
}

// parseLines valida cada línea: descripción requerida, cantidad > 0, tarifa >= 0.
func parseLines(in []dto.BillLineRequest) ([]domainbilling.Line, error) {
	verr := domain.NewValidationError()
	out := make([]domainbilling.Line, 0, len(in))
	for i, l := range in {
		field := func(name string) string { return fmt.Sprintf("lines[%d].%s", i, name) }
		desc := strings.TrimSpace(l.Description)
		if desc == "" {
			verr.Add(field("description"), "requerido")
		}
		qty, err := decimal.NewFromString(strings.TrimSpace(l.Quantity))
		if err != nil {
			verr.Add(field("quantity"), "debe ser un número")
		} else if !qty.IsPositive() {
			verr.Add(field("quantity"), "debe ser mayor que cero")
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(l.Rate))
		if err != nil {
			verr.Add(field("rate"), "debe ser un número")
		} else if rate.IsNegative() {
			verr.Add(field("rate"), "no puede ser negativo")
		}
		out = append(out, domainbilling.Line{Description: desc, Quantity: qty, Rate: rate})
	}
	if len(in) == 0 {
		verr.Add("lines", "se requiere al menos una línea")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *BillUseCase) toResponse(bill entity.Record, items []entity.Record) *dto.BillResponse {
	resp := &dto.BillResponse{
		ID:          bill.ID,
		PatientID:   bill.Str("patientId"),
		PatientName: bill.Str("patientName"),
		Date:        bill.Str("date"),
		Lines:       make([]dto.BillLineResponse, 0, len(items)),
		Currency:    uc.currency,
	}
	resp.Subtotal, _ = bill.Decimal("subtotal")
	resp.Tax, _ = bill.Decimal("tax")
	resp.Total, _ = bill.Decimal("amount")
	for _, it := range items {
		line := dto.BillLineResponse{ID: it.ID, Description: it.Str("description")}
		line.Quantity, _ = it.Decimal("quantity")
		line.Rate, _ = it.Decimal("rate")
		line.Amount, _ = it.Decimal("amount")
		resp.Lines = append(resp.Lines, line)
	}
	return resp
}
