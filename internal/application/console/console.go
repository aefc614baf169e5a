// Package console agrupa los comandos de la consola hospitalaria. Cada comando
// devuelve un valor o un error; la interfaz de terminal solo presenta resultados.
package console

import (
	"context"
	"fmt"

	"github.com/jhoicas/caresync-hms/internal/application/access"
	"github.com/jhoicas/caresync-hms/internal/application/analytics"
	"github.com/jhoicas/caresync-hms/internal/application/billing"
	"github.com/jhoicas/caresync-hms/internal/application/dto"
	"github.com/jhoicas/caresync-hms/internal/application/inventory"
	"github.com/jhoicas/caresync-hms/internal/application/navigation"
	"github.com/jhoicas/caresync-hms/internal/application/session"
	"github.com/jhoicas/caresync-hms/internal/application/usecase"
	"github.com/jhoicas/caresync-hms/internal/domain"
	"github.com/jhoicas/caresync-hms/internal/domain/entity"
	"github.com/jhoicas/caresync-hms/pkg/logger"
)

// Deps colaboradores de la consola.
type Deps struct {
	Session   *session.Manager
	Navigator *navigation.Controller
	Policy    *access.RoleAccessPolicy
	Records   *usecase.RecordUseCase
	Bills     *billing.BillUseCase
	PDF       *billing.PDFUseCase
	Dashboard *analytics.DashboardUseCase
	Stock     *inventory.StockUseCase
	Log       *logger.Logger
}

// Console manejadores de comandos de la aplicación.
type Console struct {
	session   *session.Manager
	nav       *navigation.Controller
	policy    *access.RoleAccessPolicy
	records   *usecase.RecordUseCase
	bills     *billing.BillUseCase
	pdf       *billing.PDFUseCase
	dashboard *analytics.DashboardUseCase
	stock     *inventory.StockUseCase
	log       *logger.Logger
}

// PageView contenido de una página de registros.
type PageView struct {
	Info    navigation.PageInfo
	Schema  entity.Schema
	Records []entity.Record
	NextID  string
}

// New construye la consola.
func New(d Deps) *Console {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	policy := d.Policy
	if policy == nil {
		policy = access.Permissive()
	}
	return &Console{
		session:   d.Session,
		nav:       d.Navigator,
		policy:    policy,
		records:   d.Records,
		bills:     d.Bills,
		pdf:       d.PDF,
		dashboard: d.Dashboard,
		stock:     d.Stock,
		log:       log.Named("console"),
	}
}

// ── Sesión y navegación ──────────────────────────────────────────────────────

// Login inicia sesión y lleva al panel principal.
func (c *Console) Login(in dto.LoginRequest) (navigation.Page, error) {
	if _, err := c.session.Login(in); err != nil {
		return c.nav.Current(), err
	}
	return c.nav.Navigate(navigation.Dashboard)
}

// Signup registra al usuario, abre su sesión y lleva al panel principal.
func (c *Console) Signup(in dto.SignupRequest) (navigation.Page, error) {
	if _, err := c.session.Signup(in); err != nil {
		return c.nav.Current(), err
	}
	return c.nav.Navigate(navigation.Dashboard)
}

// Logout cierra la sesión y vuelve a la pantalla de ingreso.
// Si falla el borrado persistido la sesión igual queda cerrada y se informa el error.
func (c *Console) Logout() (navigation.Page, error) {
	logoutErr := c.session.Logout()
	page, err := c.nav.Navigate(navigation.Login)
	if logoutErr != nil {
		return page, logoutErr
	}
	return page, err
}

// Open navega a la página pedida aplicando la guarda de sesión y la política de roles.
func (c *Console) Open(p navigation.Page) (navigation.Page, error) {
	return c.nav.Navigate(p)
}

// Page página actual.
func (c *Console) Page() navigation.Page { return c.nav.Current() }

// User sesión activa; false sin sesión.
func (c *Console) User() (*dto.SessionResponse, bool) { return c.session.Current() }

// Subscribe registra un oyente de cambios de página.
func (c *Console) Subscribe(l navigation.Listener) func() { return c.nav.Subscribe(l) }

// Menu páginas visibles para el usuario actual; vacío sin sesión.
func (c *Console) Menu() []navigation.PageInfo {
	role, ok := c.session.CurrentRole()
	if !ok {
		return nil
	}
	out := make([]navigation.PageInfo, 0)
	for _, info := range c.policy.PermittedPages(role) {
		if info.Page == navigation.Login || info.Page == navigation.Signup {
			continue
		}
		out = append(out, info)
	}
	return out
}

// ── Registros ────────────────────────────────────────────────────────────────

// Records registros de una página filtrados por búsqueda.
func (c *Console) Records(p navigation.Page, req dto.SearchRequest) (*PageView, error) {
	info, schema, err := c.recordPage(p)
	if err != nil {
		return nil, err
	}
	recs, err := c.records.Search(info.EntityType, req)
	if err != nil {
		return nil, err
	}
	next, err := c.records.NextID(info.EntityType)
	if err != nil {
		return nil, err
	}
	return &PageView{Info: info, Schema: schema, Records: recs, NextID: next}, nil
}

// Save crea (id vacío) o reemplaza un registro de la página.
func (c *Console) Save(p navigation.Page, id string, fields map[string]any) (entity.Record, error) {
	info, _, err := c.recordPage(p)
	if err != nil {
		return entity.Record{}, err
	}
	// Las facturas solo nacen de CreateBill, que calcula líneas, impuesto y total.
	if info.EntityType == entity.TypeBill {
		return entity.Record{}, domain.NewValidationError(domain.FieldError{
			Field: "lines", Reason: "las facturas se generan desde sus líneas",
		})
	}
	if id == "" {
		return c.records.Create(info.EntityType, fields)
	}
	return c.records.Update(info.EntityType, id, fields)
}

// Delete elimina un registro de la página. En facturación también borra las líneas.
func (c *Console) Delete(p navigation.Page, id string) error {
	info, _, err := c.recordPage(p)
	if err != nil {
		return err
	}
	if info.EntityType == entity.TypeBill {
		return c.bills.DeleteBill(id)
	}
	return c.records.Delete(info.EntityType, id)
}

// AvailableBeds camas libres de una sala.
func (c *Console) AvailableBeds(wardType string) ([]string, error) {
	if err := c.authorize(navigation.IPDAdmission); err != nil {
		return nil, err
	}
	return c.records.AvailableBeds(wardType)
}

// ── Facturación ──────────────────────────────────────────────────────────────

// CreateBill genera una factura.
func (c *Console) CreateBill(in dto.CreateBillRequest) (*dto.BillResponse, error) {
	if err := c.authorize(navigation.Billing); err != nil {
		return nil, err
	}
	return c.bills.CreateBill(in)
}

// Bill factura con sus líneas.
func (c *Console) Bill(id string) (*dto.BillResponse, error) {
	if err := c.authorize(navigation.Billing); err != nil {
		return nil, err
	}
	return c.bills.GetBill(id)
}

// ExportBill escribe el PDF de la factura y devuelve la ruta.
func (c *Console) ExportBill(ctx context.Context, id string) (string, error) {
	if err := c.authorize(navigation.Billing); err != nil {
		return "", err
	}
	return c.pdf.ExportBillPDF(ctx, id)
}

// ── Panel ────────────────────────────────────────────────────────────────────

// Dashboard KPIs del panel principal.
func (c *Console) Dashboard(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	if err := c.authorize(navigation.Dashboard); err != nil {
		return nil, err
	}
	return c.dashboard.GetSummary(ctx)
}

// Wards ocupación por sala.
func (c *Console) Wards() ([]dto.WardOccupancyDTO, error) {
	if err := c.authorize(navigation.BedOptimization); err != nil {
		return nil, err
	}
	return c.dashboard.WardOccupancy()
}

// LowStock ítems bajo stock mínimo.
func (c *Console) LowStock() ([]entity.Record, error) {
	if err := c.authorize(navigation.Inventory); err != nil {
		return nil, err
	}
	return c.dashboard.LowStockItems()
}

// ── Stock ────────────────────────────────────────────────────────────────────

// Receive registra una entrada de stock desde la página de farmacia o inventario.
func (c *Console) Receive(p navigation.Page, in dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	if err := c.stockPage(p); err != nil {
		return nil, err
	}
	return c.stock.Receive(in)
}

// Dispense registra una salida de stock desde la página de farmacia o inventario.
func (c *Console) Dispense(p navigation.Page, in dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	if err := c.stockPage(p); err != nil {
		return nil, err
	}
	return c.stock.Dispense(in)
}

// Replenishment lista de pedido de los ítems bajo mínimo.
func (c *Console) Replenishment() ([]dto.ReplenishmentSuggestionDTO, error) {
	if err := c.authorize(navigation.Inventory); err != nil {
		return nil, err
	}
	return c.stock.Replenishment()
}

func (c *Console) stockPage(p navigation.Page) error {
	info, ok := navigation.Lookup(p)
	if !ok || info.EntityType != entity.TypeInventoryItem {
		return fmt.Errorf("página %q sin movimientos de stock: %w", p, domain.ErrNotFound)
	}
	return c.authorize(p)
}

// authorize exige sesión y permiso del rol sobre la página.
func (c *Console) authorize(p navigation.Page) error {
	role, ok := c.session.CurrentRole()
	if !ok {
		return fmt.Errorf("sin sesión: %w", domain.ErrForbidden)
	}
	if !c.policy.IsPermitted(role, p) {
		return fmt.Errorf("rol %s en %s: %w", role, p, domain.ErrForbidden)
	}
	return nil
}

func (c *Console) recordPage(p navigation.Page) (navigation.PageInfo, entity.Schema, error) {
	info, ok := navigation.Lookup(p)
	if !ok || info.EntityType == "" {
		return navigation.PageInfo{}, entity.Schema{}, fmt.Errorf("página %q sin registros: %w", p, domain.ErrNotFound)
	}
	if err := c.authorize(p); err != nil {
		return navigation.PageInfo{}, entity.Schema{}, err
	}
	schema, err := c.records.Schema(info.EntityType)
	if err != nil {
		return navigation.PageInfo{}, entity.Schema{}, err
	}
	return info, schema, nil
}
