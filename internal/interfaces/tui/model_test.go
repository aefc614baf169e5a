package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caresync-hms/internal/application/access"
	"github.com/jhoicas/caresync-hms/internal/application/analytics"
	"github.com/jhoicas/caresync-hms/internal/application/billing"
	"github.com/jhoicas/caresync-hms/internal/application/console"
	"github.com/jhoicas/caresync-hms/internal/application/dto"
	"github.com/jhoicas/caresync-hms/internal/application/inventory"
	"github.com/jhoicas/caresync-hms/internal/application/navigation"
	"github.com/jhoicas/caresync-hms/internal/application/session"
	"github.com/jhoicas/caresync-hms/internal/application/usecase"
	"github.com/jhoicas/caresync-hms/internal/domain/entity"
	"github.com/jhoicas/caresync-hms/internal/infrastructure/localstorage"
	"github.com/jhoicas/caresync-hms/internal/infrastructure/memory"
	"github.com/jhoicas/caresync-hms/pkg/config"
	"github.com/jhoicas/caresync-hms/pkg/logger"
)

type stubPDF struct{}

func (stubPDF) GenerateBillPDF(context.Context, string, *dto.BillResponse) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

func newTestConsole(t *testing.T) *console.Console {
	t.Helper()
	log := logger.Nop()
	store := memory.NewEntityStore(entity.DefaultRegistry(), config.IDPolicyMonotonic, log)
	require.NoError(t, memory.Seed(store))

	policy := access.Permissive()
	sess := session.NewManager(store, localstorage.NewMemoryStorage(), log)
	bills := billing.NewBillUseCase(store, decimal.RequireFromString("0.05"), "₹", log)
	return console.New(console.Deps{
		Session:   sess,
		Navigator: navigation.NewController(sess, policy, log),
		Policy:    policy,
		Records:   usecase.NewRecordUseCase(store, log),
		Bills:     bills,
		PDF:       billing.NewPDFUseCase(bills, stubPDF{}, afero.NewMemMapFs(), "bills", "CareSync", log),
		Dashboard: analytics.NewDashboardUseCase(store),
		Stock:     inventory.NewStockUseCase(store, log),
		Log:       log,
	})
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(m Model, keys ...tea.KeyType) Model {
	for _, k := range keys {
		m = update(m, tea.KeyMsg{Type: k})
	}
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// loggedIn registra un administrador desde el formulario de alta.
func loggedIn(t *testing.T) (Model, *console.Console) {
	t.Helper()
	con := newTestConsole(t)
	m := New(con, Options{Hospital: "CareSync"})
	m = press(m, tea.KeyCtrlN)
	m = typeText(m, "Asha Rao")
	m = press(m, tea.KeyTab)
	m = typeText(m, "asha@caresync.test")
	m = press(m, tea.KeyTab)
	m = typeText(m, "admin")
	m = press(m, tea.KeyTab, tea.KeyTab)
	m = typeText(m, "secreto")
	m = press(m, tea.KeyTab)
	m = typeText(m, "secreto")
	m = press(m, tea.KeyEnter)
	require.Equal(t, navigation.Dashboard, m.page, m.err)
	return m, con
}

// ─── Ingreso ────────────────────────────────────────────────────────────────

func TestPantallaInicial_Login(t *testing.T) {
	m := New(newTestConsole(t), Options{})

	assert.Equal(t, navigation.Login, m.page)
	assert.Contains(t, m.View(), "Iniciar sesión")
}

func TestLoginFallido_MuestraError(t *testing.T) {
	m := New(newTestConsole(t), Options{})
	m = typeText(m, "nadie@caresync.test")
	m = press(m, tea.KeyTab)
	m = typeText(m, "x")
	m = press(m, tea.KeyEnter)

	assert.Equal(t, navigation.Login, m.page)
	assert.Contains(t, m.View(), "email o contraseña inválidos")
}

func TestSignup_LlevaAlPanel(t *testing.T) {
	m, _ := loggedIn(t)

	view := m.View()
	assert.Contains(t, view, "Asha Rao (admin)")
	assert.Contains(t, view, "Pacientes")
	assert.Contains(t, view, "Registro de pacientes")
}

func TestLogout(t *testing.T) {
	m, _ := loggedIn(t)
	m = press(m, tea.KeyCtrlL)

	assert.Equal(t, navigation.Login, m.page)
	assert.Contains(t, m.View(), "Iniciar sesión")
}

func TestSalir(t *testing.T) {
	m, _ := loggedIn(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

// ─── Páginas ────────────────────────────────────────────────────────────────

func TestMenu_AvanzaDePagina(t *testing.T) {
	m, _ := loggedIn(t)

	m = typeText(m, "]")
	assert.Equal(t, navigation.UserManagement, m.page)
	assert.Contains(t, m.View(), "USR001")

	m = typeText(m, "]")
	assert.Equal(t, navigation.PatientRegistration, m.page)
	assert.Contains(t, m.View(), "Rajesh Kumar")

	m = typeText(m, "[[")
	assert.Equal(t, navigation.Dashboard, m.page)
}

func TestRefrescaAlRecibirPageEntered(t *testing.T) {
	m, con := loggedIn(t)

	_, err := con.Open(navigation.Inventory)
	require.NoError(t, err)
	assert.Equal(t, navigation.Dashboard, m.page, "sin mensajes la vista no cambia")

	m = update(m, tea.WindowSizeMsg{Width: 140, Height: 40})
	assert.Equal(t, navigation.Inventory, m.page)
	view := m.View()
	assert.Contains(t, view, "Syringe")
	assert.Contains(t, view, "BAJO")
}

// ─── Búsqueda y filtros ─────────────────────────────────────────────────────

func openPatients(t *testing.T) Model {
	t.Helper()
	m, con := loggedIn(t)
	_, err := con.Open(navigation.PatientRegistration)
	require.NoError(t, err)
	return update(m, tea.WindowSizeMsg{Width: 140, Height: 40})
}

func TestBusquedaEnVivo(t *testing.T) {
	m := openPatients(t)

	m = typeText(m, "/priya")
	view := m.View()
	assert.Contains(t, view, "Priya Sharma")
	assert.NotContains(t, view, "Rajesh Kumar")

	m = press(m, tea.KeyEsc)
	assert.Contains(t, m.View(), "Rajesh Kumar")
}

func TestFiltroConTab(t *testing.T) {
	m := openPatients(t)

	m = press(m, tea.KeyTab)
	view := m.View()
	assert.Contains(t, view, "gender: male")
	assert.Contains(t, view, "Rajesh Kumar")
	assert.NotContains(t, view, "Priya Sharma")

	m = press(m, tea.KeyTab, tea.KeyTab, tea.KeyTab)
	assert.Contains(t, m.View(), "gender: todos")
}

// ─── Altas, bajas y facturas ────────────────────────────────────────────────

func TestNuevoPaciente(t *testing.T) {
	m := openPatients(t)

	m = typeText(m, "n")
	require.NotNil(t, m.form)
	assert.Contains(t, m.View(), "Nuevo registro · PAT006")

	m = typeText(m, "Kavya Iyer")
	m = press(m, tea.KeyTab)
	m = typeText(m, "34")
	m = press(m, tea.KeyTab)
	m = typeText(m, "female")
	m = press(m, tea.KeyTab)
	m = typeText(m, "9988776655")
	m = press(m, tea.KeyEnter, tea.KeyEnter, tea.KeyEnter, tea.KeyEnter)

	assert.Nil(t, m.form)
	view := m.View()
	assert.Contains(t, view, "guardado PAT006")
	assert.Contains(t, view, "Kavya Iyer")
}

func TestNuevoPaciente_ErrorDeValidacion(t *testing.T) {
	m := openPatients(t)

	m = typeText(m, "n")
	m = press(m, tea.KeyUp)
	m = press(m, tea.KeyEnter)

	require.NotNil(t, m.form, "el formulario sigue abierto")
	assert.Contains(t, m.View(), "requerido")

	m = press(m, tea.KeyEsc)
	assert.Nil(t, m.form)
}

func TestEliminarConConfirmacion(t *testing.T) {
	m := openPatients(t)

	m = typeText(m, "d")
	assert.Contains(t, m.View(), "¿Eliminar PAT001? (y/n)")

	m = typeText(m, "n")
	assert.Contains(t, m.View(), "Rajesh Kumar")

	m = typeText(m, "dy")
	view := m.View()
	assert.Contains(t, view, "eliminado PAT001")
	assert.NotContains(t, view, "Rajesh Kumar")
}

func TestFacturaYPDF(t *testing.T) {
	m, con := loggedIn(t)
	_, err := con.Open(navigation.Billing)
	require.NoError(t, err)
	m = update(m, tea.WindowSizeMsg{Width: 140, Height: 40})

	m = typeText(m, "n")
	assert.Contains(t, m.View(), "Nueva factura · BILL001")
	m = typeText(m, "PAT001")
	m = press(m, tea.KeyTab)
	m = typeText(m, "Consulta")
	m = press(m, tea.KeyTab)
	m = typeText(m, "1")
	m = press(m, tea.KeyTab)
	m = typeText(m, "500")
	for i := 0; i < 7; i++ {
		m = press(m, tea.KeyEnter)
	}

	require.Nil(t, m.form, m.err)
	assert.Contains(t, m.View(), "factura BILL001 generada · total ₹525.00")

	m = typeText(m, "p")
	assert.Contains(t, m.View(), "PDF exportado: bills/factura_BILL001.pdf")
}

// ─── Stock ──────────────────────────────────────────────────────────────────

func openPage(t *testing.T, p navigation.Page) Model {
	t.Helper()
	m, con := loggedIn(t)
	_, err := con.Open(p)
	require.NoError(t, err)
	return update(m, tea.WindowSizeMsg{Width: 140, Height: 40})
}

func TestDispensarDesdeFarmacia(t *testing.T) {
	m := openPage(t, navigation.Pharmacy)

	m = typeText(m, "-")
	require.NotNil(t, m.form)
	assert.Contains(t, m.View(), "Dispensar")
	m = typeText(m, "20")
	m = press(m, tea.KeyEnter)

	require.Nil(t, m.form, m.err)
	assert.Contains(t, m.View(), "OUT INV001 20 · saldo 130")
}

func TestDispensar_StockInsuficiente(t *testing.T) {
	m := openPage(t, navigation.Pharmacy)

	m = typeText(m, "-999")
	m = press(m, tea.KeyEnter)

	require.NotNil(t, m.form, "el formulario sigue abierto")
	assert.Contains(t, m.View(), "stock insuficiente")
}

func TestRecibirStock(t *testing.T) {
	m := openPage(t, navigation.Inventory)

	m = typeText(m, "+")
	m = typeText(m, "50")
	m = press(m, tea.KeyTab)
	m = typeText(m, "9")
	m = press(m, tea.KeyEnter)

	require.Nil(t, m.form, m.err)
	assert.Contains(t, m.View(), "IN INV001 50 · saldo 200")
}

func TestAlertasDeReposicion(t *testing.T) {
	m := openPage(t, navigation.AIAlerts)

	assert.Contains(t, m.View(), "INV004 Syringe: 50 (mínimo 100) · pedir 100")
}
