package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhoicas/caresync-hms/internal/application/console"
	"github.com/jhoicas/caresync-hms/internal/application/dto"
	"github.com/jhoicas/caresync-hms/internal/application/navigation"
	"github.com/jhoicas/caresync-hms/internal/domain/entity"
)

// eventQueue recibe los PageEntered del controlador. Se vacía al final de cada Update.
type eventQueue struct {
	mu     sync.Mutex
	events []navigation.PageEntered
}

func (q *eventQueue) push(ev navigation.PageEntered) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

func (q *eventQueue) drain() []navigation.PageEntered {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}

// Options parámetros de la consola de terminal.
type Options struct {
	Hospital string
	Context  context.Context
}

// Model modelo bubbletea de la consola hospitalaria.
type Model struct {
	con      *console.Console
	events   *eventQueue
	styles   Styles
	ctx      context.Context
	hospital string

	width, height int

	page    navigation.Page
	menu    []navigation.PageInfo
	menuIdx int

	auth *form
	form *form

	view         *console.PageView
	table        table.Model
	search       textinput.Model
	searching    bool
	filterField  string
	filterValues []string
	filterIdx    int // 0 = sin filtro

	summary  *dto.DashboardSummaryDTO
	wards    []dto.WardOccupancyDTO
	restock  []dto.ReplenishmentSuggestionDTO

	confirmDelete string
	status        string
	err           string
}

// New construye el modelo y lo suscribe a los cambios de página.
func New(con *console.Console, opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "buscar"
	search.Width = 30

	tbl := table.New(table.WithFocused(true), table.WithHeight(12))
	tblStyles := table.DefaultStyles()
	tblStyles.Selected = tblStyles.Selected.Foreground(colorForeground).Background(colorPrimary)
	tbl.SetStyles(tblStyles)

	m := Model{
		con:      con,
		events:   &eventQueue{},
		styles:   DefaultStyles(),
		ctx:      ctx,
		hospital: opts.Hospital,
		width:    100,
		height:   30,
		auth:     loginForm(),
		table:    tbl,
		search:   search,
	}
	con.Subscribe(m.events.push)
	m.refresh()
	return m
}

// Init no programa comandos iniciales.
func (m Model) Init() tea.Cmd { return nil }

// Update procesa un mensaje y luego atiende los cambios de página pendientes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(m.height-14, 5))
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		cmd = m.handleKey(msg)
	}
	m.syncPage()
	return m, cmd
}

// syncPage refresca la vista si el controlador notificó un cambio de página.
func (m *Model) syncPage() {
	evs := m.events.drain()
	if len(evs) == 0 {
		return
	}
	last := evs[len(evs)-1]
	if last.Page != last.From {
		m.resetQuery()
		m.form = nil
		m.confirmDelete = ""
	}
	m.refresh()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case m.page == navigation.Login || m.page == navigation.Signup:
		return m.handleAuthKey(msg)
	case m.form != nil:
		return m.handleFormKey(msg)
	case m.confirmDelete != "":
		m.handleConfirmKey(msg)
		return nil
	case m.searching:
		return m.handleSearchKey(msg)
	}
	return m.handleBrowseKey(msg)
}

// ── Ingreso ──────────────────────────────────────────────────────────────────

func (m *Model) handleAuthKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+n":
		if m.auth.kind == formLogin {
			m.auth = signupForm()
		} else {
			m.auth = loginForm()
		}
		m.err = ""
		return nil
	case "esc":
		return tea.Quit
	}
	submit, cmd := m.auth.Update(msg)
	if !submit {
		return cmd
	}
	v := m.auth.Values()
	var err error
	if m.auth.kind == formLogin {
		_, err = m.con.Login(dto.LoginRequest{Email: v["email"], Password: v["password"]})
	} else {
		_, err = m.con.Signup(dto.SignupRequest{
			Name: v["name"], Email: v["email"], Role: v["role"], Department: v["department"],
			Password: v["password"], ConfirmPassword: v["confirmPassword"],
		})
	}
	if err != nil {
		m.setError(err)
		return nil
	}
	m.auth = loginForm()
	m.err = ""
	m.status = "sesión iniciada"
	return nil
}

// ── Navegación y tabla ───────────────────────────────────────────────────────

func (m *Model) handleBrowseKey(msg tea.KeyMsg) tea.Cmd {
	m.err = ""
	switch msg.String() {
	case "q":
		return tea.Quit
	case "ctrl+l":
		if _, err := m.con.Logout(); err != nil {
			m.setError(err)
		}
		m.status = "sesión cerrada"
		return nil
	case "]":
		m.openMenu(1)
		return nil
	case "[":
		m.openMenu(-1)
		return nil
	case "g":
		m.open(navigation.Dashboard)
		return nil
	}

	if m.view == nil {
		return nil
	}
	switch msg.String() {
	case "/":
		m.searching = true
		return m.search.Focus()
	case "tab":
		m.cycleFilter()
		return nil
	case "n":
		m.openCreateForm()
		return nil
	case "e":
		m.openEditForm()
		return nil
	case "d":
		if id := m.selectedID(); id != "" {
			m.confirmDelete = id
			m.status = fmt.Sprintf("¿Eliminar %s? (y/n)", id)
		}
		return nil
	case "p":
		m.exportPDF()
		return nil
	case "+", "-":
		if m.view.Info.EntityType == entity.TypeInventoryItem {
			kind := formReceive
			if msg.String() == "-" {
				kind = formDispense
			}
			m.form = stockForm(kind, m.selectedID())
		}
		return nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd
}

func (m *Model) openMenu(delta int) {
	if len(m.menu) == 0 {
		return
	}
	idx := (m.menuIdx + delta + len(m.menu)) % len(m.menu)
	m.open(m.menu[idx].Page)
}

func (m *Model) open(p navigation.Page) {
	if _, err := m.con.Open(p); err != nil {
		m.setError(err)
	}
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.searching = false
		m.search.Blur()
		m.loadRecords()
		return nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.loadRecords()
	return cmd
}

func (m *Model) cycleFilter() {
	if m.filterField == "" {
		return
	}
	m.filterIdx = (m.filterIdx + 1) % (len(m.filterValues) + 1)
	m.loadRecords()
}

func (m *Model) resetQuery() {
	m.search.SetValue("")
	m.search.Blur()
	m.searching = false
	m.filterField = ""
	m.filterValues = nil
	m.filterIdx = 0
	m.table.SetCursor(0)
}

func (m *Model) currentFilter() string {
	if m.filterIdx == 0 || m.filterIdx > len(m.filterValues) {
		return ""
	}
	return m.filterValues[m.filterIdx-1]
}

func (m *Model) selectedID() string {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

// ── Formularios y mutaciones ─────────────────────────────────────────────────

func (m *Model) openCreateForm() {
	if m.view.Info.EntityType == entity.TypeBill {
		m.form = billForm(m.view.NextID)
		return
	}
	m.form = recordForm("Nuevo registro · "+m.view.NextID, m.view.Schema, nil)
}

func (m *Model) openEditForm() {
	if m.view.Info.EntityType == entity.TypeBill {
		m.status = "las facturas no se editan; elimine y vuelva a generar"
		return
	}
	id := m.selectedID()
	for i := range m.view.Records {
		if m.view.Records[i].ID == id {
			m.form = recordForm("Editar "+id, m.view.Schema, &m.view.Records[i])
			return
		}
	}
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		m.form = nil
		m.err = ""
		return nil
	}
	submit, cmd := m.form.Update(msg)
	if !submit {
		return cmd
	}
	switch m.form.kind {
	case formBill:
		m.submitBill()
		return nil
	case formReceive, formDispense:
		m.submitStock()
		return nil
	}
	rec, err := m.con.Save(m.page, m.form.target, m.form.Fields())
	if err != nil {
		m.setError(err)
		return nil
	}
	m.form = nil
	m.err = ""
	m.status = "guardado " + rec.ID
	m.loadRecords()
	return nil
}

func (m *Model) submitBill() {
	v := m.form.Values()
	req := dto.CreateBillRequest{PatientID: v["patientId"]}
	for i := 1; i <= billLines; i++ {
		n := string(rune('0' + i))
		line := dto.BillLineRequest{Description: v["description"+n], Quantity: v["quantity"+n], Rate: v["rate"+n]}
		if line.Description == "" && line.Quantity == "" && line.Rate == "" {
			continue
		}
		req.Lines = append(req.Lines, line)
	}
	bill, err := m.con.CreateBill(req)
	if err != nil {
		m.setError(err)
		return
	}
	m.form = nil
	m.err = ""
	m.status = fmt.Sprintf("factura %s generada · total %s%s", bill.ID, bill.Currency, bill.Total.StringFixed(2))
	m.loadRecords()
}

func (m *Model) submitStock() {
	v := m.form.Values()
	req := dto.StockMovementRequest{ItemID: v["itemId"], Quantity: v["quantity"], UnitCost: v["unitCost"]}
	var (
		res *dto.StockMovementResponse
		err error
	)
	if m.form.kind == formReceive {
		res, err = m.con.Receive(m.page, req)
	} else {
		res, err = m.con.Dispense(m.page, req)
	}
	if err != nil {
		m.setError(err)
		return
	}
	m.form = nil
	m.err = ""
	m.status = fmt.Sprintf("%s %s %d · saldo %d", res.Type, res.ItemID, res.Quantity, res.Balance)
	if res.LowStock {
		m.status += " · stock bajo"
	}
	m.loadRecords()
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) {
	id := m.confirmDelete
	m.confirmDelete = ""
	if msg.String() != "y" {
		m.status = "eliminación cancelada"
		return
	}
	if err := m.con.Delete(m.page, id); err != nil {
		m.setError(err)
		return
	}
	m.status = "eliminado " + id
	m.loadRecords()
}

func (m *Model) exportPDF() {
	if m.view.Info.EntityType != entity.TypeBill {
		return
	}
	id := m.selectedID()
	if id == "" {
		return
	}
	path, err := m.con.ExportBill(m.ctx, id)
	if err != nil {
		m.setError(err)
		return
	}
	m.status = "PDF exportado: " + path
}

func (m *Model) setError(err error) {
	desc := console.Describe(err)
	m.err = desc.Message
	if len(desc.Fields) > 0 && desc.Code != "VALIDATION" {
		m.err += " (" + strings.Join(desc.Fields, ", ") + ")"
	}
}

// ── Carga de datos ───────────────────────────────────────────────────────────

// refresh recarga la página actual desde la consola.
func (m *Model) refresh() {
	m.page = m.con.Page()
	m.menu = m.con.Menu()
	for i, info := range m.menu {
		if info.Page == m.page {
			m.menuIdx = i
		}
	}
	m.view, m.summary, m.wards, m.restock = nil, nil, nil, nil

	switch m.page {
	case navigation.Login, navigation.Signup:
		return
	case navigation.Dashboard, navigation.AdminDashboard, navigation.DepartmentAnalytics:
		summary, err := m.con.Dashboard(m.ctx)
		if err != nil {
			m.setError(err)
			return
		}
		m.summary = summary
		return
	case navigation.AIAlerts:
		list, err := m.con.Replenishment()
		if err != nil {
			m.setError(err)
			return
		}
		m.restock = list
		return
	case navigation.IPDAdmission, navigation.BedOptimization:
		wards, err := m.con.Wards()
		if err == nil {
			m.wards = wards
		}
	}
	m.loadFilterValues()
	m.loadRecords()
}

// loadFilterValues prepara el ciclo de valores del primer filtro del esquema.
func (m *Model) loadFilterValues() {
	if m.filterField != "" {
		return
	}
	view, err := m.con.Records(m.page, dto.SearchRequest{})
	if err != nil || len(view.Schema.Filters) == 0 {
		return
	}
	m.filterField = view.Schema.Filters[0]
	if spec, ok := view.Schema.Field(m.filterField); ok && len(spec.Enum) > 0 {
		m.filterValues = append([]string(nil), spec.Enum...)
		return
	}
	seen := make(map[string]bool)
	for _, r := range view.Records {
		if v := r.Text(m.filterField); v != "" && !seen[v] {
			seen[v] = true
			m.filterValues = append(m.filterValues, v)
		}
	}
	sort.Strings(m.filterValues)
}

// loadRecords consulta la página con la búsqueda y el filtro vigentes.
func (m *Model) loadRecords() {
	req := dto.SearchRequest{Term: m.search.Value()}
	if v := m.currentFilter(); v != "" {
		req.Filters = map[string]string{m.filterField: v}
	}
	view, err := m.con.Records(m.page, req)
	if err != nil {
		m.view = nil
		m.setError(err)
		return
	}
	m.view = view
	cols, rows := tableData(view)
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
}

const maxColumns = 6

func tableData(view *console.PageView) ([]table.Column, []table.Row) {
	fields := view.Schema.Fields
	if len(fields) > maxColumns {
		fields = fields[:maxColumns]
	}
	lowStock := view.Info.EntityType == entity.TypeInventoryItem

	cols := []table.Column{{Title: "ID", Width: 8}}
	for _, f := range fields {
		cols = append(cols, table.Column{Title: f.Label, Width: max(len([]rune(f.Label)), 12)})
	}
	if lowStock {
		cols = append(cols, table.Column{Title: "Stock", Width: 6})
	}

	rows := make([]table.Row, 0, len(view.Records))
	for _, r := range view.Records {
		row := table.Row{r.ID}
		for _, f := range fields {
			row = append(row, r.Text(f.Name))
		}
		if lowStock {
			mark := "ok"
			if entity.IsLowStock(r) {
				mark = "BAJO"
			}
			row = append(row, mark)
		}
		rows = append(rows, row)
	}
	return cols, rows
}
