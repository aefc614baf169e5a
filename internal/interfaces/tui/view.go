package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jhoicas/caresync-hms/internal/application/navigation"
	"github.com/jhoicas/caresync-hms/internal/domain/entity"
)

// View dibuja cabecera, menú lateral, contenido y pie.
func (m Model) View() string {
	header := m.styles.Header.Width(m.width).Render(m.headerText())

	var body string
	if m.page == navigation.Login || m.page == navigation.Signup {
		body = m.styles.Content.Render(m.authView())
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), m.styles.Content.Render(m.contentView()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.footerView())
}

func (m Model) headerText() string {
	title := m.hospital
	if title == "" {
		title = "CareSync HMS"
	}
	if sess, ok := m.con.User(); ok {
		return fmt.Sprintf("%s · %s (%s)", title, sess.User.Name, sess.User.Role)
	}
	return title
}

func (m Model) authView() string {
	hint := "ctrl+n: crear cuenta · esc: salir"
	if m.auth.kind == formSignup {
		hint = "ctrl+n: volver al ingreso · esc: salir"
	}
	return m.auth.View(m.styles) + "\n" + m.styles.Muted.Render(hint)
}

func (m Model) sidebarView() string {
	var sb strings.Builder
	for _, info := range m.menu {
		if info.Page == m.page {
			sb.WriteString(m.styles.MenuActive.Render("▸ "+info.Title) + "\n")
			continue
		}
		sb.WriteString(m.styles.MenuItem.Render("  "+info.Title) + "\n")
	}
	return m.styles.Sidebar.Height(max(m.height-4, 10)).Render(sb.String())
}

func (m Model) contentView() string {
	info, _ := navigation.Lookup(m.page)
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(info.Title))
	sb.WriteString("\n")

	if m.form != nil {
		sb.WriteString(m.form.View(m.styles))
		return sb.String()
	}
	switch {
	case m.summary != nil:
		sb.WriteString(m.dashboardView())
	case m.restock != nil:
		sb.WriteString(m.alertsView())
	case m.view != nil:
		if len(m.wards) > 0 {
			sb.WriteString(m.wardsView() + "\n\n")
		}
		sb.WriteString(m.queryView() + "\n")
		sb.WriteString(m.table.View())
		if len(m.view.Records) == 0 {
			sb.WriteString("\n" + m.styles.Muted.Render("Sin registros"))
		}
	default:
		sb.WriteString(m.styles.Muted.Render("Sin contenido para esta página"))
	}
	return sb.String()
}

func (m Model) dashboardView() string {
	s := m.summary
	card := func(label, value string) string {
		return m.styles.Card.Render(m.styles.Muted.Render(label) + "\n" + m.styles.CardValue.Render(value))
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Pacientes", fmt.Sprint(s.TotalPatients)),
		card("Citas de hoy", fmt.Sprint(s.TodayAppointments)),
		card("Ocupación de camas", fmt.Sprintf("%s%% (%d/%d)", s.BedOccupancy.String(), s.ActiveAdmissions, s.TotalBeds)),
	)
	row2 := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Ingresos", s.Revenue.StringFixed(2)),
		card("Stock bajo", fmt.Sprint(s.LowStockItems)),
		card("Personal", fmt.Sprint(s.StaffCount)),
		card("Laboratorio pendiente", fmt.Sprint(s.PendingLabOrders)),
	)
	return m.styles.Muted.Render(s.DateLabel) + "\n" + row1 + "\n" + row2
}

func (m Model) alertsView() string {
	if len(m.restock) == 0 {
		return m.styles.Success.Render("Sin alertas de inventario")
	}
	var sb strings.Builder
	for _, r := range m.restock {
		sb.WriteString(m.styles.Warning.Render(fmt.Sprintf("%d ⚠ ", r.Priority)) +
			fmt.Sprintf("%s %s: %d (mínimo %d) · pedir %d · costo estimado %s\n",
				r.ItemID, r.Name, r.Quantity, r.MinStock, r.SuggestedQty, r.EstimatedCost.StringFixed(2)))
	}
	return sb.String()
}

func (m Model) wardsView() string {
	parts := make([]string, 0, len(m.wards))
	for _, w := range m.wards {
		parts = append(parts, fmt.Sprintf("%s %d/%d", w.WardType, w.Occupied, w.Total))
	}
	return m.styles.Muted.Render("Camas ocupadas: " + strings.Join(parts, " · "))
}

func (m Model) queryView() string {
	parts := []string{}
	if m.searching || m.search.Value() != "" {
		parts = append(parts, m.search.View())
	}
	if m.filterField != "" {
		value := m.currentFilter()
		if value == "" {
			value = "todos"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", m.filterField, value))
	}
	parts = append(parts, fmt.Sprintf("%d registros · próximo %s", len(m.view.Records), m.view.NextID))
	return m.styles.Muted.Render(strings.Join(parts, "  ·  "))
}

func (m Model) footerView() string {
	var lines []string
	if m.err != "" {
		lines = append(lines, m.styles.Error.Render(m.err))
	} else if m.status != "" {
		lines = append(lines, m.styles.Success.Render(m.status))
	}
	if m.page != navigation.Login && m.page != navigation.Signup {
		help := "[ ] páginas · g panel · ctrl+l salir de sesión · q cerrar"
		if m.view != nil {
			help = "/ buscar · tab filtro · n nuevo · e editar · d eliminar · " + help
			if m.view.Info.EntityType == entity.TypeBill {
				help = "p exportar PDF · " + help
			}
		}
		lines = append(lines, help)
	}
	return m.styles.Footer.Render(strings.Join(lines, "\n"))
}
