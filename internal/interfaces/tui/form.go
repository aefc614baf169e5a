package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhoicas/caresync-hms/internal/domain/entity"
)

type formKind int

const (
	formLogin formKind = iota
	formSignup
	formRecord
	formBill
	formReceive
	formDispense
)

// billLines líneas editables en el formulario de factura.
const billLines = 3

type formField struct {
	name  string
	label string
	input textinput.Model
}

// form formulario de campos de texto con foco secuencial.
type form struct {
	kind   formKind
	title  string
	fields []formField
	focus  int
	// id del registro en edición; vacío en altas.
	target string
}

func newInput(placeholder string, secret bool) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 120
	in.Width = 36
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return in
}

func newForm(kind formKind, title string, fields ...formField) *form {
	f := &form{kind: kind, title: title, fields: fields}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

func field(name, label, placeholder string, secret bool) formField {
	return formField{name: name, label: label, input: newInput(placeholder, secret)}
}

func loginForm() *form {
	return newForm(formLogin, "Iniciar sesión",
		field("email", "Email", "usuario@hospital.com", false),
		field("password", "Contraseña", "", true),
	)
}

func signupForm() *form {
	return newForm(formSignup, "Registro de usuario",
		field("name", "Nombre", "", false),
		field("email", "Email", "", false),
		field("role", "Rol", strings.Join(entity.Roles, "|"), false),
		field("department", "Departamento", "opcional", false),
		field("password", "Contraseña", "", true),
		field("confirmPassword", "Confirmar", "", true),
	)
}

// recordForm formulario generado a partir del esquema; rec != nil precarga una edición.
func recordForm(title string, schema entity.Schema, rec *entity.Record) *form {
	fields := make([]formField, 0, len(schema.Fields))
	for _, spec := range schema.Fields {
		placeholder := ""
		switch {
		case len(spec.Enum) > 0:
			placeholder = strings.Join(spec.Enum, "|")
		case spec.Kind == entity.KindDate:
			placeholder = "AAAA-MM-DD"
		case spec.Kind == entity.KindTimestamp:
			placeholder = "AAAA-MM-DD HH:MM"
		case spec.Default != "":
			placeholder = spec.Default
		}
		label := spec.Label
		if spec.Required {
			label += "*"
		}
		ff := field(spec.Name, label, placeholder, false)
		if rec != nil {
			ff.input.SetValue(rec.Text(spec.Name))
		}
		fields = append(fields, ff)
	}
	f := newForm(formRecord, title, fields...)
	if rec != nil {
		f.target = rec.ID
	}
	return f
}

func billForm(nextID string) *form {
	fields := []formField{field("patientId", "Paciente*", "PAT001", false)}
	for i := 1; i <= billLines; i++ {
		n := string(rune('0' + i))
		fields = append(fields,
			field("description"+n, "Descripción "+n, "", false),
			field("quantity"+n, "Cantidad "+n, "1", false),
			field("rate"+n, "Tarifa "+n, "0.00", false),
		)
	}
	return newForm(formBill, "Nueva factura · "+nextID, fields...)
}

// stockForm entrada (formReceive) o salida (formDispense) del artículo seleccionado.
func stockForm(kind formKind, itemID string) *form {
	item := field("itemId", "Artículo*", "INV001", false)
	item.input.SetValue(itemID)
	fields := []formField{item, field("quantity", "Cantidad*", "", false)}
	title := "Dispensar"
	if kind == formReceive {
		fields = append(fields, field("unitCost", "Costo unitario", "precio vigente", false))
		title = "Recibir stock"
	}
	f := newForm(kind, title, fields...)
	f.move(1)
	return f
}

// Update mueve el foco o edita el campo activo. submit es true con enter en el último campo.
func (f *form) Update(msg tea.KeyMsg) (submit bool, cmd tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		f.move(1)
		return false, nil
	case "shift+tab", "up":
		f.move(-1)
		return false, nil
	case "enter":
		if f.focus == len(f.fields)-1 {
			return true, nil
		}
		f.move(1)
		return false, nil
	}
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return false, cmd
}

func (f *form) move(delta int) {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

// Values valores de los campos sin espacios sobrantes.
func (f *form) Values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for _, ff := range f.fields {
		out[ff.name] = strings.TrimSpace(ff.input.Value())
	}
	return out
}

// Fields valores como entrada de formulario para el almacén.
func (f *form) Fields() map[string]any {
	out := make(map[string]any, len(f.fields))
	for k, v := range f.Values() {
		out[k] = v
	}
	return out
}

func (f *form) View(st Styles) string {
	var sb strings.Builder
	sb.WriteString(st.Title.Render(f.title))
	sb.WriteString("\n")
	for i, ff := range f.fields {
		label := st.Label.Render(ff.label)
		if i == f.focus {
			label = st.Label.Foreground(colorAccent).Render(ff.label)
		}
		sb.WriteString(label + " " + ff.input.View() + "\n")
	}
	sb.WriteString("\n" + st.Muted.Render("tab/↑↓ mover · enter confirmar · esc cancelar"))
	return st.FormBox.Render(sb.String())
}
