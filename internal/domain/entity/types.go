package entity

// Tipos de entidad del hospital.
const (
	TypeUser           EntityType = "user"
	TypePatient        EntityType = "patient"
	TypeAppointment    EntityType = "appointment"
	TypeLabOrder       EntityType = "labOrder"
	TypeInventoryItem  EntityType = "inventoryItem"
	TypeStaff          EntityType = "staff"
	TypeConsultation   EntityType = "consultation"
	TypeAdmission      EntityType = "admission"
	TypeDailyNote      EntityType = "dailyNote"
	TypeEmergencyCase  EntityType = "emergencyCase"
	TypeLabReport      EntityType = "labReport"
	TypeInsuranceClaim EntityType = "insuranceClaim"
	TypeBill           EntityType = "bill"
	TypeBillItem       EntityType = "billItem"
	TypeStockMovement  EntityType = "stockMovement"
)

// Valores categóricos compartidos.
var (
	Genders           = []string{"male", "female", "other"}
	UserStatuses      = []string{"active", "inactive"}
	AppointmentStatus = []string{"scheduled", "waiting", "in-consultation", "completed"}
	LabOrderStatus    = []string{"pending", "in-progress", "completed"}
	WardTypes         = []string{"general", "icu", "private"}
	Severities        = []string{"low", "medium", "high", "critical"}
	ClaimStatuses     = []string{"pending", "approved", "rejected"}
	InventoryCategory = []string{"medicine", "consumable", "equipment"}
	MovementTypes     = []string{MovementIn, MovementOut}
)

// Tipos de movimiento de stock.
const (
	MovementIn  = "IN"
	MovementOut = "OUT"
)

// Registry catálogo de esquemas por tipo de entidad, en orden estable.
type Registry struct {
	order   []EntityType
	schemas map[EntityType]Schema
}

// NewRegistry arma un registro con los esquemas dados.
func NewRegistry(schemas ...Schema) *Registry {
	r := &Registry{schemas: make(map[EntityType]Schema, len(schemas))}
	for _, s := range schemas {
		if _, dup := r.schemas[s.Type]; !dup {
			r.order = append(r.order, s.Type)
		}
		r.schemas[s.Type] = s
	}
	return r
}

// Schema devuelve el esquema del tipo; false si el tipo no existe.
func (r *Registry) Schema(t EntityType) (Schema, bool) {
	s, ok := r.schemas[t]
	return s, ok
}

// Types tipos registrados en orden de alta.
func (r *Registry) Types() []EntityType {
	return append([]EntityType(nil), r.order...)
}

// DefaultRegistry esquemas de todas las colecciones de la consola.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Schema{
			Type: TypeUser, Prefix: "USR", Label: "Usuarios",
			Fields: []FieldSpec{
				{Name: "name", Label: "Nombre", Required: true},
				{Name: "email", Label: "Email", Required: true},
				{Name: "role", Label: "Rol", Required: true, Enum: Roles},
				{Name: "department", Label: "Departamento"},
				{Name: "status", Label: "Estado", Default: "active", Enum: UserStatuses},
			},
			SearchFields: []string{"name", "email", "role"},
			Filters:      []string{"role", "status"},
		},
		Schema{
			Type: TypePatient, Prefix: "PAT", Label: "Pacientes",
			Fields: []FieldSpec{
				{Name: "name", Label: "Nombre", Required: true},
				{Name: "age", Label: "Edad", Kind: KindInt, Required: true, NonNegative: true},
				{Name: "gender", Label: "Género", Required: true, Enum: Genders},
				{Name: "phone", Label: "Teléfono", Required: true},
				{Name: "email", Label: "Email"},
				{Name: "address", Label: "Dirección"},
				{Name: "registeredDate", Label: "Registro", Kind: KindDate, AutoNow: true},
			},
			SearchFields: []string{"name", "id", "phone"},
			Filters:      []string{"gender"},
		},
		Schema{
			Type: TypeAppointment, Prefix: "APT", Label: "Citas",
			Fields: []FieldSpec{
				{Name: "patientId", Label: "Paciente", Required: true},
				{Name: "patientName", Label: "Nombre paciente"},
				{Name: "doctorName", Label: "Médico", Required: true},
				{Name: "date", Label: "Fecha", Kind: KindDate, Required: true},
				{Name: "time", Label: "Hora", Required: true},
				{Name: "status", Label: "Estado", Default: "scheduled", Enum: AppointmentStatus},
			},
			SearchFields: []string{"id", "patientName", "doctorName"},
			Filters:      []string{"status"},
		},
		Schema{
			Type: TypeLabOrder, Prefix: "LAB", Label: "Órdenes de laboratorio",
			Fields: []FieldSpec{
				{Name: "patientId", Label: "Paciente", Required: true},
				{Name: "patientName", Label: "Nombre paciente"},
				{Name: "testType", Label: "Examen", Required: true},
				{Name: "status", Label: "Estado", Default: "pending", Enum: LabOrderStatus},
				{Name: "date", Label: "Fecha", Kind: KindDate, AutoNow: true},
			},
			SearchFields: []string{"id", "patientName", "testType"},
			Filters:      []string{"status"},
		},
		Schema{
			Type: TypeInventoryItem, Prefix: "INV", Label: "Inventario",
			Fields: []FieldSpec{
				{Name: "name", Label: "Nombre", Required: true},
				{Name: "category", Label: "Categoría", Required: true},
				{Name: "quantity", Label: "Cantidad", Kind: KindInt, Required: true, NonNegative: true},
				{Name: "unit", Label: "Unidad", Required: true},
				{Name: "minStock", Label: "Stock mínimo", Kind: KindInt, Required: true, NonNegative: true},
				{Name: "price", Label: "Precio", Kind: KindDecimal, Required: true, NonNegative: true},
			},
			SearchFields: []string{"name", "id"},
			Filters:      []string{"category"},
		},
		Schema{
			Type: TypeStaff, Prefix: "STF", Label: "Personal",
			Fields: []FieldSpec{
				{Name: "name", Label: "Nombre", Required: true},
				{Name: "department", Label: "Departamento", Required: true},
				{Name: "role", Label: "Rol", Required: true},
				{Name: "specialization", Label: "Especialidad"},
				{Name: "contact", Label: "Contacto"},
			},
			SearchFields: []string{"name", "specialization"},
			Filters:      []string{"department", "role"},
		},
		Schema{
			Type: TypeConsultation, Prefix: "CONS", Label: "Consultas",
			Fields: []FieldSpec{
				{Name: "patientId", Label: "Paciente", Required: true},
				{Name: "doctorId", Label: "Médico", Required: true},
				{Name: "symptoms", Label: "Síntomas"},
				{Name: "diagnosis", Label: "Diagnóstico"},
				{Name: "tests", Label: "Exámenes"},
				{Name: "medicines", Label: "Medicamentos"},
				{Name: "followupDate", Label: "Control", Kind: KindDate},
				{Name: "date", Label: "Fecha", Kind: KindDate, AutoNow: true},
			},
			SearchFields: []string{"id", "patientId"},
		},
		Schema{
			Type: TypeAdmission, Prefix: "ADM", Label: "Hospitalizaciones",
			Fields: []FieldSpec{
				{Name: "patientId", Label: "Paciente", Required: true},
				{Name: "doctorId", Label: "Médico", Required: true},
				{Name: "reason", Label: "Motivo"},
				{Name: "wardType", Label: "Sala", Required: true, Enum: WardTypes},
				{Name: "bedNumber", Label: "Cama", Required: true},
				{Name: "admissionDate", Label: "Ingreso", Kind: KindDate, AutoNow: true},
			},
			SearchFields: []string{"id", "patientId"},
			Filters:      []string{"wardType"},
		},
		Schema{
			Type: TypeDailyNote, Prefix: "NOTE", Label: "Notas diarias",
			Fields: []FieldSpec{
				{Name: "patientId", Label: "Paciente", Required: true},
				{Name: "date", Label: "Fecha", Kind: KindDate, AutoNow: true},
				{Name: "vitalSigns", Label: "Signos vitales"},
				{Name: "progressNotes", Label: "Evolución"},
				{Name: "servicesUsed", Label: "Servicios"},
			},
			SearchFields: []string{"id", "patientId"},
		},
		Schema{
			Type: TypeEmergencyCase, Prefix: "EMG", Label: "Emergencias",
			Fields: []FieldSpec{
				{Name: "name", Label: "Nombre", Default: "Unknown"},
				{Name: "age", Label: "Edad", Kind: KindInt, NonNegative: true},
				{Name: "gender", Label: "Género"},
				{Name: "contact", Label: "Contacto"},
				{Name: "complaint", Label: "Motivo", Required: true},
				{Name: "severity", Label: "Gravedad", Default: "low", Enum: Severities},
				{Name: "registrationTime", Label: "Registro", Kind: KindTimestamp, AutoNow: true},
			},
			SearchFields: []string{"id", "name", "complaint"},
			Filters:      []string{"severity"},
		},
		Schema{
			Type: TypeLabReport, Prefix: "RPT", Label: "Informes de laboratorio",
			Fields: []FieldSpec{
				{Name: "patientId", Label: "Paciente", Required: true},
				{Name: "type", Label: "Tipo", Required: true},
				{Name: "fileName", Label: "Archivo", Default: "Manual Entry"},
				{Name: "notes", Label: "Notas"},
				{Name: "uploadDate", Label: "Carga", Kind: KindDate, AutoNow: true},
			},
			SearchFields: []string{"id", "patientId"},
		},
		Schema{
			Type: TypeInsuranceClaim, Prefix: "CLM", Label: "Reclamaciones",
			Fields: []FieldSpec{
				{Name: "patientId", Label: "Paciente", Required: true},
				{Name: "provider", Label: "Aseguradora", Required: true},
				{Name: "policyNumber", Label: "Póliza", Required: true},
				{Name: "claimAmount", Label: "Monto", Kind: KindDecimal, Required: true, NonNegative: true},
				{Name: "status", Label: "Estado", Default: "pending", Enum: ClaimStatuses},
				{Name: "notes", Label: "Notas"},
				{Name: "claimDate", Label: "Fecha", Kind: KindDate, AutoNow: true},
			},
			SearchFields: []string{"id", "patientId"},
			Filters:      []string{"status"},
		},
		Schema{
			Type: TypeBill, Prefix: "BILL", Label: "Facturas",
			Fields: []FieldSpec{
				{Name: "patientId", Label: "Paciente", Required: true},
				{Name: "patientName", Label: "Nombre paciente"},
				{Name: "subtotal", Label: "Subtotal", Kind: KindDecimal, NonNegative: true},
				{Name: "tax", Label: "Impuesto", Kind: KindDecimal, NonNegative: true},
				{Name: "amount", Label: "Total", Kind: KindDecimal, NonNegative: true},
				{Name: "date", Label: "Fecha", Kind: KindDate, AutoNow: true},
			},
			SearchFields: []string{"id", "patientId"},
		},
		Schema{
			Type: TypeBillItem, Prefix: "BIT", Label: "Líneas de factura",
			Fields: []FieldSpec{
				{Name: "billId", Label: "Factura", Required: true},
				{Name: "description", Label: "Descripción", Required: true},
				{Name: "quantity", Label: "Cantidad", Kind: KindDecimal, Required: true, Positive: true},
				{Name: "rate", Label: "Tarifa", Kind: KindDecimal, Required: true, NonNegative: true},
				{Name: "amount", Label: "Importe", Kind: KindDecimal, NonNegative: true},
			},
			SearchFields: []string{"id", "billId"},
		},
		Schema{
			Type: TypeStockMovement, Prefix: "MOV", Label: "Movimientos de stock",
			Fields: []FieldSpec{
				{Name: "itemId", Label: "Artículo", Required: true},
				{Name: "type", Label: "Tipo", Required: true, Enum: MovementTypes},
				{Name: "quantity", Label: "Cantidad", Kind: KindInt, Required: true, Positive: true},
				{Name: "unitCost", Label: "Costo unitario", Kind: KindDecimal, NonNegative: true},
				{Name: "balance", Label: "Saldo", Kind: KindInt, NonNegative: true},
				{Name: "date", Label: "Fecha", Kind: KindTimestamp, AutoNow: true},
			},
			SearchFields: []string{"id", "itemId"},
			Filters:      []string{"type"},
		},
	)
}
