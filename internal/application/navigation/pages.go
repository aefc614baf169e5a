package navigation

import "github.com/jhoicas/caresync-hms/internal/domain/entity"

// Page identificador de una vista navegable.
type Page string

// Páginas de la consola.
const (
	Dashboard           Page = "dashboard"
	Login               Page = "login"
	Signup              Page = "signup"
	UserManagement      Page = "user-management"
	PatientRegistration Page = "patient-registration"
	PatientTimeline     Page = "patient-timeline"
	OPDQueue            Page = "opd-queue"
	OPDConsultation     Page = "opd-consultation"
	IPDAdmission        Page = "ipd-admission"
	IPDNotes            Page = "ipd-notes"
	Emergency           Page = "emergency"
	LabOrders           Page = "lab-orders"
	LabReports          Page = "lab-reports"
	Pharmacy            Page = "pharmacy"
	Billing             Page = "billing"
	Insurance           Page = "insurance"
	Inventory           Page = "inventory"
	StaffDirectory      Page = "staff-directory"
	AdminDashboard      Page = "admin-dashboard"
	DepartmentAnalytics Page = "department-analytics"
	AIAlerts            Page = "ai-alerts"
	FraudDetection      Page = "fraud-detection"
	BedOptimization     Page = "bed-optimization"
)

// PageInfo metadatos de una página: título y colección que muestra (vacío = sin tabla).
type PageInfo struct {
	Page       Page
	Title      string
	EntityType entity.EntityType
}

var pages = []PageInfo{
	{Page: Dashboard, Title: "Panel principal"},
	{Page: Login, Title: "Iniciar sesión"},
	{Page: Signup, Title: "Registro"},
	{Page: UserManagement, Title: "Usuarios", EntityType: entity.TypeUser},
	{Page: PatientRegistration, Title: "Registro de pacientes", EntityType: entity.TypePatient},
	{Page: PatientTimeline, Title: "Historia del paciente", EntityType: entity.TypeConsultation},
	{Page: OPDQueue, Title: "Cola de consulta externa", EntityType: entity.TypeAppointment},
	{Page: OPDConsultation, Title: "Consulta externa", EntityType: entity.TypeConsultation},
	{Page: IPDAdmission, Title: "Hospitalización", EntityType: entity.TypeAdmission},
	{Page: IPDNotes, Title: "Notas de hospitalización", EntityType: entity.TypeDailyNote},
	{Page: Emergency, Title: "Emergencias", EntityType: entity.TypeEmergencyCase},
	{Page: LabOrders, Title: "Órdenes de laboratorio", EntityType: entity.TypeLabOrder},
	{Page: LabReports, Title: "Informes de laboratorio", EntityType: entity.TypeLabReport},
	{Page: Pharmacy, Title: "Farmacia", EntityType: entity.TypeInventoryItem},
	{Page: Billing, Title: "Facturación", EntityType: entity.TypeBill},
	{Page: Insurance, Title: "Seguros", EntityType: entity.TypeInsuranceClaim},
	{Page: Inventory, Title: "Inventario", EntityType: entity.TypeInventoryItem},
	{Page: StaffDirectory, Title: "Directorio de personal", EntityType: entity.TypeStaff},
	{Page: AdminDashboard, Title: "Administración"},
	{Page: DepartmentAnalytics, Title: "Analítica por departamento"},
	{Page: AIAlerts, Title: "Alertas"},
	{Page: FraudDetection, Title: "Detección de fraude", EntityType: entity.TypeInsuranceClaim},
	{Page: BedOptimization, Title: "Ocupación de camas", EntityType: entity.TypeAdmission},
}

// Pages todas las páginas en orden de menú.
func Pages() []PageInfo {
	return append([]PageInfo(nil), pages...)
}

// Lookup metadatos de una página; false si no existe.
func Lookup(p Page) (PageInfo, bool) {
	for _, info := range pages {
		if info.Page == p {
			return info, true
		}
	}
	return PageInfo{}, false
}

// IsKnown indica si la página existe.
func IsKnown(p Page) bool {
	_, ok := Lookup(p)
	return ok
}
