package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO KPIs del panel principal.
type DashboardSummaryDTO struct {
	TotalPatients     int             `json:"totalPatients"`
	TodayAppointments int             `json:"todayAppointments"`
	ActiveAdmissions  int             `json:"activeAdmissions"`
	TotalBeds         int             `json:"totalBeds"`
	BedOccupancy      decimal.Decimal `json:"bedOccupancy"` // porcentaje, 0 decimales
	Revenue           decimal.Decimal `json:"revenue"`      // suma de totales de facturas
	LowStockItems     int             `json:"lowStockItems"`
	StaffCount        int             `json:"staffCount"`
	PendingLabOrders  int             `json:"pendingLabOrders"`
	DateLabel         string          `json:"dateLabel"`
}

// WardOccupancyDTO ocupación de una sala.
type WardOccupancyDTO struct {
	WardType string   `json:"wardType"`
	Total    int      `json:"total"`
	Occupied int      `json:"occupied"`
	Free     []string `json:"free"`
}
