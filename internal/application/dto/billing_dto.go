package dto

import "github.com/shopspring/decimal"

// CreateBillRequest entrada del formulario de facturación.
type CreateBillRequest struct {
	PatientID string            `json:"patientId"`
	Lines     []BillLineRequest `json:"lines"`
}

// BillLineRequest línea tal como llega del formulario (cantidad y tarifa en texto).
type BillLineRequest struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
}

// BillResponse factura con su detalle.
type BillResponse struct {
	ID          string             `json:"id"`
	PatientID   string             `json:"patientId"`
	PatientName string             `json:"patientName"`
	Date        string             `json:"date"`
	Lines       []BillLineResponse `json:"lines"`
	Subtotal    decimal.Decimal    `json:"subtotal"`
	Tax         decimal.Decimal    `json:"tax"`
	Total       decimal.Decimal    `json:"total"`
	Currency    string             `json:"currency"`
}

// BillLineResponse línea de factura persistida.
type BillLineResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}
