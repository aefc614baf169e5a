package billing

import (
	"context"

	"github.com/jhoicas/caresync-hms/internal/application/dto"
)

// BillPDFGenerator genera la representación PDF de una factura hospitalaria.
type BillPDFGenerator interface {
	GenerateBillPDF(ctx context.Context, hospital string, bill *dto.BillResponse) ([]byte, error)
}
