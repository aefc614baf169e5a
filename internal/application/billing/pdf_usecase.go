package billing

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/jhoicas/caresync-hms/pkg/logger"
)

// PDFUseCase genera el PDF de una factura y lo guarda en el directorio configurado.
type PDFUseCase struct {
	bills     *BillUseCase
	generator BillPDFGenerator
	fs        afero.Fs
	dir       string
	hospital  string
	log       *logger.Logger
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	bills *BillUseCase,
	generator BillPDFGenerator,
	fs afero.Fs,
	dir, hospital string,
	log *logger.Logger,
) *PDFUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PDFUseCase{bills: bills, generator: generator, fs: fs, dir: dir, hospital: hospital, log: log}
}

// DownloadBillPDF genera el PDF en memoria.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la factura no existe.
func (uc *PDFUseCase) DownloadBillPDF(ctx context.Context, billID string) (pdfBytes []byte, filename string, err error) {
	bill, err := uc.bills.GetBill(billID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	pdfBytes, err = uc.generator.GenerateBillPDF(ctx, uc.hospital, bill)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", bill.ID), nil
}

// ExportBillPDF genera el PDF y lo escribe en el directorio de facturas. Devuelve la ruta.
func (uc *PDFUseCase) ExportBillPDF(ctx context.Context, billID string) (string, error) {
	data, filename, err := uc.DownloadBillPDF(ctx, billID)
	if err != nil {
		return "", err
	}
	if err := uc.fs.MkdirAll(uc.dir, 0o755); err != nil {
		return "", fmt.Errorf("pdf: crear directorio %s: %w", uc.dir, err)
	}
	path := filepath.Join(uc.dir, filename)
	if err := afero.WriteFile(uc.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("pdf: escribir %s: %w", path, err)
	}
	uc.log.Info().Str("bill_id", billID).Str("path", path).Int("bytes", len(data)).Msg("factura exportada a PDF")
	return path, nil
}
