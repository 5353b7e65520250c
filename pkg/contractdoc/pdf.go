package contractdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/skip2/go-qrcode"
)

// If generate qr code for pdf file, size 50 should be enough
const qrCodeSizePx = 50

func writeTempPdf(payload []byte) (string, func(), error) {
	dir, err := os.MkdirTemp("", "rentsign_pdf_")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	inFile := filepath.Join(dir, "in.pdf")
	if err := os.WriteFile(inFile, payload, 0644); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to write temp PDF: %w", err)
	}
	return inFile, cleanup, nil
}

// ValidatePdf returns the page count when the payload is a well-formed PDF.
func ValidatePdf(payload []byte) (int, error) {
	inFile, cleanup, err := writeTempPdf(payload)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	if err := api.ValidateFile(inFile, nil); err != nil {
		return 0, fmt.Errorf("invalid PDF file: %w", err)
	}

	pageCount, err := api.PageCountFile(inFile)
	if err != nil {
		return 0, fmt.Errorf("failed to get page count: %w", err)
	}
	return pageCount, nil
}

// EmbedDownloadQR stamps a QR code pointing at link onto the bottom right
// corner of the document's last page.
func EmbedDownloadQR(payload []byte, link string) ([]byte, error) {
	inFile, cleanup, err := writeTempPdf(payload)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	dir := filepath.Dir(inFile)
	qrFile := filepath.Join(dir, "qr.png")
	if err := qrcode.WriteFile(link, qrcode.Medium, qrCodeSizePx, qrFile); err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	pageCount, err := api.PageCountFile(inFile)
	if err != nil {
		return nil, fmt.Errorf("failed to get page count: %w", err)
	}

	outFile := filepath.Join(dir, "out.pdf")
	lastPage := []string{strconv.Itoa(pageCount)}
	description := "pos: br, off: 0 0, scale: 1 abs, rotation: 0"
	if err := api.AddImageWatermarksFile(inFile, outFile, lastPage, true, qrFile, description, nil); err != nil {
		return nil, fmt.Errorf("failed to embed QR code in PDF: %w", err)
	}

	return os.ReadFile(outFile)
}
