package contractdoc

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
)

/*
 * SimplifiedGenerator is the dependency-light second tier of the rendering
 * pipeline. It draws a plain A4 layout straight from the contract data, so a
 * document can be produced even when the headless engine is down, at reduced
 * visual fidelity.
 *
 * canvas uses mm as its unit of measurement.
 */

const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
	marginMM     = 18.0
	lineStepMM   = 6.5
)

type SimplifiedGenerator struct {
	fontFamily *canvas.FontFamily
	tmpDir     string
}

func NewSimplifiedGenerator(tmpDir string) (*SimplifiedGenerator, error) {
	fontFamily := canvas.NewFontFamily("contract")
	if err := fontFamily.LoadSystemFont("sans-serif", canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("failed to load fallback font: %w", err)
	}

	if tmpDir == "" {
		tmpDir = filepath.Join(os.TempDir(), "rentsign", "fallback")
	}
	if err := os.MkdirAll(tmpDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create tmp directory: %w", err)
	}

	return &SimplifiedGenerator{fontFamily: fontFamily, tmpDir: tmpDir}, nil
}

func (g *SimplifiedGenerator) Generate(data *ContractData) ([]byte, error) {
	c := canvas.New(pageWidthMM, pageHeightMM)
	ctx := canvas.NewContext(c)
	// Change coordination from bottom-left to top-left
	ctx.SetCoordSystem(canvas.CartesianIV)

	titleFace := g.fontFamily.Face(16, canvas.Black, canvas.FontBold, canvas.FontNormal)
	headingFace := g.fontFamily.Face(12, canvas.Black, canvas.FontBold, canvas.FontNormal)
	bodyFace := g.fontFamily.Face(10, canvas.Black, canvas.FontRegular, canvas.FontNormal)

	y := marginMM

	drawLine := func(face *canvas.FontFace, text string) {
		if y > pageHeightMM-marginMM {
			return
		}
		ctx.DrawText(marginMM, y, canvas.NewTextLine(face, text, canvas.Left))
		y += lineStepMM
	}

	drawLine(titleFace, fmt.Sprintf("Contrat de location n° %s", data.ContractNumber))
	y += lineStepMM / 2
	drawLine(bodyFace, fmt.Sprintf("Type : %s", data.TypeName))
	drawLine(bodyFace, fmt.Sprintf("Client : %s (%s)", data.CustomerName, data.CustomerEmail))
	drawLine(bodyFace, fmt.Sprintf("Période : du %s au %s", FormatDate(data.StartAt), FormatDate(data.EndAt)))

	if data.PackageName != "" {
		drawLine(bodyFace, fmt.Sprintf("Forfait : %s", data.PackageName))
	}

	if len(data.Dresses) > 0 {
		y += lineStepMM / 2
		drawLine(headingFace, "Articles loués")
		for _, d := range data.Dresses {
			drawLine(bodyFace, fmt.Sprintf("  - %s %s %s — %s", d.Name, d.Size, d.Color, FormatMoney(d.Price)))
		}
	}

	if len(data.Addons) > 0 {
		y += lineStepMM / 2
		drawLine(headingFace, "Options")
		for _, a := range data.Addons {
			if a.IncludedInPackage && data.PackageInclusionApplies() {
				drawLine(bodyFace, fmt.Sprintf("  - %s — inclus au forfait", a.Name))
			} else {
				drawLine(bodyFace, fmt.Sprintf("  - %s — %s", a.Name, FormatMoney(a.Price)))
			}
		}
	}

	y += lineStepMM / 2
	drawLine(headingFace, "Conditions financières")
	drawLine(bodyFace, fmt.Sprintf("  Total HT : %s — Total TTC : %s", FormatMoney(data.Financials.TotalHT), FormatMoney(data.Financials.TotalTTC)))
	drawLine(bodyFace, fmt.Sprintf("  Acompte : %s (réglé : %s)", FormatMoney(data.Financials.AccountAmount), FormatMoney(data.Financials.PaidAccount)))
	drawLine(bodyFace, fmt.Sprintf("  Caution : %s (réglée : %s)", FormatMoney(data.Financials.CautionAmount), FormatMoney(data.Financials.PaidCaution)))

	y += lineStepMM
	switch {
	case data.IncludeSignatureBlock:
		drawLine(headingFace, "Lu et approuvé")
		drawLine(bodyFace, fmt.Sprintf("Fait le %s", FormatDateTime(data.CreatedAt)))
		drawLine(bodyFace, "Signature du client :")
	case data.Signature != nil:
		drawLine(headingFace, "Signature électronique")
		drawLine(bodyFace, fmt.Sprintf("Signé par %s le %s", data.CustomerName, FormatDateTime(data.Signature.SignedAt)))
		drawLine(bodyFace, fmt.Sprintf("Localisation : %s — IP : %s", data.Signature.Location, data.Signature.SignerIP))
		drawLine(bodyFace, fmt.Sprintf("Référence : %s", data.Signature.Reference))
	}

	y += lineStepMM
	drawLine(bodyFace, "Document généré en mode simplifié.")

	out, err := os.CreateTemp(g.tmpDir, "contract_*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	out.Close()
	defer os.Remove(out.Name())

	if err := renderers.Write(out.Name(), c); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}

	return os.ReadFile(out.Name())
}
