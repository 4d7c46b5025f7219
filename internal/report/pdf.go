// Package report formats stored calculations for export. It makes no
// decisions about the data; everything it renders comes verbatim from the
// record.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/hajorau/saveenergy/internal/domain"
)

// RenderPDF writes a single-page A4 report for one calculation record.
func RenderPDF(w io.Writer, calc domain.Calculation) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("SaveEnergy – Berechnungsbericht"), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8,
		fmt.Sprintf("ID: %d   Datum: %s", calc.ID, calc.CreatedAt.Format(time.RFC3339)),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeSection(pdf, tr, "Eingaben", inputLines(calc.Inputs))
	pdf.Ln(4)
	writeSection(pdf, tr, "Ergebnisse", outputLines(calc.Outputs))

	return pdf.Output(w)
}

func writeSection(pdf *fpdf.Fpdf, tr func(string) string, title string, lines []string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range lines {
		pdf.SetX(pdf.GetX() + 4)
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
}

func inputLines(in domain.CalcInputs) []string {
	wrg := "nein"
	if in.HeatRecovery {
		wrg = "ja"
	}

	lines := []string{}
	if in.RoomLabel != "" {
		lines = append(lines, "Raum/Anlage: "+in.RoomLabel)
	}
	return append(lines,
		"Volumenstrom: "+formatFloat(in.FlowM3h)+" m³/h",
		"WRG vorhanden: "+wrg,
		"Strompreis: "+formatFloat(in.ElectricityPriceEUR)+" €/kWh",
		"Wärmepreis: "+formatFloat(in.HeatPriceEUR)+" €/kWh",
		"Zeitreduktion: "+formatFloat(in.HoursReductionPerD)+" h/d",
		"Betriebstage: "+strconv.Itoa(in.OperatingDaysPerA)+" d/a",
	)
}

func outputLines(out domain.CalcOutputs) []string {
	return []string{
		"Einsparung Wärme: " + formatFloat(out.HeatKWhPerA) + " kWh/a",
		"Einsparung Strom: " + formatFloat(out.ElectricityKWhPerA) + " kWh/a",
		"Kosteneinsparung: " + formatFloat(out.CostEURPerA) + " €/a",
		"CO2-Einsparung: " + formatFloat(out.CO2TonnesPerA) + " t CO2e",
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
