package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/hajorau/saveenergy/internal/domain"
)

// csvHeader is the fixed export schema. The column count never varies;
// missing optional fields render as empty cells.
var csvHeader = []string{
	"id", "created_at",
	"raum_anlage", "wrg_vorhanden",
	"vdot_m3h", "strompreis_eur_kwh", "waermepreis_eur_kwh",
	"zeitreduktion_h_d", "betriebstage_d_a",
	"waerme_kwh_a", "strom_kwh_a", "euro_a", "co2_t",
}

// RenderCSV writes all records as semicolon-delimited CSV, one row per
// calculation, in the order given.
func RenderCSV(w io.Writer, calcs []domain.Calculation) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, c := range calcs {
		row := []string{
			strconv.FormatInt(c.ID, 10),
			c.CreatedAt.Format(time.RFC3339),
			c.Inputs.RoomLabel,
			strconv.FormatBool(c.Inputs.HeatRecovery),
			formatFloat(c.Inputs.FlowM3h),
			formatFloat(c.Inputs.ElectricityPriceEUR),
			formatFloat(c.Inputs.HeatPriceEUR),
			formatFloat(c.Inputs.HoursReductionPerD),
			strconv.Itoa(c.Inputs.OperatingDaysPerA),
			formatFloat(c.Outputs.HeatKWhPerA),
			formatFloat(c.Outputs.ElectricityKWhPerA),
			formatFloat(c.Outputs.CostEURPerA),
			formatFloat(c.Outputs.CO2TonnesPerA),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
