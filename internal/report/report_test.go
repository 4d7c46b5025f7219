package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hajorau/saveenergy/internal/domain"
)

func sampleCalculation(id int64) domain.Calculation {
	return domain.Calculation{
		ID:     id,
		UserID: 1,
		Inputs: domain.CalcInputs{
			RoomLabel:           "Halle 3",
			HeatRecovery:        true,
			FlowM3h:             1000,
			ElectricityPriceEUR: 0.30,
			HeatPriceEUR:        0.10,
			HoursReductionPerD:  2,
			OperatingDaysPerA:   250,
		},
		Outputs: domain.CalcOutputs{
			HeatKWhPerA:        723,
			ElectricityKWhPerA: 400,
			CostEURPerA:        192,
			CO2TonnesPerA:      0.44,
		},
		CreatedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestRenderPDF(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, sampleCalculation(7)))

	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	require.Greater(t, buf.Len(), 500)
}

func TestRenderCSVSchema(t *testing.T) {
	t.Parallel()

	calcs := []domain.Calculation{sampleCalculation(2), sampleCalculation(1)}

	var buf bytes.Buffer
	require.NoError(t, RenderCSV(&buf, calcs))

	r := csv.NewReader(&buf)
	r.Comma = ';'
	rows, err := r.ReadAll()
	require.NoError(t, err)

	// Header plus one row per record.
	require.Len(t, rows, 3)
	require.Equal(t, csvHeader, rows[0])
	require.Equal(t, "2", rows[1][0])
	require.Equal(t, "1", rows[2][0])

	for _, row := range rows {
		require.Len(t, row, 13)
	}

	require.Equal(t, "Halle 3", rows[1][2])
	require.Equal(t, "true", rows[1][3])
	require.Equal(t, "1000", rows[1][4])
	require.Equal(t, "0.44", rows[1][12])
}

func TestRenderCSVEmptyOptionalFields(t *testing.T) {
	t.Parallel()

	c := sampleCalculation(1)
	c.Inputs.RoomLabel = ""
	c.Inputs.HeatRecovery = false

	var buf bytes.Buffer
	require.NoError(t, RenderCSV(&buf, []domain.Calculation{c}))

	r := csv.NewReader(&buf)
	r.Comma = ';'
	rows, err := r.ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 2)
	require.Len(t, rows[1], 13)
	require.Empty(t, rows[1][2])
	require.Equal(t, "false", rows[1][3])
}

func TestRenderCSVNoRecords(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderCSV(&buf, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1) // header only
}
