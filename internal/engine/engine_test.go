package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hajorau/saveenergy/internal/domain"
)

func referenceInputs() domain.CalcInputs {
	return domain.CalcInputs{
		RoomLabel:           "Halle 3",
		HeatRecovery:        true,
		FlowM3h:             1000,
		ElectricityPriceEUR: 0.30,
		HeatPriceEUR:        0.10,
		HoursReductionPerD:  2,
		OperatingDaysPerA:   250,
	}
}

func TestComputeReferenceVector(t *testing.T) {
	t.Parallel()

	out := Compute(referenceInputs())

	// 500 annual hours: electricity 0.4*1000*2*500/1000 = 400,
	// heat 0.34*1000*8.5*0.5*500/1000 = 722.5 -> 723,
	// cost 722.5*0.10 + 400*0.30 = 192.25 -> 192,
	// co2 (400*560 + 722.5*300)/1e6 = 0.44075 -> 0.44.
	require.Equal(t, 400.0, out.ElectricityKWhPerA)
	require.Equal(t, 723.0, out.HeatKWhPerA)
	require.Equal(t, 192.0, out.CostEURPerA)
	require.Equal(t, 0.44, out.CO2TonnesPerA)
}

func TestComputeDeterministic(t *testing.T) {
	t.Parallel()

	in := referenceInputs()
	first := Compute(in)
	for range 10 {
		require.Equal(t, first, Compute(in))
	}
}

func TestHeatRecoveryToggleIncreasesHeat(t *testing.T) {
	t.Parallel()

	with := referenceInputs()
	without := referenceInputs()
	without.HeatRecovery = false

	outWith := Compute(with)
	outWithout := Compute(without)

	require.Greater(t, outWithout.HeatKWhPerA, outWith.HeatKWhPerA)
	// Recovery fraction drops from 0.5 to 0, doubling the heat term.
	require.Equal(t, 2*722.5, outWithout.HeatKWhPerA)
	// Electricity does not depend on the flag.
	require.Equal(t, outWith.ElectricityKWhPerA, outWithout.ElectricityKWhPerA)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*domain.CalcInputs)
		field  string
	}{
		{"zero flow", func(in *domain.CalcInputs) { in.FlowM3h = 0 }, "vdot_m3h"},
		{"negative flow", func(in *domain.CalcInputs) { in.FlowM3h = -5 }, "vdot_m3h"},
		{"zero electricity price", func(in *domain.CalcInputs) { in.ElectricityPriceEUR = 0 }, "strompreis_eur_kwh"},
		{"zero heat price", func(in *domain.CalcInputs) { in.HeatPriceEUR = 0 }, "waermepreis_eur_kwh"},
		{"zero hours reduction", func(in *domain.CalcInputs) { in.HoursReductionPerD = 0 }, "zeitreduktion_h_d"},
		{"zero operating days", func(in *domain.CalcInputs) { in.OperatingDaysPerA = 0 }, "betriebstage_d_a"},
		{"too many operating days", func(in *domain.CalcInputs) { in.OperatingDaysPerA = 367 }, "betriebstage_d_a"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := referenceInputs()
			tc.mutate(&in)

			err := Validate(in)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.field, verr.Field)
		})
	}

	t.Run("valid inputs pass", func(t *testing.T) {
		require.NoError(t, Validate(referenceInputs()))
	})

	t.Run("leap year day count accepted", func(t *testing.T) {
		in := referenceInputs()
		in.OperatingDaysPerA = 366
		require.NoError(t, Validate(in))
	})
}
