// Package engine evaluates the fixed energy-savings formula. It is pure:
// no I/O, no clock, no state. Identical inputs always produce identical
// outputs, which is what lets stored records keep their outputs verbatim.
package engine

import (
	"fmt"
	"math"

	"github.com/hajorau/saveenergy/internal/domain"
)

// Physical and economic constants. These are deliberately not configurable,
// the formula is the product.
const (
	supplyTempC          = 18.0 // T_ZUL
	meanOutdoorTempC     = 9.5  // T_AUSSEN_M
	fanSpecificPower     = 0.4  // SEP, W per (m³/h)
	airHeatCapacity      = 0.34 // Wh/(m³·K)
	fanCount             = 2
	heatRecoveryFraction = 0.5

	// Emission factors in g CO2e per kWh.
	electricityEmission  = 560.0
	districtHeatEmission = 300.0
)

// ValidationError reports an out-of-range or missing input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Reason)
}

// Validate enforces the input constraints the API layer must check before
// calling Compute.
func Validate(in domain.CalcInputs) error {
	if in.FlowM3h <= 0 {
		return &ValidationError{Field: "vdot_m3h", Reason: "must be greater than zero"}
	}
	if in.ElectricityPriceEUR <= 0 {
		return &ValidationError{Field: "strompreis_eur_kwh", Reason: "must be greater than zero"}
	}
	if in.HeatPriceEUR <= 0 {
		return &ValidationError{Field: "waermepreis_eur_kwh", Reason: "must be greater than zero"}
	}
	if in.HoursReductionPerD <= 0 {
		return &ValidationError{Field: "zeitreduktion_h_d", Reason: "must be greater than zero"}
	}
	if in.OperatingDaysPerA < 1 || in.OperatingDaysPerA > 366 {
		return &ValidationError{Field: "betriebstage_d_a", Reason: "must be between 1 and 366"}
	}
	return nil
}

// Compute maps validated inputs to annual savings. Cost and CO2 are derived
// from the unrounded energy figures; rounding happens once at the end.
func Compute(in domain.CalcInputs) domain.CalcOutputs {
	hours := in.HoursReductionPerD * float64(in.OperatingDaysPerA)

	recovery := 0.0
	if in.HeatRecovery {
		recovery = heatRecoveryFraction
	}

	electricity := fanSpecificPower * in.FlowM3h * fanCount * hours / 1000

	deltaT := supplyTempC - meanOutdoorTempC
	heat := airHeatCapacity * in.FlowM3h * deltaT * (1 - recovery) * hours / 1000

	cost := heat*in.HeatPriceEUR + electricity*in.ElectricityPriceEUR

	co2 := (electricity*electricityEmission + heat*districtHeatEmission) / 1_000_000

	return domain.CalcOutputs{
		HeatKWhPerA:        math.Round(heat),
		ElectricityKWhPerA: math.Round(electricity),
		CostEURPerA:        math.Round(cost),
		CO2TonnesPerA:      math.Round(co2*100) / 100,
	}
}
