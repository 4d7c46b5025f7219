package domain

import "time"

// CalcInputs are the user-submitted parameters of one calculation. The JSON
// field names are the wire format shared with the frontend and the CSV
// export, so they stay in German.
type CalcInputs struct {
	RoomLabel           string  `json:"raum_anlage,omitempty"`
	HeatRecovery        bool    `json:"wrg_vorhanden"`
	FlowM3h             float64 `json:"vdot_m3h"`
	ElectricityPriceEUR float64 `json:"strompreis_eur_kwh"`
	HeatPriceEUR        float64 `json:"waermepreis_eur_kwh"`
	HoursReductionPerD  float64 `json:"zeitreduktion_h_d"`
	OperatingDaysPerA   int     `json:"betriebstage_d_a"`
}

// CalcOutputs are the derived annual savings. They are computed exactly once
// when the record is created and never recomputed from the stored inputs.
type CalcOutputs struct {
	HeatKWhPerA        float64 `json:"waerme_kwh_a"`
	ElectricityKWhPerA float64 `json:"strom_kwh_a"`
	CostEURPerA        float64 `json:"euro_a"`
	CO2TonnesPerA      float64 `json:"co2_t"`
}

// Calculation is one stored record, owned by exactly one user. Records are
// read-only after creation; only the bulk admin reset removes them.
type Calculation struct {
	ID        int64
	UserID    int64
	Inputs    CalcInputs
	Outputs   CalcOutputs
	CreatedAt time.Time
}
