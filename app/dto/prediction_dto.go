// Package dto contains Data Transfer Objects for API request and response structures
package dto

import "github.com/pricewise/corolla-pricer/models"

// APIResponse represents the standard envelope for error and status responses.
// Prediction successes use the fixed shapes below instead, which existing
// consumers parse positionally.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty" validate:"omitempty"`
	Error   any    `json:"error,omitempty" validate:"omitempty"`
}

// ErrorDetail represents error details in API responses
type ErrorDetail struct {
	Code    string `json:"code"`
	Details any    `json:"details,omitempty" validate:"omitempty"`
}

// PredictResponse is the fixed success shape of POST /predict.
type PredictResponse struct {
	PredictedPrice float64 `json:"predicted_price"`
}

// BatchPredictResponse is the fixed success shape of POST /predict_batch.
// PredictedPrices is positionally aligned with the submitted records.
type BatchPredictResponse struct {
	PredictedPrices []float64 `json:"predicted_prices"`
}

// PredictRequest mirrors the feature schema with pointer fields so that a
// field absent from the request body is distinguishable from a zero value.
// Every recognized field is required; the service fills no defaults.
type PredictRequest struct {
	Model            *string  `json:"Model" validate:"required"`
	FuelType         *string  `json:"Fuel_Type" validate:"required"`
	Color            *string  `json:"Color" validate:"required"`
	Age              *float64 `json:"Age_08_04" validate:"required"`
	KM               *float64 `json:"KM" validate:"required"`
	HP               *float64 `json:"HP" validate:"required"`
	Doors            *int     `json:"Doors" validate:"required"`
	Gears            *int     `json:"Gears" validate:"required"`
	QuarterlyTax     *float64 `json:"Quarterly_Tax" validate:"required"`
	Weight           *float64 `json:"Weight" validate:"required"`
	CC               *float64 `json:"CC" validate:"required"`
	MetColor         *int     `json:"Met_Color" validate:"required"`
	Automatic        *int     `json:"Automatic" validate:"required"`
	MfrGuarantee     *int     `json:"Mfr_Guarantee" validate:"required"`
	BOVAGGuarantee   *int     `json:"BOVAG_Guarantee" validate:"required"`
	GuaranteePeriod  *int     `json:"Guarantee_Period" validate:"required"`
	ABS              *int     `json:"ABS" validate:"required"`
	Airbag1          *int     `json:"Airbag_1" validate:"required"`
	Airbag2          *int     `json:"Airbag_2" validate:"required"`
	Airco            *int     `json:"Airco" validate:"required"`
	AutomaticAirco   *int     `json:"Automatic_airco" validate:"required"`
	Boardcomputer    *int     `json:"Boardcomputer" validate:"required"`
	CDPlayer         *int     `json:"CD_Player" validate:"required"`
	CentralLock      *int     `json:"Central_Lock" validate:"required"`
	PoweredWindows   *int     `json:"Powered_Windows" validate:"required"`
	PowerSteering    *int     `json:"Power_Steering" validate:"required"`
	Radio            *int     `json:"Radio" validate:"required"`
	Mistlamps        *int     `json:"Mistlamps" validate:"required"`
	SportModel       *int     `json:"Sport_Model" validate:"required"`
	BackseatDivider  *int     `json:"Backseat_Divider" validate:"required"`
	MetallicRim      *int     `json:"Metallic_Rim" validate:"required"`
	RadioCassette    *int     `json:"Radio_cassette" validate:"required"`
	ParkingAssistant *int     `json:"Parking_Assistant" validate:"required"`
	TowBar           *int     `json:"Tow_Bar" validate:"required"`
}

// ToRecord converts a validated request into the concrete feature record the
// pipeline consumes. Call only after validation has established that every
// field is present.
func (r *PredictRequest) ToRecord() models.FeatureRecord {
	return models.FeatureRecord{
		Model:            deref(r.Model),
		FuelType:         deref(r.FuelType),
		Color:            deref(r.Color),
		Age:              deref(r.Age),
		KM:               deref(r.KM),
		HP:               deref(r.HP),
		Doors:            deref(r.Doors),
		Gears:            deref(r.Gears),
		QuarterlyTax:     deref(r.QuarterlyTax),
		Weight:           deref(r.Weight),
		CC:               deref(r.CC),
		MetColor:         deref(r.MetColor),
		Automatic:        deref(r.Automatic),
		MfrGuarantee:     deref(r.MfrGuarantee),
		BOVAGGuarantee:   deref(r.BOVAGGuarantee),
		GuaranteePeriod:  deref(r.GuaranteePeriod),
		ABS:              deref(r.ABS),
		Airbag1:          deref(r.Airbag1),
		Airbag2:          deref(r.Airbag2),
		Airco:            deref(r.Airco),
		AutomaticAirco:   deref(r.AutomaticAirco),
		Boardcomputer:    deref(r.Boardcomputer),
		CDPlayer:         deref(r.CDPlayer),
		CentralLock:      deref(r.CentralLock),
		PoweredWindows:   deref(r.PoweredWindows),
		PowerSteering:    deref(r.PowerSteering),
		Radio:            deref(r.Radio),
		Mistlamps:        deref(r.Mistlamps),
		SportModel:       deref(r.SportModel),
		BackseatDivider:  deref(r.BackseatDivider),
		MetallicRim:      deref(r.MetallicRim),
		RadioCassette:    deref(r.RadioCassette),
		ParkingAssistant: deref(r.ParkingAssistant),
		TowBar:           deref(r.TowBar),
	}
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
