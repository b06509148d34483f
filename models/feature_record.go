// Package models defines the feature schema shared by the prediction service and its clients.
package models

// FeatureRecord is the fixed-schema set of car attributes submitted for a
// price prediction. Field declaration order is the canonical column order the
// trained pipeline expects; JSON marshaling preserves it.
type FeatureRecord struct {
	Model            string  `json:"Model"`
	FuelType         string  `json:"Fuel_Type"`
	Color            string  `json:"Color"`
	Age              float64 `json:"Age_08_04"`
	KM               float64 `json:"KM"`
	HP               float64 `json:"HP"`
	Doors            int     `json:"Doors"`
	Gears            int     `json:"Gears"`
	QuarterlyTax     float64 `json:"Quarterly_Tax"`
	Weight           float64 `json:"Weight"`
	CC               float64 `json:"CC"`
	MetColor         int     `json:"Met_Color"`
	Automatic        int     `json:"Automatic"`
	MfrGuarantee     int     `json:"Mfr_Guarantee"`
	BOVAGGuarantee   int     `json:"BOVAG_Guarantee"`
	GuaranteePeriod  int     `json:"Guarantee_Period"`
	ABS              int     `json:"ABS"`
	Airbag1          int     `json:"Airbag_1"`
	Airbag2          int     `json:"Airbag_2"`
	Airco            int     `json:"Airco"`
	AutomaticAirco   int     `json:"Automatic_airco"`
	Boardcomputer    int     `json:"Boardcomputer"`
	CDPlayer         int     `json:"CD_Player"`
	CentralLock      int     `json:"Central_Lock"`
	PoweredWindows   int     `json:"Powered_Windows"`
	PowerSteering    int     `json:"Power_Steering"`
	Radio            int     `json:"Radio"`
	Mistlamps        int     `json:"Mistlamps"`
	SportModel       int     `json:"Sport_Model"`
	BackseatDivider  int     `json:"Backseat_Divider"`
	MetallicRim      int     `json:"Metallic_Rim"`
	RadioCassette    int     `json:"Radio_cassette"`
	ParkingAssistant int     `json:"Parking_Assistant"`
	TowBar           int     `json:"Tow_Bar"`
}

// RequiredFields lists every recognized field name in the canonical order the
// pipeline was trained with. Code derives the field count from this slice.
var RequiredFields = []string{
	"Model", "Fuel_Type", "Color", "Age_08_04", "KM", "HP", "Doors", "Gears",
	"Quarterly_Tax", "Weight", "CC", "Met_Color", "Automatic", "Mfr_Guarantee",
	"BOVAG_Guarantee", "Guarantee_Period", "ABS", "Airbag_1", "Airbag_2", "Airco",
	"Automatic_airco", "Boardcomputer", "CD_Player", "Central_Lock", "Powered_Windows",
	"Power_Steering", "Radio", "Mistlamps", "Sport_Model", "Backseat_Divider",
	"Metallic_Rim", "Radio_cassette", "Parking_Assistant", "Tow_Bar",
}

// CategoricalFields are the free-text fields; everything else is numeric.
var CategoricalFields = []string{"Model", "Fuel_Type", "Color"}

// Defaults maps optional field names to the fallback value a client injects
// when completing a partial record. The service itself never applies defaults.
var Defaults = map[string]float64{
	"Met_Color":         1,
	"Automatic":         0,
	"Mfr_Guarantee":     0,
	"BOVAG_Guarantee":   0,
	"Guarantee_Period":  0,
	"ABS":               1,
	"Airbag_1":          1,
	"Airbag_2":          1,
	"Airco":             1,
	"Automatic_airco":   0,
	"Boardcomputer":     0,
	"CD_Player":         1,
	"Central_Lock":      1,
	"Powered_Windows":   1,
	"Power_Steering":    1,
	"Radio":             1,
	"Mistlamps":         0,
	"Sport_Model":       0,
	"Backseat_Divider":  0,
	"Metallic_Rim":      0,
	"Radio_cassette":    0,
	"Parking_Assistant": 0,
	"Tow_Bar":           0,
}

// IsCategorical reports whether the named field carries a text value.
func IsCategorical(field string) bool {
	for _, f := range CategoricalFields {
		if f == field {
			return true
		}
	}
	return false
}

// IsIntegerField reports whether the named field is integer-typed. Doors,
// Gears, and the equipment flags truncate on assignment; the rest of the
// numeric fields keep fractions.
func IsIntegerField(field string) bool {
	switch field {
	case "Doors", "Gears", "Met_Color", "Automatic", "Mfr_Guarantee",
		"BOVAG_Guarantee", "Guarantee_Period", "ABS", "Airbag_1", "Airbag_2",
		"Airco", "Automatic_airco", "Boardcomputer", "CD_Player", "Central_Lock",
		"Powered_Windows", "Power_Steering", "Radio", "Mistlamps", "Sport_Model",
		"Backseat_Divider", "Metallic_Rim", "Radio_cassette", "Parking_Assistant",
		"Tow_Bar":
		return true
	}
	return false
}

// Categorical returns the record's text value for a categorical field name.
// The second return is false for unknown or non-categorical names.
func (r *FeatureRecord) Categorical(field string) (string, bool) {
	switch field {
	case "Model":
		return r.Model, true
	case "Fuel_Type":
		return r.FuelType, true
	case "Color":
		return r.Color, true
	}
	return "", false
}

// Numeric returns the record's value for a numeric field name. The second
// return is false for unknown or categorical names.
func (r *FeatureRecord) Numeric(field string) (float64, bool) {
	switch field {
	case "Age_08_04":
		return r.Age, true
	case "KM":
		return r.KM, true
	case "HP":
		return r.HP, true
	case "Doors":
		return float64(r.Doors), true
	case "Gears":
		return float64(r.Gears), true
	case "Quarterly_Tax":
		return r.QuarterlyTax, true
	case "Weight":
		return r.Weight, true
	case "CC":
		return r.CC, true
	case "Met_Color":
		return float64(r.MetColor), true
	case "Automatic":
		return float64(r.Automatic), true
	case "Mfr_Guarantee":
		return float64(r.MfrGuarantee), true
	case "BOVAG_Guarantee":
		return float64(r.BOVAGGuarantee), true
	case "Guarantee_Period":
		return float64(r.GuaranteePeriod), true
	case "ABS":
		return float64(r.ABS), true
	case "Airbag_1":
		return float64(r.Airbag1), true
	case "Airbag_2":
		return float64(r.Airbag2), true
	case "Airco":
		return float64(r.Airco), true
	case "Automatic_airco":
		return float64(r.AutomaticAirco), true
	case "Boardcomputer":
		return float64(r.Boardcomputer), true
	case "CD_Player":
		return float64(r.CDPlayer), true
	case "Central_Lock":
		return float64(r.CentralLock), true
	case "Powered_Windows":
		return float64(r.PoweredWindows), true
	case "Power_Steering":
		return float64(r.PowerSteering), true
	case "Radio":
		return float64(r.Radio), true
	case "Mistlamps":
		return float64(r.Mistlamps), true
	case "Sport_Model":
		return float64(r.SportModel), true
	case "Backseat_Divider":
		return float64(r.BackseatDivider), true
	case "Metallic_Rim":
		return float64(r.MetallicRim), true
	case "Radio_cassette":
		return float64(r.RadioCassette), true
	case "Parking_Assistant":
		return float64(r.ParkingAssistant), true
	case "Tow_Bar":
		return float64(r.TowBar), true
	}
	return 0, false
}

// SetCategorical assigns a categorical field by canonical name.
func (r *FeatureRecord) SetCategorical(field, value string) bool {
	switch field {
	case "Model":
		r.Model = value
	case "Fuel_Type":
		r.FuelType = value
	case "Color":
		r.Color = value
	default:
		return false
	}
	return true
}

// SetNumeric assigns a numeric field by canonical name. Integer-typed fields
// truncate toward zero, matching the training-time integer cast.
func (r *FeatureRecord) SetNumeric(field string, value float64) bool {
	switch field {
	case "Age_08_04":
		r.Age = value
	case "KM":
		r.KM = value
	case "HP":
		r.HP = value
	case "Doors":
		r.Doors = int(value)
	case "Gears":
		r.Gears = int(value)
	case "Quarterly_Tax":
		r.QuarterlyTax = value
	case "Weight":
		r.Weight = value
	case "CC":
		r.CC = value
	case "Met_Color":
		r.MetColor = int(value)
	case "Automatic":
		r.Automatic = int(value)
	case "Mfr_Guarantee":
		r.MfrGuarantee = int(value)
	case "BOVAG_Guarantee":
		r.BOVAGGuarantee = int(value)
	case "Guarantee_Period":
		r.GuaranteePeriod = int(value)
	case "ABS":
		r.ABS = int(value)
	case "Airbag_1":
		r.Airbag1 = int(value)
	case "Airbag_2":
		r.Airbag2 = int(value)
	case "Airco":
		r.Airco = int(value)
	case "Automatic_airco":
		r.AutomaticAirco = int(value)
	case "Boardcomputer":
		r.Boardcomputer = int(value)
	case "CD_Player":
		r.CDPlayer = int(value)
	case "Central_Lock":
		r.CentralLock = int(value)
	case "Powered_Windows":
		r.PoweredWindows = int(value)
	case "Power_Steering":
		r.PowerSteering = int(value)
	case "Radio":
		r.Radio = int(value)
	case "Mistlamps":
		r.Mistlamps = int(value)
	case "Sport_Model":
		r.SportModel = int(value)
	case "Backseat_Divider":
		r.BackseatDivider = int(value)
	case "Metallic_Rim":
		r.MetallicRim = int(value)
	case "Radio_cassette":
		r.RadioCassette = int(value)
	case "Parking_Assistant":
		r.ParkingAssistant = int(value)
	case "Tow_Bar":
		r.TowBar = int(value)
	default:
		return false
	}
	return true
}

// Value returns the record's value for any canonical field name, formatted
// the way the wire schema carries it (string for categoricals, float64
// otherwise).
func (r *FeatureRecord) Value(field string) (any, bool) {
	if IsCategorical(field) {
		s, ok := r.Categorical(field)
		return s, ok
	}
	v, ok := r.Numeric(field)
	return v, ok
}
