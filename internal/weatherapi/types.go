package weatherapi

import (
	"fmt"
	"strings"
	"time"
)

// Units selects the measurement system used when rendering a report. The
// forecast payload always carries both systems; units never go on the wire.
type Units string

const (
	UnitsImperial Units = "imperial"
	UnitsMetric   Units = "metric"
)

// ParseUnits normalizes and validates a units value. The empty string is
// valid and means "not specified" so callers can apply their own default.
func ParseUnits(s string) (Units, error) {
	switch Units(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case UnitsImperial:
		return UnitsImperial, nil
	case UnitsMetric:
		return UnitsMetric, nil
	default:
		return "", &InvalidArgumentError{Reason: fmt.Sprintf("unrecognized units %q (expected imperial or metric)", s)}
	}
}

// Query describes a single forecast request: where, and how the result
// should be displayed. It is built once per invocation and discarded.
type Query struct {
	Location string
	Units    Units
}

// Forecast is the subset of the weatherapi.com /v1/forecast.json payload
// that tempy consumes. Field names follow the published schema.
type Forecast struct {
	Location Location `json:"location"`
	Current  Current  `json:"current"`
	Forecast struct {
		Days []ForecastDay `json:"forecastday"`
	} `json:"forecast"`
}

type Location struct {
	Name           string `json:"name"`
	Region         string `json:"region"`
	Country        string `json:"country"`
	LocaltimeEpoch int64  `json:"localtime_epoch"`
}

// Localtime converts the location's epoch into a time.Time. The zone is the
// process-local one, matching what the terminal user expects to read.
func (l Location) Localtime() time.Time {
	return time.Unix(l.LocaltimeEpoch, 0)
}

type Current struct {
	Condition  Condition `json:"condition"`
	IsDay      int       `json:"is_day"`
	TempF      float64   `json:"temp_f"`
	TempC      float64   `json:"temp_c"`
	WindMPH    float64   `json:"wind_mph"`
	WindKPH    float64   `json:"wind_kph"`
	WindDir    string    `json:"wind_dir"`
	PressureIn float64   `json:"pressure_in"`
	PressureMB float64   `json:"pressure_mb"`
	PrecipIn   float64   `json:"precip_in"`
	PrecipMM   float64   `json:"precip_mm"`
	VisMiles   float64   `json:"vis_miles"`
	VisKM      float64   `json:"vis_km"`
	Humidity   int       `json:"humidity"`
	Cloud      int       `json:"cloud"`
	UV         float64   `json:"uv"`
}

type Condition struct {
	Text string `json:"text"`
	Code int    `json:"code"`
}

type ForecastDay struct {
	Date      string `json:"date"`
	DateEpoch int64  `json:"date_epoch"`
	Day       Day    `json:"day"`
}

type Day struct {
	Condition     Condition `json:"condition"`
	AvgTempF      float64   `json:"avgtemp_f"`
	AvgTempC      float64   `json:"avgtemp_c"`
	MinTempF      float64   `json:"mintemp_f"`
	MinTempC      float64   `json:"mintemp_c"`
	MaxTempF      float64   `json:"maxtemp_f"`
	MaxTempC      float64   `json:"maxtemp_c"`
	MaxWindMPH    float64   `json:"maxwind_mph"`
	MaxWindKPH    float64   `json:"maxwind_kph"`
	TotalPrecipIn float64   `json:"totalprecip_in"`
	TotalPrecipMM float64   `json:"totalprecip_mm"`
	AvgVisMiles   float64   `json:"avgvis_miles"`
	AvgVisKM      float64   `json:"avgvis_km"`
	ChanceOfRain  int       `json:"daily_chance_of_rain"`
	ChanceOfSnow  int       `json:"daily_chance_of_snow"`
	UV            float64   `json:"uv"`
}

// apiError is the error envelope weatherapi.com returns on non-200 statuses.
type apiErrorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
