package report

import (
	"math"
	"strconv"
	"time"

	"github.com/noprobelm/tempy/internal/weatherapi"
)

// Row is one label/value line of a weather table.
type Row struct {
	Label string
	Value string
}

// Table is a titled list of rows, rendered with a divider between the
// label and value columns.
type Table struct {
	Title string
	Rows  []Row
}

// Report is the display-ready form of a forecast: every value is already a
// formatted string in the requested unit system. It carries no behavior of
// its own; Render turns it into terminal output.
type Report struct {
	Location  string
	Localtime time.Time
	Condition string
	IsDay     bool
	Current   Table
	Forecast  []Table
}

// Build maps an API forecast onto a Report in the given unit system. The
// first forecast table is titled for today; later days are titled with
// their weekday and date. Missing forecast days simply produce fewer
// tables, never an error.
func Build(fc *weatherapi.Forecast, units weatherapi.Units) *Report {
	localtime := fc.Location.Localtime()

	location := fc.Location.Name
	if fc.Location.Region != "" {
		location += ", " + fc.Location.Region
	}

	r := &Report{
		Location:  location,
		Localtime: localtime,
		Condition: fc.Current.Condition.Text,
		IsDay:     fc.Current.IsDay == 1,
		Current:   currentTable(&fc.Current, units),
	}

	for i, day := range fc.Forecast.Days {
		title := "Today's Forecast"
		if i > 0 {
			title = localtime.AddDate(0, 0, i).Format("Monday, January 2")
		}
		r.Forecast = append(r.Forecast, dayTable(&day.Day, units, title))
	}

	return r
}

// Header returns the report's first line: the resolved location name.
func (r *Report) Header() string { return r.Location }

// LocaltimeHeader returns the report's second line, e.g.
// "Saturday, July 8 | 17:00".
func (r *Report) LocaltimeHeader() string {
	return r.Localtime.Format("Monday, January 2 | 15:04")
}

func currentTable(c *weatherapi.Current, units weatherapi.Units) Table {
	var rows []Row
	if units == weatherapi.UnitsMetric {
		rows = []Row{
			{"Temperature", num(c.TempC) + "°C"},
			{"Wind", num(c.WindKPH) + " kph " + c.WindDir},
			{"Pressure", strconv.Itoa(int(c.PressureMB)) + " mbar"},
			{"Precipitation", num(c.PrecipMM) + " mm"},
			{"Visibility", num(c.VisKM) + " km"},
			{"Humidity", strconv.Itoa(c.Humidity) + "%"},
			{"Cloud Cover", strconv.Itoa(c.Cloud) + "%"},
			{"UV Index", num(c.UV)},
		}
	} else {
		rows = []Row{
			{"Temperature", num(c.TempF) + "°F"},
			{"Wind", num(c.WindMPH) + " mph " + c.WindDir},
			{"Pressure", num(c.PressureIn) + " inHg"},
			{"Precipitation", num(c.PrecipIn) + " in"},
			{"Visibility", num(c.VisMiles) + " mi"},
			{"Humidity", strconv.Itoa(c.Humidity) + "%"},
			{"Cloud Cover", strconv.Itoa(c.Cloud) + "%"},
			{"UV Index", num(c.UV)},
		}
	}
	return Table{Title: "Current Conditions", Rows: rows}
}

func dayTable(d *weatherapi.Day, units weatherapi.Units, title string) Table {
	var rows []Row
	if units == weatherapi.UnitsMetric {
		rows = []Row{
			{"Average", num(d.AvgTempC) + "°C"},
			{"Low", num(d.MinTempC) + "°C"},
			{"High", num(d.MaxTempC) + "°C"},
			{"Gusts", num(d.MaxWindKPH) + " kph"},
			{"Total Precipitation", num(d.TotalPrecipMM) + " mm"},
			{"Average Visibility", num(d.AvgVisKM) + " km"},
			{"Chance of Rain", strconv.Itoa(d.ChanceOfRain) + "%"},
			{"Chance of Snow", strconv.Itoa(d.ChanceOfSnow) + "%"},
			{"UV Index", num(d.UV)},
		}
	} else {
		rows = []Row{
			{"Average", num(d.AvgTempF) + "°F"},
			{"Low", num(d.MinTempF) + "°F"},
			{"High", num(d.MaxTempF) + "°F"},
			{"Gusts", num(d.MaxWindMPH) + " mph"},
			{"Total Precipitation", num(d.TotalPrecipIn) + " in"},
			{"Average Visibility", num(d.AvgVisMiles) + " mi"},
			{"Chance of Rain", strconv.Itoa(d.ChanceOfRain) + "%"},
			{"Chance of Snow", strconv.Itoa(d.ChanceOfSnow) + "%"},
			{"UV Index", num(d.UV)},
		}
	}
	return Table{Title: title, Rows: rows}
}

// num formats an API float the way the feed presents it: whole numbers keep
// one decimal ("72.0"), everything else prints at its shortest ("72.25").
func num(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
