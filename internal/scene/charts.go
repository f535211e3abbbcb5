package scene

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/aerolab-data/windtunnel/internal/foam"
)

// CoefficientHistoryHTML renders the force-coefficient time series as an
// interactive line chart. One series per coefficient, x axis in solver time
// steps.
func CoefficientHistoryHTML(w io.Writer, rows []foam.Coefficients) error {
	if len(rows) == 0 {
		return fmt.Errorf("coefficient chart: empty time series")
	}

	x := make([]string, len(rows))
	series := map[string][]opts.LineData{
		"Moment":     make([]opts.LineData, len(rows)),
		"Drag":       make([]opts.LineData, len(rows)),
		"Lift":       make([]opts.LineData, len(rows)),
		"Front Lift": make([]opts.LineData, len(rows)),
		"Rear Lift":  make([]opts.LineData, len(rows)),
	}
	for i, row := range rows {
		x[i] = fmt.Sprintf("%g", row.TimeStep)
		series["Moment"][i] = opts.LineData{Value: row.Moment}
		series["Drag"][i] = opts.LineData{Value: row.Drag}
		series["Lift"][i] = opts.LineData{Value: row.Lift}
		series["Front Lift"][i] = opts.LineData{Value: row.FrontLift}
		series["Rear Lift"][i] = opts.LineData{Value: row.RearLift}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Force Coefficients",
			Width:     "1100px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Force Coefficient Convergence",
			Subtitle: fmt.Sprintf("%d time steps", len(rows)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "time step"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "coefficient"}),
	)

	line.SetXAxis(x)
	// Fixed order so the legend is stable across renders.
	for _, name := range []string{"Moment", "Drag", "Lift", "Front Lift", "Rear Lift"} {
		line.AddSeries(name, series[name],
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		)
	}

	return line.Render(w)
}
