// Package chart renders the season rank history as a PNG line chart.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/pfrederiksen/golf-league/internal/scoring"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	width  = 1000
	height = 500
)

// ErrNoHistory is returned when there is nothing to draw
var ErrNoHistory = errors.New("no tournaments to chart")

// RankHistory draws one line per team with the tournaments in season order along the
// x axis and rank on the y axis, rank 1 at the top. tournaments labels the x axis.
func RankHistory(history map[string][]scoring.HistoryPoint, teams, tournaments []string) ([]byte, error) {
	if len(teams) == 0 || len(tournaments) == 0 {
		return nil, ErrNoHistory
	}

	series := make([]chart.Series, 0, len(teams))
	for i, team := range teams {
		points := history[team]
		if len(points) == 0 {
			continue
		}
		xs := make([]float64, len(points))
		ys := make([]float64, len(points))
		for j, p := range points {
			xs[j] = float64(j + 1)
			ys[j] = float64(p.Rank)
		}
		color := chart.GetDefaultColor(i)
		series = append(series, chart.ContinuousSeries{
			Name:    team,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    4,
			},
		})
	}

	if len(series) == 0 {
		return nil, ErrNoHistory
	}

	ranks := make([]string, len(teams))
	for i := range teams {
		ranks[i] = strconv.Itoa(i + 1)
	}
	xTicks := axisTicks(tournaments)
	yTicks := axisTicks(ranks)

	graph := chart.Chart{
		Title:  "Season rank by tournament",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Tournament",
			Ticks: xTicks,
			// half a step of padding either side
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(len(tournaments)) + 0.5},
		},
		YAxis: chart.YAxis{
			Name:  "Rank",
			Ticks: yTicks,
			Range: &chart.ContinuousRange{
				Min:        0.5,
				Max:        float64(len(teams)) + 0.5,
				Descending: true,
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering rank chart: %w", err)
	}
	return buf.Bytes(), nil
}

// axisTicks places one labelled tick per value at 1..n. The renderer takes the axis
// range from the ticks, so unlabelled ticks at 0.5 and n+0.5 keep a single value from
// collapsing the axis to zero width.
func axisTicks(labels []string) []chart.Tick {
	ticks := make([]chart.Tick, 0, len(labels)+2)
	ticks = append(ticks, chart.Tick{Value: 0.5})
	for i, label := range labels {
		ticks = append(ticks, chart.Tick{Value: float64(i + 1), Label: label})
	}
	return append(ticks, chart.Tick{Value: float64(len(labels)) + 0.5})
}
