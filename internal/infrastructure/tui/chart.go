package tui

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// chartSpec is the subset of the chart.js-style configuration the terminal
// renderer understands. Everything else in the blob is ignored.
type chartSpec struct {
	Type string `json:"type"`
	Data struct {
		Labels   []string `json:"labels"`
		Datasets []struct {
			Label string    `json:"label"`
			Data  []float64 `json:"data"`
		} `json:"datasets"`
	} `json:"data"`
	Options struct {
		Title string `json:"title"`
	} `json:"options"`
}

// BarChartRenderer implements ports.ChartRenderer with horizontal unicode
// bars. A specification it cannot interpret is a rendering error; the view
// replaces the chart cell with an error indicator and leaves the rest of
// the message intact.
type BarChartRenderer struct {
	styles Styles
	width  int // bar area width in cells
}

// NewBarChartRenderer creates a chart renderer.
func NewBarChartRenderer(styles Styles, width int) *BarChartRenderer {
	if width <= 0 {
		width = 30
	}
	return &BarChartRenderer{styles: styles, width: width}
}

// RenderChart draws the specification as labeled bars.
func (r *BarChartRenderer) RenderChart(raw json.RawMessage) (string, error) {
	var spec chartSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return "", fmt.Errorf("parsing chart spec: %w", err)
	}
	if len(spec.Data.Labels) == 0 || len(spec.Data.Datasets) == 0 {
		return "", fmt.Errorf("chart spec missing labels or datasets")
	}
	values := spec.Data.Datasets[0].Data
	if len(values) != len(spec.Data.Labels) {
		return "", fmt.Errorf("chart spec has %d labels but %d values",
			len(spec.Data.Labels), len(values))
	}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		max = 1
	}

	labelWidth := 0
	for _, label := range spec.Data.Labels {
		if n := utf8.RuneCountInString(label); n > labelWidth {
			labelWidth = n
		}
	}

	var sb strings.Builder
	if title := chartTitle(spec); title != "" {
		sb.WriteString(r.styles.Header.Render(title) + "\n")
	}
	for i, label := range spec.Data.Labels {
		bar := int(values[i] / max * float64(r.width))
		if bar < 1 && values[i] > 0 {
			bar = 1
		}
		if bar < 0 {
			bar = 0
		}
		if bar > r.width {
			bar = r.width
		}
		pad := strings.Repeat(" ", labelWidth-utf8.RuneCountInString(label))
		sb.WriteString(fmt.Sprintf("%s %s %v\n",
			r.styles.ChartLabel.Render(pad+label),
			r.styles.ChartBar.Render(strings.Repeat("█", bar)),
			values[i],
		))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func chartTitle(spec chartSpec) string {
	if spec.Options.Title != "" {
		return spec.Options.Title
	}
	return spec.Data.Datasets[0].Label
}
