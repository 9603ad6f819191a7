package geometry

import (
	"bytes"
	"fmt"
	"regexp"
	"text/template"
)

// ViewBox is the coordinate space of the exported chart.
const ViewBox = 100

// ChartStyle controls the colours of the SVG chart.
type ChartStyle struct {
	Stroke string
	Fill   string
	Width  string
	Height string
}

// DefaultChartStyle matches the dashboard's indigo accent.
func DefaultChartStyle() ChartStyle {
	return ChartStyle{
		Stroke: "#6366f1",
		Fill:   "#6366f1",
		Width:  "100%",
		Height: "100%",
	}
}

var (
	colorPattern  = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+|(rgb|rgba|hsl|hsla)\([0-9.,% ]+\))$`)
	lengthPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?(%|px|em)?$`)
)

// ValidColor reports whether s is a hex colour, a named colour or an
// rgb()/hsl() function that can be placed in an SVG attribute as is.
func ValidColor(s string) bool {
	return colorPattern.MatchString(s)
}

// Validate rejects style values that are not plain colours or lengths.
// They are interpolated into attributes unescaped.
func (s ChartStyle) Validate() error {
	for _, c := range []struct{ name, value string }{{"stroke", s.Stroke}, {"fill", s.Fill}} {
		if !ValidColor(c.value) {
			return fmt.Errorf("invalid %s colour %q", c.name, c.value)
		}
	}
	for _, l := range []struct{ name, value string }{{"width", s.Width}, {"height", s.Height}} {
		if !lengthPattern.MatchString(l.value) {
			return fmt.Errorf("invalid %s %q", l.name, l.value)
		}
	}
	return nil
}

var chartTemplate = template.Must(template.New("chart").Parse(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 {{.Box}} {{.Box}}" preserveAspectRatio="none" width="{{.Style.Width}}" height="{{.Style.Height}}">
  <defs>
    <linearGradient id="gradient" x1="0" y1="0" x2="0" y2="1">
      <stop offset="0%" stop-color="{{.Style.Fill}}" stop-opacity="0.2"/>
      <stop offset="100%" stop-color="{{.Style.Fill}}" stop-opacity="0"/>
    </linearGradient>
  </defs>
  <path d="{{.Area}}" fill="url(#gradient)"/>
  <path d="{{.Line}}" fill="none" stroke="{{.Style.Stroke}}" stroke-width="2" vector-effect="non-scaling-stroke" stroke-linecap="round" stroke-linejoin="round"/>
</svg>
`))

// Document renders points as a standalone SVG chart: a gradient-filled
// area under a smoothed stroke, stretched to fill its container.
func Document(points []float64, style ChartStyle) ([]byte, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	data := struct {
		Box   int
		Style ChartStyle
		Line  string
		Area  string
	}{
		Box:   ViewBox,
		Style: style,
		Line:  Smooth(points, ViewBox, ViewBox).SVG(),
		Area:  Area(points, ViewBox, ViewBox).SVG(),
	}

	var buf bytes.Buffer
	if err := chartTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	return buf.Bytes(), nil
}
