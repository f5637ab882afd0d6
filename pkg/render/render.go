package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/google/uuid"
	"github.com/raykavin/gochartjs/pkg/logger"
	"github.com/raykavin/gochartjs/pkg/style"
)

// Templates and the chart bootstrap script embedded in the binary
var (
	//go:embed assets
	assets embed.FS
)

// CDN locations of chart.js and of the date adapter time axes need.
const (
	ChartJSURL     = "https://cdn.jsdelivr.net/npm/chart.js@4.4.4/dist/chart.umd.min.js"
	DateAdapterURL = "https://cdn.jsdelivr.net/npm/chartjs-adapter-date-fns@3.0.0/dist/chartjs-adapter-date-fns.bundle.min.js"
)

// Chart is a serialized chart configuration bound to a canvas.
type Chart struct {
	TargetID string
	Width    style.Size
	Height   style.Size
	Config   json.RawMessage
}

// NewChart serializes config and assigns the chart a fresh canvas id.
func NewChart(config json.Marshaler, width, height style.Size) (*Chart, error) {
	data, err := config.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return &Chart{
		TargetID: "chart-" + uuid.NewString(),
		Width:    width,
		Height:   height,
		Config:   data,
	}, nil
}

// Render writes the chart snippet with the default renderer.
func (c *Chart) Render(w io.Writer) error {
	r, err := defaultRenderer()
	if err != nil {
		return err
	}
	return r.Chart(w, c)
}

// String returns the chart snippet, or an HTML comment describing why it
// could not be rendered.
func (c *Chart) String() string {
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		return fmt.Sprintf("<!-- %s -->", template.HTMLEscapeString(err.Error()))
	}
	return buf.String()
}

// Page writes a complete HTML document holding charts with the default
// renderer.
func Page(w io.Writer, title string, charts ...*Chart) error {
	r, err := defaultRenderer()
	if err != nil {
		return err
	}
	return r.Page(w, title, charts...)
}

var defaultRenderer = sync.OnceValues(func() (*Renderer, error) {
	return NewRenderer()
})

// Option configures a Renderer.
type Option func(*Renderer)

// WithDebug disables minification of the bootstrap script
func WithDebug() Option {
	return func(r *Renderer) {
		r.debug = true
	}
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(r *Renderer) {
		r.log = log
	}
}

// WithScripts overrides the chart.js and date adapter locations, for pages
// served without internet access.
func WithScripts(chartJS, dateAdapter string) Option {
	return func(r *Renderer) {
		r.chartJS, r.dateAdapter = chartJS, dateAdapter
	}
}

// Renderer turns charts into HTML.
type Renderer struct {
	debug       bool
	chartJS     string
	dateAdapter string
	script      string
	chartHTML   *template.Template
	pageHTML    *template.Template
	log         logger.Logger
}

// NewRenderer parses the embedded templates and transpiles the bootstrap
// script.
func NewRenderer(options ...Option) (*Renderer, error) {
	r := &Renderer{
		chartJS:     ChartJSURL,
		dateAdapter: DateAdapterURL,
		log:         logger.Nop(),
	}

	for _, option := range options {
		option(r)
	}

	var err error
	r.chartHTML, err = template.ParseFS(assets, "assets/chart.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart template: %w", err)
	}

	r.pageHTML, err = template.ParseFS(assets, "assets/page.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	script, err := assets.ReadFile("assets/chart.js")
	if err != nil {
		return nil, fmt.Errorf("failed to read chart.js: %w", err)
	}

	result := api.Transform(string(script), api.TransformOptions{
		Loader:            api.LoaderJS,
		Target:            api.ES2015,
		MinifySyntax:      !r.debug,
		MinifyIdentifiers: !r.debug,
		MinifyWhitespace:  !r.debug,
	})

	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("chart script failed with: %v", result.Errors)
	}

	r.script = string(result.Code)
	r.log.WithField("bytes", len(r.script)).Debug("chart script ready")

	return r, nil
}

// Script returns the transpiled bootstrap script.
func (r *Renderer) Script() string {
	return r.script
}

// Chart writes the canvas and the script drawing c.
func (r *Renderer) Chart(w io.Writer, c *Chart) error {
	if !json.Valid(c.Config) {
		return fmt.Errorf("render: chart %s: config is not valid JSON", c.TargetID)
	}

	// keep "</script>" inside string values from closing the script element
	var config bytes.Buffer
	json.HTMLEscape(&config, c.Config)

	err := r.chartHTML.Execute(w, map[string]any{
		"TargetID": c.TargetID,
		"Width":    c.Width.String(),
		"Height":   c.Height.String(),
		"Config":   template.JS(config.String()),
	})
	if err != nil {
		return fmt.Errorf("render: chart %s: %w", c.TargetID, err)
	}
	return nil
}

// Page writes a full HTML document loading chart.js and drawing every chart
// in order.
func (r *Renderer) Page(w io.Writer, title string, charts ...*Chart) error {
	return r.page(w, title, "", charts)
}

// LivePage is like Page but the document reloads itself whenever the
// websocket at path (on the serving host) sends a message.
func (r *Renderer) LivePage(w io.Writer, title, path string, charts ...*Chart) error {
	return r.page(w, title, path, charts)
}

func (r *Renderer) page(w io.Writer, title, live string, charts []*Chart) error {
	snippets := make([]template.HTML, 0, len(charts))
	for _, c := range charts {
		var buf bytes.Buffer
		if err := r.Chart(&buf, c); err != nil {
			return err
		}
		snippets = append(snippets, template.HTML(buf.String()))
	}

	err := r.pageHTML.Execute(w, map[string]any{
		"Title":       title,
		"ChartJS":     r.chartJS,
		"DateAdapter": r.dateAdapter,
		"Script":      template.JS(r.script),
		"Charts":      snippets,
		"Live":        live,
	})
	if err != nil {
		return fmt.Errorf("render: page %q: %w", title, err)
	}
	return nil
}
