package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/raykavin/gochartjs/pkg/style"
	"github.com/stretchr/testify/require"
)

type rawConfig string

func (c rawConfig) MarshalJSON() ([]byte, error) {
	return []byte(c), nil
}

type failingConfig struct{}

func (failingConfig) MarshalJSON() ([]byte, error) {
	return nil, errors.New("boom")
}

func TestNewChart(t *testing.T) {
	chart, err := NewChart(rawConfig(`{"data":{"datasets":[]}}`), style.Pixels(600), style.Percent(50))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(chart.TargetID, "chart-"))
	require.JSONEq(t, `{"data":{"datasets":[]}}`, string(chart.Config))

	other, err := NewChart(rawConfig(`{}`), style.Pixels(1), style.Pixels(1))
	require.NoError(t, err)
	require.NotEqual(t, chart.TargetID, other.TargetID)

	_, err = NewChart(failingConfig{}, style.Pixels(1), style.Pixels(1))
	require.ErrorContains(t, err, "boom")
}

func TestRenderer_Chart(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	chart := &Chart{
		TargetID: "chart-1",
		Width:    style.Pixels(600),
		Height:   style.Percent(40),
		Config:   json.RawMessage(`{"data":{"datasets":[{"label":"</script><b>","data":[]}]}}`),
	}

	var buf bytes.Buffer
	require.NoError(t, r.Chart(&buf, chart))
	html := buf.String()

	require.Contains(t, html, `<canvas id="chart-1"></canvas>`)
	require.Contains(t, html, "width: 600px")
	require.Contains(t, html, "height: 40%")
	require.Contains(t, html, `gochartjs.draw("chart-1", {"data":`)
	require.NotContains(t, html, "</script><b>")
	require.Contains(t, html, `\u003c/script\u003e\u003cb\u003e`)
}

func TestRenderer_ChartInvalidConfig(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	err = r.Chart(&bytes.Buffer{}, &Chart{TargetID: "broken", Config: json.RawMessage(`{"data":`)})
	require.ErrorContains(t, err, "not valid JSON")
}

func TestRenderer_Page(t *testing.T) {
	r, err := NewRenderer(WithScripts("/static/chart.js", "/static/adapter.js"))
	require.NoError(t, err)

	first := &Chart{TargetID: "chart-a", Width: style.Pixels(10), Height: style.Pixels(10), Config: json.RawMessage(`{}`)}
	second := &Chart{TargetID: "chart-b", Width: style.Pixels(10), Height: style.Pixels(10), Config: json.RawMessage(`{}`)}

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, "Fish & Chips", first, second))
	html := buf.String()

	require.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	require.Contains(t, html, "<title>Fish &amp; Chips</title>")
	require.Contains(t, html, `<script src="/static/chart.js"></script>`)
	require.Contains(t, html, `<script src="/static/adapter.js"></script>`)
	require.Contains(t, html, "gochartjs")
	require.Less(t, strings.Index(html, "chart-a"), strings.Index(html, "chart-b"))
}

func TestRenderer_Debug(t *testing.T) {
	minified, err := NewRenderer()
	require.NoError(t, err)

	debug, err := NewRenderer(WithDebug())
	require.NoError(t, err)

	require.Contains(t, debug.Script(), "tooltipLabel")
	require.NotContains(t, minified.Script(), "tooltipLabel")
	require.Less(t, len(minified.Script()), len(debug.Script()))
	require.Contains(t, minified.Script(), "gochartjs")
}

func TestChart_String(t *testing.T) {
	chart := &Chart{TargetID: "chart-s", Width: style.Pixels(1), Height: style.Pixels(1), Config: json.RawMessage(`[]`)}
	require.Contains(t, chart.String(), `id="chart-s"`)

	broken := &Chart{TargetID: "chart-x", Config: json.RawMessage(`nope`)}
	require.True(t, strings.HasPrefix(broken.String(), "<!--"))
}

func TestRenderer_LivePage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var live, static bytes.Buffer
	require.NoError(t, r.LivePage(&live, "live", "/ws"))
	require.NoError(t, r.Page(&static, "static"))

	require.Contains(t, live.String(), "new WebSocket")
	require.Contains(t, live.String(), "/ws")
	require.NotContains(t, static.String(), "WebSocket")
}
