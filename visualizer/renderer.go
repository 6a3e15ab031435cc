// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

// Package visualizer serves line charts of the distributions of a registry.
package visualizer

import (
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"

	"github.com/0xsoniclabs/crow/registry"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// HTML references for the rendered pages.
const scalarRef = "scalar"
const marginalRef = "marginal"
const samplesRef = "samples"

const mainHeader = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>CROW: Distributions</title>
  </head>
  <body>
    <h1>CROW: Distributions</h1>
    <ul>
`

const mainFooter = `    </ul>
</body>
</html>
`

func link(ref, alias, text string) string {
	return fmt.Sprintf(`<a href="/%s?alias=%s">%s</a>`, ref, url.QueryEscape(alias), text)
}

// renderMain renders the index of all distributions.
func renderMain(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	var b strings.Builder
	b.WriteString(mainHeader)
	for _, alias := range view.aliases {
		name := html.EscapeString(alias)
		switch {
		case view.scalars[alias] != nil:
			fmt.Fprintf(&b, "    <li> <h3> %s (%s) </h3> </li>\n", link(scalarRef, alias, name), view.scalars[alias].typ)
		case view.nds[alias] != nil:
			nd := view.nds[alias]
			fmt.Fprintf(&b, "    <li> <h3> %s (%s)", link(marginalRef, alias, name), nd.typ)
			if nd.samples != nil {
				fmt.Fprintf(&b, " %s", link(samplesRef, alias, "samples"))
			}
			b.WriteString(" </h3> </li>\n")
		default:
			fmt.Fprintf(&b, "    <li> <h3> %s: %s </h3> </li>\n", name, html.EscapeString(view.skipped[alias]))
		}
	}
	b.WriteString(mainFooter)
	_, _ = fmt.Fprint(w, b.String())
}

// globalOptions are shared by all charts.
func globalOptions(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme:     types.ThemeChalk,
			PageTitle: title,
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
	}
}

// convertLineData converts curve points to chart points.
func convertLineData(data [][2]float64) []opts.LineData {
	items := []opts.LineData{}
	for _, pair := range data {
		items = append(items, opts.LineData{Value: pair})
	}
	return items
}

// convertScatterData converts sample points to chart points.
func convertScatterData(data [][2]float64) []opts.ScatterData {
	items := []opts.ScatterData{}
	for _, pair := range data {
		items = append(items, opts.ScatterData{Value: pair, SymbolSize: 5})
	}
	return items
}

// newScalarChart creates a line chart of the density and the cdf.
func newScalarChart(alias string, view *scalarView) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(globalOptions(alias, view.typ)...)
	chart.AddSeries("PDF", convertLineData(view.pdf)).
		AddSeries("CDF", convertLineData(view.cdf))
	return chart
}

// newMarginalChart creates a line chart of the marginal cdfs.
func newMarginalChart(alias string, view *ndView) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(globalOptions(alias, view.typ+" marginal CDFs")...)
	for axis, curve := range view.marginals {
		chart.AddSeries(fmt.Sprintf("x%d", axis+1), convertLineData(curve))
	}
	return chart
}

// newSamplesChart creates a scatter chart of the first two coordinates of
// random samples.
func newSamplesChart(alias string, view *ndView) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(globalOptions(alias, view.typ+" samples")...)
	scatter.AddSeries("(x1, x2)", convertScatterData(view.samples))
	return scatter
}

// requestedView resolves the alias parameter of a request.
func requestedView(w http.ResponseWriter, r *http.Request) (*viewState, string, bool) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return nil, "", false
	}
	return view, r.URL.Query().Get("alias"), true
}

// renderScalar renders the density and cdf of a scalar distribution.
func renderScalar(w http.ResponseWriter, r *http.Request) {
	view, alias, ok := requestedView(w, r)
	if !ok {
		return
	}
	sv, found := view.scalars[alias]
	if !found {
		http.Error(w, fmt.Sprintf("no scalar distribution %q", alias), http.StatusNotFound)
		return
	}
	_ = newScalarChart(alias, sv).Render(w)
}

// renderMarginal renders the marginal cdfs of an N-dimensional distribution.
func renderMarginal(w http.ResponseWriter, r *http.Request) {
	view, alias, ok := requestedView(w, r)
	if !ok {
		return
	}
	nv, found := view.nds[alias]
	if !found {
		http.Error(w, fmt.Sprintf("no multivariate distribution %q", alias), http.StatusNotFound)
		return
	}
	_ = newMarginalChart(alias, nv).Render(w)
}

// renderSamples renders random samples of an N-dimensional distribution.
func renderSamples(w http.ResponseWriter, r *http.Request) {
	view, alias, ok := requestedView(w, r)
	if !ok {
		return
	}
	nv, found := view.nds[alias]
	if !found || nv.samples == nil {
		http.Error(w, fmt.Sprintf("no samples of distribution %q", alias), http.StatusNotFound)
		return
	}
	_ = newSamplesChart(alias, nv).Render(w)
}

// NewHandler tabulates the distributions of reg, drawing the given number
// of samples from each multivariate one, and returns the chart handler.
func NewHandler(reg *registry.Registry, samples int) (http.Handler, error) {
	if err := setViewState(reg, samples); err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", renderMain)
	mux.HandleFunc("/"+scalarRef, renderScalar)
	mux.HandleFunc("/"+marginalRef, renderMarginal)
	mux.HandleFunc("/"+samplesRef, renderSamples)
	return mux, nil
}

// FireUpWeb visualizes the distributions of reg with a local web-server.
func FireUpWeb(reg *registry.Registry, addr string, samples int) error {
	handler, err := NewHandler(reg, samples)
	if err != nil {
		return err
	}
	return http.ListenAndServe(":"+addr, handler)
}
