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

package registry

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Summary writes a table of all registered distributions to w.
func (r *Registry) Summary(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Alias", "Type", "Dim", "Parameters", "Triggered"})
	for _, alias := range r.DistributionNames() {
		typ, _ := r.Type(alias)
		dim, _ := r.Dimensionality(alias)
		params, _ := r.parameters(alias)
		fields := make([]string, 0, len(params))
		for _, name := range params.Names() {
			fields = append(fields, fmt.Sprintf("%s=%g", name, params[name]))
		}
		t.AppendRow(table.Row{alias, typ, dim, strings.Join(fields, " "), r.Triggered(alias)})
	}
	t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d distributions", len(r.scalars)+len(r.nds)), ""})
	t.Render()
}
