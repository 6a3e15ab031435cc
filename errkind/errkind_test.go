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

package errkind

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrKind_KindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"config", Configf("bad bound %v", 1.0), Config},
		{"lookup", Lookupf("alias %q not found", "d1"), Lookup},
		{"domain", Domainf("probability %v > 1", 1.5), Domain},
		{"not implemented", NotImplementedf("hazard"), NotImplemented},
		{"plain", errors.New("plain"), Unknown},
		{"nil", nil, Unknown},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, KindOf(test.err))
		})
	}
}

func TestErrKind_SurvivesWrapping(t *testing.T) {
	err := Lookupf("alias %q not found", "d1")
	wrapped := errors.Wrap(err, "registry")
	assert.True(t, Is(wrapped, Lookup))
	assert.False(t, Is(wrapped, Config))

	stdWrapped := fmt.Errorf("outer: %w", err)
	assert.Equal(t, Lookup, KindOf(stdWrapped))
	assert.Contains(t, stdWrapped.Error(), `alias "d1" not found`)
}

func TestErrKind_String(t *testing.T) {
	assert.Equal(t, "ConfigError", Config.String())
	assert.Equal(t, "LookupError", Lookup.String())
	assert.Equal(t, "DomainError", Domain.String())
	assert.Equal(t, "NotImplemented", NotImplemented.String())
	assert.Equal(t, "Unknown", Unknown.String())
}
