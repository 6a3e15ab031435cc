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

package inspect

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/0xsoniclabs/crow/distribution"
	"github.com/0xsoniclabs/crow/errkind"
	"github.com/0xsoniclabs/crow/ndist"
	"github.com/0xsoniclabs/crow/registry"
	"github.com/cockroachdb/errors"
)

// Definition files list one distribution per line:
//
//	scalar <alias> <family> name=value ...
//	nd <alias> <family> name=value ...
//
// Scalar lines accept the kernel parameters plus truncation=renormalize|untruncated,
// forcedValue=x and forcedProbability=p. Multivariate lines accept kind=pdf|cdf,
// data=<file>, p=<exponent>, mu=<comma separated>, cov=<comma separated>,
// covFile=<file>, rank=<r> and covType=abs|rel. Relative file names are
// resolved against the directory of the definition file.

// loadDefinitions registers all distributions of a definition file.
func loadDefinitions(reg *registry.Registry, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errkind.Configf("cannot open definition file %s: %v", filename, err)
	}
	defer file.Close()

	dir := filepath.Dir(filename)
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return errkind.Configf("%s:%d: expected <scalar|nd> <alias> <family>", filename, line)
		}
		switch fields[0] {
		case "scalar":
			err = addScalar(reg, fields[1], fields[2], fields[3:])
		case "nd":
			err = addND(reg, dir, fields[1], fields[2], fields[3:])
		default:
			err = errkind.Configf("unknown distribution class %q", fields[0])
		}
		if err != nil {
			return errors.Wrapf(err, "%s:%d", filename, line)
		}
	}
	return scanner.Err()
}

func resolve(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// assignments splits name=value fields.
func assignments(fields []string) (map[string]string, error) {
	result := make(map[string]string, len(fields))
	for _, field := range fields {
		name, value, found := strings.Cut(field, "=")
		if !found || name == "" {
			return nil, errkind.Configf("expected name=value, got %q", field)
		}
		result[name] = value
	}
	return result, nil
}

func parseFloat(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errkind.Configf("parameter %s: invalid number %q", name, value)
	}
	return v, nil
}

func parseFloats(name, value string) ([]float64, error) {
	var result []float64
	for _, field := range strings.Split(value, ",") {
		v, err := parseFloat(name, field)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

func addScalar(reg *registry.Registry, alias, family string, fields []string) error {
	typ, err := distribution.ParseType(family)
	if err != nil {
		return err
	}
	values, err := assignments(fields)
	if err != nil {
		return err
	}
	params := distribution.Parameters{}
	var opts []distribution.Option
	for name, value := range values {
		switch name {
		case "truncation":
			mode := distribution.Renormalize
			switch value {
			case "renormalize":
			case "untruncated":
				mode = distribution.Untruncated
			default:
				return errkind.Configf("unknown truncation mode %q", value)
			}
			opts = append(opts, distribution.WithTruncation(mode))
		case "forcedValue":
			v, err := parseFloat(name, value)
			if err != nil {
				return err
			}
			opts = append(opts, distribution.WithForcedValue(v))
		case "forcedProbability":
			v, err := parseFloat(name, value)
			if err != nil {
				return err
			}
			opts = append(opts, distribution.WithForcedProbability(v))
		default:
			v, err := parseFloat(name, value)
			if err != nil {
				return err
			}
			params[name] = v
		}
	}
	_, err = reg.AddScalar(typ, alias, params, opts...)
	return err
}

func addND(reg *registry.Registry, dir, alias, family string, fields []string) error {
	values, err := assignments(fields)
	if err != nil {
		return err
	}
	spec := registry.NDSpec{Type: ndist.Type(family), Alias: alias}
	for name, value := range values {
		switch name {
		case "kind":
			spec.Kind, err = ndist.ParseDataKind(value)
		case "data":
			spec.DataFile = resolve(dir, value)
		case "covFile":
			spec.CovarianceFile = resolve(dir, value)
		case "p":
			spec.P, err = parseFloat(name, value)
		case "mu":
			spec.Mu, err = parseFloats(name, value)
		case "cov":
			spec.Covariance, err = parseFloats(name, value)
		case "rank":
			spec.Rank, err = strconv.Atoi(value)
			if err != nil {
				err = errkind.Configf("parameter rank: invalid integer %q", value)
			}
		case "covType":
			spec.CovType, err = ndist.ParseCovarianceType(value)
		default:
			err = errkind.Configf("unknown parameter %q of %s", name, family)
		}
		if err != nil {
			return err
		}
	}
	_, err = reg.AddMultivariate(spec)
	return err
}
