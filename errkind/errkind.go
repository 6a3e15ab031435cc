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

// Package errkind classifies the errors returned by the distribution engine.
// Each error carries exactly one kind mark so callers can tell a bad
// configuration from a failed lookup or an evaluation outside the model's domain.
package errkind

import (
	"github.com/cockroachdb/errors"
)

// Kind is the category of an error.
type Kind int

const (
	Unknown        Kind = iota // not produced by this module
	Config                     // invalid construction parameters
	Lookup                     // unknown alias or wrong distribution family
	Domain                     // evaluation produced a value outside its domain
	NotImplemented             // operation is not available for the distribution
)

var (
	errConfig         = errors.New("configuration error")
	errLookup         = errors.New("lookup error")
	errDomain         = errors.New("domain error")
	errNotImplemented = errors.New("not implemented")
)

var kindMarks = map[Kind]error{
	Config:         errConfig,
	Lookup:         errLookup,
	Domain:         errDomain,
	NotImplemented: errNotImplemented,
}

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Config:
		return "ConfigError"
	case Lookup:
		return "LookupError"
	case Domain:
		return "DomainError"
	case NotImplemented:
		return "NotImplemented"
	}
	return "Unknown"
}

// Configf creates a configuration error.
func Configf(format string, args ...interface{}) error {
	return errors.Mark(errors.NewWithDepthf(1, format, args...), errConfig)
}

// Lookupf creates a lookup error.
func Lookupf(format string, args ...interface{}) error {
	return errors.Mark(errors.NewWithDepthf(1, format, args...), errLookup)
}

// Domainf creates a domain error.
func Domainf(format string, args ...interface{}) error {
	return errors.Mark(errors.NewWithDepthf(1, format, args...), errDomain)
}

// NotImplementedf creates an error for an operation a distribution does not support.
func NotImplementedf(format string, args ...interface{}) error {
	return errors.Mark(errors.NewWithDepthf(1, format, args...), errNotImplemented)
}

// Is reports whether err, or any error it wraps, has the given kind.
func Is(err error, kind Kind) bool {
	mark, found := kindMarks[kind]
	if !found || err == nil {
		return false
	}
	return errors.Is(err, mark)
}

// KindOf returns the kind of err, or Unknown if err carries no kind mark.
func KindOf(err error) Kind {
	for _, kind := range []Kind{Config, Lookup, Domain, NotImplemented} {
		if Is(err, kind) {
			return kind
		}
	}
	return Unknown
}
