package utils

import (
	"regexp"
	"strings"

	"hangar-service/internal/domain/errs"
	"hangar-service/pkg/codes"
)

var (
	gluedIdentRe  = regexp.MustCompile(`^([A-Z]{2,3})(\d+[A-Z]?)$`)
	namedIdentRe  = regexp.MustCompile(`^([A-Z][A-Z\s]+?)\s+(\d+[A-Z]?)$`)
	spacedIdentRe = regexp.MustCompile(`^([A-Z]{2,3})\s+(\d+[A-Z]?)$`)
	bareCodeRe    = regexp.MustCompile(`^[A-Z]{2,3}$`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// Ident is a parsed flight identifier.
type Ident struct {
	AirlineCode  string
	FlightNumber string
	Original     string
}

// String returns the canonical code+number form, e.g. "EK221".
func (i Ident) String() string {
	return i.AirlineCode + i.FlightNumber
}

// ParseIdent splits a free-form flight identifier into airline code and flight number.
// Accepted forms, tried in order: "EK221", "Emirates 221", "EK 221".
func ParseIdent(s string) (Ident, error) {
	normalized := strings.ToUpper(whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " "))

	if m := gluedIdentRe.FindStringSubmatch(normalized); m != nil {
		return Ident{AirlineCode: m[1], FlightNumber: m[2], Original: s}, nil
	}

	// A bare 2-3 letter token is a code, never a name fragment ("AI 101" is not American Airlines).
	if m := namedIdentRe.FindStringSubmatch(normalized); m != nil && !bareCodeRe.MatchString(m[1]) {
		if code, ok := codes.AirlineCodeByName(m[1]); ok {
			return Ident{AirlineCode: code, FlightNumber: m[2], Original: s}, nil
		}
	}

	if m := spacedIdentRe.FindStringSubmatch(normalized); m != nil {
		return Ident{AirlineCode: m[1], FlightNumber: m[2], Original: s}, nil
	}

	return Ident{}, &errs.ParseError{Input: s}
}
