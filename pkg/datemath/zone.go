package datemath

import (
	"strings"
	"time"
)

var zoneAliases = map[string]string{
	"GMT":  "UTC",
	"UTC":  "UTC",
	"IST":  "Asia/Kolkata",
	"AST":  "Canada/Atlantic",
	"EST":  "US/Eastern",
	"PST":  "US/Pacific",
	"CST":  "US/Central",
	"MST":  "US/Mountain",
	"AEST": "Australia/Sydney",
	"JST":  "Asia/Tokyo",
	"CET":  "Europe/Paris",
}

// LoadZone accepts a short alias (IST, PST, ...) or an IANA name.
// Unknown names return UTC and ok=false.
func LoadZone(name string) (loc *time.Location, ok bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, false
	}
	if iana, found := zoneAliases[strings.ToUpper(name)]; found {
		name = iana
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, false
	}
	return loc, true
}

// ZoneName returns the canonical IANA name for an alias or the input itself.
func ZoneName(name string) string {
	if iana, found := zoneAliases[strings.ToUpper(strings.TrimSpace(name))]; found {
		return iana
	}
	return strings.TrimSpace(name)
}
