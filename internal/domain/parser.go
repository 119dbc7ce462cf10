package domain

import (
	"regexp"
	"strings"
)

// Title pattern passes. The slug pattern is the high-confidence case where
// the title follows the canonical "CODE, RWY NN" convention and yields both
// fields at once. The other two search anywhere in the title and act as
// fallbacks for whichever field the slug pass missed.
var (
	titleSlugPattern = regexp.MustCompile(`^([A-Z0-9]{3,4}|\([A-Z0-9]{3,4}\))+[,\s-]+(?:RWY|Runway|\s)*(\d{1,2}[RLC]?)?`)
	icaoPattern      = regexp.MustCompile(`\(?\b([A-Z0-9]{3,4})\b\)?`)
	runwayPattern    = regexp.MustCompile(`(?:RWY|Rwy|rwy|Runway|runway)\s*([0-9]{1,2}[RLC]?)`)
)

// ParseTitle extracts an airport identifier and runway designator from a
// post title. Identifiers may appear parenthesized in the source text
// ("(89D)"); the parentheses are stripped from the captured value. Runway
// letters stay attached to the digits (13R, not 13). Either or both fields
// are left empty when no pattern matches.
func ParseTitle(title string) ParsedTitle {
	var parsed ParsedTitle

	if m := titleSlugPattern.FindStringSubmatch(title); m != nil {
		parsed.AirportCode = strings.Trim(m[1], "()")
		parsed.RunwayDesignator = m[2]
	}

	if parsed.AirportCode == "" {
		// Any 3-4 character alphanumeric token qualifies except the literal
		// word RWY itself.
		for _, m := range icaoPattern.FindAllStringSubmatch(title, -1) {
			if m[1] != "RWY" {
				parsed.AirportCode = m[1]
				break
			}
		}
	}

	if parsed.RunwayDesignator == "" {
		if m := runwayPattern.FindStringSubmatch(title); m != nil {
			parsed.RunwayDesignator = m[1]
		}
	}

	return parsed
}
