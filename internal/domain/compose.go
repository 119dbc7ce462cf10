package domain

import (
	"fmt"
	"strings"
)

// botInfoURL documents the bot and the title formats it understands.
const botInfoURL = "https://www.reddit.com/r/shortfinal/comments/4rr0fo/approach_control_the_rshortfinal_bot/"

// sampleTitles are shown to posters whose title the parser could not read.
var sampleTitles = []string{
	"KBFI - 13R  Boeing Field, Seattle, WA  <= preferred",
	"KDFW RWY 17C Dallas-Fort Worth International Airport - Landin' in the middle!",
	"U87, Smiley Creek, ID - Rwy 14",
	"KILG Wilmington, DE Runway 1",
	"Kelleys Island, Ohio (89D), RWY 27. Short final over Lake Erie.",
}

// ComposeReply renders the comment body for a parsed title and lookup
// result. This is the user-facing contract of the whole bot: an Airport line
// linking the identifier, a Runway line, and when the lookup failed either a
// manual search note (identifier present but unrecognized) or a help block
// listing sample title formats (no identifier parsed at all).
func ComposeReply(parsed ParsedTitle, enrichment EnrichmentResult) string {
	var b strings.Builder

	if parsed.AirportCode != "" {
		fmt.Fprintf(&b, "* Airport:  [%s](%s)", parsed.AirportCode, enrichment.URL)
	} else {
		fmt.Fprintf(&b, "* Airport:  [unknown](%s)", enrichment.URL)
	}

	if parsed.RunwayDesignator != "" {
		fmt.Fprintf(&b, "\n* Runway:  %s", parsed.RunwayDesignator)
	} else {
		b.WriteString("\n* Runway:  unknown")
	}

	if enrichment.Recognized {
		return b.String()
	}

	if parsed.AirportCode != "" {
		fmt.Fprintf(&b, "\n\nUnable to locate airport details. [Search for %s](%s)", parsed.AirportCode, enrichment.URL)
		return b.String()
	}

	b.WriteString("\n\nAirport identifier unrecognized or missing from post title.")
	fmt.Fprintf(&b, "\n\nHere are some sample titles that the [approach_control bot](%s) can recognize:", botInfoURL)
	for _, sample := range sampleTitles {
		fmt.Fprintf(&b, "\n\n* %s", sample)
	}
	fmt.Fprintf(&b, "\n\n[Read more](%s) about the approach_control bot for more information how to get it to recognize your post.", botInfoURL)

	return b.String()
}
