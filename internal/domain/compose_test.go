package domain

import (
	"strings"
	"testing"
)

func TestComposeReply_RecognizedAirportAndRunway(t *testing.T) {
	parsed := ParsedTitle{AirportCode: "KBFI", RunwayDesignator: "13R"}
	enrichment := EnrichmentResult{URL: "https://skyvector.com/airport/KBFI/Boeing-Field-King-County-International-Airport", Recognized: true}

	got := ComposeReply(parsed, enrichment)
	want := "* Airport:  [KBFI](https://skyvector.com/airport/KBFI/Boeing-Field-King-County-International-Airport)\n* Runway:  13R"
	if got != want {
		t.Errorf("ComposeReply = %q, want %q", got, want)
	}
}

func TestComposeReply_RecognizedWithoutRunway(t *testing.T) {
	parsed := ParsedTitle{AirportCode: "89D"}
	enrichment := EnrichmentResult{URL: "https://skyvector.com/airport/89D", Recognized: true}

	got := ComposeReply(parsed, enrichment)
	if !strings.Contains(got, "* Airport:  [89D](https://skyvector.com/airport/89D)") {
		t.Errorf("missing airport line in %q", got)
	}
	if !strings.Contains(got, "* Runway:  unknown") {
		t.Errorf("missing unknown runway line in %q", got)
	}
	if strings.Contains(got, "Unable to locate") {
		t.Errorf("recognized reply should not carry the search note: %q", got)
	}
}

func TestComposeReply_UnrecognizedCodeGetsSearchNote(t *testing.T) {
	parsed := ParsedTitle{AirportCode: "ZZZZ", RunwayDesignator: "9"}
	enrichment := EnrichmentResult{URL: "https://skyvector.com/airports", Recognized: false}

	got := ComposeReply(parsed, enrichment)
	if !strings.Contains(got, "Unable to locate airport details. [Search for ZZZZ](https://skyvector.com/airports)") {
		t.Errorf("missing search note in %q", got)
	}
	if strings.Contains(got, "sample titles") {
		t.Errorf("help block should only appear when no code was parsed: %q", got)
	}
}

func TestComposeReply_NoCodeGetsHelpBlock(t *testing.T) {
	enrichment := EnrichmentResult{URL: "https://skyvector.com/airports", Recognized: false}

	got := ComposeReply(ParsedTitle{}, enrichment)

	if !strings.Contains(got, "* Airport:  [unknown](https://skyvector.com/airports)") {
		t.Errorf("missing unknown airport line in %q", got)
	}
	if !strings.Contains(got, "Airport identifier unrecognized or missing from post title.") {
		t.Errorf("missing help intro in %q", got)
	}
	for _, sample := range sampleTitles {
		if !strings.Contains(got, sample) {
			t.Errorf("help block missing sample title %q", sample)
		}
	}
	if !strings.Contains(got, "[Read more]("+botInfoURL+")") {
		t.Errorf("missing read-more link in %q", got)
	}
}
