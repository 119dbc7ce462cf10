// Command lookup runs the bot's title parsing and airport resolution against
// a single title from the command line, without touching Reddit. Useful for
// checking what the bot would post for a given title.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mtowers/approach-control/internal/domain"
	"github.com/mtowers/approach-control/internal/skyvector"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		baseURL  string
		showBody bool
	)

	flag.StringVar(&baseURL, "base", "", "Airport search base URL (defaults to skyvector.com)")
	flag.BoolVar(&showBody, "body", false, "Also print the full reply body the bot would post")
	flag.Parse()

	title := strings.Join(flag.Args(), " ")
	if title == "" {
		return fmt.Errorf("usage: lookup [-base URL] [-body] <post title>")
	}

	parsed := domain.ParseTitle(title)
	fmt.Printf("Title:    %s\n", title)
	fmt.Printf("Airport:  %s\n", orNone(parsed.AirportCode))
	fmt.Printf("Runway:   %s\n", orNone(parsed.RunwayDesignator))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := skyvector.NewResolver(baseURL, logger, nil)

	query := parsed.AirportCode
	if query == "" {
		query = title
	}

	enrichment := resolver.Resolve(context.Background(), query)
	fmt.Printf("URL:      %s\n", enrichment.URL)
	fmt.Printf("Known:    %t\n", enrichment.Recognized)

	if showBody {
		fmt.Printf("\n%s\n", domain.ComposeReply(parsed, enrichment))
	}

	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
