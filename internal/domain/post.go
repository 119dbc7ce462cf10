package domain

import "time"

// Post represents a subreddit submission as delivered by the new-submission
// listing. It is immutable once fetched; the only side effect this bot ever
// applies to it is adding a reply.
type Post struct {
	// Fullname is the thing fullname (e.g. t3_4rr0fo), used when replying.
	Fullname string

	// ID is the base36 submission id without the type prefix.
	ID string

	// Title is the user-authored post title the parser runs against.
	Title string

	// Author is the submitting account's username.
	Author string

	// CreatedAt is the submission time reported by the service.
	CreatedAt time.Time
}

// Comment is an existing reply on a submission. The author identity is what
// the duplicate check needs; the body is kept for logging.
type Comment struct {
	// Fullname is the comment's thing fullname (e.g. t1_d2ukh9p).
	Fullname string

	// Author is the commenting account's username.
	Author string

	// Body is the comment text.
	Body string
}

// ParsedTitle holds the fields extracted from a post title. Empty strings
// mean the pattern passes found nothing; absence is the signal, no error is
// raised for unparseable titles.
type ParsedTitle struct {
	// AirportCode is the 3-4 character airport identifier, parentheses
	// stripped (e.g. KBFI, 89D).
	AirportCode string

	// RunwayDesignator is the 1-2 digit runway number with its L/R/C suffix
	// preserved (e.g. 13R, 17C, 27).
	RunwayDesignator string
}

// EnrichmentResult is the outcome of an airport lookup.
type EnrichmentResult struct {
	// URL is where the reply should link for this airport.
	URL string

	// Recognized reports whether the lookup matched a specific airport page
	// rather than falling back to a generic one.
	Recognized bool
}
