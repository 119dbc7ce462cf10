package domain

import "context"

// CommentClient is the remote service surface the processor needs for
// inspecting and adding replies on a submission.
type CommentClient interface {
	// ExpandReplies fetches existing replies on a submission, at least one
	// level deep. The shallow listing fetch that produced the Post may omit
	// replies entirely, so the processor must expand before deciding whether
	// it already replied.
	ExpandReplies(ctx context.Context, postID string, limit, depth int) ([]Comment, error)

	// Reply submits a comment under the given thing fullname and returns the
	// new comment's fullname.
	Reply(ctx context.Context, parentFullname, body string) (string, error)

	// Distinguish marks a comment as posted in an official capacity,
	// optionally stickying it to the top of the thread.
	Distinguish(ctx context.Context, commentFullname string, sticky bool) error
}

// AirportResolver looks up an airport code (or free text as a last resort)
// and returns the URL the reply should link to. Lookup failures degrade to a
// generic fallback URL; Resolve never fails.
type AirportResolver interface {
	Resolve(ctx context.Context, query string) EnrichmentResult
}
