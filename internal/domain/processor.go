package domain

import (
	"context"
	"fmt"
	"log/slog"
)

// Reply expansion bounds: enough items and depth to find a prior bot reply
// without walking the whole tree.
const (
	expandLimit = 20
	expandDepth = 1
)

// Outcome reports what Process did with a submission.
type Outcome int

const (
	// OutcomeReplied means a new reply was posted.
	OutcomeReplied Outcome = iota

	// OutcomeDuplicate means a prior reply by the bot identity was found and
	// the submission was skipped.
	OutcomeDuplicate
)

// Processor handles one incoming submission end to end: parse the title,
// check for a prior reply, resolve the airport, compose and submit the
// reply. Only the final submission step has side effects.
type Processor struct {
	client      CommentClient
	resolver    AirportResolver
	botUsername string
	logger      *slog.Logger
}

// NewProcessor creates a Processor. botUsername is the bot's own account
// name, compared against reply authors to keep the bot to one reply per
// submission.
func NewProcessor(client CommentClient, resolver AirportResolver, botUsername string, logger *slog.Logger) *Processor {
	return &Processor{
		client:      client,
		resolver:    resolver,
		botUsername: botUsername,
		logger:      logger,
	}
}

// HasBotReply reports whether any of the fetched replies was authored by the
// given bot identity. Pure decision over already-fetched data.
func HasBotReply(comments []Comment, botUsername string) bool {
	for _, c := range comments {
		if c.Author == botUsername {
			return true
		}
	}
	return false
}

// Process runs the full pipeline for one submission. A malformed title never
// fails: the unrecognized branch of the reply is posted instead. I/O errors
// from reply expansion or submission propagate to the caller's retry policy.
func (p *Processor) Process(ctx context.Context, post *Post) (Outcome, error) {
	p.logger.Info("cleared for the approach", "post", post.Fullname, "title", post.Title)

	parsed := ParseTitle(post.Title)
	p.logger.Info("parsed title",
		"post", post.Fullname,
		"airport", orNone(parsed.AirportCode),
		"runway", orNone(parsed.RunwayDesignator),
	)

	comments, err := p.client.ExpandReplies(ctx, post.ID, expandLimit, expandDepth)
	if err != nil {
		return 0, fmt.Errorf("expand replies: %w", err)
	}
	if HasBotReply(comments, p.botUsername) {
		return OutcomeDuplicate, nil
	}

	query := parsed.AirportCode
	if query == "" {
		// Last resort: let the search endpoint chew on the raw title.
		query = post.Title
	}

	enrichment := p.resolver.Resolve(ctx, query)
	if !enrichment.Recognized {
		p.logger.Info("negative ATIS", "post", post.Fullname, "title", post.Title)
	}

	body := ComposeReply(parsed, enrichment)

	commentFullname, err := p.client.Reply(ctx, post.Fullname, body)
	if err != nil {
		return 0, fmt.Errorf("submit reply: %w", err)
	}

	// Stickying the reply is best-effort; a failure here must not fail the
	// submission.
	if err := p.client.Distinguish(ctx, commentFullname, true); err != nil {
		p.logger.Warn("failed to sticky reply", "comment", commentFullname, "error", err)
	}

	p.logger.Info("reply posted", "post", post.Fullname, "comment", commentFullname)
	return OutcomeReplied, nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
