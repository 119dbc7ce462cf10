package reddit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mtowers/approach-control/internal/domain"
)

// thing is the kind/data envelope every Reddit API object arrives in.
// Submissions are kind t3, comments kind t1.
type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type listingData struct {
	Children []thing `json:"children"`
	After    string  `json:"after"`
}

type submissionData struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	CreatedUTC float64 `json:"created_utc"`
}

type commentData struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Author string `json:"author"`
	Body   string `json:"body"`
}

// parseSubmissionListing decodes a /r/<sub>/new listing into domain posts,
// in the order the service returned them (newest first).
func parseSubmissionListing(data []byte) ([]domain.Post, error) {
	var envelope thing
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal listing: %w", err)
	}

	var listing listingData
	if err := json.Unmarshal(envelope.Data, &listing); err != nil {
		return nil, fmt.Errorf("unmarshal listing data: %w", err)
	}

	posts := make([]domain.Post, 0, len(listing.Children))
	for _, child := range listing.Children {
		if child.Kind != "t3" {
			continue
		}
		var sub submissionData
		if err := json.Unmarshal(child.Data, &sub); err != nil {
			return nil, fmt.Errorf("unmarshal submission: %w", err)
		}
		posts = append(posts, domain.Post{
			Fullname:  sub.Name,
			ID:        sub.ID,
			Title:     sub.Title,
			Author:    sub.Author,
			CreatedAt: time.Unix(int64(sub.CreatedUTC), 0).UTC(),
		})
	}
	return posts, nil
}

// parseCommentsResponse decodes the two-listing array returned by the
// comments endpoint: the submission itself, then its replies. Placeholder
// "more" things are skipped; the bounded fetch is enough to spot a prior
// reply without enumerating the whole tree.
func parseCommentsResponse(data []byte) ([]domain.Comment, error) {
	var listings []thing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("unmarshal comments response: %w", err)
	}
	if len(listings) < 2 {
		return nil, nil
	}

	var listing listingData
	if err := json.Unmarshal(listings[1].Data, &listing); err != nil {
		return nil, fmt.Errorf("unmarshal comment listing: %w", err)
	}

	comments := make([]domain.Comment, 0, len(listing.Children))
	for _, child := range listing.Children {
		if child.Kind != "t1" {
			continue
		}
		var c commentData
		if err := json.Unmarshal(child.Data, &c); err != nil {
			return nil, fmt.Errorf("unmarshal comment: %w", err)
		}
		comments = append(comments, domain.Comment{
			Fullname: c.Name,
			Author:   c.Author,
			Body:     c.Body,
		})
	}
	return comments, nil
}
