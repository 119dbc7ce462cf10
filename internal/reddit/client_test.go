package reddit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const submissionListing = `{
	"kind": "Listing",
	"data": {
		"after": "t3_older",
		"children": [
			{"kind": "t3", "data": {"id": "new1", "name": "t3_new1", "title": "KBFI - 13R", "author": "pilot_one", "created_utc": 1467000100}},
			{"kind": "t3", "data": {"id": "old1", "name": "t3_old1", "title": "Beautiful sunset", "author": "pilot_two", "created_utc": 1467000000}}
		]
	}
}`

const commentsResponse = `[
	{"kind": "Listing", "data": {"children": [
		{"kind": "t3", "data": {"id": "new1", "name": "t3_new1", "title": "KBFI - 13R"}}
	]}},
	{"kind": "Listing", "data": {"children": [
		{"kind": "t1", "data": {"id": "c1", "name": "t1_c1", "author": "approach_control", "body": "* Airport: ..."}},
		{"kind": "t1", "data": {"id": "c2", "name": "t1_c2", "author": "pilot_two", "body": "nice"}},
		{"kind": "more", "data": {"count": 3}}
	]}}
]`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	creds := Credentials{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		Username:     "approach_control",
		Password:     "hunter2",
	}
	return NewClient(srv.URL, srv.URL+"/api/v1/access_token", creds, "ApproachControl/test")
}

func TestAuthenticate_StoresTokenForLaterRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/access_token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "test-client" || pass != "test-secret" {
			t.Errorf("basic auth = %q/%q, want app credentials", user, pass)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("grant_type"); got != "password" {
			t.Errorf("grant_type = %q, want password", got)
		}
		if got := r.PostForm.Get("username"); got != "approach_control" {
			t.Errorf("username = %q", got)
		}
		fmt.Fprint(w, `{"access_token": "tok-123", "token_type": "bearer", "expires_in": 3600}`)
	})
	mux.HandleFunc("GET /r/shortfinal/new", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		if got := r.Header.Get("User-Agent"); got != "ApproachControl/test" {
			t.Errorf("User-Agent = %q", got)
		}
		fmt.Fprint(w, submissionListing)
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	if err := c.Authenticate(ctx); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	posts, err := c.NewSubmissions(ctx, "shortfinal", 10)
	if err != nil {
		t.Fatalf("NewSubmissions: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
	if posts[0].Fullname != "t3_new1" || posts[0].Title != "KBFI - 13R" || posts[0].Author != "pilot_one" {
		t.Errorf("first post = %+v", posts[0])
	}
	if !posts[0].CreatedAt.Equal(time.Unix(1467000100, 0)) {
		t.Errorf("CreatedAt = %v", posts[0].CreatedAt)
	}
}

func TestAuthenticate_RejectedCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/access_token", func(w http.ResponseWriter, _ *http.Request) {
		// Reddit answers bad credentials with a 200 carrying an error field.
		fmt.Fprint(w, `{"error": "invalid_grant"}`)
	})

	c := newTestClient(t, mux)
	err := c.Authenticate(context.Background())
	if err == nil {
		t.Fatal("expected error for rejected credentials")
	}
}

func TestExpandReplies_ParsesCommentListing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /comments/new1", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "20" {
			t.Errorf("limit = %q, want 20", got)
		}
		if got := r.URL.Query().Get("depth"); got != "1" {
			t.Errorf("depth = %q, want 1", got)
		}
		fmt.Fprint(w, commentsResponse)
	})

	c := newTestClient(t, mux)
	comments, err := c.ExpandReplies(context.Background(), "new1", 20, 1)
	if err != nil {
		t.Fatalf("ExpandReplies: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("got %d comments, want 2 (more placeholder skipped)", len(comments))
	}
	if comments[0].Author != "approach_control" || comments[0].Fullname != "t1_c1" {
		t.Errorf("first comment = %+v", comments[0])
	}
}

func TestReply_SubmitsCommentAndReturnsFullname(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/comment", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("thing_id"); got != "t3_new1" {
			t.Errorf("thing_id = %q", got)
		}
		if got := r.PostForm.Get("text"); got != "* Airport:  [KBFI](url)" {
			t.Errorf("text = %q", got)
		}
		fmt.Fprint(w, `{"json": {"errors": [], "data": {"things": [
			{"kind": "t1", "data": {"id": "c9", "name": "t1_c9"}}
		]}}}`)
	})

	c := newTestClient(t, mux)
	name, err := c.Reply(context.Background(), "t3_new1", "* Airport:  [KBFI](url)")
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if name != "t1_c9" {
		t.Errorf("comment fullname = %q, want t1_c9", name)
	}
}

func TestDistinguish_SendsStickyForm(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/distinguish", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("id"); got != "t1_c9" {
			t.Errorf("id = %q", got)
		}
		if got := r.PostForm.Get("how"); got != "yes" {
			t.Errorf("how = %q", got)
		}
		if got := r.PostForm.Get("sticky"); got != "true" {
			t.Errorf("sticky = %q", got)
		}
		fmt.Fprint(w, `{"json": {"errors": []}}`)
	})

	c := newTestClient(t, mux)
	if err := c.Distinguish(context.Background(), "t1_c9", true); err != nil {
		t.Fatalf("Distinguish: %v", err)
	}
}

func TestSend_RateLimitCarriesRetryAfter(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /r/shortfinal/new", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	c := newTestClient(t, mux)
	_, err := c.NewSubmissions(context.Background(), "shortfinal", 10)

	var rateLimited *RateLimitError
	if !errors.As(err, &rateLimited) {
		t.Fatalf("err = %v, want *RateLimitError", err)
	}
	if rateLimited.RetryAfter != 30*time.Second {
		t.Errorf("RetryAfter = %v, want 30s", rateLimited.RetryAfter)
	}
}

func TestSend_ErrorClassification(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		authExpired bool
		serverError bool
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, authExpired: true},
		{name: "internal server error", status: http.StatusInternalServerError, serverError: true},
		{name: "bad gateway", status: http.StatusBadGateway, serverError: true},
		{name: "forbidden is neither", status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))

			_, err := c.NewSubmissions(context.Background(), "shortfinal", 10)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := IsAuthExpired(err); got != tt.authExpired {
				t.Errorf("IsAuthExpired = %t, want %t", got, tt.authExpired)
			}
			if got := IsServerError(err); got != tt.serverError {
				t.Errorf("IsServerError = %t, want %t", got, tt.serverError)
			}
		})
	}
}
