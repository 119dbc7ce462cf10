package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mtowers/approach-control/internal/buildinfo"
)

// Subreddit is the community this bot watches.
const Subreddit = "shortfinal"

const defaultUsername = "approach_control"

// Config holds all configuration for the bot.
type Config struct {
	// ClientID and ClientSecret identify the script-type OAuth2 app.
	ClientID     string
	ClientSecret string

	// Username is the bot's account name. It is also the identity the
	// duplicate guard compares reply authors against.
	Username string

	// Password is the bot account's password.
	Password string

	// Port is the observability HTTP server port.
	Port int

	// PollInterval paces reads of the new-submission listing.
	PollInterval time.Duration

	// FetchLimit bounds items fetched per poll.
	FetchLimit int

	// UserAgent is sent on every outbound request.
	UserAgent string
}

// Load reads configuration from environment variables. Missing credentials
// are a fatal startup condition, not a retryable one.
func Load() (*Config, error) {
	cfg := &Config{
		Username:     defaultUsername,
		Port:         8080,
		PollInterval: 2 * time.Second,
		FetchLimit:   10,
		UserAgent:    buildinfo.UserAgent,
	}

	var missing []string

	cfg.ClientID = os.Getenv("CLIENT_ID")
	if cfg.ClientID == "" {
		missing = append(missing, "CLIENT_ID")
	}

	cfg.ClientSecret = os.Getenv("CLIENT_SECRET")
	if cfg.ClientSecret == "" {
		missing = append(missing, "CLIENT_SECRET")
	}

	cfg.Password = os.Getenv("REDDIT_PASSWORD")
	if cfg.Password == "" {
		missing = append(missing, "REDDIT_PASSWORD")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if u := os.Getenv("REDDIT_USERNAME"); u != "" {
		cfg.Username = u
	}

	if p := os.Getenv("PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		cfg.Port = port
	}

	if v := os.Getenv("POLL_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid POLL_INTERVAL: %w", err)
		}
		cfg.PollInterval = interval
	}

	if v := os.Getenv("FETCH_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FETCH_LIMIT: %w", err)
		}
		cfg.FetchLimit = limit
	}

	return cfg, nil
}
