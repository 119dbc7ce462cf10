// Package buildinfo carries the release version stamped into the bot's user
// agent.
package buildinfo

// Version is the bot release version.
const Version = "1.2.0"

// UserAgent identifies the bot to the services it talks to.
const UserAgent = "ApproachControl/" + Version
