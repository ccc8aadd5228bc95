package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures of the release resolution flow. TagNotFound
// is the only tag that triggers the PyPI fallback; everything else is
// surfaced to the caller as-is.
var (
	// TagNotFound marks the expected "no qualifying release/package" case
	TagNotFound = goerr.NewTag("not_found")

	// TagUnknownRepo marks a name that is neither mapped nor owner/repo shaped
	TagUnknownRepo = goerr.NewTag("unknown_repository")

	// TagTransport marks network failures and unexpected HTTP statuses
	TagTransport = goerr.NewTag("transport")

	// TagRateLimited marks GitHub 403/429 responses
	TagRateLimited = goerr.NewTag("rate_limited")

	// TagParse marks malformed API responses
	TagParse = goerr.NewTag("parse")

	// TagConfig marks startup-time configuration failures, fatal to process start
	TagConfig = goerr.NewTag("config")
)
