package constants

import "time"

// The queue id and top-N cutoffs are named here rather than inlined so a
// different queue can be scouted by changing one place.
const (
	QueueRankedConquest = 451
	TopGodCount         = 3
	TopMatchCount       = 3
)

const (
	// DefaultPaceInterval is the minimum spacing between outbound API calls.
	DefaultPaceInterval = 100 * time.Millisecond

	// APITimestampLayout is the request timestamp format the signature binds.
	APITimestampLayout = "20060102150405"

	// APIDateTimeLayout is the layout of datetimes in API responses
	// (MM/DD/YYYY hh:mm:ss AM|PM, no zone, treated as UTC).
	APIDateTimeLayout = "1/2/2006 3:04:05 PM"
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	LookupTimeout      = 30 * time.Second
	ShutdownTimeout    = 5 * time.Second
)

const (
	// MaxConcurrentLookups bounds the per-player fan-out in plain mode.
	MaxConcurrentLookups = 5

	// MaxNameLength is the longest player name the lobby editor accepts.
	MaxNameLength = 32
)

const (
	HistoryListLimit = 20
	LobbyIDLength    = 12
)
