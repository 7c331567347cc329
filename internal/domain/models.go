package domain

// PlayerRecord is the normalized, display-ready view of one player. All
// fields are strings because the grid renders them verbatim; the raw API
// values are not kept past a lookup.
type PlayerRecord struct {
	Level   string `json:"level"`
	Hours   string `json:"hours"`
	Created string `json:"created"`
	Status  string `json:"status"`
	AltName string `json:"alt_name"`
	MMR     string `json:"mmr"`

	// Matches is the player's total ranked-conquest match count.
	Matches string `json:"matches"`

	// Last is a relative date of the most recent ranked-conquest match.
	Last string `json:"last"`

	Gods          []GodStat     `json:"gods"`
	RecentMatches []MatchRecord `json:"recent_matches"`
}

// GodStat is one of the player's most-played gods, with match and win counts
// annotated by their percentage share.
type GodStat struct {
	Name    string `json:"name"`
	Matches string `json:"matches"`
	Wins    string `json:"wins"`
	Last    string `json:"last"`
}

// MatchRecord is one recent ranked-conquest match.
type MatchRecord struct {
	Outcome string `json:"outcome"`
	Length  string `json:"length"`
	Role    string `json:"role"`
	God     string `json:"god"`
	KDA     string `json:"kda"`
}

// LobbyPlayer is one slot of a lobby: the entered name plus the lookup
// outcome. Record is nil for players that were not found (or not yet looked
// up); Error holds the rendered failure for the grid and history.
type LobbyPlayer struct {
	Name   string        `json:"name"`
	Record *PlayerRecord `json:"info,omitempty"`
	Error  string        `json:"error,omitempty"`
}
