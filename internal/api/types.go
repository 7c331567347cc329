package api

// Raw response shapes, trusted as-is. For private profiles the API returns
// zeroed integers and null strings; both decode without special handling and
// are passed through to normalization verbatim.

// PlayerProfile is one row of a getplayer response. An empty response array
// is the API's convention for "no such player".
type PlayerProfile struct {
	Name                  string  `json:"Name"`
	Level                 int     `json:"Level"`
	HoursPlayed           int     `json:"HoursPlayed"`
	CreatedDatetime       *string `json:"Created_Datetime"`
	PersonalStatusMessage string  `json:"Personal_Status_Message"`
	RankStatConquest      float64 `json:"Rank_Stat_Conquest"`
}

// QueueStat is one per-god row of a getqueuestats response.
type QueueStat struct {
	God        string `json:"God"`
	Matches    int    `json:"Matches"`
	Wins       int    `json:"Wins"`
	LastPlayed string `json:"LastPlayed"`
}

// Match is one row of a getmatchhistory response, most recent first.
type Match struct {
	WinStatus string `json:"Win_Status"`
	Minutes   int    `json:"Minutes"`
	Role      string `json:"Role"`
	God       string `json:"God"`
	Kills     int    `json:"Kills"`
	Deaths    int    `json:"Deaths"`
	Assists   int    `json:"Assists"`
	QueueID   int    `json:"Match_Queue_Id"`
	MatchTime string `json:"Match_Time"`
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
	RetMsg    string `json:"ret_msg"`
}
