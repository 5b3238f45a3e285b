package league

import "encoding/json"

// Score is the wire form of a match score, keyed by side.
type Score struct {
	TeamA int `json:"teamA"`
	TeamB int `json:"teamB"`
}

// matchJSON is the shape viewers receive: home/away are exposed as teamA/teamB and
// the score is nested.
type matchJSON struct {
	ID      string      `json:"id"`
	TeamA   string      `json:"teamA"`
	TeamB   string      `json:"teamB"`
	Date    string      `json:"date"`
	Time    string      `json:"time"`
	Status  MatchStatus `json:"status"`
	Score   Score       `json:"score"`
	Rosters Rosters     `json:"rosters"`
}

func (m Match) MarshalJSON() ([]byte, error) {
	rosters := m.Rosters
	if rosters.Home == nil {
		rosters.Home = []string{}
	}
	if rosters.Away == nil {
		rosters.Away = []string{}
	}
	return json.Marshal(matchJSON{
		ID:      m.ID,
		TeamA:   m.HomeTeamID,
		TeamB:   m.AwayTeamID,
		Date:    m.Date,
		Time:    m.Time,
		Status:  m.Status,
		Score:   Score{TeamA: m.HomeScore, TeamB: m.AwayScore},
		Rosters: rosters,
	})
}

func (m *Match) UnmarshalJSON(data []byte) error {
	var v matchJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Match{
		ID:         v.ID,
		HomeTeamID: v.TeamA,
		AwayTeamID: v.TeamB,
		Date:       v.Date,
		Time:       v.Time,
		Status:     v.Status,
		HomeScore:  v.Score.TeamA,
		AwayScore:  v.Score.TeamB,
		Rosters:    v.Rosters,
	}
	return nil
}
