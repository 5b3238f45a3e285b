package broadcast

// EventType names the kind of update carried by an Envelope.
type EventType string

const (
	EventTeams     EventType = "teams"
	EventPlayers   EventType = "players"
	EventMatches   EventType = "matches"
	EventStandings EventType = "standings"
	EventAlert     EventType = "alert"
)

// Envelope is the message shape every viewer receives.
type Envelope struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`
}

// AlertType classifies an alert for display.
type AlertType string

const (
	AlertGoal     AlertType = "GOAL"
	AlertCard     AlertType = "CARD"
	AlertInfo     AlertType = "INFO"
	AlertMatchEnd AlertType = "MATCH_END"
)

// Alert is a short, human readable notice about something that happened in a match.
type Alert struct {
	Type    AlertType `json:"type" msgpack:"type"`
	Message string    `json:"message" msgpack:"message"`
	MatchID string    `json:"matchId" msgpack:"matchId"`
	Minute  string    `json:"minute,omitempty" msgpack:"minute,omitempty"`
}
