// Package domain declares progression types and ports
package domain

// Level is one rung of the fixed progression ladder
type Level struct {
	Rank int    `json:"rank"`
	Name string `json:"name"`
	Min  int64  `json:"min"`
}

// Levels is the fixed ladder, ascending by Min.
// Thresholds are a product decision and change rarely
var Levels = []Level{
	{Rank: 1, Name: "Doodler", Min: 0},
	{Rank: 2, Name: "Sketcher", Min: 20},
	{Rank: 3, Name: "Scribbler", Min: 50},
	{Rank: 4, Name: "Illustrator", Min: 100},
	{Rank: 5, Name: "Artist", Min: 250},
	{Rank: 6, Name: "Painter", Min: 500},
	{Rank: 7, Name: "Master", Min: 1000},
	{Rank: 8, Name: "Virtuoso", Min: 2500},
	{Rank: 9, Name: "Legend", Min: 5000},
	{Rank: 10, Name: "Immortal", Min: 10000},
}

// LevelFor returns the highest level whose threshold the score meets
func LevelFor(score int64) Level {
	out := Levels[0]
	for _, l := range Levels {
		if score >= l.Min {
			out = l
		}
	}
	return out
}

// AwardInput credits points to a user
type AwardInput struct {
	Community string `json:"community" validate:"required"`
	UserID    string `json:"user_id" validate:"required"`
	Amount    int64  `json:"amount" validate:"required,min=1"`
}

// Standing is one leaderboard row
type Standing struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Score    int64  `json:"score"`
	Level    Level  `json:"level"`
}

// Progress is a user's score and level readout
type Progress struct {
	UserID string `json:"user_id"`
	Score  int64  `json:"score"`
	Level  Level  `json:"level"`
	// NextMin is the threshold of the next level, 0 at the ladder top
	NextMin int64 `json:"next_min,omitempty"`
}
