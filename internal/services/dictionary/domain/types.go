// Package domain declares dictionary types and ports
package domain

// Word is an active dictionary word with its selection score
type Word struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// AddInput adds one word to a community dictionary
type AddInput struct {
	Community string `json:"community" validate:"required"`
	Word      string `json:"word" validate:"required"`
	CommentID string `json:"comment_id,omitempty"`
}

// RemoveInput removes one word
type RemoveInput struct {
	Community string `json:"community" validate:"required"`
	Word      string `json:"word" validate:"required"`
}

// BanInput bans or unbans one word
type BanInput struct {
	Community string `json:"community" validate:"required"`
	Word      string `json:"word" validate:"required"`
}

// ReplaceInput swaps the whole active set
type ReplaceInput struct {
	Community string   `json:"community" validate:"required"`
	Words     []string `json:"words" validate:"required,min=1"`
	// PreserveScores keeps existing scores for words that survive the swap
	PreserveScores bool `json:"preserve_scores,omitempty"`
}

// RandomInput draws n random active words
type RandomInput struct {
	Community string `json:"community" validate:"required"`
	Count     int    `json:"count,omitempty" validate:"omitempty,min=1,max=25"`
}

// ListInput pages the active set alphabetically
type ListInput struct {
	Community string `json:"community" validate:"required"`
	Page      int    `json:"page,omitempty" validate:"omitempty,min=1"`
	PageSize  int    `json:"page_size,omitempty" validate:"omitempty,min=1,max=200"`
}

// ListOutput is one page of words plus the total count
type ListOutput struct {
	Words []Word `json:"words"`
	Total int64  `json:"total"`
}
