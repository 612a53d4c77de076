package domain

import (
	"fmt"
	"strings"
)

// Difficulty selects the computer's move generator for a session.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// Difficulties lists the tiers in menu order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty accepts a tier name, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Hard, fmt.Errorf("unknown difficulty %q", s)
}
