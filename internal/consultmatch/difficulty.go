package consultmatch

import (
	"fmt"
	"strings"
)

// Difficulty is the project tier that selects a required team
// composition.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// TeamComposition is the required seniority mix for a five-person
// team.
type TeamComposition struct {
	Interns  int
	Juniors  int
	MidLevel int
	Seniors  int
}

func (tc TeamComposition) Total() int {
	return tc.Interns + tc.Juniors + tc.MidLevel + tc.Seniors
}

func (tc TeamComposition) String() string {
	return fmt.Sprintf("%d interns, %d juniors, %d mid-level, %d seniors",
		tc.Interns, tc.Juniors, tc.MidLevel, tc.Seniors)
}

// compositions is the fixed difficulty-to-team lookup. Every tier
// totals five members.
var compositions = map[Difficulty]TeamComposition{
	DifficultyEasy:   {Interns: 2, Juniors: 1, MidLevel: 1, Seniors: 1},
	DifficultyMedium: {Interns: 1, Juniors: 2, MidLevel: 1, Seniors: 1},
	DifficultyHard:   {Interns: 0, Juniors: 2, MidLevel: 2, Seniors: 1},
	DifficultyExpert: {Interns: 0, Juniors: 1, MidLevel: 2, Seniors: 2},
}

// ParseDifficulty resolves a free-form tier name coming from the
// backend.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := compositions[d]; !ok {
		return "", fmt.Errorf("unknown project difficulty: %q", s)
	}

	return d, nil
}

// CompositionFor returns the required team composition for the
// difficulty tier.
func CompositionFor(d Difficulty) (TeamComposition, error) {
	tc, ok := compositions[d]
	if !ok {
		return TeamComposition{}, fmt.Errorf("unknown project difficulty: %q", d)
	}

	return tc, nil
}
