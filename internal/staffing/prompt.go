package staffing

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/consultmatch/consultmatch/internal/consultmatch"
	"github.com/consultmatch/consultmatch/internal/score"
)

//go:embed prompt.md
var analysisTemplate string

// promptCandidateLimit caps how many ranked candidates are embedded
// in a prompt.
const promptCandidateLimit = 10

var difficultyOrder = []consultmatch.Difficulty{
	consultmatch.DifficultyEasy,
	consultmatch.DifficultyMedium,
	consultmatch.DifficultyHard,
	consultmatch.DifficultyExpert,
}

// buildAnalysisPrompt renders the initial team-recommendation prompt:
// project facts, the composition constraint for the project's
// difficulty, and the numbered candidate list with remapped
// percentage scores and match reasons.
func buildAnalysisPrompt(project *consultmatch.Project, difficulty consultmatch.Difficulty, matches []*consultmatch.RecommendedMatch, normalizer score.Normalizer) (string, error) {
	composition, err := consultmatch.CompositionFor(difficulty)
	if err != nil {
		return "", err
	}

	details := fmt.Sprintf(`- Name: %s
- Difficulty: %s
- Preferred Industry: %s
- Required Skills: %s`,
		project.Name, difficulty, project.PreferredIndustry,
		strings.Join(project.RequiredSkills(), ", "))

	var table strings.Builder
	for _, d := range difficultyOrder {
		tc, err := consultmatch.CompositionFor(d)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&table, "- **%s** -> %s\n", d, tc)
	}

	var candidates strings.Builder
	for i, match := range matches {
		if i >= promptCandidateLimit {
			break
		}

		c := match.Consultant
		hobbies := strings.TrimSpace(c.Hobbies)
		if hobbies == "" {
			hobbies = "Not specified"
		}

		fmt.Fprintf(&candidates, `%d. **Name**: %s
   - Seniority: %s
   - Skills: %s
   - Past Industry: %s
   - Years of Experience: %d
   - Match Score: %d%%
   - Hobbies: %s
   - Key Strengths: %s

`,
			i+1, c.DisplayName(), c.SeniorityLevel,
			strings.Join(c.Skills(), ", "), c.PastProjectIndustry,
			c.YearsOfExperience, normalizer.Percentage(match.MatchScore),
			hobbies, strings.Join(match.MatchReasons, ", "))
	}

	prompt := analysisTemplate
	prompt = strings.ReplaceAll(prompt, "{{PROJECT_DETAILS}}", details)
	prompt = strings.ReplaceAll(prompt, "{{COMPOSITION_TABLE}}", strings.TrimRight(table.String(), "\n"))
	prompt = strings.ReplaceAll(prompt, "{{DIFFICULTY}}", string(difficulty))
	prompt = strings.ReplaceAll(prompt, "{{COMPOSITION}}", composition.String())
	prompt = strings.ReplaceAll(prompt, "{{CANDIDATES}}", strings.TrimRight(candidates.String(), "\n"))

	return prompt, nil
}

// buildFollowUpPrompt embeds the user's question plus a compact
// candidate summary. Each call is self-contained: the model never
// sees the conversation history, only re-embedded facts, and the
// summary carries no match reasons.
func buildFollowUpPrompt(question string, project *consultmatch.Project, matches []*consultmatch.RecommendedMatch) string {
	var candidates strings.Builder
	for i, match := range matches {
		if i >= promptCandidateLimit {
			break
		}

		c := match.Consultant
		fmt.Fprintf(&candidates, `%d. %s
   Skills: %s
   Experience: %d years
   Seniority: %s
   Match Score: %v

`,
			i+1, c.DisplayName(),
			strings.Join(c.Skills(), ", "),
			c.YearsOfExperience, c.SeniorityLevel, match.MatchScore)
	}

	return fmt.Sprintf(`%s

Context: You are analyzing candidates for the project "%s". You previously recommended the top 5 candidates from the pool below.

Here are the candidates:
%s
Consider the project requirements (%s) and the candidates' profiles in your response.`,
		question, project.Name,
		candidates.String(),
		strings.Join(project.RequiredSkills(), ", "))
}
