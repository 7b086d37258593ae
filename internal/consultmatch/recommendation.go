package consultmatch

import (
	"fmt"
	"strings"
)

// RecommendedMatch pairs a consultant with the backend-computed raw
// match score and its free-text reasons. Ranking is the backend's
// responsibility; the list is never re-sorted client-side.
type RecommendedMatch struct {
	Consultant   *Consultant `json:"consultant"`
	MatchScore   float64     `json:"match_score" mapstructure:"match_score"`
	MatchReasons []string    `json:"match_reasons" mapstructure:"match_reasons"`
}

type Recommendations struct {
	Items []*RecommendedMatch
}

func (r *Recommendations) Len() int {
	return len(r.Items)
}

// Top returns the first n matches in backend order.
func (r *Recommendations) Top(n int) []*RecommendedMatch {
	if n > len(r.Items) {
		n = len(r.Items)
	}

	return r.Items[:n]
}

// FindByDisplayName resolves a "first last" name to a recommended
// consultant. Matching is case-insensitive and whitespace-normalized.
func (r *Recommendations) FindByDisplayName(name string) *Consultant {
	want := normalizeName(name)
	if want == "" {
		return nil
	}

	for _, match := range r.Items {
		if match.Consultant == nil {
			continue
		}
		if normalizeName(match.Consultant.DisplayName()) == want {
			return match.Consultant
		}
	}

	return nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func (c *Client) recommendConsultants(projectID int) (*Recommendations, error) {
	items, err := c.getItems(fmt.Sprintf("%s/recommend-consultants/%d", c.APIURL, projectID))
	if err != nil {
		return nil, err
	}

	var matches []*RecommendedMatch
	if err := decodeItems(items, &matches); err != nil {
		return nil, err
	}

	return &Recommendations{Items: matches}, nil
}
