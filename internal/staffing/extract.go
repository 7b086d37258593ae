package staffing

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/consultmatch/consultmatch/internal/consultmatch"
)

// teamMarker starts the team-recommendation section inside a reply.
// The prompt instructs the model to emit it verbatim.
const teamMarker = "Selected Team Composition"

// ErrMarkerNotFound means the reply carries no team section at all;
// nothing past the marker search is attempted.
var ErrMarkerNotFound = errors.New("could not find team recommendations in the reply")

// CountError reports an extraction that did not resolve exactly the
// required team size. It carries what was extracted for
// debuggability.
type CountError struct {
	Required int
	Found    int
	Names    []string
}

func (e *CountError) Error() string {
	return fmt.Sprintf("expected %d team members, found %d (extracted: %s)",
		e.Required, e.Found, strings.Join(e.Names, ", "))
}

// Name extraction is structural, not semantic: a numbered line, then
// two word-tokens. The first pattern requires a separator (dash) or
// end of line after the name; the second drops that requirement and
// is tried only when the first fails.
var (
	nameTerminated = regexp.MustCompile(`^\d+\.\s*([A-Za-z][A-Za-z'-]*)\s+([A-Za-z][A-Za-z'-]*)\s*(?:$|[-–—])`)
	nameLoose      = regexp.MustCompile(`^\d+\.\s*([A-Za-z][A-Za-z'-]*)\s+([A-Za-z][A-Za-z'-]*)`)
	ordinalLine    = regexp.MustCompile(`^\d+\.`)
)

// ExtractTeamNames pulls candidate display names out of a free-text
// reply. The reply is treated as an opaque string: everything from
// the team marker to the end is scanned for numbered lines, and each
// line yields at most one "First Last" name. Lines that match no
// pattern are skipped. Names are returned in listed order, without
// deduplication.
func ExtractTeamNames(reply string) ([]string, error) {
	idx := strings.Index(reply, teamMarker)
	if idx == -1 {
		return nil, ErrMarkerNotFound
	}

	section := reply[idx:]

	var names []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		// Markdown emphasis around names is decoration, not structure.
		line = strings.ReplaceAll(line, "*", "")

		if !ordinalLine.MatchString(line) {
			continue
		}

		if m := nameTerminated.FindStringSubmatch(line); m != nil {
			names = append(names, m[1]+" "+m[2])
			continue
		}
		if m := nameLoose.FindStringSubmatch(line); m != nil {
			names = append(names, m[1]+" "+m[2])
		}
	}

	return names, nil
}

// ResolveTeam matches extracted names back to recommended
// consultants, case-insensitively. Individually unmatched names are
// dropped; only the final count check is fatal, and it is reported
// through CountError with the full extracted list.
func ResolveTeam(reply string, recommendations *consultmatch.Recommendations, onUnmatched func(name string)) ([]*consultmatch.Consultant, error) {
	names, err := ExtractTeamNames(reply)
	if err != nil {
		return nil, err
	}

	team := make([]*consultmatch.Consultant, 0, consultmatch.TeamSize)
	for _, name := range names {
		consultant := recommendations.FindByDisplayName(name)
		if consultant == nil {
			if onUnmatched != nil {
				onUnmatched(name)
			}
			continue
		}

		team = append(team, consultant)
	}

	if len(team) != consultmatch.TeamSize {
		return nil, &CountError{
			Required: consultmatch.TeamSize,
			Found:    len(team),
			Names:    names,
		}
	}

	return team, nil
}
