package consultmatch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(context.Background(), zap.NewNop(), "test-token")
	client.APIURL = server.URL

	return client
}

func TestRecommendConsultantsDecodesMatches(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recommend-consultants/7" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Fatalf("unexpected authorization header: %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"consultant": {
					"id": 11,
					"first_name": "Jane",
					"last_name": "Doe",
					"seniority_level": "Senior",
					"skill1": "Go",
					"skill2": "Kubernetes",
					"years_of_experience": 9
				},
				"match_score": 0.61,
				"match_reasons": ["Skill overlap", "Industry experience"]
			},
			{
				"consultant": {"id": 12, "first_name": "John", "last_name": "Smith"},
				"match_score": 0.52,
				"match_reasons": []
			}
		]`))
	})

	recs, err := client.RecommendConsultants(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if recs.Len() != 2 {
		t.Fatalf("expected 2 matches, got %d", recs.Len())
	}

	first := recs.Items[0]
	if first.Consultant.DisplayName() != "Jane Doe" {
		t.Fatalf("unexpected display name: %q", first.Consultant.DisplayName())
	}
	if first.MatchScore != 0.61 {
		t.Fatalf("unexpected match score: %v", first.MatchScore)
	}
	if len(first.MatchReasons) != 2 {
		t.Fatalf("expected 2 match reasons, got %d", len(first.MatchReasons))
	}

	// Backend order is preserved, never re-sorted.
	if recs.Items[1].Consultant.ID != 12 {
		t.Fatalf("expected backend order to be kept")
	}
}

func TestErrorBodyIsVerbatim(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("No consultants available for this project"))
	})

	_, err := client.RecommendConsultants(7)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "No consultants available for this project" {
		t.Fatalf("expected verbatim body as error, got: %v", err)
	}
}

func TestGetProjectRejectsMismatchedID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id": 99, "project_name": "Other"}`))
	})

	if _, err := client.GetProject(3); err == nil {
		t.Fatal("expected error for mismatched project id")
	}
}

func TestStaffProjectPostsExactlyFiveIDs(t *testing.T) {
	var gotBody string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/7/staff" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		buf, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("reading request body: %v", err)
		}
		gotBody = string(buf)
		w.WriteHeader(http.StatusOK)
	})

	if err := client.StaffProject(7, []int{1, 2, 3, 4, 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"consultant_ids":[1,2,3,4,5]}`
	if gotBody != want {
		t.Fatalf("unexpected request body: %s", gotBody)
	}

	if err := client.StaffProject(7, []int{1, 2, 3}); err == nil {
		t.Fatal("expected error for wrong team size")
	}
}

func TestFindByDisplayNameIsCaseInsensitive(t *testing.T) {
	recs := &Recommendations{Items: []*RecommendedMatch{
		{Consultant: &Consultant{ID: 1, FirstName: "Jane", LastName: "Doe"}},
		{Consultant: &Consultant{ID: 2, FirstName: "John", LastName: "Smith"}},
	}}

	if got := recs.FindByDisplayName("jane   doe"); got == nil || got.ID != 1 {
		t.Fatalf("expected to resolve jane doe, got %+v", got)
	}

	if got := recs.FindByDisplayName("Janet Doe"); got != nil {
		t.Fatalf("expected no match, got %+v", got)
	}
}

func TestParseDifficultyAndComposition(t *testing.T) {
	cases := []struct {
		raw  string
		want TeamComposition
	}{
		{"Easy", TeamComposition{Interns: 2, Juniors: 1, MidLevel: 1, Seniors: 1}},
		{"medium", TeamComposition{Interns: 1, Juniors: 2, MidLevel: 1, Seniors: 1}},
		{"HARD", TeamComposition{Interns: 0, Juniors: 2, MidLevel: 2, Seniors: 1}},
		{"expert", TeamComposition{Interns: 0, Juniors: 1, MidLevel: 2, Seniors: 2}},
	}

	for _, tc := range cases {
		d, err := ParseDifficulty(tc.raw)
		if err != nil {
			t.Fatalf("ParseDifficulty(%q): %v", tc.raw, err)
		}

		got, err := CompositionFor(d)
		if err != nil {
			t.Fatalf("CompositionFor(%q): %v", d, err)
		}
		if got != tc.want {
			t.Fatalf("CompositionFor(%q) = %+v, want %+v", d, got, tc.want)
		}
		if got.Total() != TeamSize {
			t.Fatalf("composition for %q does not total %d", d, TeamSize)
		}
	}

	if _, err := ParseDifficulty("impossible"); err == nil {
		t.Fatal("expected error for unknown difficulty")
	}
}
