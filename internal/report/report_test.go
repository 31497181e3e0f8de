package report

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/dshills/qfscore/internal/input"
	"github.com/dshills/qfscore/internal/matching"
	"github.com/dshills/qfscore/internal/project"
	"github.com/dshills/qfscore/internal/trust"
)

func sampleDonors() []input.Donor {
	return []input.Donor{
		{ID: "bob", Activity: trust.Activity{AccountAgeDays: 200, TotalContributions: 10, TotalDonated: 500, UniqueProjects: 5}},
		{ID: "carol"},
		{ID: "alice", Wallet: "0x52908400098527886E0F7030069857D2E4169EE7", Activity: trust.Activity{
			AccountAgeDays: 365, TotalContributions: 50, TotalDonated: 5000, UniqueProjects: 20, Verified: true,
		}},
	}
}

func TestScoreDonors(t *testing.T) {
	got := ScoreDonors(trust.DefaultParams, matching.DefaultParams, sampleDonors())
	if len(got) != 3 {
		t.Fatalf("got %d scores, want 3", len(got))
	}
	if got[0].ID != "bob" || got[0].TotalScore != 33 || got[0].Tier != trust.TierBronze {
		t.Errorf("bob = %+v", got[0])
	}
	if got[0].MatchingEarned != 300 {
		t.Errorf("bob MatchingEarned = %v, want 300", got[0].MatchingEarned)
	}
	if got[1].TotalScore != 0 || got[1].Tier != trust.TierNew {
		t.Errorf("carol = %+v", got[1])
	}
	if got[2].Wallet == "" || got[2].Tier != trust.TierPlatinum {
		t.Errorf("alice = %+v", got[2])
	}
}

func TestComputeTrustSummary(t *testing.T) {
	scores := ScoreDonors(trust.DefaultParams, matching.DefaultParams, sampleDonors())
	s := ComputeTrustSummary(scores)
	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if s.MinScore != 0 || s.MaxScore != 96 {
		t.Errorf("Min/Max = %d/%d, want 0/96", s.MinScore, s.MaxScore)
	}
	if math.Abs(s.MeanScore-43) > 1e-9 {
		t.Errorf("MeanScore = %v, want 43", s.MeanScore)
	}
	want := map[trust.Tier]int{trust.TierNew: 1, trust.TierBronze: 1, trust.TierSilver: 0, trust.TierGold: 0, trust.TierPlatinum: 1}
	for tier, n := range want {
		if s.TierCounts[tier] != n {
			t.Errorf("TierCounts[%s] = %d, want %d", tier, s.TierCounts[tier], n)
		}
	}
}

func TestComputeTrustSummaryEmpty(t *testing.T) {
	s := ComputeTrustSummary(nil)
	if s.Count != 0 || s.MeanScore != 0 || s.MinScore != 0 || s.MaxScore != 0 {
		t.Errorf("empty summary = %+v", s)
	}
	if len(s.TierCounts) != len(trust.Tiers) {
		t.Errorf("expected a zero count for every tier, got %v", s.TierCounts)
	}
}

func TestSortDonors(t *testing.T) {
	scores := []DonorScore{
		{ID: "b", Result: trust.Result{TotalScore: 40}},
		{ID: "c", Result: trust.Result{TotalScore: 90}},
		{ID: "a", Result: trust.Result{TotalScore: 40}},
	}
	SortDonors(scores)
	want := []string{"c", "a", "b"}
	for i, id := range want {
		if scores[i].ID != id {
			t.Errorf("[%d].ID = %q, want %q", i, scores[i].ID, id)
		}
	}
}

func sampleProjects() []project.Project {
	return []project.Project{
		{ID: "1", Title: "Open Source Library", Raised: 45000, Goal: 100000, Contributors: 234, DaysLeft: 12},
		{ID: "2", Title: "Climate Research", Raised: 72000, Goal: 150000, Contributors: 456, DaysLeft: 5},
		{ID: "3", Title: "Gardens", Raised: 60000, Goal: 60000, Contributors: 312},
		{ID: "4", Title: "Empty", Goal: 1000},
	}
}

func TestMatchProjects(t *testing.T) {
	got := MatchProjects(matching.DefaultParams, 850000, sampleProjects())
	if len(got) != 4 {
		t.Fatalf("got %d matches, want 4", len(got))
	}
	if math.Abs(got[0].Progress-45) > 1e-9 {
		t.Errorf("[0].Progress = %v, want 45", got[0].Progress)
	}
	if got[1].Status != project.StatusEndingSoon {
		t.Errorf("[1].Status = %q, want ENDING_SOON", got[1].Status)
	}
	if got[2].Status != project.StatusFunded {
		t.Errorf("[2].Status = %q, want FUNDED", got[2].Status)
	}
	want := matching.ClosedForm(45000, 234)
	if math.Abs(got[0].Matching-want) > 1e-6*want {
		t.Errorf("[0].Matching = %v, want %v", got[0].Matching, want)
	}
	if got[3].Matching != 0 || got[3].Allocation != 0 {
		t.Errorf("empty project = %+v", got[3])
	}
	var pool float64
	for _, m := range got {
		pool += m.Allocation
	}
	if math.Abs(pool-850000) > 1e-6 {
		t.Errorf("allocations sum to %v, want 850000", pool)
	}
}

func TestComputeMatchSummaryAndSort(t *testing.T) {
	got := MatchProjects(matching.DefaultParams, 0, sampleProjects())
	s := ComputeMatchSummary(got, 0)
	if s.Projects != 4 || s.Funded != 1 {
		t.Errorf("summary = %+v", s)
	}
	if s.TotalRaised != 177000 {
		t.Errorf("TotalRaised = %v, want 177000", s.TotalRaised)
	}
	for _, m := range got {
		if m.Allocation != 0 {
			t.Errorf("zero pool allocated %v to %s", m.Allocation, m.ID)
		}
	}

	SortProjects(got)
	want := []string{"2", "3", "1", "4"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestTruncate(t *testing.T) {
	donors := make([]DonorScore, 5)
	projects := make([]ProjectMatch, 2)
	d, p := Truncate(donors, projects, 3)
	if len(d) != 3 || len(p) != 2 {
		t.Errorf("Truncate(3) = %d donors, %d projects", len(d), len(p))
	}
	d, p = Truncate(donors, projects, 0)
	if len(d) != 5 || len(p) != 2 {
		t.Errorf("Truncate(0) = %d donors, %d projects", len(d), len(p))
	}
}

func TestDonorScoreJSONShape(t *testing.T) {
	scores := ScoreDonors(trust.DefaultParams, matching.DefaultParams, sampleDonors()[:1])
	data, err := json.Marshal(scores[0])
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"id", "totalScore", "tier", "breakdown", "rawData", "matchingEarned"} {
		if _, ok := m[key]; !ok {
			t.Errorf("JSON missing key %q: %s", key, data)
		}
	}
}
