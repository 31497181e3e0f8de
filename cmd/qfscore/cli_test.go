package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/qfscore/internal/report"
	"github.com/dshills/qfscore/internal/trust"
)

const roundFile = "../../testdata/round.yaml"

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var ee *exitErr
	if !errors.As(err, &ee) {
		t.Fatalf("expected *exitErr, got %T: %v", err, err)
	}
	return ee.code
}

func defaultTrustFlags() *trustFlags {
	return &trustFlags{format: "json", profileRef: "default", id: "donor"}
}

func TestTrustFromFlags(t *testing.T) {
	f := defaultTrustFlags()
	f.activity = trust.Activity{AccountAgeDays: 200, TotalContributions: 10, TotalDonated: 500, UniqueProjects: 5}

	var buf bytes.Buffer
	if err := runTrust(&buf, "", f); err != nil {
		t.Fatalf("runTrust: %v", err)
	}
	var rep report.TrustReport
	if err := json.Unmarshal(buf.Bytes(), &rep); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if len(rep.Donors) != 1 {
		t.Fatalf("got %d donors, want 1", len(rep.Donors))
	}
	d := rep.Donors[0]
	if d.ID != "donor" || d.TotalScore != 33 || d.Tier != trust.TierBronze {
		t.Errorf("donor = %+v", d)
	}
	if rep.Tool != "qfscore" || rep.Input.Profile != "default" {
		t.Errorf("metadata = %+v / %+v", rep.Tool, rep.Input)
	}
}

func TestTrustBatch(t *testing.T) {
	var buf bytes.Buffer
	if err := runTrust(&buf, roundFile, defaultTrustFlags()); err != nil {
		t.Fatalf("runTrust: %v", err)
	}
	var rep report.TrustReport
	if err := json.Unmarshal(buf.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}
	want := []string{"alice", "bob", "carol"}
	if len(rep.Donors) != len(want) {
		t.Fatalf("got %d donors, want %d", len(rep.Donors), len(want))
	}
	for i, id := range want {
		if rep.Donors[i].ID != id {
			t.Errorf("[%d].ID = %q, want %q", i, rep.Donors[i].ID, id)
		}
	}
	if rep.Input.File != "round.yaml" || !strings.HasPrefix(rep.Input.Hash, "sha256:") {
		t.Errorf("input = %+v", rep.Input)
	}
}

func TestTrustTopKeepsSummary(t *testing.T) {
	f := defaultTrustFlags()
	f.top = 1
	var buf bytes.Buffer
	if err := runTrust(&buf, roundFile, f); err != nil {
		t.Fatal(err)
	}
	var rep report.TrustReport
	if err := json.Unmarshal(buf.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}
	if len(rep.Donors) != 1 || rep.Summary.Count != 3 {
		t.Errorf("got %d donors, summary count %d; want 1 and 3", len(rep.Donors), rep.Summary.Count)
	}
}

func TestTrustFailBelow(t *testing.T) {
	tests := []struct {
		tier string
		want int
	}{
		{"new", 0},
		{"Bronze", 2},
		{"platinum", 2},
		{"diamond", 3},
	}
	for _, tt := range tests {
		t.Run(tt.tier, func(t *testing.T) {
			f := defaultTrustFlags()
			f.failBelow = tt.tier
			var buf bytes.Buffer
			if got := exitCode(t, runTrust(&buf, roundFile, f)); got != tt.want {
				t.Errorf("exit code = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTrustMarkdownToFile(t *testing.T) {
	f := defaultTrustFlags()
	f.format = "md"
	f.out = filepath.Join(t.TempDir(), "report.md")

	var buf bytes.Buffer
	if err := runTrust(&buf, roundFile, f); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written to stdout with --out")
	}
	data, err := os.ReadFile(f.out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "# Trust Score Report") {
		t.Errorf("unexpected markdown:\n%s", data)
	}
}

func TestTrustInputErrors(t *testing.T) {
	t.Run("negative activity", func(t *testing.T) {
		f := defaultTrustFlags()
		f.activity.TotalDonated = -1
		if got := exitCode(t, runTrust(&bytes.Buffer{}, "", f)); got != exitInput {
			t.Errorf("exit code = %d, want %d", got, exitInput)
		}
	})
	t.Run("bad wallet", func(t *testing.T) {
		f := defaultTrustFlags()
		f.wallet = "0x123"
		if got := exitCode(t, runTrust(&bytes.Buffer{}, "", f)); got != exitInput {
			t.Errorf("exit code = %d, want %d", got, exitInput)
		}
	})
	t.Run("missing file", func(t *testing.T) {
		if got := exitCode(t, runTrust(&bytes.Buffer{}, "does-not-exist.yaml", defaultTrustFlags())); got != exitInput {
			t.Errorf("exit code = %d, want %d", got, exitInput)
		}
	})
	t.Run("unknown profile", func(t *testing.T) {
		f := defaultTrustFlags()
		f.profileRef = "nope"
		if got := exitCode(t, runTrust(&bytes.Buffer{}, "", f)); got != exitInput {
			t.Errorf("exit code = %d, want %d", got, exitInput)
		}
	})
	t.Run("unknown format", func(t *testing.T) {
		f := defaultTrustFlags()
		f.format = "xml"
		if got := exitCode(t, runTrust(&bytes.Buffer{}, "", f)); got != exitInput {
			t.Errorf("exit code = %d, want %d", got, exitInput)
		}
	})
}

func defaultMatchFlags() *matchFlags {
	return &matchFlags{format: "json", profileRef: "default"}
}

func TestMatchSingleProject(t *testing.T) {
	f := defaultMatchFlags()
	f.raised = 10000
	f.contributors = 200

	var buf bytes.Buffer
	if err := runMatch(&buf, "", f); err != nil {
		t.Fatal(err)
	}
	var rep report.MatchReport
	if err := json.Unmarshal(buf.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}
	if len(rep.Projects) != 1 {
		t.Fatalf("got %d projects", len(rep.Projects))
	}
	if m := rep.Projects[0].Matching; m < 599999.99 || m > 600000.01 {
		t.Errorf("Matching = %v, want 600000", m)
	}
}

func TestMatchBatchUsesPool(t *testing.T) {
	var buf bytes.Buffer
	if err := runMatch(&buf, roundFile, defaultMatchFlags()); err != nil {
		t.Fatal(err)
	}
	var rep report.MatchReport
	if err := json.Unmarshal(buf.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}
	if rep.Summary.Pool != 850000 {
		t.Errorf("Pool = %v, want 850000 from the batch file", rep.Summary.Pool)
	}
	if rep.Summary.Funded != 1 {
		t.Errorf("Funded = %d, want 1", rep.Summary.Funded)
	}
	if rep.Projects[0].ID != "2" {
		t.Errorf("first project = %q, want the largest match", rep.Projects[0].ID)
	}

	f := defaultMatchFlags()
	f.pool, f.hasPool = 0, true
	buf.Reset()
	if err := runMatch(&buf, roundFile, f); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(buf.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}
	if rep.Summary.Pool != 0 {
		t.Errorf("--pool 0 should override the batch pool, got %v", rep.Summary.Pool)
	}
}

func TestMatchPending(t *testing.T) {
	f := defaultMatchFlags()
	f.pending, f.hasPending = 100, true

	var buf bytes.Buffer
	if err := runMatch(&buf, "", f); err != nil {
		t.Fatal(err)
	}
	var res pendingResult
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.EstimatedMatch != 150 {
		t.Errorf("EstimatedMatch = %v, want 150", res.EstimatedMatch)
	}

	f.pending = 0
	if got := exitCode(t, runMatch(&bytes.Buffer{}, "", f)); got != exitInput {
		t.Errorf("zero pending: exit code = %d, want %d", got, exitInput)
	}
}

func TestMatchInputErrors(t *testing.T) {
	f := defaultMatchFlags()
	f.raised = 500
	if got := exitCode(t, runMatch(&bytes.Buffer{}, "", f)); got != exitInput {
		t.Errorf("raised without contributors: exit code = %d, want %d", got, exitInput)
	}

	f = defaultMatchFlags()
	f.pool, f.hasPool = -1, true
	if got := exitCode(t, runMatch(&bytes.Buffer{}, roundFile, f)); got != exitInput {
		t.Errorf("negative pool: exit code = %d, want %d", got, exitInput)
	}
}

func TestMatchMarkdown(t *testing.T) {
	f := defaultMatchFlags()
	f.format = "md"
	var buf bytes.Buffer
	if err := runMatch(&buf, roundFile, f); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Community Gardens Network") {
		t.Errorf("markdown missing project title:\n%s", buf.String())
	}
}

func TestTierTable(t *testing.T) {
	got := tierTable(trust.DefaultParams)
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), got)
	}
	for i, want := range []string{"81-100", "61-80", "41-60", "21-40", "0-20"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want range %s", i, lines[i], want)
		}
	}
	if !strings.HasPrefix(lines[0], "💎 Platinum") {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestProfilesCommand(t *testing.T) {
	var buf bytes.Buffer
	if err := runProfiles(&buf, ""); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "default") || !strings.Contains(buf.String(), "conservative") {
		t.Errorf("profiles output = %q", buf.String())
	}

	buf.Reset()
	if err := runProfiles(&buf, "conservative"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "## Profile: conservative") {
		t.Errorf("describe output = %q", buf.String())
	}

	if got := exitCode(t, runProfiles(&bytes.Buffer{}, "missing")); got != exitInput {
		t.Errorf("exit code = %d, want %d", got, exitInput)
	}
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"tiers"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Platinum") {
		t.Errorf("tiers output = %q", buf.String())
	}
}

func TestNewServiceLogger(t *testing.T) {
	if _, err := newServiceLogger("debug"); err != nil {
		t.Errorf("debug level: %v", err)
	}
	if _, err := newServiceLogger("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
