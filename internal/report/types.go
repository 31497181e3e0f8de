// Package report defines the output documents of a scoring run.
package report

import (
	"github.com/dshills/qfscore/internal/project"
	"github.com/dshills/qfscore/internal/trust"
)

// Input describes the batch and profile a report was produced from.
type Input struct {
	File    string `json:"file,omitempty"`
	Hash    string `json:"hash,omitempty"`
	Profile string `json:"profile"`
}

// TrustReport is the output of scoring a set of donors.
type TrustReport struct {
	Tool    string       `json:"tool"`
	Version string       `json:"version"`
	Input   Input        `json:"input"`
	Summary TrustSummary `json:"summary"`
	Donors  []DonorScore `json:"donors"`
}

// DonorScore pairs a donor with its trust result.
type DonorScore struct {
	ID             string  `json:"id"`
	Wallet         string  `json:"wallet,omitempty"`
	MatchingEarned float64 `json:"matchingEarned"`
	trust.Result
}

// TrustSummary aggregates a trust report.
type TrustSummary struct {
	Count      int                `json:"count"`
	MeanScore  float64            `json:"meanScore"`
	MinScore   int                `json:"minScore"`
	MaxScore   int                `json:"maxScore"`
	TierCounts map[trust.Tier]int `json:"tierCounts"`
}

// MatchReport is the output of estimating matches for a set of projects.
type MatchReport struct {
	Tool     string         `json:"tool"`
	Version  string         `json:"version"`
	Input    Input          `json:"input"`
	Summary  MatchSummary   `json:"summary"`
	Projects []ProjectMatch `json:"projects"`
}

// ProjectMatch is one project's funding view.
type ProjectMatch struct {
	project.Project
	Progress   float64        `json:"progress"`
	Status     project.Status `json:"status,omitempty"`
	Matching   float64        `json:"matching"`
	Allocation float64        `json:"allocation"`
}

// MatchSummary aggregates a match report.
type MatchSummary struct {
	Projects      int     `json:"projects"`
	TotalRaised   float64 `json:"totalRaised"`
	TotalMatching float64 `json:"totalMatching"`
	Pool          float64 `json:"pool"`
	Funded        int     `json:"funded"`
}
