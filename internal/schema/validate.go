// Package schema validates engine input before it is scored.
//
// The engines assume well-formed, non-negative input and do not check it;
// every caller that accepts outside data runs it through here first.
package schema

import (
	"fmt"
	"math"
	"regexp"

	"github.com/dshills/qfscore/internal/input"
	"github.com/dshills/qfscore/internal/matching"
	"github.com/dshills/qfscore/internal/project"
	"github.com/dshills/qfscore/internal/trust"
)

// ValidationError describes a single input violation.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

var walletPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// ValidWallet reports whether s is a 0x-prefixed 20-byte hex address.
func ValidWallet(s string) bool {
	return walletPattern.MatchString(s)
}

// ValidateActivity checks that every activity field is non-negative and finite.
// prefix is prepended to field paths; pass "" at the top level.
func ValidateActivity(a trust.Activity, prefix string) []ValidationError {
	var errs []ValidationError
	if a.AccountAgeDays < 0 {
		errs = append(errs, ValidationError{prefix + "accountAgeDays", "must be >= 0"})
	}
	if a.TotalContributions < 0 {
		errs = append(errs, ValidationError{prefix + "totalContributions", "must be >= 0"})
	}
	if !finite(a.TotalDonated) || a.TotalDonated < 0 {
		errs = append(errs, ValidationError{prefix + "totalDonated", fmt.Sprintf("must be a finite number >= 0, got %v", a.TotalDonated)})
	}
	if a.UniqueProjects < 0 {
		errs = append(errs, ValidationError{prefix + "uniqueProjects", "must be >= 0"})
	}
	if a.UniqueProjects > a.TotalContributions && a.TotalContributions > 0 {
		errs = append(errs, ValidationError{prefix + "uniqueProjects",
			fmt.Sprintf("%d projects cannot exceed %d contributions", a.UniqueProjects, a.TotalContributions)})
	}
	return errs
}

// ValidateDonors checks a batch of donors for unique IDs, wallet format and
// activity bounds.
func ValidateDonors(donors []input.Donor) []ValidationError {
	var errs []ValidationError
	ids := make(map[string]bool)
	for i, d := range donors {
		prefix := fmt.Sprintf("donors[%d]", i)
		if d.ID == "" {
			errs = append(errs, ValidationError{prefix + ".id", "required"})
		} else if ids[d.ID] {
			errs = append(errs, ValidationError{prefix + ".id", fmt.Sprintf("duplicate ID: %q", d.ID)})
		} else {
			ids[d.ID] = true
		}
		if d.Wallet != "" && !ValidWallet(d.Wallet) {
			errs = append(errs, ValidationError{prefix + ".wallet", fmt.Sprintf("invalid address: %q", d.Wallet)})
		}
		errs = append(errs, ValidateActivity(d.Activity, prefix+".")...)
	}
	return errs
}

// ValidateContribution checks an aggregate before it is matched.
func ValidateContribution(s matching.ContributionSet, prefix string) []ValidationError {
	var errs []ValidationError
	if !finite(s.Raised) || s.Raised < 0 {
		errs = append(errs, ValidationError{prefix + "raised", fmt.Sprintf("must be a finite number >= 0, got %v", s.Raised)})
	}
	if s.Contributors < 0 {
		errs = append(errs, ValidationError{prefix + "contributors", "must be >= 0"})
	}
	if s.Contributors == 0 && s.Raised > 0 {
		errs = append(errs, ValidationError{prefix + "contributors", "must be > 0 when funds were raised"})
	}
	return errs
}

// ValidateProjects checks a batch of projects.
func ValidateProjects(projects []project.Project) []ValidationError {
	var errs []ValidationError
	ids := make(map[string]bool)
	for i, p := range projects {
		prefix := fmt.Sprintf("projects[%d]", i)
		if p.ID == "" {
			errs = append(errs, ValidationError{prefix + ".id", "required"})
		} else if ids[p.ID] {
			errs = append(errs, ValidationError{prefix + ".id", fmt.Sprintf("duplicate ID: %q", p.ID)})
		} else {
			ids[p.ID] = true
		}
		if !finite(p.Goal) || p.Goal < 0 {
			errs = append(errs, ValidationError{prefix + ".goal", fmt.Sprintf("must be a finite number >= 0, got %v", p.Goal)})
		}
		if p.DaysLeft < 0 {
			errs = append(errs, ValidationError{prefix + ".daysLeft", "must be >= 0"})
		}
		errs = append(errs, ValidateContribution(p.Contributions(), prefix+".")...)
	}
	return errs
}

// ValidateAmount checks a single pending donation amount.
func ValidateAmount(amount float64, path string) []ValidationError {
	if !finite(amount) || amount <= 0 {
		return []ValidationError{{path, fmt.Sprintf("must be a finite number > 0, got %v", amount)}}
	}
	return nil
}

// ValidatePool checks a matching pool size. Zero means no pool.
func ValidatePool(pool float64, path string) []ValidationError {
	if !finite(pool) || pool < 0 {
		return []ValidationError{{path, fmt.Sprintf("must be a finite number >= 0, got %v", pool)}}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
