package report

import "sort"

// SortDonors sorts by score descending, then by ID ascending.
func SortDonors(donors []DonorScore) {
	sort.SliceStable(donors, func(i, j int) bool {
		if donors[i].TotalScore != donors[j].TotalScore {
			return donors[i].TotalScore > donors[j].TotalScore
		}
		return donors[i].ID < donors[j].ID
	})
}

// SortProjects sorts by estimated match descending, then by ID ascending.
func SortProjects(projects []ProjectMatch) {
	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].Matching != projects[j].Matching {
			return projects[i].Matching > projects[j].Matching
		}
		return projects[i].ID < projects[j].ID
	})
}
