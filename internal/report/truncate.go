package report

// Truncate keeps at most max donors and max projects. A non-positive max
// keeps everything. Summaries are left as computed over the full set.
func Truncate(donors []DonorScore, projects []ProjectMatch, max int) ([]DonorScore, []ProjectMatch) {
	if max <= 0 {
		return donors, projects
	}
	if len(donors) > max {
		donors = donors[:max]
	}
	if len(projects) > max {
		projects = projects[:max]
	}
	return donors, projects
}
