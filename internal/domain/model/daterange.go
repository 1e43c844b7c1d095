package model

// DateRange is an inclusive pair of dates as accepted by the GitHub search
// "merged:" qualifier, e.g. 2020-08-17..2020-08-28.
type DateRange struct {
	Start string
	End   string
}

// String returns the range in search qualifier form. It doubles as the range
// label in grouped reports.
func (r DateRange) String() string {
	return r.Start + ".." + r.End
}
