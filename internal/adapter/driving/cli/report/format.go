// Package report renders velocity metrics as console tables, comparing every
// range with the range before it.
package report

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// noData marks a value computed from no pull requests.
const noData = "n/a"

// FormatNumber renders v with "." between thousands and "," before the
// decimal remainder, e.g. 1234.5 renders as "1.234,5" and 20 as "20".
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return noData
	}
	if v < 0 {
		return "-" + FormatNumber(-v)
	}

	whole, decimal, _ := strings.Cut(strconv.FormatFloat(v, 'f', -1, 64), ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return whole
	}

	grouped := humanize.FormatInteger("#.###,", int(n))
	if decimal == "" {
		return grouped
	}
	return grouped + "," + decimal
}

// formatLOC renders lines of code as "+additions -deletions".
func formatLOC(additions, deletions float64) string {
	return "+" + FormatNumber(additions) + " -" + FormatNumber(deletions)
}
