package report

import (
	"math"

	"github.com/ericfisherdev/mergemetrics/internal/domain/model"
)

// Direction is the change a metric should show to be considered an improvement.
type Direction rune

const (
	HigherIsBetter Direction = '+'
	LowerIsBetter  Direction = '-'
)

// Judgment classifies a value against the value of the previous range.
type Judgment int

const (
	NoComparison Judgment = iota
	Unchanged
	Favorable
	Unfavorable
)

// Cell is a formatted metric value and its change against the previous range.
type Cell struct {
	Value    string
	Change   string // "=" or a signed percentage such as "+10%"; empty without comparison.
	Judgment Judgment
}

// Compare formats value and its change from previous. A NaN previous (first
// range, or no data) yields the bare value. The percentage is taken over
// previous, or over 1 when previous is 0.
func Compare(value, previous float64, desired Direction) Cell {
	cell := Cell{Value: FormatNumber(value)}
	if math.IsNaN(previous) || math.IsNaN(value) {
		return cell
	}

	delta := model.Round(value - previous)
	if delta == 0 {
		cell.Change = "="
		cell.Judgment = Unchanged
		return cell
	}

	sign := HigherIsBetter
	if delta < 0 {
		sign = LowerIsBetter
	}

	base := previous
	if base == 0 {
		base = 1
	}
	percentage := model.Round(math.Abs(delta) * 100 / base)

	cell.Change = string(sign) + FormatNumber(percentage) + "%"
	cell.Judgment = Unfavorable
	if sign == desired {
		cell.Judgment = Favorable
	}
	return cell
}

// CompareSeries compares every value with the value right before it.
func CompareSeries(values []float64, desired Direction) []Cell {
	cells := make([]Cell, len(values))
	for i, v := range values {
		previous := math.NaN()
		if i > 0 {
			previous = values[i-1]
		}
		cells[i] = Compare(v, previous, desired)
	}
	return cells
}

// Render returns the cell text styled by p.
func (c Cell) Render(p Palette) string {
	switch c.Judgment {
	case Unchanged:
		return c.Value + "  " + p.Neutral(c.Change)
	case Favorable:
		return c.Value + "  " + p.Good(c.Change)
	case Unfavorable:
		return c.Value + "  " + p.Bad(c.Change)
	default:
		return c.Value
	}
}
