package survey

import "gonum.org/v1/gonum/floats"

// TotalCount sums the original rows; composite rows count once.
func TotalCount(rows []CountRow) int {
	total := 0
	for _, row := range rows {
		total += row.Count
	}
	return total
}

func Percentage(count, total int) float64 {
	return 100 * float64(count) / float64(total)
}

// Percentages projects counts onto total. A zero total yields zeros; callers
// that must not divide at all check the size first.
func Percentages(counts []int, total int) []float64 {
	ret := make([]float64, len(counts))
	if total == 0 {
		return ret
	}
	for pos, count := range counts {
		ret[pos] = float64(count)
	}
	floats.Scale(100/float64(total), ret)
	return ret
}
