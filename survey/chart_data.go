package survey

import "sort"

type ChartData struct {
	Labels           []string `json:"labels"`
	SampleCounts     []int    `json:"sampleCounts"`
	SampleSize       int      `json:"sampleSize"`
	PopulationCounts []int    `json:"populationCounts"`
	PopulationSize   int      `json:"populationSize"`
}

func NewChartData(sampleRows, populationRows []CountRow) *ChartData {
	labels, sampleCounts, populationCounts := Merge(sampleRows, populationRows).Project()
	return &ChartData{
		Labels:           labels,
		SampleCounts:     sampleCounts,
		SampleSize:       TotalCount(sampleRows),
		PopulationCounts: populationCounts,
		PopulationSize:   TotalCount(populationRows),
	}
}

func (cd *ChartData) Empty() bool {
	return cd.SampleSize == 0
}

func (cd *ChartData) SamplePercentages() []float64 {
	return Percentages(cd.SampleCounts, cd.SampleSize)
}

func (cd *ChartData) PopulationPercentages() []float64 {
	return Percentages(cd.PopulationCounts, cd.PopulationSize)
}

type byPopulation struct {
	*ChartData
	order []int
}

func (bp byPopulation) Len() int { return len(bp.order) }

func (bp byPopulation) Swap(i, j int) { bp.order[i], bp.order[j] = bp.order[j], bp.order[i] }

func (bp byPopulation) Less(i, j int) bool {
	a, b := bp.order[i], bp.order[j]
	if bp.PopulationCounts[a] != bp.PopulationCounts[b] {
		return bp.PopulationCounts[a] > bp.PopulationCounts[b]
	}
	return bp.Labels[a] < bp.Labels[b]
}

// Sorted returns a copy ordered by population count, largest first.
func (cd *ChartData) Sorted() *ChartData {
	bp := byPopulation{ChartData: cd, order: make([]int, len(cd.Labels))}
	for pos := range bp.order {
		bp.order[pos] = pos
	}
	sort.Sort(bp)
	ret := &ChartData{
		Labels:           make([]string, len(cd.Labels)),
		SampleCounts:     make([]int, len(cd.Labels)),
		SampleSize:       cd.SampleSize,
		PopulationCounts: make([]int, len(cd.Labels)),
		PopulationSize:   cd.PopulationSize,
	}
	for pos, from := range bp.order {
		ret.Labels[pos] = cd.Labels[from]
		ret.SampleCounts[pos] = cd.SampleCounts[from]
		ret.PopulationCounts[pos] = cd.PopulationCounts[from]
	}
	return ret
}
