package survey

import "strings"

// Delimiter separates the answers of a multiple-choice response.
const Delimiter = ";"

// SplitLabel returns the atomic labels of a possibly composite label. No
// whitespace is trimmed: "A; B" yields "A" and " B".
func SplitLabel(label string) []string {
	return strings.Split(label, Delimiter)
}

type Entry struct {
	SampleCount     int `json:"sampleCount"`
	PopulationCount int `json:"populationCount"`
}

// Histogram maps atomic labels to their sample and population counts.
// Labels keep the order in which they were first seen, sample rows first.
type Histogram struct {
	labels  []string
	entries map[string]Entry
}

func NewHistogram() *Histogram {
	return &Histogram{entries: map[string]Entry{}}
}

func (h *Histogram) add(label string, sampleCount, populationCount int) {
	entry, found := h.entries[label]
	if !found {
		h.labels = append(h.labels, label)
	}
	entry.SampleCount += sampleCount
	entry.PopulationCount += populationCount
	h.entries[label] = entry
}

// AddSample credits row.Count to every atomic label of row.
func (h *Histogram) AddSample(row CountRow) {
	for _, label := range SplitLabel(row.Label) {
		h.add(label, row.Count, 0)
	}
}

// AddPopulation credits row.Count to every atomic label of row.
func (h *Histogram) AddPopulation(row CountRow) {
	for _, label := range SplitLabel(row.Label) {
		h.add(label, 0, row.Count)
	}
}

// Get returns the zero Entry for unknown labels.
func (h *Histogram) Get(label string) Entry {
	return h.entries[label]
}

func (h *Histogram) Has(label string) bool {
	_, found := h.entries[label]
	return found
}

func (h *Histogram) Len() int {
	return len(h.labels)
}

func (h *Histogram) Labels() []string {
	return append([]string{}, h.labels...)
}

// Project splits the histogram into index-aligned label and count slices.
func (h *Histogram) Project() (labels []string, sampleCounts []int, populationCounts []int) {
	labels = h.Labels()
	sampleCounts = make([]int, len(labels))
	populationCounts = make([]int, len(labels))
	for pos, label := range labels {
		entry := h.entries[label]
		sampleCounts[pos] = entry.SampleCount
		populationCounts[pos] = entry.PopulationCount
	}
	return
}

// Merge combines the sample and population facet rows into one histogram
// keyed by the union of their atomic labels. A composite row counts in full
// toward each of its answers, so entry totals may exceed the row totals.
func Merge(sampleRows, populationRows []CountRow) *Histogram {
	h := NewHistogram()
	for _, row := range sampleRows {
		h.AddSample(row)
	}
	for _, row := range populationRows {
		h.AddPopulation(row)
	}
	return h
}
