package survey

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func TestTotalCountIgnoresSplitting(t *testing.T) {
	if got := TotalCount(rows("A;B", 5, "C", 3)); got != 8 {
		t.Fatalf("expected 8, got %d", got)
	}
	if got := TotalCount(nil); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestPercentage(t *testing.T) {
	if got := Percentage(1, 4); got != 25 {
		t.Fatalf("expected 25, got %f", got)
	}
	got := Percentages([]int{1, 2, 5}, 8)
	expected := []float64{12.5, 25, 62.5}
	for pos := range expected {
		if math.Abs(got[pos]-expected[pos]) > 1e-9 {
			t.Fatalf("expected %v, got %v", expected, got)
		}
	}
	if got := Percentages([]int{3, 4}, 0); !reflect.DeepEqual(got, []float64{0, 0}) {
		t.Fatalf("expected zeros for empty total, got %v", got)
	}
}

func TestNewChartData(t *testing.T) {
	cd := NewChartData(rows("A;B", 5, "C", 3), rows("A", 10, "D", 30))
	if cd.SampleSize != 8 || cd.PopulationSize != 40 {
		t.Fatalf("unexpected sizes %d/%d", cd.SampleSize, cd.PopulationSize)
	}
	if !reflect.DeepEqual(cd.Labels, []string{"A", "B", "C", "D"}) {
		t.Fatalf("unexpected labels %v", cd.Labels)
	}
	if !reflect.DeepEqual(cd.SampleCounts, []int{5, 5, 3, 0}) {
		t.Fatalf("unexpected sample counts %v", cd.SampleCounts)
	}
	if !reflect.DeepEqual(cd.PopulationCounts, []int{10, 0, 0, 30}) {
		t.Fatalf("unexpected population counts %v", cd.PopulationCounts)
	}
	if cd.Empty() {
		t.Fatal("chart data should not be empty")
	}
	if got := cd.SamplePercentages()[0]; got != 62.5 {
		t.Fatalf("expected 62.5, got %f", got)
	}
}

func TestChartDataSorted(t *testing.T) {
	cd := NewChartData(rows("A", 1, "B", 2, "C", 3), rows("A", 5, "B", 50, "C", 5, "D", 20))
	sorted := cd.Sorted()
	if !reflect.DeepEqual(sorted.Labels, []string{"B", "D", "A", "C"}) {
		t.Fatalf("unexpected order %v", sorted.Labels)
	}
	if !reflect.DeepEqual(sorted.SampleCounts, []int{2, 0, 1, 3}) {
		t.Fatalf("sample counts not aligned %v", sorted.SampleCounts)
	}
	if !reflect.DeepEqual(sorted.PopulationCounts, []int{50, 20, 5, 5}) {
		t.Fatalf("population counts not aligned %v", sorted.PopulationCounts)
	}
	if !reflect.DeepEqual(cd.Labels, []string{"A", "B", "C", "D"}) {
		t.Fatal("Sorted modified the receiver")
	}
}

func TestCountRowDecode(t *testing.T) {
	var decoded []CountRow
	data := `[
		{"value": "Go;Rust", "label": "Go;Rust", "count": 12, "selected": false},
		{"value": null, "label": null, "count": 3},
		{"value": 4, "label": 4, "count": 1},
		{"value": "only value", "count": 2}
	]`
	if err := json.Unmarshal([]byte(data), &decoded); err != nil {
		t.Fatal(err)
	}
	expected := []CountRow{{"Go;Rust", 12}, {"", 3}, {"4", 1}, {"only value", 2}}
	if !reflect.DeepEqual(decoded, expected) {
		t.Fatalf("expected %+v, got %+v", expected, decoded)
	}
}

func TestCountRowDecodeNegative(t *testing.T) {
	var row CountRow
	if err := json.Unmarshal([]byte(`{"label": "A", "count": -1}`), &row); err != ErrNegativeCount {
		t.Fatalf("expected ErrNegativeCount, got %v", err)
	}
}

func TestSummaryText(t *testing.T) {
	got := SummaryText(1234, 88883)
	expected := "Here's what this group of 1,234 people (out of 88,883 total respondents) had to say."
	if got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
	if got := SummaryText(0, 88883); got != NoDataText+" "+InviteText {
		t.Fatalf("unexpected empty summary %q", got)
	}
}
