package ops

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitCells(t *testing.T) {
	runs := []positioned{
		{s: "Na", x: 10, w: 10},
		{s: "me", x: 20, w: 10},
		{s: "Age", x: 100, w: 20}, // wide gap starts a new cell
		{s: "City", x: 200, w: 25},
	}
	got := splitCells(runs, 12)
	want := []string{"Name", "Age", "City"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("splitCells mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitCellsSingleCell(t *testing.T) {
	runs := []positioned{
		{s: "only", x: 0, w: 20},
		{s: " cell", x: 21, w: 20},
	}
	got := splitCells(runs, 12)
	if diff := cmp.Diff([]string{"only cell"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitCellsEmpty(t *testing.T) {
	if got := splitCells(nil, 12); len(got) != 0 {
		t.Errorf("splitCells(nil) = %v", got)
	}
	if got := splitCells([]positioned{{s: "   ", x: 0, w: 5}}, 12); len(got) != 0 {
		t.Errorf("whitespace-only run produced cells: %v", got)
	}
}

func TestToCSV(t *testing.T) {
	got := toCSV([][]string{{"a", "b"}, {"c,d", "e"}})
	want := "a,b\n\"c,d\",e\n"
	if got != want {
		t.Errorf("toCSV = %q, want %q", got, want)
	}
}
