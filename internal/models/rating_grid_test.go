// Tests for the sparse rating grid: duplicate rejection, axis ordering and JSON shape.
package models

import (
	"encoding/json"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestRatingGrid_PutAndCell(t *testing.T) {
	g := NewRatingGrid()

	if !g.Put(1, 1, ptr(8.0)) {
		t.Fatal("Put on empty cell should succeed")
	}
	if !g.Put(2, 1, nil) {
		t.Fatal("Put of unrated episode should succeed")
	}

	rating, ok := g.Cell(1, 1)
	if !ok || rating == nil || *rating != 8.0 {
		t.Errorf("Cell(1,1) = %v, %v, want 8.0, true", rating, ok)
	}

	rating, ok = g.Cell(2, 1)
	if !ok {
		t.Error("Cell(2,1) should be present for an unrated episode")
	}
	if rating != nil {
		t.Errorf("Cell(2,1) rating = %v, want nil", *rating)
	}

	if _, ok := g.Cell(3, 1); ok {
		t.Error("Cell(3,1) should be absent")
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
}

func TestRatingGrid_PutDuplicateDoesNotOverwrite(t *testing.T) {
	g := NewRatingGrid()
	g.Put(1, 1, ptr(7.5))

	if g.Put(1, 1, ptr(9.9)) {
		t.Fatal("Put on an occupied cell should report false")
	}

	rating, _ := g.Cell(1, 1)
	if *rating != 7.5 {
		t.Errorf("Cell(1,1) = %v, want original 7.5", *rating)
	}
}

func TestRatingGrid_AxesSorted(t *testing.T) {
	g := NewRatingGrid()
	g.Put(3, 2, nil)
	g.Put(1, 3, ptr(6))
	g.Put(2, 1, ptr(7))

	rows := g.Rows()
	cols := g.Columns()
	wantRows := []int{1, 2, 3}
	wantCols := []int{1, 2, 3}
	for i := range wantRows {
		if rows[i] != wantRows[i] {
			t.Errorf("Rows() = %v, want %v", rows, wantRows)
			break
		}
	}
	for i := range wantCols {
		if cols[i] != wantCols[i] {
			t.Errorf("Columns() = %v, want %v", cols, wantCols)
			break
		}
	}
}

func TestRatingGrid_Matrix(t *testing.T) {
	g := NewRatingGrid()
	g.Put(1, 1, ptr(8))
	g.Put(2, 1, nil)
	g.Put(1, 2, ptr(9))

	m := g.Matrix()
	if len(m) != 2 || len(m[0]) != 2 {
		t.Fatalf("Matrix shape = %dx%d, want 2x2", len(m), len(m[0]))
	}
	if m[0][0] == nil || *m[0][0] != 8 {
		t.Errorf("m[0][0] = %v, want 8", m[0][0])
	}
	if m[0][1] == nil || *m[0][1] != 9 {
		t.Errorf("m[0][1] = %v, want 9", m[0][1])
	}
	if m[1][0] != nil {
		t.Errorf("m[1][0] = %v, want nil (unrated)", *m[1][0])
	}
	if m[1][1] != nil {
		t.Errorf("m[1][1] = %v, want nil (absent)", *m[1][1])
	}
}

func TestRatingGrid_MarshalJSON(t *testing.T) {
	g := NewRatingGrid()
	g.Put(1, 2, ptr(9))
	g.Put(1, 1, ptr(8))
	g.Put(2, 1, nil)

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `{"rows":[1,2],"columns":[1,2],"cells":[{"row":1,"column":1,"rating":8},{"row":2,"column":1,"rating":null},{"row":1,"column":2,"rating":9}]}`
	if string(data) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", data, want)
	}
}

func TestEpisodeReport_MarshalNilGrid(t *testing.T) {
	data, err := json.Marshal(EpisodeReport{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"table":null,"averages":null,"grid":null}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
