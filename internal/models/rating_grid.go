package models

import (
	"encoding/json"
	"sort"
)

// GridKey addresses one cell of a RatingGrid
type GridKey struct {
	Row    int `json:"row"`    // episode number
	Column int `json:"column"` // season
}

// GridCell is a present cell. Rating stays nil for an episode that exists but is unrated.
type GridCell struct {
	GridKey
	Rating *float64 `json:"rating"`
}

// RatingGrid is a sparse episode-number by season matrix of ratings.
// Build it with NewRatingGrid and Put; it is not safe for concurrent writes.
type RatingGrid struct {
	cells map[GridKey]*float64
	rows  map[int]struct{}
	cols  map[int]struct{}
}

// NewRatingGrid returns an empty grid
func NewRatingGrid() *RatingGrid {
	return &RatingGrid{
		cells: make(map[GridKey]*float64),
		rows:  make(map[int]struct{}),
		cols:  make(map[int]struct{}),
	}
}

// Put stores a cell and reports false, without writing, when the cell already exists.
func (g *RatingGrid) Put(row, column int, rating *float64) bool {
	key := GridKey{Row: row, Column: column}
	if _, exists := g.cells[key]; exists {
		return false
	}
	g.cells[key] = rating
	g.rows[row] = struct{}{}
	g.cols[column] = struct{}{}
	return true
}

// Cell returns the rating at (row, column) and whether an episode occupies that cell.
func (g *RatingGrid) Cell(row, column int) (*float64, bool) {
	rating, ok := g.cells[GridKey{Row: row, Column: column}]
	return rating, ok
}

// Len returns the number of present cells
func (g *RatingGrid) Len() int {
	return len(g.cells)
}

// Rows returns the episode numbers present in any season, ascending
func (g *RatingGrid) Rows() []int {
	return sortedKeys(g.rows)
}

// Columns returns the seasons present in the grid, ascending
func (g *RatingGrid) Columns() []int {
	return sortedKeys(g.cols)
}

// Cells returns every present cell ordered by column, then row
func (g *RatingGrid) Cells() []GridCell {
	cells := make([]GridCell, 0, len(g.cells))
	for key, rating := range g.cells {
		cells = append(cells, GridCell{GridKey: key, Rating: rating})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Column != cells[j].Column {
			return cells[i].Column < cells[j].Column
		}
		return cells[i].Row < cells[j].Row
	})
	return cells
}

// Matrix returns the dense form of the grid: one row per entry of Rows, one column per
// entry of Columns. Absent cells and unrated episodes are both nil.
func (g *RatingGrid) Matrix() [][]*float64 {
	rows := g.Rows()
	cols := g.Columns()
	matrix := make([][]*float64, len(rows))
	for i, row := range rows {
		matrix[i] = make([]*float64, len(cols))
		for j, col := range cols {
			matrix[i][j] = g.cells[GridKey{Row: row, Column: col}]
		}
	}
	return matrix
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// MarshalJSON encodes the grid as its sorted axes plus the list of present cells
func (g *RatingGrid) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Rows    []int      `json:"rows"`
		Columns []int      `json:"columns"`
		Cells   []GridCell `json:"cells"`
	}{
		Rows:    g.Rows(),
		Columns: g.Columns(),
		Cells:   g.Cells(),
	})
}
