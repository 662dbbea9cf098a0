package retrieval

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
)

// FlatIndex is a brute-force, exact L2 nearest-neighbor index over
// fixed-dimension vectors. Position i in the index corresponds to position i
// in whatever parallel list the caller maintains; preserving that
// correspondence is the caller's contract.
type FlatIndex struct {
	// Dimension is the required length of every vector.
	Dimension int `json:"dimension"`

	// Vectors holds the indexed vectors in insertion order.
	Vectors [][]float32 `json:"vectors"`
}

// NewFlatIndex creates an empty index for vectors of the given dimension.
func NewFlatIndex(dimension int) *FlatIndex {
	return &FlatIndex{Dimension: dimension}
}

// Add appends vectors to the index.
func (x *FlatIndex) Add(vectors ...[]float32) error {
	for _, v := range vectors {
		if len(v) != x.Dimension {
			return fmt.Errorf("vector dimension %d does not match index dimension %d", len(v), x.Dimension)
		}
		x.Vectors = append(x.Vectors, v)
	}
	return nil
}

// Len returns the number of indexed vectors.
func (x *FlatIndex) Len() int {
	return len(x.Vectors)
}

// Neighbor is one nearest-neighbor hit.
type Neighbor struct {
	// Position is the vector's index position.
	Position int

	// Distance is the L2 distance to the query.
	Distance float64
}

// Search returns the k nearest vectors to query by L2 distance, closest
// first. Fewer than k results are returned when the index is smaller.
func (x *FlatIndex) Search(query []float32, k int) ([]Neighbor, error) {
	if len(query) != x.Dimension {
		return nil, fmt.Errorf("query dimension %d does not match index dimension %d", len(query), x.Dimension)
	}

	if k <= 0 || x.Len() == 0 {
		return nil, nil
	}
	if k > x.Len() {
		k = x.Len()
	}

	neighbors := make([]Neighbor, x.Len())
	for i, v := range x.Vectors {
		neighbors[i] = Neighbor{Position: i, Distance: l2Distance(query, v)}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Distance != neighbors[j].Distance {
			return neighbors[i].Distance < neighbors[j].Distance
		}
		return neighbors[i].Position < neighbors[j].Position
	})

	return neighbors[:k], nil
}

// l2Distance computes the Euclidean distance between two equal-length
// vectors.
func l2Distance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Save writes the index to path as JSON.
func (x *FlatIndex) Save(path string) error {
	data, err := json.Marshal(x)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}

	return nil
}

// LoadFlatIndex reads an index previously written with Save.
func LoadFlatIndex(path string) (*FlatIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	var index FlatIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse index: %w", err)
	}

	for i, v := range index.Vectors {
		if len(v) != index.Dimension {
			return nil, fmt.Errorf("vector %d has dimension %d, index declares %d", i, len(v), index.Dimension)
		}
	}

	return &index, nil
}
