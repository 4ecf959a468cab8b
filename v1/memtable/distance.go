package memtable

import (
	"fmt"

	"github.com/hupe1980/vecgo/distance"

	"github.com/Aleph-Alpha/vectorindex/v1/vectordb"
)

// vectorDistance returns the metric's distance between the query and a
// stored vector. Smaller is closer for every metric.
func vectorDistance(metric vectordb.DistanceType, a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("memtable: query vector has dimension %d, stored vector has %d", len(a), len(b))
	}

	switch metric {
	case vectordb.DistanceCosine:
		return cosineDistance(a, b), nil
	case vectordb.DistanceDot:
		return 1 - float64(distance.Dot(a, b)), nil
	case vectordb.DistanceHamming:
		return float64(distance.Hamming(signBits(a), signBits(b))), nil
	default:
		return float64(distance.SquaredL2(a, b)), nil
	}
}

// cosineDistance is 1 - cosine similarity, in [0, 2]. A zero vector has no
// direction and is treated as orthogonal.
func cosineDistance(a, b []float32) float64 {
	na, ok := distance.NormalizeL2Copy(a)
	if !ok {
		return 1
	}
	nb, ok := distance.NormalizeL2Copy(b)
	if !ok {
		return 1
	}
	sim := float64(distance.Dot(na, nb))
	return 1 - max(-1, min(1, sim))
}

// signBits packs the vector into a bit string, one bit per component with
// components > 0 set. Float vectors have no byte form to hand to Hamming.
func signBits(v []float32) []byte {
	out := make([]byte, (len(v)+7)/8)
	for i, x := range v {
		if x > 0 {
			out[i/8] |= 1 << (i % 8)
		}
	}
	return out
}
