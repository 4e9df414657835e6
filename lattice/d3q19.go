package lattice

import "math"

// Q is the number of discrete velocities in the D3Q19 model
const Q = 19

// CS is the lattice speed of sound
var CS = 1. / math.Sqrt(3.)

/*
Directions are ordered so that the inverse of direction i is Q-1-i, the rest
velocity sits in the middle at index 9.
*/
var Velocities = [Q][3]int{
	{0, -1, -1}, {-1, 0, -1}, {0, 0, -1}, {1, 0, -1}, {0, 1, -1},
	{-1, -1, 0}, {0, -1, 0}, {1, -1, 0}, {-1, 0, 0}, {0, 0, 0},
	{1, 0, 0}, {-1, 1, 0}, {0, 1, 0}, {1, 1, 0},
	{0, -1, 1}, {-1, 0, 1}, {0, 0, 1}, {1, 0, 1}, {0, 1, 1},
}

const (
	w0 = 1. / 3.
	w1 = 1. / 18.
	w2 = 1. / 36.
)

var Weights = [Q]float64{
	w2, w2, w1, w2, w2,
	w2, w1, w2, w1, w0,
	w1, w2, w1, w2,
	w2, w2, w1, w2, w2,
}

// VelocitiesF holds Velocities as floats, for use in dot products
var VelocitiesF [Q][3]float64

func init() {
	for i := 0; i < Q; i++ {
		for d := 0; d < 3; d++ {
			VelocitiesF[i][d] = float64(Velocities[i][d])
		}
	}
}

// Inverse returns the direction whose velocity is the negation of direction i
func Inverse(i int) int {
	return Q - 1 - i
}
