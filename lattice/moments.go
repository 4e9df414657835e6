package lattice

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Density is the zeroth moment of the Q distributions starting at f[0]
func Density(f []float64) float64 {
	return floats.Sum(f[:Q])
}

// Velocity is the first moment of f divided by the density
func Velocity(f []float64, rho float64) (u [3]float64) {
	for i := 0; i < Q; i++ {
		e := &VelocitiesF[i]
		u[0] += f[i] * e[0]
		u[1] += f[i] * e[1]
		u[2] += f[i] * e[2]
	}
	for d := 0; d < 3; d++ {
		u[d] /= rho
	}
	return
}

// Norm is the Euclidean length of a 3 vector
func Norm(v [3]float64) float64 {
	return floats.Norm(v[:], 2)
}

func Dot(a, b [3]float64) float64 {
	return floats.Dot(a[:], b[:])
}

// Feq is the second order equilibrium distribution for density rho and velocity u
func Feq(rho float64, u [3]float64) (feq [Q]float64) {
	var (
		cs2  = CS * CS
		uu   = Dot(u, u)
		base = 1. - uu/(2.*cs2)
	)
	for i := 0; i < Q; i++ {
		cu := Dot(VelocitiesF[i], u)
		feq[i] = Weights[i] * rho * (base + cu/cs2 + cu*cu/(2.*cs2*cs2))
	}
	return
}

// StressTensor returns the Frobenius norm of the non equilibrium momentum flux
//
//	Pi_ab = sum_i e_ia e_ib (f_i - feq_i)
func StressTensor(f, feq []float64) float64 {
	Pi := mat.NewDense(3, 3, nil)
	for i := 0; i < Q; i++ {
		var (
			fneq = f[i] - feq[i]
			e    = &VelocitiesF[i]
		)
		if fneq == 0 {
			continue
		}
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				Pi.Set(a, b, Pi.At(a, b)+e[a]*e[b]*fneq)
			}
		}
	}
	return mat.Norm(Pi, 2)
}

// LocalRelaxationTime applies the Smagorinsky model to the base relaxation time tau
func LocalRelaxationTime(tau, stress, smagorinskyConstant float64) float64 {
	var (
		C2 = smagorinskyConstant * smagorinskyConstant
	)
	return 0.5 * (tau + math.Sqrt(tau*tau+18.*math.Sqrt2*C2*stress))
}
