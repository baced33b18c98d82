// Package quantities implements the physical formulas used to derive
// profile columns and scalar summaries. All inputs are CGS unless noted;
// enclosed mass is carried in solar masses.
package quantities

import "math"

// CGS constants.
const (
	MsunGrams       = 1.98892e33  // solar mass [g]
	RsunCm          = 6.957e10    // solar radius [cm]
	GravConst       = 6.67430e-8  // gravitational constant [cm^3 g^-1 s^-2]
	StefanBoltzmann = 5.670374e-5 // [erg cm^-2 s^-1 K^-4]

	// compactnessRadiusCm is the 1000 km reference length in the
	// compactness parameter xi = (M/Msun) / (R/1000km).
	compactnessRadiusCm = 1.0e8
)

// GramsToMsun converts a mass from grams to solar masses.
func GramsToMsun(grams float64) float64 { return grams / MsunGrams }

// EnclosedMass integrates per-zone masses into the cumulative enclosed
// mass at each zone's outer edge. Units follow the input.
func EnclosedMass(zoneMass []float64) []float64 {
	enc := make([]float64, len(zoneMass))
	var sum float64
	for i, zm := range zoneMass {
		sum += zm
		enc[i] = sum
	}
	return enc
}

// CenteredRadius converts zone-edge radii to cell-centered radii: the
// midpoint of each zone, with the innermost zone centered on half its
// outer radius.
func CenteredRadius(radiusEdge []float64) []float64 {
	center := make([]float64, len(radiusEdge))
	prev := 0.0
	for i, re := range radiusEdge {
		center[i] = 0.5 * (prev + re)
		prev = re
	}
	return center
}

// CenteredMass shifts edge-valued enclosed mass [Msun] to cell centers by
// subtracting the mass of the outer half-shell at the zone's density.
func CenteredMass(massEdge, radiusEdge, radiusCenter, density []float64) []float64 {
	center := make([]float64, len(massEdge))
	for i := range massEdge {
		shell := (4.0 / 3.0) * math.Pi *
			(math.Pow(radiusEdge[i], 3) - math.Pow(radiusCenter[i], 3)) * density[i]
		center[i] = massEdge[i] - GramsToMsun(shell)
	}
	return center
}

// Compactness returns xi(r) = (m/Msun) / (r/1000km) for each zone.
// mass is in Msun, radius in cm.
func Compactness(mass, radius []float64) []float64 {
	xi := make([]float64, len(mass))
	for i := range mass {
		xi[i] = mass[i] / (radius[i] / compactnessRadiusCm)
	}
	return xi
}

// Luminosity returns the blackbody luminosity L = 4 pi r^2 sigma T^4
// [erg/s] for each zone. radius in cm, temperature in K.
func Luminosity(radius, temperature []float64) []float64 {
	lum := make([]float64, len(radius))
	for i := range radius {
		lum[i] = 4 * math.Pi * radius[i] * radius[i] *
			StefanBoltzmann * math.Pow(temperature[i], 4)
	}
	return lum
}

// Vkep returns the keplerian velocity sqrt(G m / r) [cm/s] for each zone.
// mass in Msun, radius in cm.
func Vkep(mass, radius []float64) []float64 {
	v := make([]float64, len(mass))
	for i := range mass {
		v[i] = math.Sqrt(GravConst * mass[i] * MsunGrams / radius[i])
	}
	return v
}

// Velz returns the tangential velocity r * omega [cm/s] from an angular
// velocity profile [rad/s].
func Velz(radius, angVel []float64) []float64 {
	v := make([]float64, len(radius))
	for i := range radius {
		v[i] = radius[i] * angVel[i]
	}
	return v
}
