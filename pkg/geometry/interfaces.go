package geometry

// MinHitDistance is the floor applied to every intersection interval.
// It keeps scattered rays from re-hitting the surface they left.
const MinHitDistance = 1e-3

// effectiveMin clamps the interval lower bound to MinHitDistance.
func effectiveMin(tMin float64) float64 {
	if tMin < MinHitDistance {
		return MinHitDistance
	}
	return tMin
}
