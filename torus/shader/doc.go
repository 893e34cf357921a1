// Package shader ray-traces a torus into a grid of brightness bytes.
//
// The torus is centered at the origin with its hole along the z axis. For
// every cell of the output grid a ray is cast from the camera through the
// matching point of a bilinearly interpolated screen quad, the nearest
// surface intersection is found analytically (a quartic in one ray
// coordinate), and the Lambert term against a single point light becomes
// the cell's brightness:
//
//	0       no intersection
//	1..255  intersection, monotonic in the light angle
//
// Intersections are computed with three parameterizations of the ray (free
// z, free x, free x after swapping x and y). Each one is singular for rays
// perpendicular to its free axis, so every candidate is scored against the
// implicit torus equation and the best one within tolerance wins.
//
// Ray direction convention: the ray vector is eye - screen. The root
// selection compares signs against this vector; do not flip it.
package shader
