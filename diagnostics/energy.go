package diagnostics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/pic2d/grid"
)

// FieldEnergy computes total (E^2+B^2)/2 over every allocated cell
// (guards included, which are kept consistent by the guard exchange) via
// gonum/floats dot products, used to check that vacuum field energy stays
// conserved over many steps.
func FieldEnergy(e, b *grid.VField) float64 {
	total := floats.Dot(e.X, e.X) + floats.Dot(e.Y, e.Y) + floats.Dot(e.Z, e.Z)
	total += floats.Dot(b.X, b.X) + floats.Dot(b.Y, b.Y) + floats.Dot(b.Z, b.Z)
	return 0.5 * total
}
