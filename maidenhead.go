// Package maidenhead converts between geodetic coordinates and
// Maidenhead grid locators, the positional encoding used in amateur
// radio to describe a location at arbitrarily increasing precision.
//
// A locator such as "FN42gv" names a rectangle on the Earth's
// surface. Each two-character pair subdivides the rectangle left by
// the pairs before it: the first pair (the field, letters A-R) spans
// 20x10 degrees, the second (the square, digits) cuts that 10x10, the
// third (the subsquare, letters A-X) cuts 24x24, and digit and letter
// pairs keep alternating from there. Longitude cells are twice as
// wide as latitude cells at every level.
package maidenhead

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/golang/geo/s2"
)

// DefaultPrecision is the conventional six character
// field+square+subsquare locator length.
const DefaultPrecision = 6

// InvalidLocatorError indicates a string that is not a syntactically
// valid Maidenhead locator.
type InvalidLocatorError struct {
	Locator string
}

func (e *InvalidLocatorError) Error() string {
	return fmt.Sprintf("invalid maidenhead locator %q", e.Locator)
}

// BadPrecisionError indicates an encode request for a length that is
// not a positive even number of characters.
type BadPrecisionError struct {
	Precision int
}

func (e *BadPrecisionError) Error() string {
	return fmt.Sprintf("maidenhead precision must be a positive even number, got %d", e.Precision)
}

// Validate reports whether locator is a syntactically valid Maidenhead
// grid locator: a positive even number of characters whose first pair
// is letters A-R and whose following pairs alternate between digit
// pairs and A-X letter pairs. Case carries no meaning. Note that the
// A-R restriction applies only to the first pair; later letter pairs
// run to X.
func Validate(locator string) bool {
	if len(locator) == 0 || len(locator)%2 != 0 {
		return false
	}
	for i := 0; i < len(locator); i += 2 {
		k := kindOf(i / 2)
		if !k.valid(locator[i]) || !k.valid(locator[i+1]) {
			return false
		}
	}
	return true
}

// decode walks the pairs of an already validated locator and returns
// the exact southwest corner (longitude still halved) together with
// the final resolution, which is the remaining cell height in degrees
// of latitude. Carrying the resolution chain as a rational means
// locators of any length decode without accumulating floating point
// error.
func decode(locator string) (lat, lng, res *big.Rat) {
	// Accumulate offsets from the minimum encodable value. Longitude
	// is carried halved and doubled by the callers, so one resolution
	// chain serves both axes.
	lat = big.NewRat(-90, 1)
	lng = big.NewRat(-90, 1)
	res = big.NewRat(10, 1)
	pairs := len(locator) / 2
	for p := 0; p < pairs; p++ {
		lng.Add(lng, new(big.Rat).Mul(res, big.NewRat(charValue(locator[2*p]), 1)))
		lat.Add(lat, new(big.Rat).Mul(res, big.NewRat(charValue(locator[2*p+1]), 1)))
		if p != pairs-1 {
			res.Quo(res, big.NewRat(kindOf(p+1).cells(), 1))
		}
	}
	return lat, lng, res
}

// ConvertToBox converts a locator to the bounding box of the grid
// square it denotes, returned as the southwest and northeast corners.
func ConvertToBox(locator string) (sw, ne s2.LatLng, err error) {
	if !Validate(locator) {
		return s2.LatLng{}, s2.LatLng{}, &InvalidLocatorError{Locator: locator}
	}
	lat, lng, res := decode(locator)

	two := big.NewRat(2, 1)
	swLat, _ := lat.Float64()
	swLng, _ := new(big.Rat).Mul(lng, two).Float64()
	neLat, _ := new(big.Rat).Add(lat, res).Float64()
	neLng, _ := new(big.Rat).Mul(new(big.Rat).Add(lng, res), two).Float64()

	return s2.LatLngFromDegrees(swLat, swLng), s2.LatLngFromDegrees(neLat, neLng), nil
}

// ConvertToGeodetic converts a locator to the center of its grid
// square. The center, not a corner, so the result is a representative
// location for the whole square.
func ConvertToGeodetic(locator string) (s2.LatLng, error) {
	if !Validate(locator) {
		return s2.LatLng{}, &InvalidLocatorError{Locator: locator}
	}
	lat, lng, res := decode(locator)

	half := new(big.Rat).Quo(res, big.NewRat(2, 1))
	midLat, _ := new(big.Rat).Add(lat, half).Float64()
	midLng, _ := new(big.Rat).Mul(new(big.Rat).Add(lng, half), big.NewRat(2, 1)).Float64()
	return s2.LatLngFromDegrees(midLat, midLng), nil
}

// ConvertFromGeodetic converts a geodetic coordinate to a Maidenhead
// locator of precision characters. precision must be a positive even
// number; there is no upper limit, although float64 input resolution
// makes pairs past the ninth or so meaningless. Output is upper case
// unless humanize is set, in which case it is recased to the
// conventional written form.
//
// Coordinates outside [-90,90]x[-180,180] are clamped to the nearest
// encodable cell. In particular the north pole and the antimeridian,
// which sit on the open upper edge of the top cells, encode to
// "RR99XX..." rather than failing.
func ConvertFromGeodetic(geodetic s2.LatLng, precision int, humanize bool) (string, error) {
	if precision <= 0 || precision%2 != 0 {
		return "", &BadPrecisionError{Precision: precision}
	}

	// Shift into the same non-negative halved-longitude space decode
	// accumulates in: lng/2+90 and lat+90, taken exactly. From here
	// on everything is rational arithmetic, so the pair extraction
	// mirrors decode with no drift however many pairs are requested.
	two := big.NewRat(2, 1)
	ninety := big.NewRat(90, 1)
	lng := new(big.Rat).SetFloat64(clampDegrees(geodetic.Lng.Degrees(), 180))
	lng.Quo(lng, two).Add(lng, ninety)
	lat := new(big.Rat).SetFloat64(clampDegrees(geodetic.Lat.Degrees(), 90))
	lat.Add(lat, ninety)

	res := big.NewRat(10, 1)
	var b strings.Builder
	pairs := precision / 2
	for p := 0; p < pairs; p++ {
		k := kindOf(p)
		b.WriteByte(k.valueChar(pairValue(lng, res, k)))
		b.WriteByte(k.valueChar(pairValue(lat, res, k)))
		res.Quo(res, big.NewRat(kindOf(p+1).cells(), 1))
	}

	s := b.String()
	if humanize {
		s = Humanize(s)
	}
	return s, nil
}

// clampDegrees pins v to [-limit, limit]. big.Rat cannot represent
// non-finite values, so infinities clamp like any other out of range
// input and NaN is pinned to zero.
func clampDegrees(v, limit float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < -limit:
		return -limit
	case v > limit:
		return limit
	}
	return v
}

// pairValue extracts the next pair value of v at the current
// resolution and reduces v to the remainder. Values off either end of
// the alphabet are clamped, so out of range input saturates toward
// the nearest encodable cell instead of producing an invalid
// character.
func pairValue(v, res *big.Rat, k pairKind) int64 {
	q := new(big.Rat).Quo(v, res)
	d := new(big.Int).Quo(q.Num(), q.Denom())
	max := big.NewInt(k.cells() - 1)
	if d.Sign() < 0 {
		d.SetInt64(0)
	} else if d.Cmp(max) > 0 {
		d.Set(max)
	}
	v.Sub(v, new(big.Rat).Mul(res, new(big.Rat).SetInt(d)))
	return d.Int64()
}

// Humanize recases a locator into the conventional written form:
// upper case throughout except the letter pairs at byte offsets 4 and
// 12, which are written lower case ("FN42gv54AX"). Offsets past the
// end of the string are simply absent; the content is untouched
// either way, since case carries no meaning.
func Humanize(locator string) string {
	b := []byte(locator)
	for i := range b {
		switch i {
		case 4, 5, 12, 13:
			b[i] = tolower(b[i])
		default:
			b[i] = toupper(b[i])
		}
	}
	return string(b)
}
