// Package geo holds the distance and formatting helpers used when enriching
// orders with delivery information.
package geo

import (
	"math"
	"math/big"
	"net/url"
	"strconv"
	"strings"
)

// EarthRadiusKm is the mean spherical radius used by HaversineKm.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in
// kilometres, rounded to two decimals.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	rounded, err := strconv.ParseFloat(ToFixed(EarthRadiusKm*c, 2), 64)
	if err != nil {
		return math.NaN()
	}
	return rounded
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ToFixed formats v with exactly digits decimals. Rounding works on the exact
// binary value and resolves ties away from zero, so 1.005 gives "1.00"
// (its binary value is below the tie) while 0.125 gives "0.13".
func ToFixed(v float64, digits int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if digits < 0 {
		digits = 0
	}

	neg := v < 0
	r := new(big.Rat).SetFloat64(math.Abs(v))
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))
	r.Add(r, big.NewRat(1, 2))
	n := new(big.Int).Quo(r.Num(), r.Denom())

	s := n.String()
	if digits > 0 {
		if len(s) <= digits {
			s = strings.Repeat("0", digits-len(s)+1) + s
		}
		s = s[:len(s)-digits] + "." + s[len(s)-digits:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

// FormatCoord prints a coordinate the shortest way that round-trips.
func FormatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DirectionsURL builds a Google Maps driving-directions link from origin to
// destination. Place names are optional.
func DirectionsURL(originLat, originLon, destLat, destLon float64, originName, destName string) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("origin", FormatCoord(originLat)+","+FormatCoord(originLon))
	q.Set("destination", FormatCoord(destLat)+","+FormatCoord(destLon))
	q.Set("travelmode", "driving")
	q.Set("origin_place_id", originName)
	q.Set("destination_place_id", destName)
	return "https://www.google.com/maps/dir/?" + q.Encode()
}
