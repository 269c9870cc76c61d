package ephemeris

import (
	"context"
	"fmt"

	"github.com/wonny/jyotish/backend/internal/contracts"
)

// j2000 is the Julian day of the J2000.0 epoch (2000-01-01 12:00 TT)
const j2000 = 2451545.0

// meanElement is a linear mean-longitude model: L(t) = L0 + rate * days
// since J2000. Good to a few degrees for the slow bodies, which is enough
// sign-level precision for electional scoring; it is exactly reproducible,
// which the scoring contract needs more than arcminutes.
type meanElement struct {
	epochLongitude float64 // degrees at J2000
	dailyMotion    float64 // degrees per day
}

// 평균 궤도 요소 (J2000 기준)
var meanElements = map[contracts.Body]meanElement{
	contracts.Sun:     {280.460, 0.9856474},
	contracts.Moon:    {218.316, 13.1763965},
	contracts.Mercury: {252.251, 4.0923344},
	contracts.Venus:   {181.980, 1.6021303},
	contracts.Mars:    {355.433, 0.5240208},
	contracts.Jupiter: {34.351, 0.0830853},
	contracts.Saturn:  {50.077, 0.0334442},
	contracts.Rahu:    {125.045, -0.0529538}, // node regresses
}

// MeanProvider is the built-in deterministic provider. It never fails and
// never touches the network; the same Julian day always yields the same
// longitude.
type MeanProvider struct{}

// NewMeanProvider returns the built-in provider
func NewMeanProvider() *MeanProvider {
	return &MeanProvider{}
}

// Longitude implements contracts.PositionProvider
func (p *MeanProvider) Longitude(_ context.Context, julianDay float64, body contracts.Body) (float64, error) {
	if body == contracts.Ketu {
		// Ketu is defined as the point opposite Rahu
		rahu, err := p.Longitude(context.Background(), julianDay, contracts.Rahu)
		if err != nil {
			return 0, err
		}
		return contracts.NormalizeLongitude(rahu + 180), nil
	}

	el, ok := meanElements[body]
	if !ok {
		return 0, fmt.Errorf("no mean elements for body %q", body)
	}

	days := julianDay - j2000
	return contracts.NormalizeLongitude(el.epochLongitude + el.dailyMotion*days), nil
}
