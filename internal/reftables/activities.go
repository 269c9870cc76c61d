package reftables

import (
	"time"

	"github.com/wonny/jyotish/backend/internal/contracts"
)

// Electional tier ladder shared by the activity profiles. Thresholds are
// part of the rule-set family, not of any call site.
func electionalTiers() []contracts.TierThreshold {
	return []contracts.TierThreshold{
		{MinScore: 0, Tier: contracts.TierModerate},
		{MinScore: 5, Tier: contracts.TierGood},
		{MinScore: 9, Tier: contracts.TierAuspicious},
		{MinScore: 13, Tier: contracts.TierExcellent},
		{MinScore: 16, Tier: contracts.TierVeryAuspicious},
	}
}

// Panchanga number sets shared across profiles (1-based)
var (
	// Tithis favorable for new undertakings (both fortnights, rikta excluded)
	growthTithis = []int{2, 3, 5, 7, 10, 11, 13, 17, 18, 20, 22, 25, 26}

	// Fixed and gentle nakshatras preferred for ceremonies
	ceremonyNakshatras = []int{4, 5, 8, 12, 13, 15, 17, 21, 22, 26, 27}

	// Light, movable nakshatras preferred for journeys
	travelNakshatras = []int{1, 5, 8, 13, 15, 22, 23, 27}

	// Auspicious yogas (the complement of the inauspicious set)
	auspiciousYogaNumbers = []int{2, 3, 4, 5, 7, 8, 11, 12, 14, 16, 18, 20, 21, 22, 23, 24, 25, 26}
)

// defaultActivityRuleSets builds the built-in activity profiles. Adding an
// activity type means adding an entry here (or overriding via YAML) — the
// evaluator itself stays untouched.
func defaultActivityRuleSets() map[string]*contracts.RuleSet {
	return map[string]*contracts.RuleSet{
		"wedding": {
			Name: "wedding",
			Criteria: []contracts.Criterion{
				{Kind: contracts.KindBodyDignity, Body: contracts.Venus, Points: 3, Label: "Venus dignified"},
				{Kind: contracts.KindBodyDignity, Body: contracts.Jupiter, Points: 3, Label: "Jupiter dignified"},
				{Kind: contracts.KindBodiesInTrine, Body: contracts.Jupiter, OtherBody: contracts.Moon, Points: 2, Label: "Jupiter in trine to the Moon"},
				{Kind: contracts.KindMoonWaxing, Points: 2, Label: "waxing Moon"},
				{Kind: contracts.KindTithi, TithiNumbers: growthTithis, Points: 3, Label: "favorable tithi"},
				{Kind: contracts.KindNakshatra, NakshatraNumbers: ceremonyNakshatras, Points: 3, Label: "favorable nakshatra"},
				{Kind: contracts.KindYoga, YogaNumbers: auspiciousYogaNumbers, Points: 1, Label: "auspicious yoga"},
				{Kind: contracts.KindWeekday, Weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Thursday, time.Friday}, Points: 1, Label: "favorable weekday"},
			},
			Tiers:       electionalTiers(),
			NotableTier: contracts.TierExcellent,
		},

		"travel": {
			Name: "travel",
			Criteria: []contracts.Criterion{
				{Kind: contracts.KindBodyDignity, Body: contracts.Mercury, Points: 3, Label: "Mercury dignified"},
				{Kind: contracts.KindBodyDignity, Body: contracts.Moon, Points: 2, Label: "Moon dignified"},
				{Kind: contracts.KindBodyInSigns, Body: contracts.Moon, Signs: []contracts.Sign{contracts.Gemini, contracts.Virgo, contracts.Sagittarius, contracts.Pisces}, Points: 2, Label: "Moon in a dual sign"},
				{Kind: contracts.KindMoonWaxing, Points: 2, Label: "waxing Moon"},
				{Kind: contracts.KindTithi, TithiNumbers: growthTithis, Points: 2, Label: "favorable tithi"},
				{Kind: contracts.KindNakshatra, NakshatraNumbers: travelNakshatras, Points: 3, Label: "favorable nakshatra"},
				{Kind: contracts.KindYoga, YogaNumbers: auspiciousYogaNumbers, Points: 1, Label: "auspicious yoga"},
				{Kind: contracts.KindWeekday, Weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Thursday, time.Friday}, Points: 2, Label: "favorable weekday"},
			},
			Tiers:       electionalTiers(),
			NotableTier: contracts.TierExcellent,
		},

		"business": {
			Name: "business",
			Criteria: []contracts.Criterion{
				{Kind: contracts.KindBodyDignity, Body: contracts.Mercury, Points: 3, Label: "Mercury dignified"},
				{Kind: contracts.KindBodyDignity, Body: contracts.Jupiter, Points: 3, Label: "Jupiter dignified"},
				{Kind: contracts.KindBodyDignity, Body: contracts.Sun, Points: 2, Label: "Sun dignified"},
				{Kind: contracts.KindBodiesInTrine, Body: contracts.Jupiter, OtherBody: contracts.Mercury, Points: 2, Label: "Jupiter in trine to Mercury"},
				{Kind: contracts.KindMoonWaxing, Points: 2, Label: "waxing Moon"},
				{Kind: contracts.KindTithi, TithiNumbers: growthTithis, Points: 2, Label: "favorable tithi"},
				{Kind: contracts.KindYoga, YogaNumbers: auspiciousYogaNumbers, Points: 1, Label: "auspicious yoga"},
				{Kind: contracts.KindWeekday, Weekdays: []time.Weekday{time.Wednesday, time.Thursday, time.Sunday}, Points: 2, Label: "favorable weekday"},
			},
			Tiers:       electionalTiers(),
			NotableTier: contracts.TierExcellent,
		},

		"housewarming": {
			Name: "housewarming",
			Criteria: []contracts.Criterion{
				{Kind: contracts.KindBodyDignity, Body: contracts.Jupiter, Points: 3, Label: "Jupiter dignified"},
				{Kind: contracts.KindBodyDignity, Body: contracts.Venus, Points: 2, Label: "Venus dignified"},
				{Kind: contracts.KindBodyInSigns, Body: contracts.Moon, Signs: []contracts.Sign{contracts.Taurus, contracts.Leo, contracts.Scorpio, contracts.Aquarius}, Points: 2, Label: "Moon in a fixed sign"},
				{Kind: contracts.KindMoonWaxing, Points: 2, Label: "waxing Moon"},
				{Kind: contracts.KindTithi, TithiNumbers: growthTithis, Points: 2, Label: "favorable tithi"},
				{Kind: contracts.KindNakshatra, NakshatraNumbers: ceremonyNakshatras, Points: 3, Label: "favorable nakshatra"},
				{Kind: contracts.KindYoga, YogaNumbers: auspiciousYogaNumbers, Points: 1, Label: "auspicious yoga"},
				{Kind: contracts.KindWeekday, Weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Thursday, time.Friday}, Points: 1, Label: "favorable weekday"},
			},
			Tiers:       electionalTiers(),
			NotableTier: contracts.TierExcellent,
		},

		"vehicle": {
			Name: "vehicle",
			Criteria: []contracts.Criterion{
				{Kind: contracts.KindBodyDignity, Body: contracts.Venus, Points: 3, Label: "Venus dignified"},
				{Kind: contracts.KindBodyDignity, Body: contracts.Mercury, Points: 2, Label: "Mercury dignified"},
				{Kind: contracts.KindMoonWaxing, Points: 2, Label: "waxing Moon"},
				{Kind: contracts.KindTithi, TithiNumbers: growthTithis, Points: 3, Label: "favorable tithi"},
				{Kind: contracts.KindNakshatra, NakshatraNumbers: travelNakshatras, Points: 2, Label: "favorable nakshatra"},
				{Kind: contracts.KindYoga, YogaNumbers: auspiciousYogaNumbers, Points: 1, Label: "auspicious yoga"},
				{Kind: contracts.KindWeekday, Weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Friday}, Points: 2, Label: "favorable weekday"},
			},
			Tiers:       electionalTiers(),
			NotableTier: contracts.TierExcellent,
		},

		"education": {
			Name: "education",
			Criteria: []contracts.Criterion{
				{Kind: contracts.KindBodyDignity, Body: contracts.Mercury, Points: 3, Label: "Mercury dignified"},
				{Kind: contracts.KindBodyDignity, Body: contracts.Jupiter, Points: 3, Label: "Jupiter dignified"},
				{Kind: contracts.KindBodiesInTrine, Body: contracts.Mercury, OtherBody: contracts.Moon, Points: 2, Label: "Mercury in trine to the Moon"},
				{Kind: contracts.KindMoonWaxing, Points: 2, Label: "waxing Moon"},
				{Kind: contracts.KindTithi, TithiNumbers: growthTithis, Points: 2, Label: "favorable tithi"},
				{Kind: contracts.KindNakshatra, NakshatraNumbers: []int{8, 12, 13, 14, 17, 22, 27}, Points: 3, Label: "favorable nakshatra"},
				{Kind: contracts.KindYoga, YogaNumbers: auspiciousYogaNumbers, Points: 1, Label: "auspicious yoga"},
				{Kind: contracts.KindWeekday, Weekdays: []time.Weekday{time.Wednesday, time.Thursday, time.Friday}, Points: 1, Label: "favorable weekday"},
			},
			Tiers:       electionalTiers(),
			NotableTier: contracts.TierExcellent,
		},
	}
}
