package reftables

import "github.com/wonny/jyotish/backend/internal/contracts"

// DignityRelation classifies how well a body fits a sign
type DignityRelation string

const (
	RelationExalted  DignityRelation = "exalted"
	RelationOwn      DignityRelation = "own"
	RelationFriendly DignityRelation = "friendly"
	RelationNeutral  DignityRelation = "neutral"
	RelationEnemy    DignityRelation = "enemy"
)

// Dignity holds one classical body's dignity data: its own signs, its
// exaltation sign, and its natural friends and enemies among the bodies.
// Bodies absent from both lists are neutral.
type Dignity struct {
	OwnSigns   []contracts.Sign
	Exaltation contracts.Sign
	Friends    []contracts.Body
	Enemies    []contracts.Body
}

// dignities is the classical table for the seven bodies.
// 고정 참조 데이터: 프로세스 기동 시 한 번 로드, 이후 불변
var dignities = map[contracts.Body]Dignity{
	contracts.Sun: {
		OwnSigns:   []contracts.Sign{contracts.Leo},
		Exaltation: contracts.Aries,
		Friends:    []contracts.Body{contracts.Moon, contracts.Mars, contracts.Jupiter},
		Enemies:    []contracts.Body{contracts.Venus, contracts.Saturn},
	},
	contracts.Moon: {
		OwnSigns:   []contracts.Sign{contracts.Cancer},
		Exaltation: contracts.Taurus,
		Friends:    []contracts.Body{contracts.Sun, contracts.Mercury},
		Enemies:    []contracts.Body{},
	},
	contracts.Mars: {
		OwnSigns:   []contracts.Sign{contracts.Aries, contracts.Scorpio},
		Exaltation: contracts.Capricorn,
		Friends:    []contracts.Body{contracts.Sun, contracts.Moon, contracts.Jupiter},
		Enemies:    []contracts.Body{contracts.Mercury},
	},
	contracts.Mercury: {
		OwnSigns:   []contracts.Sign{contracts.Gemini, contracts.Virgo},
		Exaltation: contracts.Virgo,
		Friends:    []contracts.Body{contracts.Sun, contracts.Venus},
		Enemies:    []contracts.Body{contracts.Moon},
	},
	contracts.Jupiter: {
		OwnSigns:   []contracts.Sign{contracts.Sagittarius, contracts.Pisces},
		Exaltation: contracts.Cancer,
		Friends:    []contracts.Body{contracts.Sun, contracts.Moon, contracts.Mars},
		Enemies:    []contracts.Body{contracts.Mercury, contracts.Venus},
	},
	contracts.Venus: {
		OwnSigns:   []contracts.Sign{contracts.Taurus, contracts.Libra},
		Exaltation: contracts.Pisces,
		Friends:    []contracts.Body{contracts.Mercury, contracts.Saturn},
		Enemies:    []contracts.Body{contracts.Sun, contracts.Moon},
	},
	contracts.Saturn: {
		OwnSigns:   []contracts.Sign{contracts.Capricorn, contracts.Aquarius},
		Exaltation: contracts.Libra,
		Friends:    []contracts.Body{contracts.Mercury, contracts.Venus},
		Enemies:    []contracts.Body{contracts.Sun, contracts.Moon, contracts.Mars},
	},
}

// signLords maps each sign to its ruling body
var signLords = [contracts.SignCount]contracts.Body{
	contracts.Mars,    // Aries
	contracts.Venus,   // Taurus
	contracts.Mercury, // Gemini
	contracts.Moon,    // Cancer
	contracts.Sun,     // Leo
	contracts.Mercury, // Virgo
	contracts.Venus,   // Libra
	contracts.Mars,    // Scorpio
	contracts.Jupiter, // Sagittarius
	contracts.Saturn,  // Capricorn
	contracts.Saturn,  // Aquarius
	contracts.Jupiter, // Pisces
}
