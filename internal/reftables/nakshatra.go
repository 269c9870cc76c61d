package reftables

import "github.com/wonny/jyotish/backend/internal/contracts"

// NakshatraCount is the number of lunar mansions
const NakshatraCount = 27

// nakshatraNames in order from Ashwini; indexed by 1-based nakshatra number - 1
var nakshatraNames = [NakshatraCount]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni",
	"Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha", "Anuradha",
	"Jyeshtha", "Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana",
	"Dhanishta", "Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada",
	"Revati",
}

// nakshatraLordCycle repeats three times over the 27 mansions
var nakshatraLordCycle = [9]contracts.Body{
	contracts.Ketu, contracts.Venus, contracts.Sun, contracts.Moon,
	contracts.Mars, contracts.Rahu, contracts.Jupiter, contracts.Saturn,
	contracts.Mercury,
}

// tithi quality groups (1-based tithi numbers within both fortnights).
// Rikta tithis (4, 9, 14 and their dark-fortnight counterparts) plus
// amavasya are held unfavorable for new undertakings.
var riktaTithis = map[int]bool{
	4: true, 9: true, 14: true,
	19: true, 24: true, 29: true,
	30: true, // amavasya
}

// inauspiciousYogas by 1-based yoga number
var inauspiciousYogas = map[int]bool{
	1:  true, // Vishkambha
	6:  true, // Atiganda
	9:  true, // Shula
	10: true, // Ganda
	13: true, // Vyaghata
	15: true, // Vajra
	17: true, // Vyatipata
	19: true, // Parigha
	27: true, // Vaidhriti
}
