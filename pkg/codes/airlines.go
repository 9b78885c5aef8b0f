// Package codes holds the static airline, airport and aircraft type reference tables.
// The tables are built once at package init and never mutated afterwards.
package codes

import (
	"sort"
	"strings"
)

// AirlineInfo is the canonical name and ICAO designator of an airline keyed by its IATA code.
type AirlineInfo struct {
	IATA string
	ICAO string
	Name string
}

var airlineTable = []AirlineInfo{
	{IATA: "6E", ICAO: "IGO", Name: "IndiGo"},
	{IATA: "AA", ICAO: "AAL", Name: "American Airlines"},
	{IATA: "AC", ICAO: "ACA", Name: "Air Canada"},
	{IATA: "AD", ICAO: "AZU", Name: "Azul Brazilian Airlines"},
	{IATA: "AF", ICAO: "AFR", Name: "Air France"},
	{IATA: "AI", ICAO: "AIC", Name: "Air India"},
	{IATA: "AK", ICAO: "AXM", Name: "AirAsia"},
	{IATA: "AM", ICAO: "AMX", Name: "Aeromexico"},
	{IATA: "AS", ICAO: "ASA", Name: "Alaska Airlines"},
	{IATA: "AV", ICAO: "AVA", Name: "Avianca"},
	{IATA: "AY", ICAO: "FIN", Name: "Finnair"},
	{IATA: "AZ", ICAO: "ITY", Name: "ITA Airways"},
	{IATA: "B6", ICAO: "JBU", Name: "JetBlue Airways"},
	{IATA: "BA", ICAO: "BAW", Name: "British Airways"},
	{IATA: "BR", ICAO: "EVA", Name: "EVA Air"},
	{IATA: "CA", ICAO: "CCA", Name: "Air China"},
	{IATA: "CI", ICAO: "CAL", Name: "China Airlines"},
	{IATA: "CM", ICAO: "CMP", Name: "Copa Airlines"},
	{IATA: "CX", ICAO: "CPA", Name: "Cathay Pacific"},
	{IATA: "CZ", ICAO: "CSN", Name: "China Southern Airlines"},
	{IATA: "DL", ICAO: "DAL", Name: "Delta Air Lines"},
	{IATA: "EI", ICAO: "EIN", Name: "Aer Lingus"},
	{IATA: "EK", ICAO: "UAE", Name: "Emirates"},
	{IATA: "ET", ICAO: "ETH", Name: "Ethiopian Airlines"},
	{IATA: "EY", ICAO: "ETD", Name: "Etihad Airways"},
	{IATA: "F9", ICAO: "FFT", Name: "Frontier Airlines"},
	{IATA: "FR", ICAO: "RYR", Name: "Ryanair"},
	{IATA: "G3", ICAO: "GLO", Name: "Gol Linhas Aereas"},
	{IATA: "GA", ICAO: "GIA", Name: "Garuda Indonesia"},
	{IATA: "HA", ICAO: "HAL", Name: "Hawaiian Airlines"},
	{IATA: "HU", ICAO: "CHH", Name: "Hainan Airlines"},
	{IATA: "IB", ICAO: "IBE", Name: "Iberia"},
	{IATA: "ID", ICAO: "BTK", Name: "Batik Air"},
	{IATA: "JL", ICAO: "JAL", Name: "Japan Airlines"},
	{IATA: "JQ", ICAO: "JST", Name: "Jetstar Airways"},
	{IATA: "JT", ICAO: "LNI", Name: "Lion Air"},
	{IATA: "KE", ICAO: "KAL", Name: "Korean Air"},
	{IATA: "KL", ICAO: "KLM", Name: "KLM Royal Dutch Airlines"},
	{IATA: "LA", ICAO: "LAN", Name: "LATAM Airlines"},
	{IATA: "LH", ICAO: "DLH", Name: "Lufthansa"},
	{IATA: "LO", ICAO: "LOT", Name: "LOT Polish Airlines"},
	{IATA: "LX", ICAO: "SWR", Name: "Swiss International Air Lines"},
	{IATA: "MH", ICAO: "MAS", Name: "Malaysia Airlines"},
	{IATA: "MS", ICAO: "MSR", Name: "EgyptAir"},
	{IATA: "MU", ICAO: "CES", Name: "China Eastern Airlines"},
	{IATA: "NH", ICAO: "ANA", Name: "All Nippon Airways"},
	{IATA: "NZ", ICAO: "ANZ", Name: "Air New Zealand"},
	{IATA: "OS", ICAO: "AUA", Name: "Austrian Airlines"},
	{IATA: "OZ", ICAO: "AAR", Name: "Asiana Airlines"},
	{IATA: "PR", ICAO: "PAL", Name: "Philippine Airlines"},
	{IATA: "QF", ICAO: "QFA", Name: "Qantas"},
	{IATA: "QR", ICAO: "QTR", Name: "Qatar Airways"},
	{IATA: "QZ", ICAO: "AWQ", Name: "Indonesia AirAsia"},
	{IATA: "RJ", ICAO: "RJA", Name: "Royal Jordanian"},
	{IATA: "SA", ICAO: "SAA", Name: "South African Airways"},
	{IATA: "SK", ICAO: "SAS", Name: "Scandinavian Airlines"},
	{IATA: "SQ", ICAO: "SIA", Name: "Singapore Airlines"},
	{IATA: "SU", ICAO: "AFL", Name: "Aeroflot"},
	{IATA: "SV", ICAO: "SVA", Name: "Saudia"},
	{IATA: "TG", ICAO: "THA", Name: "Thai Airways"},
	{IATA: "TK", ICAO: "THY", Name: "Turkish Airlines"},
	{IATA: "TP", ICAO: "TAP", Name: "TAP Air Portugal"},
	{IATA: "U2", ICAO: "EZY", Name: "easyJet"},
	{IATA: "UA", ICAO: "UAL", Name: "United Airlines"},
	{IATA: "UX", ICAO: "AEA", Name: "Air Europa"},
	{IATA: "VA", ICAO: "VOZ", Name: "Virgin Australia"},
	{IATA: "VN", ICAO: "HVN", Name: "Vietnam Airlines"},
	{IATA: "VS", ICAO: "VIR", Name: "Virgin Atlantic"},
	{IATA: "W6", ICAO: "WZZ", Name: "Wizz Air"},
	{IATA: "WN", ICAO: "SWA", Name: "Southwest Airlines"},
	{IATA: "WS", ICAO: "WJA", Name: "WestJet"},
}

var (
	airlineByIATA = make(map[string]AirlineInfo, len(airlineTable))
	airlineByICAO = make(map[string]AirlineInfo, len(airlineTable))
)

func init() {
	sort.Slice(airlineTable, func(i, j int) bool { return airlineTable[i].IATA < airlineTable[j].IATA })
	for _, a := range airlineTable {
		airlineByIATA[a.IATA] = a
		airlineByICAO[a.ICAO] = a
	}
}

// AirlineByIATA returns the table entry for an IATA code (case-insensitive).
func AirlineByIATA(code string) (AirlineInfo, bool) {
	a, ok := airlineByIATA[strings.ToUpper(code)]
	return a, ok
}

// AirlineByICAO scans the table for an entry whose ICAO designator equals code.
func AirlineByICAO(code string) (AirlineInfo, bool) {
	a, ok := airlineByICAO[strings.ToUpper(code)]
	return a, ok
}

// minNameFragment is the shortest input matched as a fragment of a table name.
const minNameFragment = 4

// AirlineCodeByName matches name against the airline names in table order.
// A match is either name containing the table name or, for inputs of at least
// minNameFragment letters, the table name containing name. Comparison is case-insensitive.
func AirlineCodeByName(name string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return "", false
	}
	fragmentOK := len(needle) >= minNameFragment
	for _, a := range airlineTable {
		candidate := strings.ToLower(a.Name)
		if strings.Contains(needle, candidate) || (fragmentOK && strings.Contains(candidate, needle)) {
			return a.IATA, true
		}
	}
	return "", false
}
