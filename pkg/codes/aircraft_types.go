package codes

import "strings"

// AircraftType is the manufacturer and marketing model behind an ICAO type designator.
type AircraftType struct {
	Manufacturer string
	Model        string
}

var aircraftTypes = map[string]AircraftType{
	"A318": {Manufacturer: "Airbus", Model: "A318"},
	"A319": {Manufacturer: "Airbus", Model: "A319"},
	"A320": {Manufacturer: "Airbus", Model: "A320"},
	"A321": {Manufacturer: "Airbus", Model: "A321"},
	"A19N": {Manufacturer: "Airbus", Model: "A319neo"},
	"A20N": {Manufacturer: "Airbus", Model: "A320neo"},
	"A21N": {Manufacturer: "Airbus", Model: "A321neo"},
	"A332": {Manufacturer: "Airbus", Model: "A330-200"},
	"A333": {Manufacturer: "Airbus", Model: "A330-300"},
	"A338": {Manufacturer: "Airbus", Model: "A330-800neo"},
	"A339": {Manufacturer: "Airbus", Model: "A330-900neo"},
	"A343": {Manufacturer: "Airbus", Model: "A340-300"},
	"A346": {Manufacturer: "Airbus", Model: "A340-600"},
	"A359": {Manufacturer: "Airbus", Model: "A350-900"},
	"A35K": {Manufacturer: "Airbus", Model: "A350-1000"},
	"A388": {Manufacturer: "Airbus", Model: "A380-800"},
	"BCS1": {Manufacturer: "Airbus", Model: "A220-100"},
	"BCS3": {Manufacturer: "Airbus", Model: "A220-300"},
	"B712": {Manufacturer: "Boeing", Model: "717-200"},
	"B733": {Manufacturer: "Boeing", Model: "737-300"},
	"B734": {Manufacturer: "Boeing", Model: "737-400"},
	"B735": {Manufacturer: "Boeing", Model: "737-500"},
	"B736": {Manufacturer: "Boeing", Model: "737-600"},
	"B737": {Manufacturer: "Boeing", Model: "737-700"},
	"B738": {Manufacturer: "Boeing", Model: "737-800"},
	"B739": {Manufacturer: "Boeing", Model: "737-900"},
	"B37M": {Manufacturer: "Boeing", Model: "737 MAX 7"},
	"B38M": {Manufacturer: "Boeing", Model: "737 MAX 8"},
	"B39M": {Manufacturer: "Boeing", Model: "737 MAX 9"},
	"B3XM": {Manufacturer: "Boeing", Model: "737 MAX 10"},
	"B744": {Manufacturer: "Boeing", Model: "747-400"},
	"B748": {Manufacturer: "Boeing", Model: "747-8"},
	"B752": {Manufacturer: "Boeing", Model: "757-200"},
	"B753": {Manufacturer: "Boeing", Model: "757-300"},
	"B762": {Manufacturer: "Boeing", Model: "767-200"},
	"B763": {Manufacturer: "Boeing", Model: "767-300"},
	"B764": {Manufacturer: "Boeing", Model: "767-400"},
	"B772": {Manufacturer: "Boeing", Model: "777-200"},
	"B77L": {Manufacturer: "Boeing", Model: "777-200LR"},
	"B773": {Manufacturer: "Boeing", Model: "777-300"},
	"B77W": {Manufacturer: "Boeing", Model: "777-300ER"},
	"B778": {Manufacturer: "Boeing", Model: "777-8"},
	"B779": {Manufacturer: "Boeing", Model: "777-9"},
	"B788": {Manufacturer: "Boeing", Model: "787-8"},
	"B789": {Manufacturer: "Boeing", Model: "787-9"},
	"B78X": {Manufacturer: "Boeing", Model: "787-10"},
	"E170": {Manufacturer: "Embraer", Model: "E170"},
	"E75L": {Manufacturer: "Embraer", Model: "E175"},
	"E75S": {Manufacturer: "Embraer", Model: "E175"},
	"E190": {Manufacturer: "Embraer", Model: "E190"},
	"E195": {Manufacturer: "Embraer", Model: "E195"},
	"E290": {Manufacturer: "Embraer", Model: "E190-E2"},
	"E295": {Manufacturer: "Embraer", Model: "E195-E2"},
	"CRJ2": {Manufacturer: "Bombardier", Model: "CRJ200"},
	"CRJ7": {Manufacturer: "Bombardier", Model: "CRJ700"},
	"CRJ9": {Manufacturer: "Bombardier", Model: "CRJ900"},
	"CRJX": {Manufacturer: "Bombardier", Model: "CRJ1000"},
	"AT45": {Manufacturer: "ATR", Model: "42-500"},
	"AT72": {Manufacturer: "ATR", Model: "72"},
	"AT76": {Manufacturer: "ATR", Model: "72-600"},
	"DH8D": {Manufacturer: "De Havilland Canada", Model: "Dash 8-400"},
}

// manufacturerPrefixes is checked in order, so longer prefixes come first.
var manufacturerPrefixes = []struct {
	prefix       string
	manufacturer string
}{
	{"BCS", "Airbus"},
	{"CRJ", "Bombardier"},
	{"DH8", "De Havilland Canada"},
	{"AT", "ATR"},
	{"A1", "Airbus"},
	{"A2", "Airbus"},
	{"A3", "Airbus"},
	{"B3", "Boeing"},
	{"B7", "Boeing"},
	{"E1", "Embraer"},
	{"E2", "Embraer"},
	{"E7", "Embraer"},
	{"E9", "Embraer"},
}

// LookupAircraftType resolves a type designator to manufacturer and model.
// Unknown designators pass through unchanged as the model, with the manufacturer
// taken from the prefix table when one matches; ok reports an exact table hit.
func LookupAircraftType(code string) (t AircraftType, ok bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return AircraftType{}, false
	}
	if t, ok := aircraftTypes[strings.ToUpper(code)]; ok {
		return t, true
	}
	return AircraftType{Manufacturer: ManufacturerForType(code), Model: code}, false
}

// ManufacturerForType returns the manufacturer implied by a type designator prefix, or "".
func ManufacturerForType(code string) string {
	code = strings.ToUpper(code)
	for _, p := range manufacturerPrefixes {
		if strings.HasPrefix(code, p.prefix) {
			return p.manufacturer
		}
	}
	return ""
}
