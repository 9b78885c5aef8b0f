package codes

import "strings"

// airportIATAByICAO maps ICAO location indicators to IATA airport codes.
var airportIATAByICAO = map[string]string{
	"KJFK": "JFK",
	"KLAX": "LAX",
	"KSFO": "SFO",
	"KORD": "ORD",
	"KATL": "ATL",
	"KDFW": "DFW",
	"KDEN": "DEN",
	"KSEA": "SEA",
	"KBOS": "BOS",
	"KMIA": "MIA",
	"KEWR": "EWR",
	"KLGA": "LGA",
	"KIAD": "IAD",
	"KIAH": "IAH",
	"KPHX": "PHX",
	"KLAS": "LAS",
	"KMCO": "MCO",
	"KMSP": "MSP",
	"KDTW": "DTW",
	"KPHL": "PHL",
	"PHNL": "HNL",
	"CYYZ": "YYZ",
	"CYVR": "YVR",
	"CYUL": "YUL",
	"MMMX": "MEX",
	"MPTO": "PTY",
	"SKBO": "BOG",
	"SBGR": "GRU",
	"SCEL": "SCL",
	"SAEZ": "EZE",
	"EGLL": "LHR",
	"EGKK": "LGW",
	"EGCC": "MAN",
	"EIDW": "DUB",
	"LFPG": "CDG",
	"LFPO": "ORY",
	"EDDF": "FRA",
	"EDDM": "MUC",
	"EDDB": "BER",
	"EHAM": "AMS",
	"EBBR": "BRU",
	"LEMD": "MAD",
	"LEBL": "BCN",
	"LPPT": "LIS",
	"LIRF": "FCO",
	"LIMC": "MXP",
	"LSZH": "ZRH",
	"LOWW": "VIE",
	"EKCH": "CPH",
	"ESSA": "ARN",
	"ENGM": "OSL",
	"EFHK": "HEL",
	"EPWA": "WAW",
	"LTFM": "IST",
	"UUEE": "SVO",
	"OMDB": "DXB",
	"OMAA": "AUH",
	"OTHH": "DOH",
	"OEJN": "JED",
	"OERK": "RUH",
	"OJAI": "AMM",
	"HECA": "CAI",
	"HAAB": "ADD",
	"FAOR": "JNB",
	"VIDP": "DEL",
	"VABB": "BOM",
	"VTBS": "BKK",
	"WSSS": "SIN",
	"WMKK": "KUL",
	"WIII": "CGK",
	"WADD": "DPS",
	"RPLL": "MNL",
	"VVTS": "SGN",
	"VVNB": "HAN",
	"VHHH": "HKG",
	"RCTP": "TPE",
	"RJTT": "HND",
	"RJAA": "NRT",
	"RJBB": "KIX",
	"RKSI": "ICN",
	"ZBAA": "PEK",
	"ZSPD": "PVG",
	"ZGGG": "CAN",
	"YSSY": "SYD",
	"YMML": "MEL",
	"YBBN": "BNE",
	"NZAA": "AKL",
}

var airportICAOByIATA = make(map[string]string, len(airportIATAByICAO))

func init() {
	for icao, iata := range airportIATAByICAO {
		airportICAOByIATA[iata] = icao
	}
}

// AirportIATAByICAO returns the IATA code mapped to an ICAO location indicator.
func AirportIATAByICAO(icao string) (string, bool) {
	iata, ok := airportIATAByICAO[strings.ToUpper(icao)]
	return iata, ok
}

// AirportICAOByIATA is the reverse of AirportIATAByICAO.
func AirportICAOByIATA(iata string) (string, bool) {
	icao, ok := airportICAOByIATA[strings.ToUpper(iata)]
	return icao, ok
}
