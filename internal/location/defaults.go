package location

// DefaultIndex returns the built-in place-name index used when no external
// index file is configured.  Keys follow the canonical title-cased form.
func DefaultIndex() map[string]string {
	return map[string]string{
		"Bangladesh":     "DAC",
		"India":          "DEL",
		"Japan":          "HND",
		"France":         "CDG",
		"Germany":        "BER",
		"Canada":         "YYZ",
		"Australia":      "SYD",
		"Brazil":         "GRU",
		"United Kingdom": "LHR",
		"United States":  "JFK",
	}
}

// DefaultNearby returns the built-in metro-area alternates for the default
// index.  Codes without alternates are simply absent.
func DefaultNearby() map[string][]string {
	return map[string][]string{
		"JFK": {"EWR", "LGA"},
		"LHR": {"LGW", "STN"},
		"HND": {"NRT"},
		"CDG": {"ORY"},
		"YYZ": {"YTZ"},
		"GRU": {"CGH"},
	}
}
