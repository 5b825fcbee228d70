package weather

var descriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow",
	73: "Moderate snow",
	75: "Heavy snow",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	95: "Thunderstorm",
	96: "Thunderstorm with hail",
	99: "Thunderstorm with heavy hail",
}

// Describe maps a WMO weather code to text.
func Describe(code int) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return "Unknown"
}

type Impact struct {
	Text       string  `json:"text"`
	Direction  string  `json:"direction"` // up | neutral
	Multiplier float64 `json:"multiplier"`
}

// DemandImpact turns tomorrow's forecast into a demand hint. Rain is checked
// before temperature.
func DemandImpact(t Tomorrow) Impact {
	var tempMax float64
	if t.TempMax != nil {
		tempMax = *t.TempMax
	}

	switch {
	case t.Code >= 61 && t.Code <= 82:
		return Impact{Text: "Rainy → +15% comfort food demand", Direction: "up", Multiplier: 1.15}
	case t.TempMax != nil && tempMax > 35:
		return Impact{Text: "Hot → +20% cold dishes/drinks", Direction: "up", Multiplier: 1.2}
	case t.TempMax != nil && tempMax < 15:
		return Impact{Text: "Cold → +15% hot soups/warm dishes", Direction: "up", Multiplier: 1.15}
	case t.Code == 0 || t.Code == 1:
		return Impact{Text: "Clear → Normal demand expected", Direction: "neutral", Multiplier: 1.0}
	default:
		return Impact{Text: "Moderate weather → Stable demand", Direction: "neutral", Multiplier: 1.0}
	}
}
