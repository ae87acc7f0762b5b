package openmeteo

// DescribeWeatherCode translates a WMO weather interpretation code (WW) into
// a display description and icon code. Unrecognized codes map to an unknown
// partly-cloudy placeholder rather than failing the day.
func DescribeWeatherCode(code int) (description, icon string) {
	switch {
	case code == 0:
		return "Clear sky", "01d"
	case code == 1:
		return "Mainly clear", "02d"
	case code == 2:
		return "Partly cloudy", "03d"
	case code == 3:
		return "Overcast", "04d"
	case code >= 45 && code <= 48:
		return "Foggy", "50d"
	case code >= 51 && code <= 55:
		return "Drizzle", "09d"
	case code >= 61 && code <= 65:
		return "Rain", "10d"
	case code >= 71 && code <= 77:
		return "Snow", "13d"
	case code >= 80 && code <= 82:
		return "Rain showers", "09d"
	case code >= 85 && code <= 86:
		return "Snow showers", "13d"
	case code >= 95 && code <= 99:
		return "Thunderstorm", "11d"
	default:
		return "Unknown", "03d"
	}
}
