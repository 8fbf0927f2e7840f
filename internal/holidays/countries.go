package holidays

import "strings"

// DefaultCountry is selected when no country was chosen
const DefaultCountry = "IN"

// Country is an entry of the country selector
type Country struct {
	Code string
	Name string
}

// Countries is the fixed selector set, in display order
var Countries = []Country{
	{"IN", "India"},
	{"US", "United States"},
	{"GB", "United Kingdom"},
	{"CA", "Canada"},
	{"AU", "Australia"},
	{"DE", "Germany"},
	{"FR", "France"},
	{"JP", "Japan"},
	{"CN", "China"},
	{"BR", "Brazil"},
}

// CountryName returns the display name of a code, or "World" if unknown
func CountryName(code string) string {
	code = strings.ToUpper(code)
	for _, c := range Countries {
		if c.Code == code {
			return c.Name
		}
	}
	return "World"
}

// IsSupported reports whether the code is in the selector set
func IsSupported(code string) bool {
	code = strings.ToUpper(code)
	for _, c := range Countries {
		if c.Code == code {
			return true
		}
	}
	return false
}
