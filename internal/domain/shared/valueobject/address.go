package valueobject

import (
	"errors"
	"fmt"
	"strings"
)

// HomeCountry is the country the seller is established in
const HomeCountry = "DE"

// euCountries holds the ISO 3166-1 alpha-2 codes of EU member states
var euCountries = map[string]struct{}{
	"AT": {}, "BE": {}, "BG": {}, "CY": {}, "CZ": {}, "DE": {}, "DK": {}, "EE": {}, "ES": {},
	"FI": {}, "FR": {}, "GR": {}, "HR": {}, "HU": {}, "IE": {}, "IT": {}, "LT": {}, "LU": {},
	"LV": {}, "MT": {}, "NL": {}, "PL": {}, "PT": {}, "RO": {}, "SE": {}, "SI": {}, "SK": {},
}

// IsEUCountry reports whether the ISO country code belongs to an EU member state
func IsEUCountry(code string) bool {
	_, ok := euCountries[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// Address is a postal address
type Address struct {
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Country    string `json:"country"`
}

// NewAddress creates a normalized address. Country defaults to DE.
func NewAddress(street, postalCode, city, country string) (Address, error) {
	a := Address{
		Street:     strings.TrimSpace(street),
		PostalCode: strings.TrimSpace(postalCode),
		City:       strings.TrimSpace(city),
		Country:    strings.ToUpper(strings.TrimSpace(country)),
	}
	if a.Country == "" {
		a.Country = HomeCountry
	}
	if len(a.Country) != 2 {
		return Address{}, fmt.Errorf("country must be an ISO 3166-1 alpha-2 code, got %q", country)
	}
	if a.City == "" {
		return Address{}, errors.New("city cannot be empty")
	}
	if a.Country == HomeCountry && a.PostalCode != "" && !isGermanPostalCode(a.PostalCode) {
		return Address{}, fmt.Errorf("invalid German postal code %q", a.PostalCode)
	}
	return a, nil
}

func isGermanPostalCode(code string) bool {
	if len(code) != 5 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsDomestic reports whether the address lies in the home country
func (a Address) IsDomestic() bool {
	return a.Country == "" || a.Country == HomeCountry
}

// IsEU reports whether the address lies in the EU (including the home country)
func (a Address) IsEU() bool {
	return a.IsDomestic() || IsEUCountry(a.Country)
}

// String renders the address on one line
func (a Address) String() string {
	parts := make([]string, 0, 3)
	if a.Street != "" {
		parts = append(parts, a.Street)
	}
	parts = append(parts, strings.TrimSpace(a.PostalCode+" "+a.City))
	if !a.IsDomestic() {
		parts = append(parts, a.Country)
	}
	return strings.Join(parts, ", ")
}
