package models

import (
	"fmt"
	"strings"
)

// Address holds the components of a street address as they arrive from the client.
type Address struct {
	Country      string
	City         string
	PostalCode   string
	StreetName   string
	StreetNumber string
}

// String formats the address the way geocoding providers expect it:
// "<number> <street>, <city>, <postal code>, <country>".
func (a Address) String() string {
	return fmt.Sprintf("%s %s, %s, %s, %s",
		strings.TrimSpace(a.StreetNumber),
		strings.TrimSpace(a.StreetName),
		strings.TrimSpace(a.City),
		strings.TrimSpace(a.PostalCode),
		strings.TrimSpace(a.Country),
	)
}
