package config

import "strings"

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointSecurityConfig maps "METHOD path-template" to the level a request needs.
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Reads - Public
	"GET /api/v1/resources/{resourceID}/occupied":     SecurityPublic,
	"GET /api/v1/resources/{resourceID}/availability": SecurityPublic,
	"GET /api/v1/resources/{resourceID}/reservations": SecurityPublic,
	"GET /api/v1/resources/{resourceID}/calendar.ics": SecurityPublic,
	"POST /api/v1/resources/{resourceID}/quote":       SecurityPublic,
	"GET /api/v1/listings/{listingID}/distance":       SecurityPublic,
	"GET /healthz":                                    SecurityPublic,

	// Writes - Access Protected
	"POST /api/v1/resources/{resourceID}/reservations":                            SecurityAccess,
	"PATCH /api/v1/resources/{resourceID}/reservations/{reservationID}/status":    SecurityAccess,
	"POST /api/v1/resources/{resourceID}/reservations/{reservationID}/extensions": SecurityAccess,
}

// GetSecurityLevel returns the security level for a method and route template
func GetSecurityLevel(method, pathTemplate string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[strings.ToUpper(method)+" "+pathTemplate]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
