package utils

import "time"

// Request context keys
const (
	RequestIDKey = "X-Request-ID"
	UserAgentKey = "User-Agent"
	IPAddressKey = "IP-Address"
	EndpointKey  = "Endpoint"
)

// HTTP constants
const (
	// RequestTimeout bounds a single inference request end to end
	RequestTimeout = 30 * time.Second

	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)
