package quantplay

import "time"

// API base address.
const (
	APIBaseURL = "https://dms.quantplay.tech"
	APIVersion = "v2"

	// DefaultBaseURL is the versioned production endpoint.
	DefaultBaseURL = APIBaseURL + "/" + APIVersion
)

// Request defaults.
const (
	DefaultTimeout = 30 * time.Second

	headerAPIKey = "x-api-key"
)

// API endpoint templates. Parameterized endpoints interpolate the account
// nickname.
const (
	EndpointAccounts   = "/accounts"
	EndpointPositions  = "/accounts/%s/positions"
	EndpointHoldings   = "/accounts/%s/holdings"
	EndpointPlaceOrder = "/execution/order/place?nickname=%s"
)

// Canonical error message templates.
const (
	errInvalidAPIKey    = "invalid API key provided"
	errAPIRequestFailed = "API request failed: %d - %s"
	errNetworkFailure   = "network error occurred while connecting to QuantPlay API: %v"
	errTimeoutElapsed   = "request to QuantPlay API timed out after %s"
	errParseFailure     = "failed to parse API response: %v"

	unknownError = "Unknown error"
)

func defaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}
