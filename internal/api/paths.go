// Package api provides the Narrative Service client implementation.
package api

// GJSON paths for extracting values from Narrative Service responses.
const (
	// /api/message reply
	PathResponse = "response"

	// /api/reset reply
	PathStatus = "status"
	PathDetail = "detail"

	// FastAPI error envelope on non-2xx replies
	PathErrorDetail = "detail"
)
