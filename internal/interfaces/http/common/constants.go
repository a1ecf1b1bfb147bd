package common

const (
	// MaxRequestBody limits JSON request bodies for admin endpoints.
	MaxRequestBody = 1 << 16
)
