package common

// AuthorizationHeaderName carries the bearer token on API requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"
