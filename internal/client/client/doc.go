// Package client contains the photodesk REST client.
//
// # Overview
//
// The package provides:
//  1. Transport-agnostic contracts (PhotoAPI, AuthAPI, AdminAPI, GalleryAPI,
//     and the aggregate Client) describing the backend surface.
//  2. A concrete HTTP implementation (HTTPClient) that encodes JSON bodies,
//     attaches the bearer token from an explicit Credential, tags each request
//     with an X-Request-ID, and maps HTTP status codes to sentinel errors.
//  3. Presigned uploads (HTTPClient.Transfer) that PUT bytes straight to blob
//     storage without the API credential.
//
// # Error Handling
//
// Non-2xx responses come back as *APIError, which unwraps to one of
// common.ErrValidation, common.ErrUnauthorized, common.ErrNotFound,
// common.ErrConflict or common.ErrUnavailable. Transport failures also match
// common.ErrUnavailable.
//
// # Credentials
//
// There is no process-wide token store. A Credential is passed to
// NewHTTPClient; WithCredential derives a client for a different token.
package client
