// Package cli implements the photodesk command-line admin console.
//
// Commands are built with cobra. Every invocation loads the layered
// configuration (see internal/client/config), builds one REST client with the
// configured bearer token and runs a single operation:
//
//	photodesk login --email admin@example.com
//	photodesk events list --search wedding
//	photodesk photos upload EVENT_ID ./shoot/*.jpg --concurrency 4
//	photodesk photos retry EVENT_ID
//	photodesk gallery download TOKEN --out ./purchased
//
// A batch upload exits non-zero when any file failed; `photos retry`
// resubmits exactly those files.
package cli
