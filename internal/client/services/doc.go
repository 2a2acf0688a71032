// Package services contains the application services behind the photodesk
// CLI. They combine the REST client, the ingestion orchestrator, the local
// upload journal and the blob store into the operations the commands expose.
package services
