// Package journal records ingest batches in the local SQLite database so a
// later run can resubmit only the files that failed.
//
// Every batch is written in one transaction: the batches row with its totals
// and one uploads row per file, keyed by the file's position in the batch.
//
//	db, _ := journal.Open(ctx, "photodesk.db")
//	repo := journal.NewSQLiteRepository(db)
//	_ = repo.SaveBatch(ctx, batch)
//	failed, _ := repo.LatestFailed(ctx, eventID)
package journal
