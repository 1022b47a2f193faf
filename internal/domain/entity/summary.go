package entity

// QueryError records a per-query failure inside an ingestion run
type QueryError struct {
	Query SearchQuery
	Err   error
}

// IngestionSummary is the outcome of one ingestion run. It is always
// returned, even when every query failed.
type IngestionSummary struct {
	Attempted  int
	SavedCount int
	Errors     []QueryError
}
