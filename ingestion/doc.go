// Package ingestion imports department roster documents into storage.
// Rosters are JSON objects mapping department names to member arrays;
// entries are validated individually so one bad record never blocks a
// department.
package ingestion
