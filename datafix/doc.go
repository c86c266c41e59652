// Package datafix applies one-off corrections to stored roster data.
//
// The main tool is a canonical-name fixer: given a map of variant names to
// their canonical form, it rewrites every department roster in place with
// retry logic and progress tracking. Renames that create duplicates are
// intentionally left for the search-time merger to collapse.
package datafix
