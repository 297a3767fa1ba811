// Package store answers the read-only queries over the loaded dataset.
//
// Store holds the current immutable dataset.Table and exposes three query
// shapes:
//
//	List(q)          — substring-filtered, paginated window in source row order
//	ByInstitution(n) — every record whose INSID equals n; NotFoundError if none
//	Stats()          — distinct INSNAME/CREDDESC counts and CREDLEV values
//
// Every query is a pure function of the Table it captured and its parameters.
// Replace swaps the whole Table — the only write, used by the optional
// dataset watcher.
package store
