// Package scrapper mirrors a web site to a local directory tree.
// Starting from a root URL it fetches pages, saves them to disk, extracts
// linked pages and embedded resources, and recursively downloads each of
// them, stopping at pages that were already saved.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, fs/, sqlite/).
package scrapper
