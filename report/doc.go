// Package report provides types and operations for size report files.
//
// A size report captures the measured footprint of every tag in a
// processed script, together with integrity hashes for the external
// sources fetched during processing. Committing a report next to its
// source file makes size regressions and upstream drift visible in
// review and enforceable in CI.
//
// # Report Structure
//
// A size report contains:
//   - reportVersion: Schema version for format compatibility
//   - tags: Per-tag descriptions, requirements, links, and measured sizes
//   - sourceHashes: Integrity hashes for fetched external sources
//   - meta: Free-form generator metadata
//
// # Usage
//
// Read an existing report:
//
//	rep, err := report.ReadFile("utag.sizes.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Report version: %d\n", rep.Version)
//
// Create a new report:
//
//	rep := report.New()
//	rep.SetTag("GEO", report.TagEntry{Description: "Geolocation support", Size: 1480})
//	if err := rep.WriteFile("utag.sizes.json"); err != nil {
//	    log.Fatal(err)
//	}
//
// Compare two reports:
//
//	diff := report.Compare(oldRep, newRep)
//	if !diff.IsEmpty() {
//	    fmt.Println(diff.Summary())
//	}
//
// # Compatibility
//
// This package writes schema version 2. Version 1 files, which predate
// source hashes, still parse; their hash map comes back empty.
package report
