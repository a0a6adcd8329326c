// Package protocols owns the per-dialect protocol tables and their loading.
//
// Ownership boundary:
// - protocol name set and declared order
// - protocol table shape (endpoint path -> method -> command)
// - embedded mandatory tables
// - optional generated artifact resolution (WebDriver Bidi)
package protocols
