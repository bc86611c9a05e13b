// Package views derives read-only projections from journal data: search
// hits, the overview partition, sorted timelines, grouped preferences and
// personal facts such as age and zodiac signs.
//
// Every function is pure. Functions that depend on the current time take
// it as a parameter so one view is computed against a single instant.
package views
