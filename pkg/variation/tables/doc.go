// Package tables holds the static substitution data read by the variation
// passes.
//
// Every table is package-level, read-only data. Candidate lists are ordered
// from the most subtle replacement to the most aggressive one; the letter
// pass relies on that ordering by drawing only from the head of each list.
//
// Word keys are kept in a slice rather than a map so that iteration follows
// definition order. Callers must not assume alphabetical order.
package tables
