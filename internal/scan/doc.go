// Package scan lists the screenshot directory.
//
// A scan is a non-recursive snapshot of regular files ordered by creation
// time. Nothing is cached between scans; the dispatcher relies on the ledger
// to skip files it has already delivered.
package scan
