// Command runeshot posts RuneLite screenshots to Discord.
//
// `runeshot run` starts the delivery daemon (or a single batch with --once).
// The remaining commands inspect state offline: pending lists screenshots
// that have not been delivered yet, classify explains how a filename is
// routed, ledger manages the delivered-file record, and status queries a
// running daemon's status API.
package main
