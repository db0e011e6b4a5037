// Package messenger defines the chat surface screenshots are delivered
// through and ships the Discord implementation.
//
// The core only needs three calls: find a channel by name, create one, and
// send a message with a single file attachment. Discord is reached over its
// REST API; no gateway session is opened.
package messenger
