// Package logs locates and tails runeshot run logs.
//
// Each "runeshot run" writes its own runeshot-<stamp>.log under the log
// directory. Latest finds the newest one, Tail returns its last lines with
// bounded memory, and Follow streams lines appended after an offset until the
// context is cancelled. The "runeshot logs" command is the main caller.
package logs
