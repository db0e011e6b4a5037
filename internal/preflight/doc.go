// Package preflight provides readiness checks for the directories and
// services runeshot depends on.
//
// These checks run in two contexts:
//   - The daemon checks the screenshot directory at startup and warns when
//     it is missing or unreadable (RuneLite may not have created it yet).
//   - The CLI "runeshot check" command runs RunAll to display overall health.
package preflight
