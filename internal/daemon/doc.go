// Package daemon holds the long-running helpers of the widget process:
// configuration hot-reload and the desktop notifications it raises about
// its own failures.
package daemon
