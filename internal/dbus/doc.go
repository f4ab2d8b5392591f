// Package dbus implements the io.github.jmylchreest.HyprClock control
// interface on the session bus. The server lets a running widget be shown,
// hidden, toggled and queried; the client is what the CLI uses to call it.
package dbus
