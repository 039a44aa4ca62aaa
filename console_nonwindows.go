//go:build !windows

package main

// No console window to detach from on non-Windows platforms.
func hideAndDetachConsoleForGUI() {}
