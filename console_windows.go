//go:build windows

package main

import (
	"syscall"
)

// hideAndDetachConsoleForGUI drops the console window that Windows attaches
// to a terminal-launched binary, so starting the organizer GUI from a shell
// does not leave an empty console behind.
func hideAndDetachConsoleForGUI() {
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	user32 := syscall.NewLazyDLL("user32.dll")
	getConsoleWindow := kernel32.NewProc("GetConsoleWindow")
	freeConsole := kernel32.NewProc("FreeConsole")
	showWindow := user32.NewProc("ShowWindow")

	const swHide = 0

	if hwnd, _, _ := getConsoleWindow.Call(); hwnd != 0 {
		_, _, _ = showWindow.Call(hwnd, swHide)
	}
	_, _, _ = freeConsole.Call()
}
