//go:build headless

package main

import (
	"fmt"
	"os"
)

func showAlreadyRunningDialog() {
	fmt.Fprintln(os.Stderr, "File Organizer is already running.")
}
