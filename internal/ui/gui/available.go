//go:build !headless

package gui

// Available reports whether this binary was built with GUI support.
func Available() bool { return true }
