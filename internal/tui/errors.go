package tui

import "fmt"

// wrapErr prefixes err with what the app was doing when it failed.
func wrapErr(doing string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", doing, err)
}
