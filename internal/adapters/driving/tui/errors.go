package tui

import "errors"

// ErrNoInput is returned when input ends before a redirect URL is entered.
var ErrNoInput = errors.New("tui: no redirect URL entered")
