//go:build !unix

package countdown

import "errors"

var errNoFIFO = errors.New("named pipes are not supported on this platform")

func ensureFIFO(string) error { return errNoFIFO }

func writeFIFO(string, string) error { return errNoFIFO }
