// Package seedkey exposes the SecurityAccess (SID 0x27) request/send
// surface. Cryptographic seed/key negotiation is explicitly out of scope
// for this client; both operations report NotImplemented rather than
// guessing at a target ECU's algorithm.
package seedkey

import (
	"udscan/client"
	"udscan/diag"
)

// RequestSeed would issue a RequestSeed (sub-function 0x01) under SID
// 0x27 for the given security level. The client parameter is accepted for
// interface parity with the other service routines but unused.
func RequestSeed(c *client.Client, level byte) ([]byte, error) {
	return nil, diag.NewNotImplemented("SecurityAccess.RequestSeed")
}

// SendKey would issue a SendKey (sub-function 0x02, i.e. level+1) under
// SID 0x27. No key derivation algorithm is implemented.
func SendKey(c *client.Client, level byte, key []byte) error {
	return diag.NewNotImplemented("SecurityAccess.SendKey")
}
