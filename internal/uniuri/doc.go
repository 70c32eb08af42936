// Package uniuri generates random identifiers from crypto/rand, used for
// session ids and CSRF-free form nonces.
package uniuri
