// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

// Package rsakey generates the RSA keypairs products use to sign and verify
// licenses, and serializes each half independently in the RSA key-exchange
// XML layout. The two exported strings are distinct artifacts: handing out
// the public text never reveals private-exponent material.
package rsakey // import "github.com/toeirei/licmaster/internal/crypto/rsakey"

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
)

// DefaultBits is the modulus size used by Generate.
const DefaultBits = 2048

// ErrKeyGeneration is returned when the underlying provider cannot produce
// or serialize a keypair. No partial key state is ever handed out.
var ErrKeyGeneration = errors.New("key generation failed")

// Generate creates a fresh RSA keypair with DefaultBits and returns both
// halves as independently usable key-exchange strings: the public export
// carries modulus and exponent only, the private export additionally carries
// the private exponent and CRT parameters. Every call draws fresh randomness.
func Generate() (publicKeyString, privateKeyString string, err error) {
	return GenerateBits(DefaultBits)
}

// GenerateBits is Generate with an explicit modulus size.
func GenerateBits(bits int) (publicKeyString, privateKeyString string, err error) {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}

	publicKeyString, err = MarshalPublicKey(&key.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	privateKeyString, err = MarshalPrivateKey(key)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return publicKeyString, privateKeyString, nil
}

// Generator is the package-level generator as an injectable value. It
// satisfies the keypair-generation contract of the project controller.
type Generator struct {
	// Bits overrides DefaultBits when non-zero.
	Bits int
}

// Generate produces a fresh keypair. See the package-level Generate.
func (g Generator) Generate() (publicKeyString, privateKeyString string, err error) {
	bits := g.Bits
	if bits == 0 {
		bits = DefaultBits
	}
	return GenerateBits(bits)
}
