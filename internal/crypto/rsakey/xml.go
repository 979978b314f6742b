// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package rsakey

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"math/big"
)

// Serialized keys use the RSA key-exchange XML layout (the format emitted by
// .NET's RSA.ToXmlString): an <RSAKeyValue> element wrapping base64-encoded
// big-endian integers. The public form carries Modulus and Exponent only;
// the private form adds the two primes, the CRT parameters and the private
// exponent D. Field order below is the order consumers of that format expect.
type rsaKeyValue struct {
	XMLName  xml.Name `xml:"RSAKeyValue"`
	Modulus  string   `xml:"Modulus"`
	Exponent string   `xml:"Exponent"`
	P        string   `xml:"P,omitempty"`
	Q        string   `xml:"Q,omitempty"`
	DP       string   `xml:"DP,omitempty"`
	DQ       string   `xml:"DQ,omitempty"`
	InverseQ string   `xml:"InverseQ,omitempty"`
	D        string   `xml:"D,omitempty"`
}

// MarshalPublicKey serializes the public half of a keypair.
func MarshalPublicKey(pub *rsa.PublicKey) (string, error) {
	if pub == nil || pub.N == nil {
		return "", errors.New("nil public key")
	}
	out, err := xml.Marshal(rsaKeyValue{
		Modulus:  encodeInt(pub.N),
		Exponent: encodeInt(big.NewInt(int64(pub.E))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize public key: %w", err)
	}
	return string(out), nil
}

// MarshalPrivateKey serializes the full keypair, private parameters included.
// CRT values are recomputed so the export is complete even for keys built
// from (N, E, D, P, Q) alone.
func MarshalPrivateKey(key *rsa.PrivateKey) (string, error) {
	if key == nil || key.N == nil || key.D == nil {
		return "", errors.New("nil private key")
	}
	if len(key.Primes) < 2 {
		return "", errors.New("private key is missing prime factors")
	}
	key.Precompute()
	out, err := xml.Marshal(rsaKeyValue{
		Modulus:  encodeInt(key.N),
		Exponent: encodeInt(big.NewInt(int64(key.E))),
		P:        encodeInt(key.Primes[0]),
		Q:        encodeInt(key.Primes[1]),
		DP:       encodeInt(key.Precomputed.Dp),
		DQ:       encodeInt(key.Precomputed.Dq),
		InverseQ: encodeInt(key.Precomputed.Qinv),
		D:        encodeInt(key.D),
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize private key: %w", err)
	}
	return string(out), nil
}

// ParsePublicKey reconstructs the public key from key-exchange text. Private
// exports are accepted too since they are a superset of the public form.
func ParsePublicKey(keyText string) (*rsa.PublicKey, error) {
	v, err := decodeKeyValue(keyText)
	if err != nil {
		return nil, err
	}
	return publicFromValue(v)
}

// ParsePrivateKey reconstructs the full private key from key-exchange text
// and validates it. Text carrying only the public fields is rejected.
func ParsePrivateKey(keyText string) (*rsa.PrivateKey, error) {
	v, err := decodeKeyValue(keyText)
	if err != nil {
		return nil, err
	}
	if v.P == "" || v.Q == "" || v.D == "" {
		return nil, errors.New("key text does not contain a private key")
	}

	pub, err := publicFromValue(v)
	if err != nil {
		return nil, err
	}
	d, err := decodeInt(v.D, "D")
	if err != nil {
		return nil, err
	}
	p, err := decodeInt(v.P, "P")
	if err != nil {
		return nil, err
	}
	q, err := decodeInt(v.Q, "Q")
	if err != nil {
		return nil, err
	}

	key := &rsa.PrivateKey{
		PublicKey: *pub,
		D:         d,
		Primes:    []*big.Int{p, q},
	}
	key.Precompute()
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("inconsistent private key: %w", err)
	}
	return key, nil
}

func decodeKeyValue(keyText string) (*rsaKeyValue, error) {
	var v rsaKeyValue
	if err := xml.Unmarshal([]byte(keyText), &v); err != nil {
		return nil, fmt.Errorf("invalid key text: %w", err)
	}
	return &v, nil
}

func publicFromValue(v *rsaKeyValue) (*rsa.PublicKey, error) {
	if v.Modulus == "" || v.Exponent == "" {
		return nil, errors.New("key text is missing modulus or exponent")
	}
	n, err := decodeInt(v.Modulus, "Modulus")
	if err != nil {
		return nil, err
	}
	e, err := decodeInt(v.Exponent, "Exponent")
	if err != nil {
		return nil, err
	}
	if !e.IsInt64() || e.Int64() <= 1 || e.Int64() > math.MaxInt32 {
		return nil, errors.New("public exponent out of range")
	}
	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}

func encodeInt(i *big.Int) string {
	return base64.StdEncoding.EncodeToString(i.Bytes())
}

func decodeInt(s, field string) (*big.Int, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", field, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty %s value", field)
	}
	return new(big.Int).SetBytes(raw), nil
}
