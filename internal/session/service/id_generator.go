// Package service provides session id generation.
package service

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/allisson/soulbound/internal/identity"
)

const entropySize = 32

// IDParams are the inputs mixed into a session id.
type IDParams struct {
	Issuer          string
	TemplateID      int64
	MaxMints        int64
	DurationSeconds int64
	Nonce           int64
	Timestamp       time.Time
}

// IDGenerator derives session ids.
type IDGenerator interface {
	Generate(params IDParams) (string, error)
}

// KeccakIDGenerator hashes the session parameters, a monotonically increasing nonce and fresh
// random entropy with Keccak-256. Ids are 0x followed by 64 lowercase hex digits.
type KeccakIDGenerator struct {
	random io.Reader
}

// NewKeccakIDGenerator creates a KeccakIDGenerator reading entropy from crypto/rand.
func NewKeccakIDGenerator() *KeccakIDGenerator {
	return &KeccakIDGenerator{random: rand.Reader}
}

// Generate returns a new session id for params.
func (g *KeccakIDGenerator) Generate(params IDParams) (string, error) {
	entropy := make([]byte, entropySize)
	if _, err := io.ReadFull(g.random, entropy); err != nil {
		return "", fmt.Errorf("failed to read session id entropy: %w", err)
	}

	h := sha3.NewLegacyKeccak256()
	h.Write(addressBytes(params.Issuer))

	var word [8]byte
	for _, v := range []int64{
		params.TemplateID,
		params.MaxMints,
		params.DurationSeconds,
		params.Nonce,
		params.Timestamp.UnixNano(),
	} {
		binary.BigEndian.PutUint64(word[:], uint64(v))
		h.Write(word[:])
	}
	h.Write(entropy)

	return "0x" + hex.EncodeToString(h.Sum(nil)), nil
}

// addressBytes decodes a 0x-prefixed address, falling back to its raw text.
func addressBytes(address string) []byte {
	address = identity.Normalize(address)
	if decoded, err := hex.DecodeString(address[min(2, len(address)):]); err == nil {
		return decoded
	}
	return []byte(address)
}
