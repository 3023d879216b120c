package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Domain prefixes for value hashes. The version suffix allows the
// encoding to change without colliding with old hashes.
const (
	DomainLexeme   = "lexweb/lexeme/v1"
	DomainRelation = "lexweb/relation/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + fields...), each field
// length-prefixed so adjacent fields cannot run together.
func hashWithDomain(domain string, fields ...string) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	for _, f := range fields {
		h.Write([]byte(strconv.Itoa(len(f))))
		h.Write([]byte{':'})
		h.Write([]byte(f))
	}
	return hex.EncodeToString(h.Sum(nil))
}
