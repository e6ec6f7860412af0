package utils

import (
	"crypto/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewConnectionID returns a unique identifier for a client connection.
func NewConnectionID() string {
	return uuid.NewString()
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewRoomCode returns a short human-shareable room code. The alphabet is
// uppercase alphanumeric minus easily confused characters (I/1, O/0).
func NewRoomCode(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		// Fallback to timestamp if crypto/rand is unavailable.
		ts := strconv.FormatInt(time.Now().UnixNano(), 36)
		for i := range buf {
			buf[i] = codeAlphabet[int(ts[i%len(ts)])%len(codeAlphabet)]
		}
		return string(buf)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf)
}
