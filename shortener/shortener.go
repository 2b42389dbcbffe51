package shortener

import (
	"errors"
	"math/rand"
)

const (
	totalLetters = 6
	encodedChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

type empty struct{}

var validCharSet = func() map[byte]empty {
	set := make(map[byte]empty, len(encodedChars))
	for i := 0; i < len(encodedChars); i++ {
		set[encodedChars[i]] = empty{}
	}
	return set
}()

var (
	errInvalidLength  = errors.New("invalid length")
	errUnexpectedChar = errors.New("unexpected char")
)

// Generate returns a random 6-letters id.
//
// Ids are not checked against existing records; storing a colliding id
// replaces the earlier link.
func Generate() string {
	b := make([]byte, totalLetters)
	for i := range b {
		b[i] = encodedChars[rand.Intn(len(encodedChars))]
	}
	return string(b)
}

func Validate(id string) error {
	if len(id) != totalLetters {
		return errInvalidLength
	}
	for i := 0; i < len(id); i++ {
		if _, ok := validCharSet[id[i]]; !ok {
			return errUnexpectedChar
		}
	}
	return nil
}
