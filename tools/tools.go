package tools

import (
	"crypto/sha512"
	"encoding/hex"
	"math/rand"
	"time"
)

const tokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// EncryptTextSHA512 devolve o hash sha512 em hex.
// Usado no esquema de senha (duplo hash) e no hash dos refresh tokens.
func EncryptTextSHA512(text string) string {
	sum := sha512.Sum512([]byte(text))
	return hex.EncodeToString(sum[:])
}

// RandomString gera um código alfanumérico (refresh tokens).
func RandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = tokenCharset[seededRand.Intn(len(tokenCharset))]
	}
	return string(b)
}
