package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"os"
	"strconv"
	"time"
)

// Tokens de acesso do Zenith: JWT HS256 assinado na mão, sem lib externa.
// O formato é o mínimo que o AuthRequired precisa verificar; quem quiser
// claims extras adiciona no map antes de assinar.

// getJWTSecret lê o segredo de assinatura (JWT_SECRET, com fallback para
// ZENITH_JWT_SECRET). "CHANGE_ME" só serve para dev local.
func getJWTSecret() string {
	secret := getenv("JWT_SECRET", "")
	if secret == "" {
		secret = getenv("ZENITH_JWT_SECRET", "")
	}
	if secret == "" {
		secret = "CHANGE_ME"
	}
	return secret
}

// accessTokenClaims monta o conjunto de claims dos tokens de acesso:
// sub + iat + exp, email quando houver. TTL vem de JWT_ACCESS_TTL_MINUTES
// (default 24h).
func accessTokenClaims(userID int64, email string, now time.Time) (map[string]any, time.Time) {
	ttl := time.Duration(getenvInt("JWT_ACCESS_TTL_MINUTES", 24*60)) * time.Minute
	exp := now.Add(ttl)

	claims := map[string]any{
		"sub": userID,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	if email != "" {
		claims["email"] = email
	}
	return claims, exp
}

// signHS256JWT monta header.payload.assinatura em base64url, HMAC-SHA256.
func signHS256JWT(secret string, claims map[string]any) (string, error) {
	headB, err := json.Marshal(map[string]any{"alg": "HS256", "typ": "JWT"})
	if err != nil {
		return "", err
	}
	payloadB, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	enc := base64.RawURLEncoding
	unsigned := enc.EncodeToString(headB) + "." + enc.EncodeToString(payloadB)

	h := hmac.New(sha256.New, []byte(secret))
	_, _ = h.Write([]byte(unsigned))
	return unsigned + "." + enc.EncodeToString(h.Sum(nil)), nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	s := getenv(k, "")
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
