package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const playerCookie = "player_token"

type playerClaims struct {
	PlayerID string `json:"pid"`
	jwt.RegisteredClaims
}

// playerTokens signs and verifies the cookie that identifies a browser.
type playerTokens struct {
	secret []byte
	ttl    time.Duration
}

func (pt playerTokens) issue(playerID string) (string, error) {
	now := time.Now()
	claims := &playerClaims{
		PlayerID: playerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(pt.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(pt.secret)
}

func (pt playerTokens) parse(s string) (string, error) {
	claims := &playerClaims{}
	token, err := jwt.ParseWithClaims(s, claims, func(t *jwt.Token) (any, error) {
		return pt.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.PlayerID == "" {
		return "", errors.New("invalid player token")
	}
	return claims.PlayerID, nil
}

// playerID returns the verified player id from the request cookie, if any.
func (pt playerTokens) playerID(r *http.Request) (string, bool) {
	c, err := r.Cookie(playerCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	pid, err := pt.parse(c.Value)
	if err != nil {
		return "", false
	}
	return pid, true
}

// ensurePlayer returns the caller's player id, issuing a fresh signed cookie
// when the request has none or it does not verify.
func (pt playerTokens) ensurePlayer(w http.ResponseWriter, r *http.Request) (string, error) {
	if pid, ok := pt.playerID(r); ok {
		return pid, nil
	}
	pid := uuid.NewString()
	tok, err := pt.issue(pid)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookie,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(pt.ttl / time.Second),
	})
	return pid, nil
}
