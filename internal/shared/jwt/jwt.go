package jwt

import (
	"errors"
	"os"
	"time"

	jw "github.com/golang-jwt/jwt/v5"
)

func secret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("replace-this-with-a-strong-secret")
}

// Make issues an HS256 token carrying the user id and an admin flag.
func Make(userID string, admin bool) (string, error) {
	claims := jw.MapClaims{
		"sub": userID,
		"adm": admin,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	return jw.NewWithClaims(jw.SigningMethodHS256, claims).SignedString(secret())
}

func Parse(tok string) (string, bool, error) {
	t, err := jw.Parse(tok, func(t *jw.Token) (any, error) { return secret(), nil })
	if err != nil || !t.Valid {
		return "", false, errors.New("invalid token")
	}
	mc, ok := t.Claims.(jw.MapClaims)
	if !ok {
		return "", false, errors.New("bad claims")
	}
	uid, _ := mc["sub"].(string)
	adm, _ := mc["adm"].(bool)
	if uid == "" {
		return "", false, errors.New("missing subject")
	}
	return uid, adm, nil
}
