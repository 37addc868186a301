package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWT signs and verifies session tokens. A token carries the user uuid and
// has no expiry claim: validity is signature correctness plus presence in the
// user's token collection.
type JWT struct {
	Secret string
}

func New(secret string) *JWT {
	return &JWT{Secret: secret}
}

func (j *JWT) CreateToken(userUUID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uuid": userUUID,
		"iat":  time.Now().Unix(),
	})

	return token.SignedString([]byte(j.Secret))
}

// VerifyToken checks the signature and returns the embedded user uuid.
func (j *JWT) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(j.Secret), nil
	})

	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid access token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	userUUID, ok := claims["uuid"].(string)

	if !ok || userUUID == "" {
		return "", fmt.Errorf("token carries no user identity")
	}

	return userUUID, nil
}
