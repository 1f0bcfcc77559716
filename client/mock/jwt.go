package mock

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

var errTokenNotValid = errors.New("token is invalid or expired")

// createJWT creates a signed token for userID of the given type; caller holds the lock
func (b *Backend) createJWT(userID int, tokenType string, expiry time.Duration) (string, error) {
	b.tokenSeq++
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": b.Issuer,
		"sub": strconv.Itoa(userID),
		"exp": now.Add(expiry).Unix(),
		"iat": now.Unix(),
		"jti": strconv.Itoa(b.tokenSeq),
		"typ": tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(b.Secret)
}

// verifyJWT returns the user id of a valid token; caller holds the lock
func (b *Backend) verifyJWT(value, tokenType string) (int, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(value, claims, func(*jwt.Token) (interface{}, error) {
		return b.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(b.Issuer))
	if err != nil {
		return 0, errTokenNotValid
	}
	if typ, _ := claims["typ"].(string); typ != tokenType {
		return 0, errTokenNotValid
	}
	jti, _ := claims["jti"].(string)
	seq, err := strconv.Atoi(jti)
	if err != nil {
		return 0, errTokenNotValid
	}
	if tokenType == accessTokenType && seq <= b.expiredUpTo {
		return 0, errTokenNotValid
	}
	subject, err := claims.GetSubject()
	if err != nil {
		return 0, errTokenNotValid
	}
	userID, err := strconv.Atoi(subject)
	if err != nil {
		return 0, errTokenNotValid
	}
	if _, ok := b.accounts[userID]; !ok {
		return 0, errTokenNotValid
	}
	return userID, nil
}

// issueTokens creates an access and refresh pair; caller holds the lock
func (b *Backend) issueTokens(userID int) (map[string]any, error) {
	access, err := b.createJWT(userID, accessTokenType, b.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := b.createJWT(userID, refreshTokenType, b.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return map[string]any{"access": access, "refresh": refresh}, nil
}
