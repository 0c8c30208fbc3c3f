package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionSubject is the capability an identity record must expose to
// take part in token-based sessions.
type SessionSubject interface {
	SessionID() uint
	SessionName() string
	SessionAdmin() bool
}

// JWTClaims are the claims carried by a session token.
type JWTClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// ResetClaims are the claims carried by a password reset token.
type ResetClaims struct {
	UserID uint `json:"reset_password"`
	jwt.RegisteredClaims
}

// JWTManager issues and validates tokens.
type JWTManager struct {
	secretKey   []byte
	algorithm   jwt.SigningMethod
	expireTime  time.Duration
	resetExpire time.Duration
}

// NewJWTManager creates a JWT manager.
func NewJWTManager(secretKey string, algorithm string, expireTime, resetExpire time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:   []byte(secretKey),
		algorithm:   jwt.GetSigningMethod(algorithm),
		expireTime:  expireTime,
		resetExpire: resetExpire,
	}
}

// GenerateToken issues a session token for the subject.
func (j *JWTManager) GenerateToken(subject SessionSubject) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID:   subject.SessionID(),
		Username: subject.SessionName(),
		IsAdmin:  subject.SessionAdmin(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expireTime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(j.algorithm, claims)
	return token.SignedString(j.secretKey)
}

// ValidateToken parses and verifies a session token.
func (j *JWTManager) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != j.algorithm {
			return nil, errors.New("unexpected signing method")
		}
		return j.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// GenerateResetToken issues a short-lived password reset token.
func (j *JWTManager) GenerateResetToken(userID uint) (string, error) {
	now := time.Now()
	claims := ResetClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.resetExpire)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(j.algorithm, claims)
	return token.SignedString(j.secretKey)
}

// ValidateResetToken verifies a reset token and returns the user id.
func (j *JWTManager) ValidateResetToken(tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ResetClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != j.algorithm {
			return nil, errors.New("unexpected signing method")
		}
		return j.secretKey, nil
	})

	if err != nil {
		return 0, err
	}

	if claims, ok := token.Claims.(*ResetClaims); ok && token.Valid && claims.UserID != 0 {
		return claims.UserID, nil
	}

	return 0, errors.New("invalid reset token")
}
