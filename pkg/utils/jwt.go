package utils

import (
	"fmt"
	"time"

	"github.com/filemanager/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret         = []byte("change-me-in-production")
	jwtIssuer         = "filemanager"
	jwtExpirationDays = 15
)

// Claims is the payload of an identity token: subject (the account email) and
// a scopes claim carrying the account role.
type Claims struct {
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

func ConfigureJWT(secret, issuer string, expirationDays int) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if issuer != "" {
		jwtIssuer = issuer
	}
	if expirationDays > 0 {
		jwtExpirationDays = expirationDays
	}
}

func GenerateToken(user *models.User) (string, error) {
	return IssueToken(user.Email, []string{string(user.Role)})
}

func IssueToken(subject string, scopes []string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("token subject cannot be empty")
	}

	now := time.Now()
	claims := Claims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(jwtExpirationDays) * 24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateToken parses and verifies a token. The signature is checked before
// any claim, including expiry, is trusted; a forged expiry can never pass.
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token subject cannot be empty")
	}

	return claims, nil
}

// IsTokenValidFor reports whether the token verifies, is unexpired, and was
// issued for exactly the expected subject. It fails closed: any verification
// error means false.
func IsTokenValidFor(tokenString, expectedSubject string) bool {
	claims, err := ValidateToken(tokenString)
	if err != nil {
		return false
	}
	return claims.Subject == expectedSubject
}
