package jwt

import (
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v4"
	"kitchen-copilot/domain"
	"time"
)

type (
	JWTService interface {
		// GenerateTokenUser signs an identity token the same way the identity
		// provider does. It backs local development and tests.
		GenerateTokenUser(userID string, name string, duration time.Duration) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetIdentityByToken(token string) (Identity, error)
	}

	Identity struct {
		UserID string
		Name   string
	}

	jwtUserClaim struct {
		UserID string `json:"user_id,omitempty"`
		Name   string `json:"name,omitempty"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

// NewJWTService verifies HS256 tokens signed with secretKey. When issuer is
// set, tokens from any other issuer are rejected.
func NewJWTService(secretKey string, issuer string) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

func (j *jwtService) GenerateTokenUser(userID string, name string, duration time.Duration) (string, error) {
	claims := jwtUserClaim{
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetIdentityByToken(token string) (Identity, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, domain.ErrTokenExpired
		}
		return Identity{}, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return Identity{}, domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtUserClaim)
	if j.issuer != "" && !claims.VerifyIssuer(j.issuer, true) {
		return Identity{}, domain.ErrTokenInvalid
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return Identity{}, domain.ErrTokenInvalid
	}

	return Identity{UserID: userID, Name: claims.Name}, nil
}
