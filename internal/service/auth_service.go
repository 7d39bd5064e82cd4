package service

import (
	"context"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/marwan404/StudyHub/internal/errors"
	"github.com/marwan404/StudyHub/internal/model"
	"github.com/marwan404/StudyHub/internal/repository"
)

// OwnerSubject is the token subject issued to the single owner.
const OwnerSubject = "owner"

const minPassphraseLength = 6

// AuthService guards the API with a single owner passphrase. Until a
// passphrase is set up the API is open.
type AuthService struct {
	ownerRepo *repository.OwnerRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(ownerRepo *repository.OwnerRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		ownerRepo: ownerRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *AuthService) Setup(ctx context.Context, passphrase string) (*AuthResult, *apperrors.APIError) {
	if len(passphrase) < minPassphraseLength {
		return nil, apperrors.BadRequest("invalid_passphrase", "passphrase must be at least 6 characters")
	}

	_, err := s.ownerRepo.Get(ctx)
	if err == nil {
		return nil, apperrors.Conflict("owner_exists", "a passphrase is already set up", nil)
	}
	if err != repository.ErrNotFound {
		log.Printf("auth: get owner: %v", err)
		return nil, apperrors.Internal("failed to query owner")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("failed to secure passphrase")
	}

	owner := model.Owner{
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.ownerRepo.Create(ctx, &owner); err != nil {
		log.Printf("auth: create owner: %v", err)
		return nil, apperrors.Internal("failed to store passphrase")
	}

	return s.issueToken()
}

func (s *AuthService) Unlock(ctx context.Context, passphrase string) (*AuthResult, *apperrors.APIError) {
	if passphrase == "" {
		return nil, apperrors.BadRequest("invalid_passphrase", "passphrase is required")
	}

	owner, err := s.ownerRepo.Get(ctx)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("owner_not_found", "no passphrase has been set up")
	}
	if err != nil {
		log.Printf("auth: get owner: %v", err)
		return nil, apperrors.Internal("failed to query owner")
	}

	if bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(passphrase)) != nil {
		return nil, apperrors.Unauthorized("invalid passphrase")
	}

	return s.issueToken()
}

// OwnerConfigured reports whether requests must carry a token. A storage
// failure counts as configured so the API stays locked.
func (s *AuthService) OwnerConfigured(ctx context.Context) bool {
	_, err := s.ownerRepo.Get(ctx)
	if err == repository.ErrNotFound {
		return false
	}
	if err != nil {
		log.Printf("auth: get owner: %v", err)
	}
	return true
}

func (s *AuthService) ParseToken(tokenString string) (string, *apperrors.APIError) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.Unauthorized("invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", apperrors.Unauthorized("invalid token")
	}

	if claims.Subject != OwnerSubject {
		return "", apperrors.Unauthorized("invalid token subject")
	}

	return claims.Subject, nil
}

func (s *AuthService) issueToken() (*AuthResult, *apperrors.APIError) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   OwnerSubject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, apperrors.Internal("failed to sign token")
	}
	return &AuthResult{Token: signed, ExpiresAt: expiresAt}, nil
}
