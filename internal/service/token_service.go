package service

import (
	"context"
	"fmt"

	"medicore/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// TokenService tracks which issued token IDs are still valid. A token that is
// missing from Redis is treated as revoked even if its signature verifies.
type TokenService interface {
	Store(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) error
	IsValid(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) (bool, error)
	Revoke(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}

type tokenService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	jwtService  *jwt.JWTService
}

func NewTokenService(redisClient *redis.Client, log *logrus.Logger, jwtService *jwt.JWTService) TokenService {
	return &tokenService{
		redisClient: redisClient,
		log:         log,
		jwtService:  jwtService,
	}
}

func tokenKey(tokenType jwt.TokenType, userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s_token:%s:%s", tokenType, userID.String(), tokenID)
}

func (s *tokenService) Store(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) error {
	expiry := s.jwtService.GetAccessExpiry()
	if tokenType == jwt.RefreshToken {
		expiry = s.jwtService.GetRefreshExpiry()
	}

	key := tokenKey(tokenType, userID, tokenID)
	if err := s.redisClient.Set(ctx, key, "valid", expiry).Err(); err != nil {
		s.log.Warnf("Failed to store %s token in Redis: %+v", tokenType, err)
		return err
	}
	return nil
}

func (s *tokenService) IsValid(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) (bool, error) {
	exists, err := s.redisClient.Exists(ctx, tokenKey(tokenType, userID, tokenID)).Result()
	if err != nil {
		s.log.Warnf("Failed to check token validity: %+v", err)
		return false, err
	}
	return exists > 0, nil
}

func (s *tokenService) Revoke(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) error {
	if err := s.redisClient.Del(ctx, tokenKey(tokenType, userID, tokenID)).Err(); err != nil {
		s.log.Warnf("Failed to revoke %s token: %+v", tokenType, err)
		return err
	}
	return nil
}

// RevokeAllForUser drops every token the user holds, e.g. after a role change
// or account deletion.
func (s *tokenService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	for _, tokenType := range []jwt.TokenType{jwt.AccessToken, jwt.RefreshToken} {
		pattern := fmt.Sprintf("%s_token:%s:*", tokenType, userID.String())
		keys, err := s.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			s.log.Warnf("Failed to scan %s token keys: %+v", tokenType, err)
			return err
		}
		if len(keys) > 0 {
			if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
				s.log.Warnf("Failed to delete %s token keys: %+v", tokenType, err)
				return err
			}
		}
	}
	return nil
}
