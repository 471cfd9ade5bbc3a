package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=auth

type usersRepo interface {
	Create(ctx context.Context, user User) error
	ByEmail(ctx context.Context, email string) (*User, error)
	ByID(ctx context.Context, id string) (*User, error)
}

type Service struct {
	users       usersRepo
	redisClient *redis.Client
	ttl         time.Duration
	// injectable for tests
	RandStringFunc func(n int) (string, error)
	NewIDFunc      func() string
}

func NewService(users usersRepo, ttl time.Duration, redisClient *redis.Client) *Service {
	return &Service{
		users:          users,
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
		NewIDFunc:      uuid.NewString,
	}
}

func (s *Service) Register(ctx context.Context, creds Credentials, now time.Time) (*Session, error) {
	creds = creds.Normalize()
	if err := creds.validate(true); err != nil {
		return nil, err
	}

	hash, err := pkg.HashPassword(creds.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		ID:           s.NewIDFunc(),
		Email:        creds.Email,
		Name:         creds.Name,
		CreatedAt:    now.UTC(),
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.startSession(ctx, user, now)
}

func (s *Service) Login(ctx context.Context, creds Credentials, now time.Time) (*Session, error) {
	creds = creds.Normalize()
	if err := creds.validate(false); err != nil {
		return nil, err
	}

	user, err := s.users.ByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrWrongCredentials
		}
		return nil, err
	}

	if !pkg.CheckPasswordHash(creds.Password, user.PasswordHash) {
		log.Tracef("failed login attempt for user: %s", user.ID)
		return nil, ErrWrongCredentials
	}

	return s.startSession(ctx, *user, now)
}

func (s *Service) Me(ctx context.Context, userID string) (*User, error) {
	return s.users.ByID(ctx, userID)
}

func (s *Service) startSession(ctx context.Context, user User, now time.Time) (*Session, error) {
	token, err := s.RandStringFunc(tokenLength)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	if err := s.redisClient.Set(ctx, sessionKey(token), encodeSession(user.ID, now), 0).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	if err := s.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return nil, fmt.Errorf("register session: %w", err)
	}

	return &Session{Token: token, User: user}, nil
}

// Logout removes the session behind token. It reports false when there was no such session.
func (s *Service) Logout(ctx context.Context, token string) (bool, error) {
	deleted, err := s.redisClient.Del(ctx, sessionKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return false, fmt.Errorf("unregister session: %w", err)
	}
	return deleted > 0, nil
}

// ScanAndClean runs through all sessions and removes the ones older than the TTL.
func (s *Service) ScanAndClean(ctx context.Context, now time.Time) {
	sessionTokens, err := s.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("auth service, scan and clean, get sessions: %s", err)
		return
	}

	if len(sessionTokens) == 0 {
		log.Debugln("auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		raw, err := s.redisClient.Get(ctx, sessionKey(token)).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// dangling token in the set
				toRemove = append(toRemove, token)
				continue
			}
			log.Errorf("auth service, scan and clean, get session: %s", err)
			continue
		}

		_, createdAt, err := decodeSession(raw)
		if err != nil || now.Sub(createdAt) > s.ttl {
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if err := s.redisClient.Del(ctx, sessionKey(token)).Err(); err != nil {
			log.Errorf("auth service, clean session: %s", err)
			continue
		}
		if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("auth service, unregister session: %s", err)
		}
	}
	log.Debugf("auth service, scan and clean removed %d sessions", len(toRemove))
}

// StartCleanup schedules ScanAndClean on spec (a cron expression such as "@every 8h").
// The returned func stops the schedule.
func (s *Service) StartCleanup(ctx context.Context, spec string) (func(), error) {
	c := cron.New()
	if err := c.AddFunc(spec, func() {
		s.ScanAndClean(ctx, time.Now())
	}); err != nil {
		return nil, fmt.Errorf("schedule session cleanup: %w", err)
	}
	c.Start()
	return c.Stop, nil
}
