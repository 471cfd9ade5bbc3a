package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTTL       = 30 * 24 * time.Hour
	sessionKeyPrefix = "gymtrack-session||"
	tokensSetKey     = "gymtrack-sessions"
	tokenLength      = 40
)

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

// session values are "<created at unix>|<user id>"
func encodeSession(userID string, createdAt time.Time) string {
	return strconv.FormatInt(createdAt.Unix(), 10) + "|" + userID
}

func decodeSession(raw string) (userID string, createdAt time.Time, err error) {
	unixStr, userID, found := strings.Cut(raw, "|")
	if !found || userID == "" {
		return "", time.Time{}, fmt.Errorf("malformed session value [%s]", raw)
	}
	createdAtUnix, err := strconv.ParseInt(unixStr, 10, 64)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("parse session created at: %w", err)
	}
	return userID, time.Unix(createdAtUnix, 0), nil
}
