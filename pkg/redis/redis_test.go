package redis

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestBlacklistKey(t *testing.T) {
	assert.Equal(t, "blacklist:0b7c", blacklistKey("0b7c"))
}

func TestTokenBlacklist_RevokeExpiredIsNoop(t *testing.T) {
	// nothing is sent to the server for an already expired token
	c := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer c.Close()

	b := NewTokenBlacklist(c)
	assert.NoError(t, b.Revoke(context.Background(), "jti", 0))
	assert.NoError(t, b.Revoke(context.Background(), "jti", -1))
}
