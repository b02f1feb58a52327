package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromMap_Defaults(t *testing.T) {
	cfg := FromMap(map[string]string{})

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBType)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, 14*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "blogicum_session", cfg.SessionCookie)
	assert.Equal(t, 5, cfg.LoginPerMinute)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQuery)
	assert.Nil(t, cfg.AdminUsernames)
}

func TestFromMap_Overrides(t *testing.T) {
	cfg := FromMap(map[string]string{
		"PORT":                  "9000",
		"DB_TYPE":               "Memory",
		"RUN_MIGRATIONS":        "false",
		"ADMIN_USERNAMES":       " alice, ,bob ",
		"DB_REPLICA_URLS":       "postgres://r1,postgres://r2",
		"READ_TIMEOUT_SECONDS":  "3",
		"LOGIN_RATE_PER_MINUTE": "not-a-number",
	})

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "memory", cfg.DBType)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, []string{"alice", "bob"}, cfg.AdminUsernames)
	assert.Equal(t, []string{"postgres://r1", "postgres://r2"}, cfg.ReplicaURLs)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 5, cfg.LoginPerMinute)
}

func TestGetString_BlankFallsBack(t *testing.T) {
	c := map[string]string{"KEY": "   "}
	assert.Equal(t, "fallback", GetString(c, "KEY", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "KEY", "fallback"))
}
