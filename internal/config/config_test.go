package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sandarbhasthana/pms-app-sub005/internal/opday"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LISTEN_ADDR", "DATABASE_URL", "DEFAULT_TIMEZONE", "LOG_LEVEL", "LOG_FORMAT",
		"AUDIT_POLL_SECONDS", "COOKIE_HASH_KEY", "COOKIE_BLOCK_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, "UTC", cfg.DefaultTimezone)
	require.Equal(t, time.Minute, cfg.AuditInterval)
	require.Equal(t, "text", cfg.LogFormat)
	require.Error(t, cfg.RequireCookieKeys())
}

func TestFromEnv_InvalidDefaultTimezone(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_TIMEZONE", "Not/AZone")
	_, err := FromEnv()
	require.ErrorIs(t, err, opday.ErrInvalidTimezone)
}

func TestFromEnv_InvalidPollInterval(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUDIT_POLL_SECONDS", "0")
	_, err := FromEnv()
	require.Error(t, err)
}

func TestFromEnv_CookieKeysFromValueAndFile(t *testing.T) {
	clearEnv(t)
	hash := make([]byte, 32)
	block := make([]byte, 16)
	for i := range hash {
		hash[i] = byte(i)
	}

	path := filepath.Join(t.TempDir(), "block.key")
	require.NoError(t, os.WriteFile(path, []byte(base64.StdEncoding.EncodeToString(block)+"\n"), 0o600))

	t.Setenv("COOKIE_HASH_KEY", base64.RawStdEncoding.EncodeToString(hash))
	t.Setenv("COOKIE_BLOCK_KEY", path)

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, hash, cfg.CookieHashKey)
	require.Equal(t, block, cfg.CookieBlockKey)
	require.NoError(t, cfg.RequireCookieKeys())
}
