package config

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

var configKeys = []string{
	"TELEGRAM_BOT_TOKEN", "STAFF_CHAT_ID", "GEMINI_API_KEY", "GEMINI_MODEL", "EDITOR_PASSWORD",
	"HTTP_ADDR", "LOG_LEVEL", "MENU_SEED_XLSX", "CONTACT_DELAY", "MAX_CONTEXT_SIZE", "ITEM_HEIGHT",
}

// cleanEnv bo'sh qiymat default ni bekor qiladi, shuning uchun o'chiriladi
func cleanEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	cleanEnv(t)

	cfg, err := Load(quietLogger())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 1500*time.Millisecond, cfg.ContactDelay)
	assert.Equal(t, 120.0, cfg.ItemHeight)
	assert.Equal(t, 20, cfg.MaxContextSize)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Error(t, cfg.RequireBot())
}

func TestLoad_FromEnv(t *testing.T) {
	cleanEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("STAFF_CHAT_ID", "-100200")
	t.Setenv("CONTACT_DELAY", "2s")
	t.Setenv("ITEM_HEIGHT", "96")

	cfg, err := Load(quietLogger())
	require.NoError(t, err)

	assert.Equal(t, int64(-100200), cfg.StaffChatID)
	assert.Equal(t, 2*time.Second, cfg.ContactDelay)
	assert.Equal(t, 96.0, cfg.ItemHeight)
	assert.NoError(t, cfg.RequireBot())
}

func TestLoad_Invalid(t *testing.T) {
	cleanEnv(t)

	t.Setenv("STAFF_CHAT_ID", "not-a-number")
	_, err := Load(quietLogger())
	assert.Error(t, err)

	require.NoError(t, os.Unsetenv("STAFF_CHAT_ID"))
	t.Setenv("ITEM_HEIGHT", "0")
	_, err = Load(quietLogger())
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("debug", true, &buf)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	assert.Equal(t, logrus.InfoLevel, NewLogger("loud", false, io.Discard).GetLevel())
}
