package config

import (
	"os"
	"testing"
	"time"
)

func TestGetEnvWithDefault(t *testing.T) {
	const key = "TEST_APP_PORT"

	// 环境变量未设置时，应该返回默认值
	_ = os.Unsetenv(key)
	if got := getEnv(key, "9000"); got != "9000" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "9000")
	}

	// 环境变量设置后，应优先返回环境变量
	if err := os.Setenv(key, "8080"); err != nil {
		t.Fatalf("Setenv error: %v", err)
	}
	defer os.Unsetenv(key)
	if got := getEnv(key, "9000"); got != "8080" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "8080")
	}
}

func TestGetDurationFallsBackOnGarbage(t *testing.T) {
	const key = "TEST_CACHE_TTL"

	_ = os.Setenv(key, "not-a-duration")
	defer os.Unsetenv(key)
	if got := getDuration(key, 5*time.Minute); got != 5*time.Minute {
		t.Fatalf("getDuration garbage = %s, want default 5m", got)
	}

	_ = os.Setenv(key, "90s")
	if got := getDuration(key, 5*time.Minute); got != 90*time.Second {
		t.Fatalf("getDuration = %s, want 90s", got)
	}

	// 非正值同样回退默认
	_ = os.Setenv(key, "-1m")
	if got := getDuration(key, 5*time.Minute); got != 5*time.Minute {
		t.Fatalf("getDuration negative = %s, want default", got)
	}
}

func TestLoadReadsAuthAndTTL(t *testing.T) {
	_ = os.Setenv("APP_PORT", "1234")
	_ = os.Setenv("CACHE_TTL", "2m")
	_ = os.Setenv("APP_BASIC_USER", "user")
	_ = os.Setenv("APP_BASIC_PASS", "pass")
	defer func() {
		_ = os.Unsetenv("APP_PORT")
		_ = os.Unsetenv("CACHE_TTL")
		_ = os.Unsetenv("APP_BASIC_USER")
		_ = os.Unsetenv("APP_BASIC_PASS")
	}()

	cfg := Load()
	if cfg.AppPort != "1234" {
		t.Fatalf("AppPort = %q, want %q", cfg.AppPort, "1234")
	}
	if cfg.CacheTTL != 2*time.Minute {
		t.Fatalf("CacheTTL = %s, want 2m", cfg.CacheTTL)
	}
	if cfg.BasicAuthUser != "user" || cfg.BasicAuthPass != "pass" {
		t.Fatalf("BasicAuthUser/Pass not loaded correctly: %+v", cfg)
	}
}
