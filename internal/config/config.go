package config

import (
	"crypto/subtle"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultAdminPassword is the fallback admin secret. Running with it keeps
// the admin surface locked behind an error page until a real one is set.
const DefaultAdminPassword = "admin123"

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Admin     AdminConfig
	Player    PlayerConfig
	RateLimit RateLimitConfig
	Discord   DiscordConfig
}

type ServerConfig struct {
	Host           string
	Port           string
	Environment    string
	TrustedProxies []string
}

type DatabaseConfig struct {
	Path string
}

type AdminConfig struct {
	Password string
	// PasswordHash is an optional bcrypt hash. When set it takes precedence
	// over Password.
	PasswordHash string
	// IsDefaultPassword is true when no ADMIN_PASSWORD was configured.
	IsDefaultPassword bool
}

// PlayerConfig holds the display identity shown on every page.
type PlayerConfig struct {
	Name         string
	Server       string
	Datacenter   string
	BannerImage  string
	ProfileImage string
	Tagline      string
}

type RateLimitConfig struct {
	// Window is the minimum time between two accepted submissions from the
	// same client IP. Zero disables the cooldown.
	Window time.Duration
	// MaxAttemptsPerHour is the hard cap on submission attempts (accepted
	// or denied) per client IP per hour.
	MaxAttemptsPerHour int
}

type DiscordConfig struct {
	WebhookURL string
}

// Load reads configuration from the process environment. It is called once
// at startup; nothing else reads environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("HOST", "127.0.0.1"),
			Port:           getEnv("PORT", "8080"),
			Environment:    getEnv("ENVIRONMENT", "development"),
			TrustedProxies: splitList(os.Getenv("TRUSTED_PROXY_IPS")),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "feedback.db"),
		},
		Admin: AdminConfig{
			PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		},
		Player: PlayerConfig{
			Name:         getEnv("PLAYER_NAME", "Your Character"),
			Server:       getEnv("PLAYER_SERVER", "Server"),
			Datacenter:   getEnv("PLAYER_DATACENTER", "Datacenter"),
			BannerImage:  getEnv("BANNER_IMAGE", "/assets/banner.webp"),
			ProfileImage: getEnv("PROFILE_IMAGE", "/assets/profile.webp"),
			Tagline:      getEnv("TAGLINE", "Ran content with me? Let me know how I did!"),
		},
		Discord: DiscordConfig{
			WebhookURL: os.Getenv("DISCORD_WEBHOOK_URL"),
		},
	}

	if pass := os.Getenv("ADMIN_PASSWORD"); pass != "" {
		cfg.Admin.Password = pass
	} else {
		cfg.Admin.Password = DefaultAdminPassword
		cfg.Admin.IsDefaultPassword = cfg.Admin.PasswordHash == ""
	}

	minutes, err := getEnvInt("RATE_LIMIT_MINUTES", 30)
	if err != nil {
		return nil, err
	}
	if minutes < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MINUTES must not be negative, got %d", minutes)
	}
	cfg.RateLimit.Window = time.Duration(minutes) * time.Minute

	maxAttempts, err := getEnvInt("IP_RATE_LIMIT_MAX", 10)
	if err != nil {
		return nil, err
	}
	if maxAttempts < 1 {
		return nil, fmt.Errorf("IP_RATE_LIMIT_MAX must be at least 1, got %d", maxAttempts)
	}
	cfg.RateLimit.MaxAttemptsPerHour = maxAttempts

	return cfg, nil
}

// Verify checks a candidate admin password. A configured bcrypt hash wins
// over the plain password; plain comparison is constant-time.
func (a AdminConfig) Verify(password string) bool {
	if a.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(a.Password), []byte(password)) == 1
}

// Addr returns the host:port bind address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
