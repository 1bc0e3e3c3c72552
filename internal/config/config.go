package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// Payment rail (Stripe-Connect-like) API.
	RailBaseURL     string
	RailSecretKey   string
	RailTimeoutSecs int
	RailPageLimit   int

	// Retry policy for transient rail errors.
	RetryMaxAttempts  int
	RetryInitialMS    int
	RetryMaxBackoffMS int

	// Cost-basis recovery share of each payout, in basis points (7000 = 70%).
	PrincipalShareBps int64

	// 32-byte AES key, hex-encoded, for connected-account credentials.
	CredentialKeyHex string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "rbf"),
		MySQLUser: getenv("MYSQL_USER", "rbf"),
		MySQLPass: getenv("MYSQL_PASS", "rbf"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getenvInt("REDIS_DB", 0),
		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		RailBaseURL:     getenv("RAIL_BASE_URL", "https://api.rail.example.com/v1"),
		RailSecretKey:   getenv("RAIL_SECRET_KEY", ""),
		RailTimeoutSecs: getenvInt("RAIL_TIMEOUT_SECONDS", 10),
		RailPageLimit:   getenvInt("RAIL_PAGE_LIMIT", 100),

		RetryMaxAttempts:  getenvInt("RETRY_MAX_ATTEMPTS", 4),
		RetryInitialMS:    getenvInt("RETRY_INITIAL_MS", 250),
		RetryMaxBackoffMS: getenvInt("RETRY_MAX_BACKOFF_MS", 5000),

		PrincipalShareBps: int64(getenvInt("PRINCIPAL_SHARE_BPS", 7000)),

		CredentialKeyHex: getenv("CREDENTIAL_KEY_HEX", ""),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.RailSecretKey == "" {
		return errors.New("missing RAIL_SECRET_KEY")
	}
	if c.PrincipalShareBps < 0 || c.PrincipalShareBps > 10000 {
		return fmt.Errorf("PRINCIPAL_SHARE_BPS out of range: %d", c.PrincipalShareBps)
	}
	if key, err := hex.DecodeString(c.CredentialKeyHex); err != nil || len(key) != 32 {
		return errors.New("CREDENTIAL_KEY_HEX must be 64 hex chars (32 bytes)")
	}
	return nil
}

// CredentialKey returns the decoded AES key. Call Validate first.
func (c *Config) CredentialKey() []byte {
	key, _ := hex.DecodeString(c.CredentialKeyHex)
	return key
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
