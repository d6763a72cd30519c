package types

import (
	"fmt"
	"net/url"
	"time"
)

const (
	DefaultAPIURL   = "http://localhost:8080/api/employees"
	DefaultLogLevel = "warn"

	ThemeLight = "light"
	ThemeDark  = "dark"

	NotifyLog   = "log"
	NotifySNS   = "sns"
	NotifyRedis = "redis"

	DefaultRedisChannel = "empdir:notifications"
	DefaultRedisHistory = 50
)

// Config drives the client. It is read from a YAML file, then overridden by
// environment variables and finally by command line flags.
// APIURL is the collection endpoint; single records live at APIURL/{id}.
// Timeout is a Go duration string applied per request; empty or "0" means no timeout.
// Notify selects where notifications go in addition to the terminal.
type Config struct {
	APIURL   string       `yaml:"api_url" json:"api_url"`
	Timeout  string       `yaml:"timeout" json:"timeout"`
	LogLevel string       `yaml:"log_level" json:"log_level"`
	Theme    string       `yaml:"theme" json:"theme"`
	Notify   NotifyConfig `yaml:"notify" json:"notify"`
}

// NotifyConfig selects the remote notification sink.
// Backend is one of "log" (terminal only), "sns" or "redis".
type NotifyConfig struct {
	Backend      string `yaml:"backend" json:"backend"`
	SNSTopicArn  string `yaml:"sns_topic_arn" json:"sns_topic_arn"`
	RedisChannel string `yaml:"redis_channel" json:"redis_channel"`
	// RedisHistory caps the list of recent notifications kept next to the channel. 0 disables the list.
	RedisHistory int `yaml:"redis_history" json:"redis_history"`
}

func DefaultConfig() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		LogLevel: DefaultLogLevel,
		Notify: NotifyConfig{
			Backend:      NotifyLog,
			RedisChannel: DefaultRedisChannel,
			RedisHistory: DefaultRedisHistory,
		},
	}
}

// RequestTimeout parses Timeout.
func (c Config) RequestTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, Err(ErrInvalidConfig, err, "timeout %q", c.Timeout)
	}
	return d, nil
}

func (c Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("%w: api_url is required", ErrInvalidConfig)
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api_url must be an absolute URL, got %q", ErrInvalidConfig, c.APIURL)
	}
	d, err := c.RequestTimeout()
	if err != nil {
		return err
	}
	if d < 0 {
		return fmt.Errorf("%w: timeout must be non-negative", ErrInvalidConfig)
	}
	switch c.Theme {
	case "", ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("%w: theme must be %q or %q", ErrInvalidConfig, ThemeLight, ThemeDark)
	}
	switch c.Notify.Backend {
	case "", NotifyLog, NotifyRedis:
	case NotifySNS:
		if c.Notify.SNSTopicArn == "" {
			return fmt.Errorf("%w: notify.sns_topic_arn is required for the sns backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: %w: unknown notify backend %q", ErrInvalidConfig, ErrInvalidBackend, c.Notify.Backend)
	}
	if c.Notify.RedisHistory < 0 {
		return fmt.Errorf("%w: notify.redis_history must be non-negative", ErrInvalidConfig)
	}
	return nil
}
