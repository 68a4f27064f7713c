package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Feed source selectors.
const (
	FeedNWS   = "nws"
	FeedKafka = "kafka"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Location the sign reports on.
	Latitude  float64
	Longitude float64
	Region    string

	// Alert evaluation and animation.
	PollInterval    time.Duration
	UpdateInterval  time.Duration
	OneShotCooldown time.Duration
	ScrollSpeed     float64
	LoopGap         int
	DisplayWidth    int
	DisplayHeight   int
	DisplayFPS      int
	FrameDir        string // write frames as PNGs here; empty discards them
	ShowWhenClear   bool

	// Feed selection.
	FeedSource     string
	FetchTimeout   time.Duration
	SnapshotMaxAge time.Duration
	KafkaBrokers   []string
	KafkaTopic     string
	KafkaGroupID   string

	// Filesystem surfaces.
	InjectFile string
	SignalFile string
	CacheDir   string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	lat, err := parseFloat("LATITUDE", 0)
	if err != nil {
		return nil, err
	}
	lon, err := parseFloat("LONGITUDE", 0)
	if err != nil {
		return nil, err
	}

	pollInterval, err := parseDuration("POLL_INTERVAL", 120*time.Second)
	if err != nil {
		return nil, err
	}
	updateInterval, err := parseDuration("UPDATE_INTERVAL", 2*time.Second)
	if err != nil {
		return nil, err
	}
	cooldown, err := parseDuration("ONESHOT_COOLDOWN", 1800*time.Second)
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	snapshotMaxAge, err := parseDuration("SNAPSHOT_MAX_AGE", 6*time.Hour)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	scrollSpeed, err := parseFloat("SCROLL_SPEED", 40)
	if err != nil {
		return nil, err
	}
	loopGap, err := parseInt("LOOP_GAP", 80)
	if err != nil {
		return nil, err
	}
	width, err := parseInt("DISPLAY_WIDTH", 192)
	if err != nil {
		return nil, err
	}
	height, err := parseInt("DISPLAY_HEIGHT", 32)
	if err != nil {
		return nil, err
	}
	fps, err := parseInt("DISPLAY_FPS", 125)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Latitude:  lat,
		Longitude: lon,
		Region:    envOrDefault("REGION_LABEL", ""),

		PollInterval:    pollInterval,
		UpdateInterval:  updateInterval,
		OneShotCooldown: cooldown,
		ScrollSpeed:     scrollSpeed,
		LoopGap:         loopGap,
		DisplayWidth:    width,
		DisplayHeight:   height,
		DisplayFPS:      fps,
		FrameDir:        envOrDefault("FRAME_DIR", ""),
		ShowWhenClear:   os.Getenv("SHOW_WHEN_CLEAR") == "true",

		FeedSource:     envOrDefault("FEED_SOURCE", FeedNWS),
		FetchTimeout:   fetchTimeout,
		SnapshotMaxAge: snapshotMaxAge,
		KafkaBrokers:   parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:     envOrDefault("KAFKA_TOPIC", "weather-alerts"),
		KafkaGroupID:   envOrDefault("KAFKA_GROUP_ID", "matrix-sign"),

		InjectFile: envOrDefault("INJECT_FILE", "/tmp/weather_alert_test.json"),
		SignalFile: envOrDefault("SIGNAL_FILE", "/tmp/ledmatrix_weather_alert_active"),
		CacheDir:   envOrDefault("CACHE_DIR", "/var/cache/ledmatrix/weather-alerts"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return errors.New("LATITUDE must be between -90 and 90")
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return errors.New("LONGITUDE must be between -180 and 180")
	}
	if c.ScrollSpeed <= 0 {
		return errors.New("SCROLL_SPEED must be positive")
	}
	if c.LoopGap < 0 {
		return errors.New("LOOP_GAP must not be negative")
	}
	if c.DisplayWidth <= 0 || c.DisplayHeight <= 0 {
		return errors.New("DISPLAY_WIDTH and DISPLAY_HEIGHT must be positive")
	}
	if c.DisplayFPS <= 0 {
		return errors.New("DISPLAY_FPS must be positive")
	}
	switch c.FeedSource {
	case FeedNWS:
	case FeedKafka:
		if len(c.KafkaBrokers) == 0 {
			return errors.New("KAFKA_BROKERS is required when FEED_SOURCE is kafka")
		}
		if c.KafkaTopic == "" {
			return errors.New("KAFKA_TOPIC is required when FEED_SOURCE is kafka")
		}
	default:
		return fmt.Errorf("FEED_SOURCE must be %q or %q, got %q", FeedNWS, FeedKafka, c.FeedSource)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parseFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return f, nil
}
