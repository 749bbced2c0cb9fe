package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Timing defaults. Polling only begins after GracePeriod so a normal AMQP
// reconnect does not flap the kiosk into fallback mode.
const (
	defaultGracePeriodSeconds      = 5
	defaultPollIntervalSeconds     = 3
	defaultReconnectDelaySeconds   = 5
	defaultInventoryRefreshSeconds = 30
)

type GlobalConfig struct {
	LogLevel         string
	Host             string
	Port             string
	DisplayToken     string
	BackendBaseURL   string
	KioskSecret      string
	LaneID           string
	RabbitHost       string
	RabbitPort       int32
	RabbitUser       string
	RabbitPass       string
	GracePeriod      time.Duration
	PollInterval     time.Duration
	ReconnectDelay   time.Duration
	InventoryRefresh time.Duration
}

func NewConfig() (GlobalConfig, error) {
	// Get RabbitMQ connection details from environment
	rabbitHost := os.Getenv("RABBITMQ_HOST")
	if rabbitHost == "" {
		return GlobalConfig{}, fmt.Errorf("RABBITMQ_HOST environment variable is required")
	}

	rabbitPortStr := os.Getenv("RABBITMQ_PORT")
	if rabbitPortStr == "" {
		return GlobalConfig{}, fmt.Errorf("RABBITMQ_PORT environment variable is required")
	}
	rabbitPort, err := strconv.ParseInt(rabbitPortStr, 10, 32)
	if err != nil {
		return GlobalConfig{}, fmt.Errorf("RABBITMQ_PORT must be a valid integer: %w", err)
	}

	rabbitUser := os.Getenv("RABBITMQ_USER")
	if rabbitUser == "" {
		return GlobalConfig{}, fmt.Errorf("RABBITMQ_USER environment variable is required")
	}

	rabbitPass := os.Getenv("RABBITMQ_PASS")
	if rabbitPass == "" {
		return GlobalConfig{}, fmt.Errorf("RABBITMQ_PASS environment variable is required")
	}

	// Set log level from environment
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		return GlobalConfig{}, fmt.Errorf("LOG_LEVEL environment variable is required")
	}

	backendBaseURL := os.Getenv("BACKEND_BASE_URL")
	if backendBaseURL == "" {
		return GlobalConfig{}, fmt.Errorf("BACKEND_BASE_URL environment variable is required")
	}

	kioskSecret := os.Getenv("KIOSK_SECRET")
	if kioskSecret == "" {
		return GlobalConfig{}, fmt.Errorf("KIOSK_SECRET environment variable is required")
	}

	laneID := os.Getenv("LANE_ID")
	if laneID == "" {
		return GlobalConfig{}, fmt.Errorf("LANE_ID environment variable is required")
	}

	displayToken := os.Getenv("DISPLAY_TOKEN")
	if displayToken == "" {
		return GlobalConfig{}, fmt.Errorf("DISPLAY_TOKEN environment variable is required")
	}

	host := os.Getenv("HOST")
	if host == "" {
		return GlobalConfig{}, fmt.Errorf("HOST environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		return GlobalConfig{}, fmt.Errorf("PORT environment variable is required")
	}

	gracePeriod, err := secondsFromEnv("POLL_GRACE_SECONDS", defaultGracePeriodSeconds)
	if err != nil {
		return GlobalConfig{}, err
	}
	pollInterval, err := secondsFromEnv("POLL_INTERVAL_SECONDS", defaultPollIntervalSeconds)
	if err != nil {
		return GlobalConfig{}, err
	}
	reconnectDelay, err := secondsFromEnv("RECONNECT_DELAY_SECONDS", defaultReconnectDelaySeconds)
	if err != nil {
		return GlobalConfig{}, err
	}
	inventoryRefresh, err := secondsFromEnv("INVENTORY_REFRESH_SECONDS", defaultInventoryRefreshSeconds)
	if err != nil {
		return GlobalConfig{}, err
	}

	return GlobalConfig{
		LogLevel:         logLevel,
		Host:             host,
		Port:             port,
		DisplayToken:     displayToken,
		BackendBaseURL:   backendBaseURL,
		KioskSecret:      kioskSecret,
		LaneID:           laneID,
		RabbitHost:       rabbitHost,
		RabbitPort:       int32(rabbitPort),
		RabbitUser:       rabbitUser,
		RabbitPass:       rabbitPass,
		GracePeriod:      gracePeriod,
		PollInterval:     pollInterval,
		ReconnectDelay:   reconnectDelay,
		InventoryRefresh: inventoryRefresh,
	}, nil
}

// AMQPURL builds the broker URL for the configured RabbitMQ instance.
func (c GlobalConfig) AMQPURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", c.RabbitUser, c.RabbitPass, c.RabbitHost, c.RabbitPort)
}

// ExchangeForLane returns the fanout exchange the backend publishes kiosk
// messages to for one lane.
func ExchangeForLane(laneID string) string {
	return fmt.Sprintf("lane.%s.kiosk", laneID)
}

func secondsFromEnv(name string, fallback int) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return time.Duration(fallback) * time.Second, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer of seconds", name)
	}
	return time.Duration(value) * time.Second, nil
}
