package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPAddr string `envconfig:"WARUNG_HTTP_ADDR" default:":9020"`

	DBDSN string `envconfig:"DB_DSN"`

	MQTTBrokerURL   string `envconfig:"MQTT_BROKER_URL" default:"tcp://localhost:1883"`
	MQTTClientID    string `envconfig:"WARUNG_MQTT_CLIENT_ID" default:"warung-bot"`
	MQTTUsername    string `envconfig:"MQTT_USERNAME"`
	MQTTPassword    string `envconfig:"MQTT_PASSWORD"`
	MQTTTopicPrefix string `envconfig:"MQTT_TOPIC_PREFIX" default:"warung"`

	// AIServiceURL empty disables the external intent service entirely.
	AIServiceURL string        `envconfig:"AI_SERVICE_URL"`
	AITimeout    time.Duration `envconfig:"AI_TIMEOUT" default:"3s"`

	SheetsID        string `envconfig:"SHEETS_ID"`
	SheetsRange     string `envconfig:"SHEETS_RANGE" default:"Menu!A2:C"`
	CredentialsPath string `envconfig:"GOOGLE_CREDENTIALS_PATH" default:"secrets/credentials.json"`

	SyncInterval time.Duration `envconfig:"SYNC_INTERVAL" default:"5m"`

	// OwnerIDs is a comma-separated list of chat ids with the operator role.
	OwnerIDs []string `envconfig:"OWNER_IDS"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	if cfg.DBDSN == "" {
		return Config{}, fmt.Errorf("DB_DSN is required")
	}
	if cfg.SheetsID == "" {
		return Config{}, fmt.Errorf("SHEETS_ID is required")
	}

	return cfg, nil
}
