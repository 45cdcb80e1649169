package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type FulfillmentConfig struct {
	Env           string `yaml:"env" env-default:"local"`
	HTTPServer    `yaml:"http_server"`
	FulfillmentDB `yaml:"fulfillment_db"`
	LogConfig     `yaml:"log_config"`
	KafkaService  `yaml:"kafka_service"`
	Injector      `yaml:"injector"`
	ProxyProvider `yaml:"proxy_provider"`
}

type HTTPServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"8080"`
}

type FulfillmentDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
	LogOutput string `yaml:"log_output" env-default:"stdout"`
}

type KafkaService struct {
	Brokers        []string `yaml:"brokers"`
	InjectionTopic string   `yaml:"injection_topic" env-default:"fulfillment.injections"`
	OrderTopic     string   `yaml:"order_topic" env-default:"fulfillment.orders"`
}

type Injector struct {
	ScriptPath      string        `yaml:"script_path"`
	TargetURL       string        `yaml:"target_url"`
	FollowUpURL     string        `yaml:"follow_up_url"`
	CallbackURL     string        `yaml:"callback_url"`
	TaskTimeout     time.Duration `yaml:"task_timeout" env-default:"5m"`
	BulkPacing      time.Duration `yaml:"bulk_pacing" env-default:"2s"`
	FollowUpTimeout time.Duration `yaml:"follow_up_timeout" env-default:"5m"`
}

type ProxyProvider struct {
	Server          string        `yaml:"server"`
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	UsernameBase    string        `yaml:"username_base"`
	Password        string        `yaml:"password"`
	ProbeURL        string        `yaml:"probe_url" env-default:"https://api.ipify.org?format=json"`
	ProbeTimeout    time.Duration `yaml:"probe_timeout" env-default:"15s"`
	HealthInterval  time.Duration `yaml:"health_interval" env-default:"10m"`
	HealthStaleness time.Duration `yaml:"health_staleness" env-default:"30m"`
}

func MustLoad() *FulfillmentConfig {
	configPath := os.Getenv("FULFILLMENT_CONFIG_PATH")
	if configPath == "" {
		log.Fatalf("FULFILLMENT_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	var cfg FulfillmentConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
