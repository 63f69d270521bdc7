package config

type LiveKitConfig struct {
	APIKey        string `mapstructure:"api_key"`
	APISecret     string `mapstructure:"api_secret"`
	URL           string `mapstructure:"url"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
}

type Config struct {
	Port         int           `mapstructure:"port"`
	LogLevel     string        `mapstructure:"log_level"`
	LogFile      string        `mapstructure:"log_file"`
	NATSURL      string        `mapstructure:"nats_url"`
	RedisURL     string        `mapstructure:"redis_url"`
	DatabasePath string        `mapstructure:"database_path"`
	UploadDir    string        `mapstructure:"upload_dir"`
	LiveKit      LiveKitConfig `mapstructure:"livekit"`
}
