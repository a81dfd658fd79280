package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url" validate:"required"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
	Migrate  bool   `yaml:"migrate"`
}

type MongoConfig struct {
	Enabled    bool          `yaml:"enabled"`
	URI        string        `yaml:"uri"`
	Database   string        `yaml:"database"`
	Collection string        `yaml:"collection"`
	Timeout    time.Duration `yaml:"timeout"`
}

type RedisConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Addr         string        `yaml:"addr"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	HistoryLimit int           `yaml:"historyLimit"`
	HistoryTTL   time.Duration `yaml:"historyTTL"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LLMConfig struct {
	BaseURL     string        `yaml:"baseURL"`
	APIKey      string        `yaml:"apiKey"`
	Model       string        `yaml:"model" validate:"required"`
	MaxTokens   int           `yaml:"maxTokens"`
	Temperature float32       `yaml:"temperature"`
	TopP        float32       `yaml:"topP"`
	Timeout     time.Duration `yaml:"timeout"`
}

type MonitoringConfig struct {
	Dir string `yaml:"dir" validate:"required|unixPath"`
}

type TrainingConfig struct {
	ModelsDir    string        `yaml:"modelsDir" validate:"required|unixPath"`
	SnapshotPath string        `yaml:"snapshotPath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
	BufferSize   int           `yaml:"bufferSize"`
}

type MeditationConfig struct {
	ExercisesFile string `yaml:"exercisesFile"`
}

type Config struct {
	AppName    string
	Debug      bool
	Path       string
	WebServer  Server           `yaml:"webServer"`
	Logger     LoggerConfig     `yaml:"logger"`
	Database   DatabaseConfig   `yaml:"database"`
	Mongo      MongoConfig      `yaml:"mongo"`
	Redis      RedisConfig      `yaml:"redis"`
	Cache      CacheConfig      `yaml:"cache"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	LLM        LLMConfig        `yaml:"llm"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Training   TrainingConfig   `yaml:"training"`
	Meditation MeditationConfig `yaml:"meditation"`
}
