package config

// Config is the process-wide starcast client configuration.
type Config struct {
	Backend  BackendConfig
	Storage  StorageConfig
	Workflow WorkflowConfig
	Log      LogConfig
}

// BackendConfig locates the generation backend.
type BackendConfig struct {
	BaseURL string
	// TimeoutSeconds bounds each individual request. Full-pipeline calls
	// render audio and video server-side, so this is generous by default.
	TimeoutSeconds int
}

type StorageConfig struct {
	DataDir string
}

// WorkflowConfig tunes batch execution.
type WorkflowConfig struct {
	// Concurrency bounds how many batch items may be in flight at once.
	// 1 keeps item starts strictly serial.
	Concurrency int
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL:        "http://127.0.0.1:5000",
			TimeoutSeconds: 600,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Workflow: WorkflowConfig{
			Concurrency: 1,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the JSON file backend (under
// $XDG_CONFIG_HOME/starcast) with STARCAST_* environment variables
// overriding file values.
func Load() (Config, error) {
	return loadWith(newPlatformBackend())
}

func loadWith(b ConfigBackend) (Config, error) {
	cfg := defaults()
	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}
