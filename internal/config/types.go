package config

// ConfigData selects where and how the note collection is stored.
type ConfigData struct {
	Dir       string `mapstructure:"dir"`
	Key       string `mapstructure:"key"`
	Format    string `mapstructure:"format"`
	Ephemeral bool   `mapstructure:"ephemeral"`
}

// ConfigLogger holds logging settings.
type ConfigLogger struct {
	Level string `mapstructure:"level"`
}

// ConfigEvents holds subscriber settings.
type ConfigEvents struct {
	Buffer int `mapstructure:"buffer"`
}

// Config is the root configuration of the jot CLI.
type Config struct {
	Data   ConfigData   `mapstructure:"data"`
	Logger ConfigLogger `mapstructure:"logger"`
	Events ConfigEvents `mapstructure:"events"`
}
