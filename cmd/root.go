package cmd

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "consultmatch"
)

type Config struct {
	Backend   *BackendConfig  `mapstructure:"backend"`
	Identity  *IdentityConfig `mapstructure:"identity"`
	AI        *AIConfig       `mapstructure:"ai"`
	TokenFile string          `mapstructure:"token-file"`
	UserAgent string          `mapstructure:"user-agent"`
}

type BackendConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

type IdentityConfig struct {
	URL   string `mapstructure:"url" validate:"omitempty,url"`
	Email string `mapstructure:"email" validate:"omitempty,email"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=ollama gemini"`
	Ollama   *OllamaConfig `mapstructure:"ollama"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type OllamaConfig struct {
	URL   string `mapstructure:"url" validate:"omitempty,url"`
	Model string `mapstructure:"model"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "consultmatch is a cli for staffing consulting projects with AI-assisted recommendations",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("token-file", "CONSULTMATCH_TOKEN_FILE"); err != nil {
		log.Fatalf("binding CONSULTMATCH_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is consultmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// A .env file may carry the token-file path and the gemini key
	// file path. Absence is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, err
	}

	return config, nil
}
