package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/smart-ats/internal/analyzer"
)

const (
	app       = "smart-ats"
	envPrefix = "SMART_ATS"

	defaultTimeout = 2 * time.Minute
)

type Config struct {
	Endpoint  string        `mapstructure:"endpoint" validate:"required,url"`
	Backend   string        `mapstructure:"backend" validate:"oneof=http gemini"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`
	OutputDir string        `mapstructure:"output-dir"`
	UserAgent string        `mapstructure:"user-agent"`
	NoColor   bool          `mapstructure:"no-color"`
	Gemini    *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile      string  `mapstructure:"api-key-file"`
	Model           string  `mapstructure:"model"`
	Temperature     float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxOutputTokens int32   `mapstructure:"max-output-tokens" validate:"gte=0"`
	MaxLogLength    int     `mapstructure:"max-log-length" validate:"gte=0"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "smart-ats sends a resume and a job description to an ATS analysis service and shows the results",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "a config file (default is smart-ats.yaml in current directory)")
	flags.BoolP("debug", "d", false, "verbose/debug output")
	flags.BoolP("json", "j", false, "json format for logging")
	flags.String("endpoint", analyzer.DefaultEndpoint, "analysis service base url")
	flags.String("backend", "http", "analysis backend: http or gemini")
	flags.Duration("timeout", defaultTimeout, "timeout of a single analysis request, 0 disables it")
	flags.StringP("output-dir", "o", ".", "directory for exported files")
	flags.Bool("no-color", false, "disable colored output")

	for _, name := range []string{"debug", "json", "endpoint", "backend", "timeout", "output-dir", "no-color"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			log.Fatalf("binding %s flag: %v", name, err)
		}
	}

	viper.SetDefault("user-agent", "")
	viper.SetDefault("gemini.api-key-file", "")
	viper.SetDefault("gemini.model", "")
	viper.SetDefault("gemini.temperature", 0.2)
	viper.SetDefault("gemini.max-output-tokens", 0)
	viper.SetDefault("gemini.max-log-length", 0)

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}

func initConfig() {
	// .env is optional; it usually only carries GEMINI_API_KEY.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Without an explicit --config the file is optional.
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		return nil, errors.New("config is empty")
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Gemini == nil {
		config.Gemini = &GeminiConfig{}
	}
	config.Backend = strings.ToLower(strings.TrimSpace(config.Backend))

	if err := validator.New().Struct(config); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config value for %s: %v (rule %s)", fe.Namespace(), fe.Value(), fe.Tag())
		}
		return fmt.Errorf("validating config: %w", err)
	}

	return nil
}
