package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.elastic.co/apm"
	"go.elastic.co/apm/transport"

	"github.com/lloydmeta/esversions/internal/api/models/common"
	"github.com/lloydmeta/esversions/internal/config"
	cronVersion "github.com/lloydmeta/esversions/internal/infra/cron/version"
	"github.com/lloydmeta/esversions/internal/infra/server"
)

var (
	configFile string
	appConfig  config.App
	logFile    *os.File

	defaultConfigPaths = []string{
		".",
		"./config",
		"/app/config",
	}
	rootCmd = &cobra.Command{
		Use:   "esversions",
		Short: "esversions answers questions about ECMAScript versions.",
		Long:  `esversions knows which ECMAScript versions had been ratified by when, and serves that over HTTP`,
		Run: func(cmd *cobra.Command, args []string) {
			components, err := server.NewComponents(&appConfig)
			if err != nil {
				log.Fatal().Err(err).Send()
			} else {
				components.Run()
			}
		},
	}
)

// Executes the root command, which is to run the server
func Execute() {
	defer closeLogFile()
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Send()
		closeLogFile()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, configureLogging, configureApm)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (by default, looks in [%v] for 'esversions.yaml')", defaultConfigPaths))
}

const (
	serverKey   = "esversions.server"
	registryKey = serverKey + ".registry"
)

func setDefaults() {
	viper.SetDefault(serverKey+".bind_address", "localhost:8080")
	viper.SetDefault(serverKey+".shutdown_timeout", "5s")
	viper.SetDefault(registryKey+".horizon", 0)
	viper.SetDefault(registryKey+".refresh_schedule", cronVersion.DefaultSchedule)
}

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// Registry settings without defaults are invisible to AutomaticEnv when unmarshalling, so
// ESVERSIONS_SERVER_REGISTRY_YEAR and ESVERSIONS_SERVER_REGISTRY_CLOCK need binding explicitly.
func bindRegistryEnv() {
	for _, key := range []string{"year", "clock"} {
		fullKey := registryKey + "." + key
		if err := viper.BindEnv(fullKey, strings.ToUpper(envKeyReplacer.Replace(fullKey))); err != nil {
			log.Fatal().Err(err).Str("key", key).Msg("Failed to bind registry env var")
		}
	}
}

// initConfig reads the application config and sets it globally
func initConfig() {
	viper.AllowEmptyEnv(true)
	setDefaults()
	if configFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("esversions")
		for _, p := range defaultConfigPaths {
			viper.AddConfigPath(p)
		}
	}

	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
	bindRegistryEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Info().Msgf("Using config file: %v", viper.ConfigFileUsed())
	} else if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && configFile == "" {
		log.Warn().Msgf("No config file found in [%v], using defaults", defaultConfigPaths)
	} else {
		log.Fatal().Err(err).Msg("Failed to read the config file")
	}

	// Unmarshal it, UnmarshalKey doesn't play well with Env vars, hence
	// the top level wrapping in order to do namespacing in the config file
	var t config.TopLevel
	err := viper.Unmarshal(&t)
	if err == nil {
		err = checkRegistry(t.EsVersions.Server.Registry)
	}

	if err != nil {
		log.Error().Err(err).Send()
		closeLogFile()
		os.Exit(1)
	}
	appConfig = t.EsVersions.Server
}

// checkRegistry fails fast on registry settings that would otherwise only blow up once the
// server or the refresher starts
func checkRegistry(registry config.Registry) error {
	if registry.Year != nil && *registry.Year < 1997 {
		return fmt.Errorf("registry year [%d] predates ECMAScript", *registry.Year)
	}
	if registry.Clock != nil {
		if _, err := common.ParseDate(*registry.Clock); err != nil {
			return fmt.Errorf("registry clock: %w", err)
		}
	}
	if registry.Year == nil {
		if _, err := cron.ParseStandard(registry.RefreshSchedule); err != nil {
			return fmt.Errorf("registry refresh_schedule [%v]: %w", registry.RefreshSchedule, err)
		}
	}
	return nil
}

// configureLogging configures the logger based on loaded config
// It assumes that the config has already been set and is non-nil
func configureLogging() {
	jsonLogging := false
	var file *string
	var level *zerolog.Level
	if appConfig.Logging != nil {
		if appConfig.Logging.Json != nil {
			jsonLogging = *appConfig.Logging.Json
		}
		if appConfig.Logging.File != nil {
			file = appConfig.Logging.File
		}
		if appConfig.Logging.Level != nil {
			parsedLevel, err := zerolog.ParseLevel(*appConfig.Logging.Level)
			if err != nil {
				log.Warn().
					Str("configured_level", *appConfig.Logging.Level).
					Str("will_use_level", zerolog.InfoLevel.String()).
					Msg("Invalid level configured, ignoring")
			} else {
				level = &parsedLevel
			}
		}
	}
	writeTo := os.Stderr // default
	if file != nil {
		f, err := os.OpenFile(*file, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open log file for writing.")
		}
		logFile = f
		writeTo = f
	}
	if !jsonLogging {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: writeTo})
	} else {
		log.Logger = log.Output(writeTo)
	}
	if level == nil {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(*level)
	}

}

func closeLogFile() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// configureApm configures APM by simply setting env vars if we override their
// values in our config
func configureApm() {
	if v := os.Getenv("ELASTIC_APM_SERVICE_NAME"); len(v) == 0 {
		if err := os.Setenv("ELASTIC_APM_SERVICE_NAME", "esversions"); err != nil {
			log.Fatal().Err(err).Send()
		}
	}
	if appConfig.ApmClient != nil {
		apmConf := *appConfig.ApmClient
		log.Info().Interface("apm_conf", apmConf).Msg("Configuring APM based on config file values")

		if apmConf.Address != nil {
			if err := os.Setenv("ELASTIC_APM_SERVER_URL", *apmConf.Address); err != nil {
				log.Fatal().Err(err).Send()
			}
		}
		if apmConf.SecretToken != nil {
			if err := os.Setenv("ELASTIC_APM_SECRET_TOKEN", *apmConf.SecretToken); err != nil {
				log.Fatal().Err(err).Send()
			}
		}

	}
	// re-init the global tracer
	tracerOptions := apm.TracerOptions{}
	apmTransport, err := transport.NewHTTPTransport()
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	tracerOptions.Transport = apmTransport
	if tracer, err := apm.NewTracerOptions(tracerOptions); err != nil {
		log.Fatal().Err(err).Send()
	} else {
		apm.DefaultTracer.Close()
		apm.DefaultTracer = tracer
	}
}
