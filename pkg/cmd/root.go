package cmd

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/c9s/chartdesk/pkg/config"
)

const defaultLogFile = "log/chartdesk.log"

// userConfig is loaded before any subcommand runs
var userConfig *config.Config

var RootCmd = &cobra.Command{
	Use:   "chartdesk",
	Short: "chartdesk renders and annotates price charts from csv files",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if userConfig, err = loadConfig(viper.GetString("config")); err != nil {
			return err
		}

		if f := viper.GetString("log-formatter"); f != "" {
			userConfig.Logging.Formatter = f
		}
		if f := viper.GetString("log-file"); f != "" {
			userConfig.Logging.File = f
		}

		return setupLogging(userConfig.Logging)
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	RootCmd.PersistentFlags().Bool("debug", false, "debug flag")
	RootCmd.PersistentFlags().String("config", "", "config file")
	RootCmd.PersistentFlags().String("log-formatter", "", "log formatter: prefixed, text or json")
	RootCmd.PersistentFlags().String("log-file", "", "write json logs to this file")
}

func loadConfig(configFile string) (*config.Config, error) {
	if configFile == "" {
		if _, err := os.Stat("chartdesk.yaml"); err != nil {
			return config.Default(), nil
		}
		configFile = "chartdesk.yaml"
	}

	log.Debugf("loading config from %s", configFile)
	return config.Load(configFile)
}

func newFormatter(name string) (log.Formatter, error) {
	switch name {
	case "", "prefixed":
		return &prefixed.TextFormatter{}, nil
	case "text":
		return &log.TextFormatter{FullTimestamp: true}, nil
	case "json":
		return &log.JSONFormatter{}, nil
	}
	return nil, errors.Errorf("unsupported log formatter %q", name)
}

func setupLogging(cfg config.LoggingConfig) error {
	formatter, err := newFormatter(cfg.Formatter)
	if err != nil {
		return err
	}

	logger := log.StandardLogger()
	logger.SetFormatter(formatter)

	if viper.GetBool("debug") {
		logger.SetLevel(log.DebugLevel)
	}

	logFile := cfg.File
	environment := os.Getenv("CHARTDESK_ENV")
	switch environment {
	case "production", "prod":
		if logFile == "" {
			logFile = defaultLogFile
		}
	}

	if logFile == "" {
		return nil
	}

	writer := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // megabytes
		MaxBackups: 7,
		MaxAge:     28, // days
	}

	logger.AddHook(
		lfshook.NewHook(
			lfshook.WriterMap{
				log.DebugLevel: writer,
				log.InfoLevel:  writer,
				log.WarnLevel:  writer,
				log.ErrorLevel: writer,
				log.FatalLevel: writer,
			},
			&log.JSONFormatter{},
		),
	)
	return nil
}

func Execute() {
	if _, err := os.Stat(".env.local"); err == nil {
		if err := godotenv.Load(".env.local"); err != nil {
			log.WithError(err).Fatal("error loading dotenv file")
		}
	}

	viper.SetEnvPrefix("chartdesk")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Enable environment variable binding, the env vars are not overloaded yet.
	viper.AutomaticEnv()

	// Once the flags are defined, we can bind config keys with flags.
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		log.WithError(err).Errorf("failed to bind persistent flags. please check the flag settings.")
	}

	if err := viper.BindPFlags(RootCmd.Flags()); err != nil {
		log.WithError(err).Errorf("failed to bind local flags. please check the flag settings.")
	}

	log.SetFormatter(&prefixed.TextFormatter{})

	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Fatalf("cannot execute command")
	}
}
