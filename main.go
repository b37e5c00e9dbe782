package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"pixbot/internal/adapters/converter"
	"pixbot/internal/adapters/handler"
	"pixbot/internal/adapters/sender"
	"pixbot/internal/core/service"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	log.Info().Msg("starting pixbot...")

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN", "TOKEN"); err != nil {
		log.Fatal().Err(err).Msg("could not bind token environment variable")
	}

	log.Info().Msg("reading config file...")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal().Err(err).Msg("could not read config file")
		}
		log.Info().Msg("no config file found, using defaults and environment")
	}

	setupLogging()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	token := viper.GetString("telegram.bot_token")
	if token == "" {
		log.Fatal().Msg("telegram.bot_token is not set")
	}

	handlerTimeout, err := time.ParseDuration(viper.GetString("handler.timeout"))
	if err != nil {
		log.Panic().Err(err).Msg("invalid timeout for handler in config")
	}

	localConverter, err := converter.NewLocal(converter.Options{
		Width:       viper.GetInt("ascii.width"),
		Compression: viper.GetFloat64("ascii.compression"),
		BlockSize:   viper.GetInt("pixelate.block_size"),
		JPEGQuality: viper.GetInt("pixelate.jpeg_quality"),
		MaxPixels:   viper.GetInt64("image.max_pixels"),
	})
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing converter")
	}

	var updateHandler *handler.Update

	b, err := bot.New(token,
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			updateHandler.Handle(ctx, b, update)
		}),
		bot.WithNotAsyncHandlers(),
	)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing telegram bot")
	}

	s := sender.NewTelegram(b)

	relay := service.NewRelay(service.RelayParams{
		Sessions:   service.NewSessionStore(),
		Queue:      service.NewSerializer(),
		Dispatcher: service.NewDispatcher(s, localConverter, s, s),
		TextSender: s,
		Presenter:  s,
		Timeout:    handlerTimeout,
	})

	updateHandler = handler.NewUpdate(relay, s)

	log.Info().Msg("bot listening")
	b.Start(ctx)

	log.Info().Msg("waiting for pending requests")
	relay.Wait()
}

func setDefaults() {
	viper.SetDefault("bot.log_level", "info")
	viper.SetDefault("bot.log_max_size_mb", 10)
	viper.SetDefault("bot.log_max_backups", 3)
	viper.SetDefault("bot.log_max_age_days", 28)
	viper.SetDefault("handler.timeout", "60s")
	viper.SetDefault("ascii.width", converter.DefaultWidth)
	viper.SetDefault("ascii.compression", converter.DefaultCompression)
	viper.SetDefault("pixelate.block_size", converter.DefaultBlockSize)
	viper.SetDefault("pixelate.jpeg_quality", converter.DefaultJPEGQuality)
	viper.SetDefault("image.max_pixels", converter.DefaultMaxPixels)
}

func setupLogging() {
	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	var writers []io.Writer
	writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if path := viper.GetString("bot.log_file"); path != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   path,
			MaxSize:    viper.GetInt("bot.log_max_size_mb"),
			MaxBackups: viper.GetInt("bot.log_max_backups"),
			MaxAge:     viper.GetInt("bot.log_max_age_days"),
		})
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
}
