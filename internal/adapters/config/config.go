package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	postgresStorage "github.com/pickhacks/portal/internal/adapters/database/postgres"
	"github.com/pickhacks/portal/internal/adapters/database/redis"
	"github.com/pickhacks/portal/internal/domain/utils/location"
	"github.com/pickhacks/portal/pkg/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type Config struct {
	Database *gorm.DB
	Redis    *redis.Client
}

func initConfig() {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(err)
		}
	}
}

func setDefaults() {
	viper.SetDefault("settings.timezone", "America/Chicago")
	viper.SetDefault("settings.logs-dir", "logs")
	viper.SetDefault("settings.qr.prefix", "PICKHACKS")
	viper.SetDefault("settings.draft-ttl", "168h")
	viper.SetDefault("service.http.addr", ":8080")
	viper.SetDefault("service.http.session-cookie", "session_token")
	viper.SetDefault("service.database.port", 5432)
	viper.SetDefault("service.database.sslmode", "disable")
	viper.SetDefault("service.redis.port", 6379)
}

func Get() *Config {
	initConfig()

	err := logger.Init(logger.Config{
		Debug:        viper.GetBool("settings.debug"),
		TimeLocation: location.Location(),
		LogToFile:    viper.GetBool("settings.log-to-file"),
		LogsDir:      viper.GetString("settings.logs-dir"),
	})
	if err != nil {
		panic(err)
	}

	var gormConfig *gorm.Config
	if viper.GetBool("settings.debug") {
		newLogger := gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		)
		gormConfig = &gorm.Config{
			Logger:         newLogger,
			TranslateError: true,
		}
	} else {
		gormConfig = &gorm.Config{
			Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
			TranslateError: true,
		}
	}

	dsn := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=%s TimeZone=%s",
		viper.GetString("service.database.user"),
		viper.GetString("service.database.password"),
		viper.GetString("service.database.name"),
		viper.GetString("service.database.host"),
		viper.GetInt("service.database.port"),
		viper.GetString("service.database.sslmode"),
		location.Location().String(),
	)

	database, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		logger.Log.Panicf("Failed to connect to the database: %v", err)
	} else {
		logger.Log.Info("Successfully connected to the database")
	}

	if err = postgresStorage.Migrate(database); err != nil {
		logger.Log.Panicf("Failed to migrate database: %v", err)
	}
	if err = postgresStorage.Seed(database); err != nil {
		logger.Log.Panicf("Failed to seed lookup tables: %v", err)
	}

	redisClient, err := redis.New(redis.Options{
		Host:     viper.GetString("service.redis.host"),
		Port:     viper.GetInt("service.redis.port"),
		Password: viper.GetString("service.redis.password"),
		DraftTTL: viper.GetDuration("settings.draft-ttl"),
	})
	if err != nil {
		logger.Log.Panicf("Failed to connect to redis: %v", err)
	} else {
		logger.Log.Info("Successfully connected to redis")
	}

	return &Config{
		Database: database,
		Redis:    redisClient,
	}
}
