package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/roboarchive/roboarchive-backend/api"
	"github.com/roboarchive/roboarchive-backend/auth"
	"github.com/roboarchive/roboarchive-backend/config"
	"github.com/roboarchive/roboarchive-backend/database"
	"github.com/roboarchive/roboarchive-backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	setupLogging()

	ctx := context.Background()
	cfg := config.Load()

	// Deployed environments keep secrets in SSM Parameter Store; the
	// overlay wins over anything from .env.
	if prefix := cfg.GetString("AWS_SSM_PREFIX", ""); prefix != "" {
		if err := cfg.MergeSSM(ctx, prefix); err != nil {
			log.Fatal().Err(err).Msg("Error loading SSM parameters")
		}
		for key, value := range cfg {
			os.Setenv(key, value)
		}
	}

	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		log.Fatal().Err(err).Msg("Error testing database connection")
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Error running migrations")
	}

	jwtSecret := cfg.GetString("JWT_SECRET", "")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}
	tokens := auth.NewService(jwtSecret)

	attachments, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing attachment storage")
	}

	currentDB := database.New(db)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, tokens, attachments)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

func setupLogging() {
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if os.Getenv("LOG_PRETTY") == "true" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}
}

// openDatabase connects to the store named by DB_TYPE. Postgres is the
// default; mysql is kept for club installs that already run MariaDB.
func openDatabase(cfg config.Config) (*gorm.DB, error) {
	gormLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	gormConfig := &gorm.Config{
		PrepareStmt: false,
		Logger:      gormLogger,
	}

	dbType := cfg.GetString("DB_TYPE", "postgres")
	log.Info().Str("db_type", dbType).Msg("Connecting to database")

	switch dbType {
	case "mysql":
		mysqlConfig := gomysql.NewConfig()
		mysqlConfig.User = cfg.GetString("DB_USER", "roboarchive")
		mysqlConfig.Passwd = cfg.GetString("DB_PASSWORD", "")
		mysqlConfig.Net = "tcp"
		mysqlConfig.Addr = fmt.Sprintf("%s:%s",
			cfg.GetString("DB_HOST", "localhost"),
			cfg.GetString("DB_PORT", "3306"),
		)
		mysqlConfig.DBName = cfg.GetString("DB_NAME", "roboarchive")
		mysqlConfig.ParseTime = true
		return gorm.Open(mysql.Open(mysqlConfig.FormatDSN()), gormConfig)
	case "postgres":
		connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.GetString("DB_HOST", "localhost"),
			cfg.GetString("DB_USER", "roboarchive"),
			cfg.GetString("DB_PASSWORD", ""),
			cfg.GetString("DB_NAME", "roboarchive"),
			cfg.GetString("DB_PORT", "5432"),
			cfg.GetString("DB_SSLMODE", "disable"),
		)
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  connStr,
			PreferSimpleProtocol: true,
		}), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}
}

// openStorage selects the attachment backend. Local disk is the
// default; STORAGE_BACKEND=s3 puts blobs in the named bucket instead.
func openStorage(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch backend := cfg.GetString("STORAGE_BACKEND", "local"); backend {
	case "s3":
		bucket := cfg.GetString("S3_BUCKET", "")
		if bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET must be set when STORAGE_BACKEND=s3")
		}
		return storage.NewS3(ctx, bucket)
	case "local":
		return storage.NewLocal(cfg.GetString("UPLOADS_DIR", "uploads")), nil
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND %q", backend)
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
