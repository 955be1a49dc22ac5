package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/hirestack/beacon/hiring/job/jobinfra"
	"github.com/hirestack/beacon/hiring/match/matchapi"
	"github.com/hirestack/beacon/hiring/match/matchinfra"
	"github.com/hirestack/beacon/hiring/match/matchsrv"
	"github.com/hirestack/beacon/hiring/profile/profileapi"
	"github.com/hirestack/beacon/hiring/profile/profileinfra"
	"github.com/hirestack/beacon/hiring/profile/profilesrv"
	"github.com/hirestack/beacon/internal/ai/completion"
	"github.com/hirestack/beacon/internal/ai/cvparser"
	"github.com/hirestack/beacon/internal/ai/jobmatcher"
	"github.com/hirestack/beacon/pkg/fsx"
	"github.com/hirestack/beacon/pkg/fsx/fsxs3"
	"github.com/hirestack/beacon/pkg/logx"
)

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// AI
	Completion completion.Client
	CVParser   *cvparser.Parser
	JobMatcher *jobmatcher.Matcher

	// Services
	ProfileService *profilesrv.Service
	MatchService   *matchsrv.Service

	// API Handlers
	ProfileHandlers *profileapi.Handlers
	MatchHandlers   *matchapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS S3 Configuration
	awsRegion := os.Getenv("AWS_REGION")
	awsBucket := os.Getenv("AWS_BUCKET")
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(cfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, "uploads")

	// 4. OpenAI Client
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logx.Warn("OPENAI_API_KEY is not set, extraction and matching calls will fail")
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := time.Duration(envInt64("OPENAI_TIMEOUT_SECONDS", 60)) * time.Second
	c.Completion = completion.NewOpenAIClient(apiKey, model, timeout)
}

func (c *Container) initServices() {
	// --- Repositories ---
	profileRepo := profileinfra.NewPostgresProfileRepository(c.DB)
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)

	// --- AI Components ---
	c.CVParser = cvparser.NewParser(c.Completion, cvparser.DefaultConfig())
	c.JobMatcher = jobmatcher.NewMatcher(c.Completion, jobmatcher.DefaultConfig())

	// --- Rate Limiting ---
	limit := envInt64("RECOMMEND_RATE_LIMIT", 10)
	limiter := matchinfra.NewRedisRateLimiter(c.Redis, limit, time.Minute)

	// --- Domain Services ---
	c.ProfileService = profilesrv.NewService(profileRepo, c.CVParser, c.FileSystem)
	c.MatchService = matchsrv.NewService(
		profileRepo,
		jobRepo,
		c.JobMatcher,
		limiter,
		int(envInt64("RECOMMEND_TOP_N", 5)),
	)

	// --- Handlers ---
	c.ProfileHandlers = profileapi.NewHandlers(c.ProfileService)
	c.MatchHandlers = matchapi.NewHandlers(c.MatchService)
}

func envInt64(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logx.Warnf("Invalid %s=%q, using default %d", key, raw, fallback)
		return fallback
	}
	return v
}
