package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"user-avatar-service/cmd/api/infrastructure"
	"user-avatar-service/internal/adapter/db/dynamo"
	ginhandler "user-avatar-service/internal/adapter/gin/handler"
	"user-avatar-service/internal/adapter/gin/middleware"
	s3store "user-avatar-service/internal/adapter/storage/s3"
	"user-avatar-service/internal/config"
	"user-avatar-service/internal/usecase/user"
	redisclient "user-avatar-service/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DynamoDB    *dynamodb.Client
	S3          *awss3.Client
	RedisClient *redisclient.Client
	UserUC      user.Usecase
	RateLimiter *middleware.RateLimiter
	GinHandler  *ginhandler.UserHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	awsCfg, err := infrastructure.NewAWSConfig(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AWS config: %w", err)
	}

	dynamoClient := infrastructure.NewDynamoDBClient(awsCfg, cfg)
	s3Client := infrastructure.NewS3Client(awsCfg, cfg)

	// Storage adapters
	repo := dynamo.NewUserRepoDynamo(dynamoClient, cfg.Store.UsersTable, l)
	store := s3store.NewAvatarStore(s3Client, cfg.Store.AvatarBucket, cfg.AvatarBaseURL(), l)

	// Use case
	userUC := user.New(repo, store, l)

	// Rate limiting is opt-in; Redis is only dialed when it is enabled.
	var rdb *redisclient.Client
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rdb, err = infrastructure.NewRedisClient(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		rateLimiter = middleware.NewRateLimiter(
			rdb.Client,
			middleware.RateLimiterConfig{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				BurstCapacity:     cfg.RateLimit.BurstCapacity,
				Enabled:           cfg.RateLimit.Enabled,
			},
			l,
		)
	}

	ginHandler := ginhandler.NewUserHandler(userUC, l)

	return &Container{
		Config:      cfg,
		Logger:      l,
		DynamoDB:    dynamoClient,
		S3:          s3Client,
		RedisClient: rdb,
		UserUC:      userUC,
		RateLimiter: rateLimiter,
		GinHandler:  ginHandler,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}
	return nil
}
