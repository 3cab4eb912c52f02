package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/pkg/stripe"
	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Endpoints struct {
	Mongo   *mongo.Client
	Gateway stripe.Client
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    cfg.OTel.ServiceName,
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "mongo",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check:     MongoCheck(endpoints.Mongo),
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
			health.Config{
				Name:      "payment-gateway",
				Timeout:   5 * time.Second,
				SkipOnErr: true,
				Check:     GatewayCheck(endpoints.Gateway),
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func MongoCheck(client *mongo.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return fmt.Errorf("mongo client is not initialized")
		}

		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return fmt.Errorf("failed to ping mongo: %w", err)
		}

		return nil
	}
}

// GatewayCheck is reported as degraded, not unavailable, when it fails.
func GatewayCheck(gateway stripe.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if gateway == nil {
			return fmt.Errorf("payment gateway client is not initialized")
		}

		if err := gateway.Ping(ctx); err != nil {
			return fmt.Errorf("failed to reach payment gateway: %w", err)
		}

		return nil
	}
}
