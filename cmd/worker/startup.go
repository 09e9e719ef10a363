package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"pharmastore-backend/pkg/container"
)

// startServices performs health checks and logs startup information
func startServices(c *container.Container) error {
	log.Println("============================================")
	log.Println("🚀 Pharmastore Worker Starting...")
	log.Println("============================================")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Cache.Ping(ctx); err != nil {
		return fmt.Errorf("redis not reachable: %w", err)
	}
	log.Println("[Startup] ✓ Redis reachable")

	if err := c.DB.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}
	log.Println("[Startup] ✓ Database reachable")

	log.Printf("[Startup] Queues: high=20 default=10 low=5")
	log.Printf("[Startup] Stock reconcile cron: %s", c.Config.Job.StockReconcileCron)

	return nil
}
