package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "github.com/dhima/backoffice-workflows/docs" // Import generated docs
	"github.com/dhima/backoffice-workflows/internal/api"
)

// @title Back-office Workflows API
// @version 1.0
// @description Configurable workflow rules evaluated against crypto-exchange business events.
// @description
// @description ## Features
// @description - **Workflow definitions**: condition/action trees bound to a business trigger, ordered by priority
// @description - **Dispatch**: synchronous evaluation of every active rule for a trigger, with one audit record per rule
// @description - **Scheduled rules**: cron-driven definitions evaluated by the scheduler
// @description - **Kafka integration**: dispatched actions are published for downstream workers
// @description
// @description ## Architecture
// @description The dispatcher decides, it does not act. Actions are handed to workers over Kafka and the API returns them to synchronous callers.

// @contact.name Back-office Platform Team

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer()
	if err := srv.Serve(ctx); err != nil {
		log.Fatalf("api server stopped: %v", err)
	}
}
