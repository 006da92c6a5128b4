package serve

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/internal/common"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/internal/server"
)

// ServeAction runs the HTTP API until interrupted.
func ServeAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, err := common.BuildPipeline(ctx, c, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize pipeline")
		os.Exit(2)
	}
	defer pipeline.Close()

	srv := server.New(c.String("addr"), logger, pipeline.Orchestrator, pipeline.Store)
	return srv.Start(ctx)
}
