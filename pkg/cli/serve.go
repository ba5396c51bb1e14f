package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/soos-lab/reflectd/pkg/cli/config"
	httpctrl "github.com/soos-lab/reflectd/pkg/controller/http"
	"github.com/soos-lab/reflectd/pkg/domain/interfaces"
	"github.com/soos-lab/reflectd/pkg/service/embedding"
	"github.com/soos-lab/reflectd/pkg/service/heuristic"
	"github.com/soos-lab/reflectd/pkg/service/reasoning"
	"github.com/soos-lab/reflectd/pkg/usecase"
	"github.com/soos-lab/reflectd/pkg/utils/logging"
	"github.com/soos-lab/reflectd/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// pipelineConfig groups the flag sets shared by serve and analyze
type pipelineConfig struct {
	app      config.AppConfig
	llm      config.LLM
	timeouts config.Timeouts
}

func (p *pipelineConfig) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, p.app.Flags()...)
	flags = append(flags, p.llm.Flags()...)
	flags = append(flags, p.timeouts.Flags()...)
	return flags
}

// Configure builds the use cases on top of repo
func (p *pipelineConfig) Configure(ctx context.Context, repo interfaces.Repository) (*usecase.UseCases, error) {
	if err := p.app.Configure(); err != nil {
		return nil, goerr.Wrap(err, "failed to load application config")
	}

	timeouts, err := p.timeouts.Configure()
	if err != nil {
		return nil, err
	}

	tmpl, err := p.app.SummaryTemplate()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build summary template")
	}

	generator, embedder, err := p.llm.Configure(ctx, p.app.Dimension())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure remote models")
	}

	var fallbackOpts []heuristic.Option
	if comment := p.app.Analysis.ObservationComment; comment != "" {
		fallbackOpts = append(fallbackOpts, heuristic.WithObservationComment(comment))
	}

	reasoningOpts := []reasoning.Option{
		reasoning.WithTimeout(timeouts.Analysis),
		reasoning.WithFallback(heuristic.New(fallbackOpts...)),
	}
	if generator != nil {
		reasoningOpts = append(reasoningOpts, reasoning.WithGenerator(generator))
	}

	embeddingOpts := []embedding.Option{
		embedding.WithTimeout(timeouts.Embedding),
		embedding.WithDimension(p.app.Dimension()),
	}
	if embedder != nil {
		embeddingOpts = append(embeddingOpts, embedding.WithEmbedder(embedder))
	}

	logging.Default().Info("Pipeline configuration",
		"app", p.app,
		"llm", p.llm,
		"timeouts", p.timeouts,
	)

	return usecase.New(repo,
		usecase.WithReasoning(reasoning.New(reasoningOpts...)),
		usecase.WithEmbedding(embedding.New(embeddingOpts...)),
		usecase.WithTimeouts(timeouts),
		usecase.WithAnalysisVersion(p.app.Version()),
		usecase.WithSimilarLimit(p.app.SimilarLimit()),
		usecase.WithSummaryTemplate(tmpl),
	), nil
}

func cmdServe() *cli.Command {
	var addr string
	var origin string
	var repoCfg config.Repository
	var pipeline pipelineConfig

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8787",
			Sources:     cli.EnvVars("REFLECTD_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "port",
			Usage:       "HTTP server port. Overrides the port of --addr when set",
			Sources:     cli.EnvVars("PORT"),
		},
		&cli.StringFlag{
			Name:        "allowed-origin",
			Usage:       "Value of Access-Control-Allow-Origin",
			Value:       "*",
			Sources:     cli.EnvVars("REFLECTD_ALLOWED_ORIGIN"),
			Destination: &origin,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, pipeline.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if port := c.String("port"); port != "" {
				addr = ":" + port
			}

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			uc, err := pipeline.Configure(ctx, repo)
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc.Analysis, uc.Summary, httpctrl.WithAllowedOrigin(origin)),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "repository", repoCfg)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				// Create shutdown context with timeout
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				// Attempt graceful shutdown
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
