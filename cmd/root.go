// Package cmd wires the resolved configuration, scene, camera, renderer,
// and encoder behind a single cobra command.
package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/riftwood/pathtracer/internal/config"
	"github.com/riftwood/pathtracer/internal/liveserver"
	"github.com/riftwood/pathtracer/pkg/camera"
	"github.com/riftwood/pathtracer/pkg/core"
	"github.com/riftwood/pathtracer/pkg/integrator"
	"github.com/riftwood/pathtracer/pkg/loaders"
	"github.com/riftwood/pathtracer/pkg/renderer"
	"github.com/riftwood/pathtracer/pkg/scenes"
)

var configPath string

// NewRootCommand builds the `renderer [output-name]` cobra command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "renderer [output-name]",
		Short: "Render the configured scene to a PNG file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  run,
		// Execute prints the error itself; keep cobra from adding its own
		// "Error:" line and usage text.
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "path to the YAML configuration file")
	return cmd
}

// Execute runs the root command and maps any returned error to the "phase:
// cause" stderr convention with a non-zero exit.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer logger.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("config phase failed", zap.Error(err))
		return fmt.Errorf("config: %w", err)
	}

	outputName := cfg.Name
	if len(args) == 1 {
		outputName = args[0]
	}
	if outputName == "" {
		outputName = "render"
	}
	if !strings.HasSuffix(outputName, ".png") {
		outputName += ".png"
	}

	s, err := scenes.Build(cfg.Scene, cfg.MeshPath)
	if err != nil {
		logger.Error("scene phase failed", zap.Error(err))
		return fmt.Errorf("scene: %w", err)
	}

	cam := camera.New(
		int(cfg.Width), int(cfg.Height),
		cfg.PixelSizeX, cfg.PixelSizeY,
		core.NewVec3(cfg.CameraX, cfg.CameraY, cfg.CameraZ),
		camera.Identity(),
		cfg.ViewPlaneDistance,
		int(cfg.NumberOfSamples),
	)

	var broadcaster renderer.Broadcaster
	if cfg.LiveProgress {
		live := liveserver.New(logger)
		mux := http.NewServeMux()
		mux.Handle("/progress", live.Handler())
		mux.Handle("/metrics", promhttp.Handler())
		addr := cfg.LiveProgressAddr
		if addr == "" {
			addr = ":8080"
		}
		go func() {
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Warn("live progress server stopped", zap.Error(err))
			}
		}()
		broadcaster = live
	}

	renderCfg := renderer.RenderConfig{
		Camera: cam,
		Integrator: integrator.Config{
			NumberOfShadowRays:           int(cfg.NumberOfShadowRays),
			ProbabilityNotToTerminateRay: cfg.ProbabilityNotToTerminateRay,
		},
		NumWorkers:  cfg.NumWorkers,
		Seed:        1,
		Broadcaster: broadcaster,
	}

	logger.Debug("effective configuration", zap.String("yaml", cfg.String()))
	logger.Info("render starting",
		zap.String("scene", cfg.Scene),
		zap.Uint("width", cfg.Width),
		zap.Uint("height", cfg.Height),
		zap.Uint("samples", cfg.NumberOfSamples),
	)

	img, err := renderer.Render(s, renderCfg)
	if err != nil {
		logger.Error("render phase failed", zap.Error(err))
		return fmt.Errorf("render: %w", err)
	}

	if err := loaders.EncodePNG(outputName, img.Width, img.Height, img.Pixels); err != nil {
		logger.Error("encode phase failed", zap.Error(err))
		return fmt.Errorf("encode: %w", err)
	}

	logger.Info("render complete", zap.String("output", outputName))
	return nil
}
