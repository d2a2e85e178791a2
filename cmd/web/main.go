package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aqtools/air-atlas/pkg/server"
	"github.com/aqtools/air-atlas/pkg/services/analysis"
	"github.com/aqtools/air-atlas/pkg/services/charts"
	"github.com/aqtools/air-atlas/pkg/services/config"
	"github.com/aqtools/air-atlas/pkg/services/dataset"
)

var profilePath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Air Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&profilePath, "profile", "p", "air-atlas.yaml",
		"Path to the service profile file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	profile, err := config.LoadProfile(profilePath)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	raw, err := dataset.Load(profile.Dataset.Path, profile.DatasetName())
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	table, schema, err := dataset.Prepare(raw)
	if err != nil {
		return fmt.Errorf("failed to prepare dataset: %w", err)
	}

	logger.Info().
		Str("dataset", table.Name).
		Int("rows", table.NumRows()).
		Int("metrics", len(schema.MetricColumns)).
		Msg("dataset loaded")
	if schema.HasCity() {
		logger.Info().Str("city_column", schema.CityColumn).Msg("city filtering enabled")
	}
	if schema.HasYear() {
		logger.Info().Str("year_column", schema.YearColumn).Msg("trend and forecast enabled")
	}

	explorer := analysis.NewExplorer(table, schema, profile.Mode(), profile.DefaultTopN)
	chartSvc := charts.NewService(table, schema)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Explorer: explorer,
			Charts:   chartSvc,
			Logger:   logger,
		},
	})

	return api.Start()
}
