package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"nest/internal/di"
	"nest/internal/models"
	"nest/internal/providers"
	"nest/internal/repositories"
	"nest/internal/structures"
)

var flags structures.CliFlags

var rootCmd = &cobra.Command{
	Use:   "nest",
	Short: "NEST mental health assistant backend",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cleanup, err := di.InitApp(&flags)
		if err != nil {
			return err
		}
		cleanup()
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := providers.NewConfigProvider(&flags)
		if err != nil {
			return err
		}
		logger, err := providers.NewLogProvider(conf)
		if err != nil {
			return err
		}
		migrations, err := repositories.Migrations()
		if err != nil {
			return err
		}
		return providers.RunMigrations(conf.Database.URL, migrations, logger)
	},
}

var trainReq models.TrainingRequest

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a model in the foreground and print its metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		trainer, cleanup, err := di.InitTrainer(&flags)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		metrics, err := trainer.Run(ctx, trainReq.ModelType, trainReq.Params())
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(metrics, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "enable debug logging")

	trainCmd.Flags().StringVar(&trainReq.ModelType, "type", models.ModelTypeEmotion, "model type to train")
	trainCmd.Flags().IntVar(&trainReq.Epochs, "epochs", 0, "number of epochs (default 10)")
	trainCmd.Flags().IntVar(&trainReq.BatchSize, "batch-size", 0, "mini-batch size (default 32)")
	trainCmd.Flags().Float64Var(&trainReq.LearningRate, "lr", 0, "Adam learning rate (default 0.001)")

	rootCmd.AddCommand(serveCmd, migrateCmd, trainCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
