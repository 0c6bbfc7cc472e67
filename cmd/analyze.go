package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/smart-ats/internal/ats"
	"github.com/spigell/smart-ats/internal/render"
	"github.com/spigell/smart-ats/internal/session"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a single analysis action and print the result",
	Long: "Run a single analysis action and print the result.\n\nActions: " +
		strings.Join(ats.Names(), ", "),
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("action", "a", "", "analysis action to run")
	analyzeCmd.Flags().StringP("resume", "r", "", "path to the resume PDF")
	analyzeCmd.Flags().String("jd", "", "job description text")
	analyzeCmd.Flags().String("jd-file", "", "file with the job description")

	analyzeCmd.MarkFlagRequired("action")
	analyzeCmd.MarkFlagsMutuallyExclusive("jd", "jd-file")
}

func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	action, err := ats.ParseAction(cmd.Flag("action").Value.String())
	if err != nil {
		logger.Fatal("parsing action", zap.Error(err))
	}

	ctrl, err := newController(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating analyzer", zap.Error(err))
	}

	if path := cmd.Flag("resume").Value.String(); path != "" {
		if err := selectResume(ctrl, path, logger); err != nil {
			logger.Fatal("selecting resume", zap.Error(err))
		}
	}

	jd, err := jobDescriptionFromFlags(cmd)
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}
	ctrl.SetJobDescription(jd)

	triggerErr := ctrl.Trigger(ctx, action)

	opts := render.Options{Color: !config.NoColor}
	if err := printState(os.Stdout, ctrl.Session().Snapshot(), opts); err != nil {
		logger.Error("printing result", zap.Error(err))
	}

	if triggerErr != nil {
		var verr *session.ValidationError
		if errors.As(triggerErr, &verr) {
			logger.Fatal("analysis rejected", zap.String("reason", verr.Message))
		}
		logger.Fatal("analysis failed", zap.Error(triggerErr))
	}
}

func jobDescriptionFromFlags(cmd *cobra.Command) (string, error) {
	if path := cmd.Flag("jd-file").Value.String(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	return cmd.Flag("jd").Value.String(), nil
}
