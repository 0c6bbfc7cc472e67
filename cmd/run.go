package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/smart-ats/internal/ats"
	"github.com/spigell/smart-ats/internal/render"
	"github.com/spigell/smart-ats/internal/session"
)

const (
	PromptSelectResume       = "Select resume (PDF)"
	PromptJobDescription     = "Type job description"
	PromptJobDescriptionFile = "Load job description from file"
	PromptShowResult         = "Show last result"
	PromptQuit               = "Quit"
)

var errExit = errors.New("exit requested")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive analysis session",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("resume", "r", "", "path to the resume PDF to start with")
	runCmd.Flags().String("jd-file", "", "file with the job description to start with")
}

// run is the interactive session: one menu loop over a single session.
func run(cmd *cobra.Command) {
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

	logger.Info("starting the smart-ats session",
		zap.String("version", version),
		zap.String("backend", config.Backend),
		zap.String("endpoint", config.Endpoint),
	)

	ctrl, err := newController(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating analyzer", zap.Error(err))
	}

	if path := cmd.Flag("resume").Value.String(); path != "" {
		if err := selectResume(ctrl, path, logger); err != nil {
			logger.Fatal("selecting resume", zap.Error(err))
		}
	}

	if path := cmd.Flag("jd-file").Value.String(); path != "" {
		if err := loadJobDescription(ctrl, path); err != nil {
			logger.Fatal("reading job description", zap.Error(err))
		}
	}

	opts := render.Options{Color: !config.NoColor}

	for {
		menu := promptui.Select{
			Label: menuLabel(ctrl.Session().Snapshot()),
			Items: menuItems(),
			Size:  len(menuItems()),
		}

		_, choice, err := menu.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				logger.Info("exiting", zap.String("reason", err.Error()))
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleChoice(ctx, choice, ctrl, logger, opts); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Error("action failed", zap.String("choice", choice), zap.Error(err))
		}
	}
}

func menuItems() []string {
	items := []string{PromptSelectResume, PromptJobDescription, PromptJobDescriptionFile}
	for _, a := range ats.Actions {
		items = append(items, a.Label())
	}
	return append(items, PromptShowResult, PromptQuit)
}

func menuLabel(state session.State) string {
	resume := "none"
	if state.Resume != nil {
		resume = state.Resume.Name
	}

	jd := "empty"
	if n := len([]rune(strings.TrimSpace(state.JobDescription))); n > 0 {
		jd = fmt.Sprintf("%d chars", n)
	}

	return fmt.Sprintf("Resume: %s | Job description: %s", resume, jd)
}

func actionByLabel(label string) (ats.Action, bool) {
	for _, a := range ats.Actions {
		if a.Label() == label {
			return a, true
		}
	}
	return "", false
}

func handleChoice(ctx context.Context, choice string, ctrl *session.Controller, logger *zap.Logger, opts render.Options) error {
	switch choice {
	case PromptSelectResume:
		path, err := (&promptui.Prompt{Label: "Path to resume", Validate: validateResumePath}).Run()
		if err != nil {
			return err
		}
		return selectResume(ctrl, path, logger)
	case PromptJobDescription:
		text, err := (&promptui.Prompt{Label: "Job description"}).Run()
		if err != nil {
			return err
		}
		ctrl.SetJobDescription(text)
		return nil
	case PromptJobDescriptionFile:
		path, err := (&promptui.Prompt{Label: "Path to job description"}).Run()
		if err != nil {
			return err
		}
		return loadJobDescription(ctrl, path)
	case PromptShowResult:
		return printState(os.Stdout, ctrl.Session().Snapshot(), opts)
	case PromptQuit:
		logger.Info("exiting", zap.String("reason", "quit selected"))
		return errExit
	}

	action, ok := actionByLabel(choice)
	if !ok {
		return fmt.Errorf("invalid choice: %s", choice)
	}

	fmt.Fprintf(os.Stdout, "%s: analyzing...\n", action.Label())

	err := ctrl.Trigger(ctx, action)
	if errors.Is(err, session.ErrBusy) {
		return err
	}

	// Validation and transport failures are part of the session state and
	// shown as a banner.
	return printState(os.Stdout, ctrl.Session().Snapshot(), opts)
}

func validateResumePath(input string) error {
	input = strings.TrimSpace(input)
	if !ats.IsPDF(input) {
		return errors.New("only .pdf files are accepted")
	}
	if _, err := os.Stat(input); err != nil {
		return errors.New("file not found")
	}
	return nil
}

func loadJobDescription(ctrl *session.Controller, path string) error {
	data, err := os.ReadFile(strings.TrimSpace(path))
	if err != nil {
		return fmt.Errorf("reading job description: %w", err)
	}
	ctrl.SetJobDescription(string(data))
	return nil
}
