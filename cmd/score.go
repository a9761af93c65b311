package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-questionnaire/internal/questionnaire"
	"github.com/spigell/ats-questionnaire/internal/survey"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

type scoreOptions struct {
	CandidateID int
	Responses   string
	File        string
	DryRun      bool
}

// confirmFunc asks whether the candidate should be updated.
type confirmFunc func(candidateID int) (bool, error)

var scoreCmd = &cobra.Command{
	Use:   "score <candidate_id>",
	Short: "Score questionnaire responses and update the candidate in Manatal",
	Long: "Score questionnaire responses and update the candidate in Manatal.\n" +
		"Responses are read from --responses or --file. The built-in example set is used when neither is given.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()

		opts, err := scoreOptionsFromCmd(cmd, args)
		if err != nil {
			logger.Fatal("parsing arguments", zap.Error(err))
		}

		var updater survey.Updater
		if !opts.DryRun {
			config, err := getConfig()
			if err != nil {
				logger.Fatal("getting a config", zap.Error(err))
			}

			client, err := newManatalClient(config.Manatal, logger)
			if err != nil {
				logger.Fatal("creating manatal client", zap.Error(err))
			}
			updater = client
		}

		var confirm confirmFunc
		if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
			confirm = promptConfirm
		}

		if err := runScore(cmd.Context(), cmd.OutOrStdout(), logger, opts, updater, confirm); err != nil {
			logger.Fatal("scoring questionnaire", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("responses", "r", "", "responses as a JSON object, e.g. '{\"q1\": 5}'")
	scoreCmd.Flags().StringP("file", "f", "", "path to a JSON file with responses")
	scoreCmd.Flags().Bool("dry-run", false, "print scores and fields without updating the candidate")
	scoreCmd.Flags().BoolP("interactive", "i", false, "ask for confirmation before updating the candidate")

	scoreCmd.MarkFlagsMutuallyExclusive("responses", "file")
}

func scoreOptionsFromCmd(cmd *cobra.Command, args []string) (*scoreOptions, error) {
	id, err := parseCandidateID(args[0])
	if err != nil {
		return nil, err
	}

	opts := &scoreOptions{CandidateID: id}
	opts.Responses, _ = cmd.Flags().GetString("responses")
	opts.File, _ = cmd.Flags().GetString("file")
	opts.DryRun, _ = cmd.Flags().GetBool("dry-run")

	return opts, nil
}

func parseCandidateID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("candidate id must be an integer: %w", err)
	}

	if id <= 0 {
		return 0, fmt.Errorf("candidate id must be positive, got %d", id)
	}

	return id, nil
}

func loadResponses(opts *scoreOptions, logger *zap.Logger) (questionnaire.Responses, error) {
	switch {
	case opts.Responses != "":
		return questionnaire.ParseResponses([]byte(opts.Responses))
	case opts.File != "":
		return questionnaire.ReadResponsesFile(opts.File)
	default:
		logger.Info("no responses given, using the example set")
		return questionnaire.ExampleResponses(), nil
	}
}

func runScore(ctx context.Context, out io.Writer, logger *zap.Logger, opts *scoreOptions, updater survey.Updater, confirm confirmFunc) error {
	responses, err := loadResponses(opts, logger)
	if err != nil {
		return err
	}

	if unknown := questionnaire.UnknownIDs(responses); len(unknown) > 0 {
		logger.Warn("responses contain unknown question ids, they are not scored", zap.Strings("ids", unknown))
	}

	if opts.DryRun {
		return printJSON(out, survey.Evaluate(responses))
	}

	if updater == nil {
		return errors.New("candidate updater is required")
	}

	if confirm != nil {
		ok, err := confirm(opts.CandidateID)
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return nil
		}
	}

	logger.Info("processing questionnaire",
		zap.Int("candidate_id", opts.CandidateID),
		zap.Int("responses", len(responses)),
	)

	result, err := survey.NewProcessor(updater, logger).Process(ctx, opts.CandidateID, responses)
	if err != nil {
		return err
	}

	logger.Info("update successful", zap.Any("scores", result.Scores))

	var updated interface{}
	if result.Candidate != nil {
		updated = result.Candidate.Raw
	}

	return printJSON(out, updated)
}

func promptConfirm(candidateID int) (bool, error) {
	prompt := promptui.Select{
		Label: fmt.Sprintf("Update candidate %d?", candidateID),
		Items: []string{PromptYes, PromptNo},
	}

	_, action, err := prompt.Run()
	if err != nil {
		return false, err
	}

	return action == PromptYes, nil
}
