package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-questionnaire/internal/manatal"
)

var candidateCmd = &cobra.Command{
	Use:   "candidate",
	Short: "Manage candidates in Manatal",
}

var candidateCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a candidate with the registration custom fields",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		logger, client := mustCandidateClient()

		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")

		candidate, err := client.CreateCandidate(cmd.Context(), name, email)
		if err != nil {
			logger.Fatal("creating candidate", zap.Error(err))
		}

		if err := printJSON(cmd.OutOrStdout(), candidate.Raw); err != nil {
			logger.Fatal("printing candidate", zap.Error(err))
		}
	},
}

var candidateGetCmd = &cobra.Command{
	Use:   "get <candidate_id>",
	Short: "Print a candidate",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger, client := mustCandidateClient()

		id, err := parseCandidateID(args[0])
		if err != nil {
			logger.Fatal("parsing arguments", zap.Error(err))
		}

		candidate, err := client.GetCandidate(cmd.Context(), id)
		if err != nil {
			logger.Fatal("getting candidate", zap.Int("candidate_id", id), zap.Error(err))
		}

		if err := printJSON(cmd.OutOrStdout(), candidate.Raw); err != nil {
			logger.Fatal("printing candidate", zap.Error(err))
		}
	},
}

var candidateLookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Check whether a candidate with the email exists",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		logger, client := mustCandidateClient()

		email, _ := cmd.Flags().GetString("email")

		candidate, err := client.FindCandidateByEmail(cmd.Context(), email)
		if err != nil {
			logger.Fatal("looking up candidate", zap.Error(err))
		}

		if err := printJSON(cmd.OutOrStdout(), newLookupResult(candidate)); err != nil {
			logger.Fatal("printing candidate", zap.Error(err))
		}
	},
}

var candidateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List candidates page by page",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		logger, client := mustCandidateClient()

		page, _ := cmd.Flags().GetInt("page")

		result, err := client.ListCandidates(cmd.Context(), page)
		if err != nil {
			logger.Fatal("listing candidates", zap.Int("page", page), zap.Error(err))
		}

		if err := printJSON(cmd.OutOrStdout(), newListResult(result)); err != nil {
			logger.Fatal("printing candidates", zap.Error(err))
		}
	},
}

var candidateUploadResumeCmd = &cobra.Command{
	Use:   "upload-resume <candidate_id> <file>",
	Short: "Attach a resume file to a candidate",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		logger, client := mustCandidateClient()

		id, err := parseCandidateID(args[0])
		if err != nil {
			logger.Fatal("parsing arguments", zap.Error(err))
		}

		doc, err := readDocument(args[1])
		if err != nil {
			logger.Fatal("reading resume", zap.Error(err))
		}

		upload, err := client.UploadResume(cmd.Context(), id, doc)
		if err != nil {
			logger.Fatal("uploading resume", zap.Int("candidate_id", id), zap.Error(err))
		}

		if err := printJSON(cmd.OutOrStdout(), upload.Raw); err != nil {
			logger.Fatal("printing upload", zap.Error(err))
		}
	},
}

type listResult struct {
	Count      int                      `json:"count"`
	Next       string                   `json:"next,omitempty"`
	Candidates []map[string]interface{} `json:"candidates"`
}

func newListResult(page *manatal.CandidatePage) *listResult {
	result := &listResult{
		Count:      page.Count,
		Next:       page.Next,
		Candidates: make([]map[string]interface{}, 0, len(page.Candidates)),
	}

	for _, candidate := range page.Candidates {
		result.Candidates = append(result.Candidates, candidate.Raw)
	}

	return result
}

func readDocument(path string) (*manatal.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	return &manatal.Document{
		Name:        filepath.Base(path),
		ContentType: http.DetectContentType(content),
		Content:     content,
	}, nil
}

type lookupResult struct {
	Exists    bool                   `json:"exists"`
	Candidate map[string]interface{} `json:"candidate,omitempty"`
}

func newLookupResult(candidate *manatal.Candidate) *lookupResult {
	if candidate == nil {
		return &lookupResult{}
	}

	return &lookupResult{Exists: true, Candidate: candidate.Raw}
}

func init() {
	rootCmd.AddCommand(candidateCmd)
	candidateCmd.AddCommand(candidateCreateCmd, candidateGetCmd, candidateLookupCmd, candidateListCmd, candidateUploadResumeCmd)

	candidateCreateCmd.Flags().StringP("name", "n", "", "full name of the candidate")
	candidateCreateCmd.Flags().StringP("email", "e", "", "email of the candidate")
	candidateCreateCmd.MarkFlagRequired("name")
	candidateCreateCmd.MarkFlagRequired("email")

	candidateLookupCmd.Flags().StringP("email", "e", "", "email to look up")
	candidateLookupCmd.MarkFlagRequired("email")

	candidateListCmd.Flags().IntP("page", "p", 1, "page of the listing, starting at 1")
}

func mustCandidateClient() (*zap.Logger, *manatal.Client) {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	client, err := newManatalClient(config.Manatal, logger)
	if err != nil {
		logger.Fatal("creating manatal client", zap.Error(err))
	}

	return logger, client
}
