package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"painting_estimator_backend/internal/adapters"
	catalogrepo "painting_estimator_backend/internal/catalog/repository"
	estimatesvc "painting_estimator_backend/internal/estimates/service"
	"painting_estimator_backend/internal/estimates/transport"
	intakerepo "painting_estimator_backend/internal/intake/repository"
	intakesvc "painting_estimator_backend/internal/intake/service"
	"painting_estimator_backend/platform/validator"
)

func runCmd() *cobra.Command {
	var (
		transcriptPath string
		clientName     string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a transcript through an intake session and print the estimate",
		Long: `Each non-empty line of the transcript is one utterance. Every exchange is
written to stderr; the final estimate is written to stdout as JSON.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalogPath, _ := cmd.Flags().GetString("catalog")
			log := cliLogger(cmd)
			ctx := cmd.Context()

			ix, err := catalogrepo.LoadIndex(ctx, catalogrepo.NewFileSource(catalogPath, validator.New()))
			if err != nil {
				return err
			}

			transcript, err := openTranscript(cmd, transcriptPath)
			if err != nil {
				return err
			}
			defer transcript.Close()

			intake := intakesvc.New(intakerepo.NewMemoryStore(time.Hour), nil, log)
			estimates := estimatesvc.New(ix, estimatesvc.DefaultPricing(), nil, log)
			estimates.SetSessionReader(adapters.NewIntakeSessionReader(intake))

			session, err := intake.Create(ctx, clientName)
			if err != nil {
				return err
			}

			out := cmd.ErrOrStderr()
			fmt.Fprintf(out, "? %s\n", intakesvc.Prompt(&session))

			scanner := bufio.NewScanner(transcript)
			complete := false
			for scanner.Scan() && !complete {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				res, err := intake.Process(ctx, session.ID, line)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "> %s\n< %s\n", line, res.Message)
				if res.NextPrompt != "" {
					fmt.Fprintf(out, "? %s\n", res.NextPrompt)
				}
				complete = res.Complete
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read transcript: %w", err)
			}
			if !complete {
				current, err := intake.Get(ctx, session.ID)
				if err != nil {
					return err
				}
				return fmt.Errorf("transcript ended before the conversation was complete (step %s)", current.Step)
			}

			est, err := estimates.ComputeForSession(ctx, session.ID, transport.SessionEstimateRequest{})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(est)
		},
	}

	cmd.Flags().StringVar(&transcriptPath, "transcript", "-", "transcript file, one utterance per line (- for stdin)")
	cmd.Flags().StringVar(&clientName, "client", "", "client name known in advance")
	return cmd
}

func openTranscript(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	return f, nil
}
