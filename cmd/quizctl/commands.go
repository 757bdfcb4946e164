package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/xavierca1/lead-quiz/internal/bootstrap"
	"github.com/xavierca1/lead-quiz/internal/config"
	"github.com/xavierca1/lead-quiz/internal/entity"
	"github.com/xavierca1/lead-quiz/internal/infra/database"
	"github.com/xavierca1/lead-quiz/internal/infra/export"
	"github.com/xavierca1/lead-quiz/internal/infra/queue"
	"github.com/xavierca1/lead-quiz/internal/infra/quizconfig"
	"github.com/xavierca1/lead-quiz/internal/usecase"
)

var (
	exportTerm   string
	exportLimit  string
	exportOutput string
)

var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Validate a quiz document and print its score range",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		quiz, err := loadQuiz()
		if err != nil {
			return err
		}
		return describeQuiz(cmd.OutOrStdout(), quiz)
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score [answers.json]",
	Short: "Score an answers file against the quiz",
	Long: `Reads a JSON object of question id to choice score (from the file, or
stdin when omitted or "-") and prints the total and bucket. Incomplete
answer sets are rejected exactly as the API rejects them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		quiz, err := loadQuiz()
		if err != nil {
			return err
		}

		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		return scoreAnswers(cmd.OutOrStdout(), quiz, in)
	},
}

var exportCmd = &cobra.Command{
	Use:       "export leads|responses",
	Short:     "Export admin listings as CSV",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(entity.ResourceLeads), string(entity.ResourceResponses)},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadStoreConfig()
		if err != nil {
			return err
		}
		store, err := bootstrap.NewStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		out := cmd.OutOrStdout()
		if exportOutput != "" && exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		w := bufio.NewWriter(out)
		uc := usecase.NewListAdminUseCase(store.Leads, store.Responses)
		if err := exportListing(cmd.Context(), w, uc, entity.Resource(args[0]), exportTerm, exportLimit); err != nil {
			return err
		}
		return w.Flush()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the leads and responses tables on plain Postgres",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		url := os.Getenv("DATABASE_URL")
		if url == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
		db, err := database.NewDBConnection(url)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		if err := database.EnsureSchema(ctx, db); err != nil {
			return err
		}
		zl.Info("schema ready")
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print result events from the broker as JSON lines",
	Long: `Consumes the result queue and prints each event. Events that cannot be
decoded are dead-lettered. Stops on interrupt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		url := os.Getenv("AMQP_URL")
		if url == "" {
			return fmt.Errorf("AMQP_URL is required")
		}
		rabbit, err := queue.NewRabbitMQ(url)
		if err != nil {
			return err
		}
		defer rabbit.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		worker := queue.NewWorker(rabbit.Ch, printEvents(cmd.OutOrStdout()), zl)
		return worker.Start(ctx, queue.QueueName)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportTerm, "query", "q", "", "search term")
	exportCmd.Flags().StringVar(&exportLimit, "limit", "", "row limit (default 100, max 500)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
}

func loadQuiz() (*entity.Quiz, error) {
	path := quizPath
	if path == "" {
		_ = godotenv.Load()
		path = os.Getenv("QUIZ_CONFIG_PATH")
	}
	if path == "" {
		path = "questions.json"
	}
	return quizconfig.LoadFile(path)
}

// loadStoreConfig reads the full config but forces the log mail driver:
// exports never send mail, so mail settings are not required.
func loadStoreConfig() (*config.Config, error) {
	_ = godotenv.Load()
	if os.Getenv("MAIL_DRIVER") == "" {
		os.Setenv("MAIL_DRIVER", config.MailLog)
	}
	return config.FromEnv()
}

func describeQuiz(w io.Writer, quiz *entity.Quiz) error {
	_, err := fmt.Fprintf(w, "ok: %q\nquestions: %d\nmax score: %d\ncutoff: %d (>= %d is %s)\n",
		quiz.Title, len(quiz.Questions), quiz.MaxScore(), quiz.Cutoff,
		quiz.Cutoff, entity.BucketSelfDriving)
	return err
}

func scoreAnswers(w io.Writer, quiz *entity.Quiz, r io.Reader) error {
	var answers map[string]int
	if err := json.NewDecoder(r).Decode(&answers); err != nil {
		return fmt.Errorf("invalid answers JSON: %w", err)
	}
	if err := quiz.CheckComplete(answers); err != nil {
		return err
	}

	res := quiz.Score(answers)
	return json.NewEncoder(w).Encode(map[string]interface{}{
		"total":  res.Total,
		"max":    res.Max,
		"bucket": res.Bucket,
		"label":  res.Bucket.Label(),
	})
}

func exportListing(ctx context.Context, w io.Writer, uc *usecase.ListAdminUseCase, resource entity.Resource, term, limit string) error {
	switch resource {
	case entity.ResourceLeads:
		out, err := uc.Leads(ctx, term, limit)
		if err != nil {
			return err
		}
		return export.WriteLeads(w, out.Rows)
	case entity.ResourceResponses:
		out, err := uc.Responses(ctx, term, limit)
		if err != nil {
			return err
		}
		return export.WriteResponses(w, out.Rows)
	}
	return fmt.Errorf("unknown resource %q (want leads or responses)", resource)
}

func printEvents(w io.Writer) queue.ResultHandler {
	enc := json.NewEncoder(w)
	return func(_ context.Context, event queue.ResultEvent) error {
		return enc.Encode(event)
	}
}
