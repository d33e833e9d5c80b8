package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/cheggaaa/pb/v3"
	"go.uber.org/zap"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/adapter/client"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/app"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/dataset"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/infrastructure/config"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/infrastructure/logger"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/usecase"
)

const (
	name    = "sentimentctl"
	version = "1.0.0"
)

type trainCmd struct {
	Dataset string `arg:"positional,required" help:"CSV file with feedback and sentiment columns"`
}

type predictCmd struct {
	Text   string `arg:"positional,required" help:"text to label"`
	Server string `arg:"--server" help:"label through a running service at this URL instead of locally"`
}

type batchCmd struct {
	Dataset string `arg:"positional,required" help:"CSV file with a feedback column"`
}

type evaluateCmd struct {
	Dataset string `arg:"positional,required" help:"CSV file with feedback and sentiment columns"`
}

type infoCmd struct {
	Server string `arg:"--server" help:"query a running service at this URL instead of the local model"`
}

type args struct {
	Train    *trainCmd     `arg:"subcommand:train" help:"train the model and replace the stored one"`
	Predict  *predictCmd   `arg:"subcommand:predict" help:"label a single text"`
	Batch    *batchCmd     `arg:"subcommand:batch" help:"label every row of a file and log the results"`
	Evaluate *evaluateCmd  `arg:"subcommand:evaluate" help:"report the predicted label distribution of a labeled file"`
	Info     *infoCmd      `arg:"subcommand:info" help:"describe the stored model"`
	Timeout  time.Duration `arg:"--timeout" default:"30s" help:"request timeout when talking to a server"`
	Cache    bool          `arg:"--cache" help:"connect to Redis so local writes invalidate the service's cached stats"`
}

func (args) Version() string {
	return name + " " + version
}

func (args) Description() string {
	return "Train and query the feedback sentiment model."
}

func main() {
	var a args
	p := arg.MustParse(&a)
	if p.Subcommand() == nil {
		p.Fail("missing subcommand")
	}

	if err := run(context.Background(), &a, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a *args, out io.Writer) error {
	switch {
	case a.Predict != nil && a.Predict.Server != "":
		c := client.NewSentimentClient(a.Predict.Server, a.Timeout)
		result, err := c.Predict(ctx, a.Predict.Text, "")
		if err != nil {
			return err
		}
		return printJSON(out, result)

	case a.Info != nil && a.Info.Server != "":
		c := client.NewSentimentClient(a.Info.Server, a.Timeout)
		info, err := c.ModelInfo(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, info)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewCLILogger(&cfg.Log)
	defer func() { _ = log.Sync() }()

	svc, err := app.New(cfg, log, localOptions(a)...)
	if err != nil {
		return err
	}
	defer svc.Close()

	return runLocal(ctx, svc, a, out, log)
}

// localOptions leaves Redis out of local runs unless asked for.
func localOptions(a *args) []app.Option {
	if a.Cache {
		return nil
	}
	return []app.Option{app.WithoutRedis()}
}

func runLocal(ctx context.Context, svc *app.App, a *args, out io.Writer, log *zap.Logger) error {
	switch {
	case a.Train != nil:
		result, err := svc.Training.TrainFile(ctx, a.Train.Dataset)
		if err != nil {
			return describe(err)
		}
		return printJSON(out, result)

	case a.Predict != nil:
		result, err := svc.Prediction.Predict(ctx, &usecase.PredictInput{Feedback: a.Predict.Text})
		if err != nil {
			return describe(err)
		}
		return printJSON(out, result)

	case a.Batch != nil:
		table, err := dataset.Open(a.Batch.Dataset)
		if err != nil {
			return describe(err)
		}
		bar := pb.StartNew(table.Len())
		report, err := svc.Prediction.PredictBatch(ctx, table, withBar(bar))
		bar.Finish()
		if err != nil {
			return describe(err)
		}
		return printJSON(out, report)

	case a.Evaluate != nil:
		table, err := dataset.Open(a.Evaluate.Dataset)
		if err != nil {
			return describe(err)
		}
		bar := pb.StartNew(table.Len())
		report, err := svc.Prediction.Evaluate(ctx, table, withBar(bar))
		bar.Finish()
		if err != nil {
			return describe(err)
		}
		return printJSON(out, report)

	case a.Info != nil:
		info, err := svc.Training.ModelInfo(ctx)
		if err != nil {
			return describe(err)
		}
		return printJSON(out, info)
	}

	log.Warn("No subcommand given")
	return errors.New("missing subcommand")
}

func withBar(bar *pb.ProgressBar) usecase.BatchOption {
	return usecase.WithProgress(func(done, _ int) {
		bar.SetCurrent(int64(done))
	})
}

// describe adds a hint to errors a user can act on
func describe(err error) error {
	var schemaErr *usecase.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		return err
	case errors.Is(err, usecase.ErrModelNotTrained):
		return fmt.Errorf("%w (run `%s train <dataset.csv>` first)", err, name)
	case errors.Is(err, usecase.ErrUnsupportedFormat):
		return fmt.Errorf("%w (only .csv files are supported)", err)
	default:
		return err
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
