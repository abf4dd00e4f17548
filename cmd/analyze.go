package cmd

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/rmaia/daybook/insight"
)

type analyzeCmd struct {
	image   string
	trigger string
	model   string
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "ask a model whether a chart shows your entry trigger" }
func (*analyzeCmd) Usage() string {
	return `dbk analyze -image <chart.png> -trigger <description>

  Sends a chart screenshot to a Gemini model together with the description
  of your entry setup, and prints whether the setup is visible, in which
  direction, and with what confidence. Requires GEMINI_API_KEY.

Usage Examples:
$ dbk analyze -image eurusd.png -trigger "bullish engulfing on a support level"
`
}

func (p *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.image, "image", "", "Path to the chart screenshot.")
	f.StringVar(&p.trigger, "trigger", "", "Description of the entry setup to look for.")
	f.StringVar(&p.model, "model", insight.DefaultModel, "Model to ask.")
}

func (p *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.image == "" || p.trigger == "" {
		fmt.Fprintln(os.Stderr, "Error: both -image and -trigger are required.")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(p.image)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading image: %v\n", err)
		return subcommands.ExitFailure
	}
	mimeType := mime.TypeByExtension(filepath.Ext(p.image))
	if mimeType == "" {
		mimeType = "image/png"
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst := insight.NewAnalyst(client)
	analyst.ModelName = p.model
	verdict, err := analyst.Analyze(ctx, data, mimeType, p.trigger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing chart: %v\n", err)
		return subcommands.ExitFailure
	}

	if !verdict.Trigger {
		fmt.Printf("No trigger (confidence %d%%): %s\n", verdict.Confidence, verdict.Rationale)
		return subcommands.ExitSuccess
	}
	fmt.Printf("Trigger %s (confidence %d%%): %s\n", verdict.Direction, verdict.Confidence, verdict.Rationale)
	return subcommands.ExitSuccess
}
