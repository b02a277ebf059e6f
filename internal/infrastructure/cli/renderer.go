package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/nlsh-go/internal/application/shell"
	"github.com/doeshing/nlsh-go/internal/domain"
)

// RenderResult prints one execution outcome in a friendly, ASCII-only format.
func RenderResult(result domain.CommandResult) {
	if result.Error != "" {
		fmt.Printf("error: %s\n", result.Error)
	}
	if result.Output != "" {
		fmt.Print(result.Output)
		if !strings.HasSuffix(result.Output, "\n") {
			fmt.Println()
		}
	}
	if result.SuggestedFollowup != "" {
		fmt.Printf("did you mean: %s\n", result.SuggestedFollowup)
	}
	if result.Success {
		fmt.Printf("done in %s\n", result.Duration.Round(time.Millisecond))
	}
}

// RenderInterpretation prints the parsed command or its clarifying question.
func RenderInterpretation(in shell.Interpretation) {
	if in.Question != "" {
		fmt.Println(in.Question)
		for i, opt := range in.Options {
			fmt.Printf("  %d) %s\n", i+1, opt.Command)
		}
		return
	}
	fmt.Printf("Command: %s\n", in.Command.CanonicalForm)
	fmt.Printf("Confidence: %.2f\n", in.Command.Confidence)
	if in.Command.RequiresConfirm {
		fmt.Println("Note: this command requires confirmation before running.")
	}
}

// RenderHistory prints persisted records, newest first.
func RenderHistory(records []domain.HistoryRecord) {
	if len(records) == 0 {
		fmt.Println("No history yet.")
		return
	}
	for _, rec := range records {
		status := "ok"
		if !rec.Success {
			status = fmt.Sprintf("exit %d", rec.ExitCode)
		}
		fmt.Printf("%-18s %-8s %s\n", humanize.Time(rec.Timestamp), status, rec.Command)
		if rec.Input != "" && rec.Input != rec.Command {
			fmt.Printf("%18s input: %s\n", "", rec.Input)
		}
	}
}

// RenderStats prints the session counters.
func RenderStats(stats domain.SessionStats) {
	fmt.Printf("Commands:        %s\n", humanize.Comma(int64(stats.TotalCommands)))
	fmt.Printf("Successful:      %s\n", humanize.Comma(int64(stats.SuccessfulCommands)))
	fmt.Printf("Failed:          %s\n", humanize.Comma(int64(stats.FailedCommands)))
	fmt.Printf("Disambiguations: %s\n", humanize.Comma(int64(stats.Disambiguations)))
	fmt.Printf("Corrections:     %s\n", humanize.Comma(int64(stats.Corrections)))
	fmt.Printf("Avg confidence:  %.2f\n", stats.AvgConfidence)
}

// RenderCompletions prints ranked suggestions.
func RenderCompletions(items []domain.CompletionItem) {
	for _, item := range items {
		if item.Description != "" {
			fmt.Printf("%-30s %.1f  %s (%s)\n", item.Text, item.Score, item.Description, item.Kind)
		} else {
			fmt.Printf("%-30s %.1f  (%s)\n", item.Text, item.Score, item.Kind)
		}
	}
}

// RenderIntents prints the intent registry.
func RenderIntents(intents []domain.Intent) {
	for _, in := range intents {
		fmt.Printf("%-18s %-12s %s\n", in.Name, in.Category, in.Description)
		if len(in.Examples) > 0 {
			fmt.Printf("%18s e.g. %q\n", "", in.Examples[0])
		}
	}
}

// RenderHealthReport prints doctor checks.
func RenderHealthReport(report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Printf("[%-5s] %-16s %s\n", check.Status, check.Name, check.Details)
	}
}
