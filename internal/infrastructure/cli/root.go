package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/nlsh-go/assets"
	"github.com/doeshing/nlsh-go/internal/app"
	"github.com/doeshing/nlsh-go/internal/domain"
	"github.com/doeshing/nlsh-go/internal/infrastructure/config"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	container.AttachFrontend(NewPrompter(nil, nil), NewStdoutSink(nil))

	execCmd := newExecCommand(container)

	root := &cobra.Command{
		Use:   "nlsh [input]",
		Short: "NLSH - natural language shell",
		Long:  "NLSH translates plain English into shell commands, with confidence scoring, safety gating, and feedback learning.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			execCmd.SetArgs(args)
			return execCmd.ExecuteContext(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(execCmd)
	root.AddCommand(newTranslateCommand(container))
	root.AddCommand(newReplCommand(container))
	root.AddCommand(newExplainCommand(container))
	root.AddCommand(newIntentsCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newFeedbackCommand(container))
	root.AddCommand(newCompleteCommand(container))
	root.AddCommand(newJobCommand(container))
	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newStatsCommand(container))
	return root, nil
}

func newExecCommand(container *app.Container) *cobra.Command {
	var background bool

	cmd := &cobra.Command{
		Use:   "exec [natural language]",
		Short: "Translate the input and run the resulting command",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			if background {
				jobID, err := container.ShellService.ExecuteBackground(cmd.Context(), input)
				if err != nil {
					return err
				}
				fmt.Printf("started %s (poll with: nlsh job poll %s)\n", jobID, jobID)
				return nil
			}
			result := container.ShellService.Execute(cmd.Context(), input)
			RenderResult(result)
			if !result.Success && result.Error == "" {
				return fmt.Errorf("command exited with code %d", result.ExitCode)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&background, "background", "b", false, "Run the command as a tracked background job")
	return cmd
}

func newTranslateCommand(container *app.Container) *cobra.Command {
	var copyCmd bool

	cmd := &cobra.Command{
		Use:   "translate [natural language]",
		Short: "Show the shell command for an input without running it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			in := container.ShellService.Interpret(input)
			RenderInterpretation(in)
			if in.Question != "" || in.Command.CanonicalForm == "" {
				return nil
			}
			if copyCmd {
				clipboard := NewClipboard()
				if clipboard.Enabled() {
					if err := clipboard.Copy(in.Command.CanonicalForm); err != nil {
						fmt.Printf("clipboard copy failed: %v\n", err)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&copyCmd, "copy", "c", false, "Copy the generated command to the clipboard")
	return cmd
}

func newReplCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive read-translate-execute loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			scanner := bufio.NewScanner(os.Stdin)
			fmt.Println("Type what you want to do; 'exit' to leave.")
			for {
				fmt.Print("nlsh> ")
				if !scanner.Scan() {
					fmt.Println()
					return scanner.Err()
				}
				if !container.ShellService.ProcessLine(cmd.Context(), scanner.Text()) {
					RenderStats(container.ShellService.Stats())
					return nil
				}
			}
		},
	}
}

func newExplainCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [command]",
		Short: "Describe what a shell command does",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(container.ShellService.Explain(strings.Join(args, " ")))
			return nil
		},
	}
}

func newIntentsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "intents",
		Short: "List the registered intents",
		RunE: func(cmd *cobra.Command, args []string) error {
			RenderIntents(container.ShellService.ListIntents())
			return nil
		},
	}
}

func newHistoryCommand(container *app.Container) *cobra.Command {
	var (
		limit  int
		search string
		clear  bool
		export string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show executed commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if clear {
				if err := container.HistoryStore.Clear(); err != nil {
					return err
				}
				fmt.Println("History cleared.")
				return nil
			}
			if export != "" {
				exporter, ok := container.HistoryStore.(interface{ ExportJSON(string) error })
				if !ok {
					return fmt.Errorf("history store does not support export")
				}
				if err := exporter.ExportJSON(export); err != nil {
					return err
				}
				fmt.Printf("History exported to %s\n", export)
				return nil
			}
			records, err := container.HistoryStore.Records(limit, search)
			if err != nil {
				return err
			}
			RenderHistory(records)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum records to show")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by substring of input or command")
	cmd.Flags().BoolVar(&clear, "clear", false, "Delete all history")
	cmd.Flags().StringVar(&export, "export", "", "Export history to a jsonl file")
	return cmd
}

func newFeedbackCommand(container *app.Container) *cobra.Command {
	feedbackCmd := &cobra.Command{
		Use:   "feedback",
		Short: "Record corrections and inspect learning stats",
	}

	var correction string
	recordCmd := &cobra.Command{
		Use:   "record [input] [generated]",
		Short: "Record whether a generated command was right",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			correct := correction == ""
			container.ShellService.RecordFeedback(args[0], args[1], correct, correction)
			if correct {
				fmt.Println("Recorded as correct.")
			} else {
				fmt.Printf("Recorded correction: %s\n", correction)
			}
			return nil
		},
	}
	recordCmd.Flags().StringVar(&correction, "correction", "", "The command that should have been generated")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show learning accuracy",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Feedback entries: %d\n", container.Learner.Count())
			fmt.Printf("Accuracy:         %.0f%%\n", container.Learner.Accuracy()*100)
			return nil
		},
	}

	feedbackCmd.AddCommand(recordCmd, statsCmd)
	return feedbackCmd
}

func newCompleteCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "complete [partial]",
		Short: "Suggest completions for a partial input",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			RenderCompletions(container.ShellService.Suggest(strings.Join(args, " "), limit))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum suggestions")
	return cmd
}

func newJobCommand(container *app.Container) *cobra.Command {
	jobCmd := &cobra.Command{
		Use:   "job",
		Short: "Manage background jobs",
	}

	jobCmd.AddCommand(&cobra.Command{
		Use:   "poll [job_id]",
		Short: "Fetch the result of a finished background job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, ok := container.Background.PollBackground(args[0])
			if !ok {
				fmt.Println("not ready yet")
				return nil
			}
			RenderResult(result)
			return nil
		},
	})

	jobCmd.AddCommand(&cobra.Command{
		Use:   "cancel [job_id]",
		Short: "Drop tracking for a background job",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one job id")
			}
			if container.Background.CancelBackground(args[0]) {
				fmt.Println("job dropped (the spawned process, if any, keeps running)")
			} else {
				fmt.Println("no such job")
			}
			return nil
		},
	})
	return jobCmd
}

func newConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect NLSH configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigLoader.Load(cmd.Context())
			if err != nil {
				return err
			}
			raw, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(raw))
			return nil
		},
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "diff",
		Short: "Show differences from the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigLoader.Load(cmd.Context())
			if err != nil {
				return err
			}
			var defaults domain.Config
			if err := yaml.Unmarshal(assets.DefaultConfigYAML, &defaults); err != nil {
				return err
			}
			diff := cmp.Diff(config.Hydrate(defaults), cfg)
			if diff == "" {
				fmt.Println("No differences from default configuration.")
				return nil
			}
			fmt.Print(diff)
			return nil
		},
	})
	return configCmd
}

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the local environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.DoctorService.Run(cmd.Context())
			RenderHealthReport(report)
			return err
		},
	}
}

func newStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show session statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			RenderStats(container.ShellService.Stats())
			return nil
		},
	}
}
