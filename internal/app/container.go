// Package app wires application services to their infrastructure adapters.
package app

import (
	"context"

	"github.com/doeshing/nlsh-go/internal/application/doctor"
	"github.com/doeshing/nlsh-go/internal/application/shell"
	"github.com/doeshing/nlsh-go/internal/infrastructure/complete"
	"github.com/doeshing/nlsh-go/internal/infrastructure/config"
	"github.com/doeshing/nlsh-go/internal/infrastructure/disambiguate"
	"github.com/doeshing/nlsh-go/internal/infrastructure/entity"
	"github.com/doeshing/nlsh-go/internal/infrastructure/executor"
	"github.com/doeshing/nlsh-go/internal/infrastructure/feedback"
	"github.com/doeshing/nlsh-go/internal/infrastructure/generate"
	"github.com/doeshing/nlsh-go/internal/infrastructure/history"
	"github.com/doeshing/nlsh-go/internal/infrastructure/intent"
	"github.com/doeshing/nlsh-go/internal/infrastructure/security"
	"github.com/doeshing/nlsh-go/internal/infrastructure/session"
	"github.com/doeshing/nlsh-go/internal/pkg/logger"
	"github.com/doeshing/nlsh-go/internal/ports"
)

// Container holds the dependency graph for one process.
type Container struct {
	ShellService  *shell.Service
	ShellDeps     shell.Deps
	DoctorService *doctor.Service
	ConfigLoader  *config.FileLoader
	HistoryStore  ports.HistoryRepository
	FeedbackStore ports.FeedbackRepository
	Learner       *feedback.Learner
	Session       *session.Manager
	Background    *executor.BackgroundPool
	Logger        ports.Logger
}

// BuildContainer constructs the dependency graph. Prompter and output sink
// are left for the CLI to attach via ShellDeps before building the service.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)

	guardrail, err := security.NewGuardrail(cfg.Security.RulesFile)
	if err != nil {
		guardrail, err = security.NewGuardrail("")
		if err != nil {
			return nil, err
		}
	}

	shellPath := cfg.Execution.Shell
	if shellPath == "auto" {
		shellPath = ""
	}
	runner := executor.NewRunner(shellPath)
	background := executor.NewBackgroundPool(runner)

	historyStore := history.NewSQLiteStore()
	feedbackStore := feedback.NewSQLiteStore()
	learner := feedback.NewLearner(feedbackStore)

	sess := session.NewManager()
	sess.Refresh()

	recognizer := intent.NewRecognizer()

	container := &Container{
		DoctorService: &doctor.Service{
			ConfigProvider:  cfgLoader,
			SecurityService: guardrail,
			HistoryStore:    historyStore,
			IntentCount:     func() int { return len(recognizer.List()) },
		},
		ConfigLoader:  cfgLoader,
		HistoryStore:  historyStore,
		FeedbackStore: feedbackStore,
		Learner:       learner,
		Session:       sess,
		Background:    background,
		Logger:        log,
	}

	container.ShellDeps = shell.Deps{
		Recognizer:    recognizer,
		Extractor:     entity.NewExtractor(),
		Generator:     generate.NewGenerator(),
		Session:       sess,
		Disambiguator: disambiguate.NewDisambiguator(),
		Learner:       learner,
		Completer:     complete.NewCompleter(sess),

		ConfigProvider: cfgLoader,
		Security:       guardrail,
		Runner:         runner,
		Background:     background,
		History:        historyStore,
		Logger:         log,
	}
	return container, nil
}

// AttachFrontend completes the graph with the user-facing capabilities and
// builds the shell service.
func (c *Container) AttachFrontend(prompter ports.ConfirmationPrompter, output ports.OutputSink) {
	c.ShellDeps.Prompter = prompter
	c.ShellDeps.Output = output
	c.ShellService = shell.NewService(c.ShellDeps)
}
