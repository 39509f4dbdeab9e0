package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"readmearchitect/app/config"
	"readmearchitect/app/usecase"
	"readmearchitect/internal/domain/entity"
	"readmearchitect/internal/infrastructure/llm"
	"readmearchitect/internal/readme"
)

// newRootCmd builds the readmectl command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "readmectl",
		Short:         "Generate README documents from project metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd(), newGenerateCmd())
	return root
}

func addRequestFlags(cmd *cobra.Command, req *entity.GenerationRequest) {
	f := cmd.Flags()
	f.StringVar(&req.ProjectName, "name", "", "project name (required)")
	f.StringVar(&req.Description, "description", "", "project description")
	f.StringVar(&req.TechStack, "tech-stack", "", "technologies used")
	f.StringVar(&req.Features, "features", "", "key features")
	f.StringVar(&req.InstallationSteps, "install", "", "installation steps")
	f.StringVar(&req.ExtraNotes, "notes", "", "extra notes")
	_ = cmd.MarkFlagRequired("name")
}

func newRenderCmd() *cobra.Command {
	var req entity.GenerationRequest
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the basic README template",
		Long: `Render a README from the built-in template. No network access.

Examples:
  readmectl render --name demo --description "A small tool"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Mode = entity.ModeBasic
			if err := req.Validate(); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), readme.Render(req))
			return nil
		},
	}
	addRequestFlags(cmd, &req)
	return cmd
}

func newGenerateCmd() *cobra.Command {
	var (
		req     entity.GenerationRequest
		mode    string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a README in basic or advanced mode",
		Long: `Generate a README. Advanced mode calls the configured Langflow
workflow (LANGFLOW_API_URL, LANGFLOW_FLOW_ID, LANGFLOW_API_KEY).

Examples:
  readmectl generate --name demo --mode advanced --features "fast, small"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}

			level := cfg.SlogLevel()
			if !verbose {
				level = slog.LevelError
			}
			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			req.Mode = entity.GenerationMode(mode)
			req = req.Normalize()
			if err := req.Validate(); err != nil {
				return err
			}

			generator := usecase.NewReadmeGeneratorService(llm.NewLangflowInvoker(cfg.Langflow.Timeout, logger), logger)
			result, err := generator.Generate(cmd.Context(), req, cfg.Workflow())
			if err != nil {
				if f, ok := entity.AsFailure(err); ok {
					fmt.Fprintf(cmd.ErrOrStderr(), "generation failed [%s] %s (retryable=%t)\n", f.Kind, f.Message, f.Retryable)
				}
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), result.Readme)
			return nil
		},
	}
	addRequestFlags(cmd, &req)
	cmd.Flags().StringVar(&mode, "mode", string(entity.ModeBasic), "basic or advanced")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log at the configured LOG_LEVEL")
	return cmd
}
