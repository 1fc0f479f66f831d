package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aidanlogic/aidanlogic/internal/api/dto/v1/contact"
	"github.com/aidanlogic/aidanlogic/internal/config"
	"github.com/aidanlogic/aidanlogic/internal/server"
	"github.com/aidanlogic/aidanlogic/internal/version"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the aidanlogic command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aidanlogic",
		Short: "aidanlogic contact form API",
		Long: `aidanlogic serves the website contact form endpoint. Submissions are
checked with Cloudflare Turnstile and relayed to Formspree.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSendCmd())

	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.Start(ctx, cfg)
		},
	}
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "aidanlogic version: %s\n", version.Info())

			serverURL, _ := cmd.Flags().GetString("server")
			if serverURL == "" {
				return nil
			}

			info, err := version.FetchServerBuildInfo(cmd.Context(), serverURL)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "server version: %s\n", info.String())
			return nil
		},
	}
	cmd.Flags().String("server", "", "Also query the build info of a running API server (e.g. http://localhost:8080)")
	return cmd
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect server configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Load and validate configuration from the environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			printConfig(cmd.OutOrStdout(), cfg)
			return nil
		},
	})

	return configCmd
}

func printConfig(w io.Writer, cfg *config.Config) {
	for _, kv := range cfg.Redacted() {
		fmt.Fprintf(w, "%-28s %s\n", kv[0], kv[1])
	}
	fmt.Fprintln(w, "Configuration OK")
}

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Submit a contact form message to a running API server",
		Long: `Submit a contact form message the same way the website does.

Example:
  aidanlogic send --api http://localhost:8080 --name "Jane Doe" \
    --email jane@example.com --subject Hi --message Hello --token XXXX.DUMMY.TOKEN.XXXX`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			apiURL, _ := flags.GetString("api")
			timeout, _ := flags.GetDuration("timeout")

			req := contact.ContactRequest{}
			req.FullName, _ = flags.GetString("name")
			req.Email, _ = flags.GetString("email")
			req.Subject, _ = flags.GetString("subject")
			req.Message, _ = flags.GetString("message")
			req.TurnstileToken, _ = flags.GetString("token")

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			s := spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
			s.Suffix = " Sending message..."
			s.Start()
			resp, err := SendContact(ctx, apiURL, req)
			s.Stop()

			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", resp.Status, resp.Message)
			if !resp.Success {
				return fmt.Errorf("submission failed with status %d", resp.Status)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("api", "http://localhost:8080", "Base URL of the API server")
	flags.String("name", "", "Sender full name")
	flags.String("email", "", "Sender email address")
	flags.String("subject", "", "Message subject")
	flags.String("message", "", "Message body")
	flags.String("token", "", "Turnstile response token")
	flags.Duration("timeout", 30*time.Second, "Overall request timeout")

	return cmd
}
