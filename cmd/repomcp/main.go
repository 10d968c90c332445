package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/repomcp/repomcp/internal"
	"github.com/repomcp/repomcp/internal/config"
	"github.com/repomcp/repomcp/internal/observability"
	"github.com/repomcp/repomcp/internal/repodata"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var hostsConfigParameter string
var hostParameter string
var noProgressbar bool

type ProgressBar struct {
	bar *progressbar.ProgressBar
}

func CreateProgressBar() *ProgressBar {
	return &ProgressBar{bar: nil}
}

func (p *ProgressBar) Init(nbTotal int) {
	bar := progressbar.NewOptions(nbTotal,
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetDescription("resolving urls"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(36),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
	)
	p.bar = bar
}

func (p *ProgressBar) LoadingAsset(nb int) {
	if p.bar == nil {
		return
	}
	p.bar.Add(nb)
}

func newResolver() *repodata.Resolver {
	hostsConfigFile := hostsConfigParameter
	if hostsConfigFile == "" {
		hostsConfigFile = config.Config.HostsConfigFile
	}
	cfg, err := config.ResolverConfig(hostsConfigFile)
	if err != nil {
		logrus.Fatalf("failed to load the hosts configuration: %s", err)
	}
	return repodata.NewResolver(cfg)
}

// useStderrForLogs keeps stdout for the json output of the cli commands
func useStderrForLogs() {
	logrus.SetOutput(os.Stderr)
}

// runBatch resolves every url of input: json lines go to out, logs to logger
func runBatch(batch *internal.RepoBatch, input io.Reader, out io.Writer, logger logrus.FieldLogger) error {
	logsCollector := observability.NewLogCollection()
	entries, err := batch.Resolve(input, logsCollector)
	if err != nil {
		return err
	}
	if err := internal.WriteBatchEntries(out, entries); err != nil {
		return err
	}
	logsCollector.Report(logger, "batch")
	return nil
}

func printJSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		logrus.Errorf("not able to encode %v: %s", v, err)
		return
	}
	fmt.Println(string(b))
}

func main() {
	resolveCmd := &cobra.Command{
		Use:   "resolve <url>... [--host request_host]",
		Short: "Resolve the repository addressed by one or more urls",
		Long: `Resolve the repository (owner, repo, url type) addressed by urls.
Without --host each url is resolved on its own (github.com/o/r, o.github.io/r, o/r, ...).
With --host each url is a request url (like /o/r) received on that host.`,
		Args: cobra.MatchAll(cobra.MinimumNArgs(1), cobra.OnlyValidArgs),
		Run: func(cmd *cobra.Command, args []string) {
			useStderrForLogs()
			resolver := newResolver()
			for _, u := range args {
				if hostParameter != "" {
					printJSON(resolver.Resolve(hostParameter, u))
				} else {
					printJSON(resolver.ResolveFromURL(u))
				}
			}
		},
	}
	resolveCmd.Flags().StringVarP(&hostParameter, "host", "H", "", "request host the urls are sent to")

	batchCmd := &cobra.Command{
		Use:   "batch <file> [--host request_host] [--noprogressbar]",
		Short: "Resolve every url of a file (one per line)",
		Long: `Resolve every url of a file (one per line, '-' for stdin).
Empty lines and lines starting with # are skipped.
Each result is printed as a json line, urls without repository are reported at the end.`,
		Args: cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Run: func(cmd *cobra.Command, args []string) {
			useStderrForLogs()
			var input io.Reader = os.Stdin
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					logrus.Fatalf("failed to open %s: %s", args[0], err)
				}
				defer f.Close()
				input = f
			}

			batch := internal.NewRepoBatch(newResolver(), hostParameter)
			if !noProgressbar {
				batch.SetResolveFeedback(CreateProgressBar())
			}

			var span trace.Span
			if config.Config.OpenTelemetryEnabled {
				tracer := otel.Tracer("repomcp")
				_, span = tracer.Start(context.Background(), "batch")
			}

			err := runBatch(batch, input, os.Stdout, logrus.StandardLogger())
			if span != nil {
				span.End()
				if err := config.ShutdownTraceProvider(); err != nil {
					logrus.Errorf("failed to shutdown the trace provider: %s", err)
				}
			}
			if err != nil {
				logrus.Fatalf("failed to resolve the urls: %s", err)
			}
		},
	}
	batchCmd.Flags().StringVarP(&hostParameter, "host", "H", "", "request host the urls are sent to")
	batchCmd.Flags().BoolVarP(&noProgressbar, "noprogressbar", "p", false, "do not display a progress bar")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the http server",
		Long: `Start the http server answering every request with the repository it addresses.
The server listens on REPOMCP_SERVER_HOST:REPOMCP_SERVER_PORT.`,
		Run: func(cmd *cobra.Command, args []string) {
			server := internal.NewRepoServer(newResolver(), config.Config.ServerHost, config.Config.ServerPort)
			server.Serve()
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Return the version of the repomcp CLI",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.BuildVersion)
		},
	}

	rootCmd := &cobra.Command{
		Use:   "repomcp",
		Short: "Resolve github repositories from repomcp requests",
		Long: `repomcp resolves the github repository (owner/repo) addressed by a request,
whether it is addressed by path (repomcp.com/owner/repo), by subdomain
(owner.repomcp.com/repo, owner.github.io/repo), or through a preview or local host.`,
	}
	rootCmd.PersistentFlags().StringVarP(&hostsConfigParameter, "hosts-config", "c", "", "hosts yaml file (default env variable REPOMCP_HOSTS_CONFIG_FILE)")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
