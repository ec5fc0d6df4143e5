package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/sara-star-quant/quantum-keycheck/internal/config"
	"github.com/sara-star-quant/quantum-keycheck/internal/constants"
	"github.com/sara-star-quant/quantum-keycheck/pkg/kem"
	"github.com/sara-star-quant/quantum-keycheck/pkg/keycheck"
	"github.com/sara-star-quant/quantum-keycheck/pkg/metrics"
)

// exitError carries a process exit code. A nil err means the command has
// already reported the outcome.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func fail(code int, err error) error {
	return &exitError{code: code, err: err}
}

// app holds what every subcommand shares once flags and config are resolved.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config

	log       *zap.Logger
	tp        *sdktrace.TracerProvider
	tracer    trace.Tracer
	collector *metrics.Collector

	out, errOut io.Writer
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) int {
	a := &app{v: config.New(), out: out, errOut: errOut}
	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	a.shutdown()
	if err == nil {
		return constants.ExitValid
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", ee.err)
		}
		return ee.code
	}
	fmt.Fprintf(errOut, "Error: %v\n", err)
	return constants.ExitProviderError
}

func (a *app) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "keycheck",
		Short: "Verify that post-quantum KEM key pairs belong together",
		Long: `keycheck encapsulates against a public key, decapsulates the ciphertext
with the secret key and compares the shared secrets in constant time.

Configuration is read from (lowest to highest precedence) built-in defaults,
$XDG_CONFIG_HOME/keycheck/config.yaml or --config, KEYCHECK_* environment
variables and flags.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/keycheck/config.yaml)")
	pf.String("scheme", "", fmt.Sprintf("KEM scheme (default %s, see 'keycheck schemes')", kem.Default().Name()))
	pf.String("encoding", "auto", "key encoding: auto, raw, hex, base64, pem")
	pf.String("log-level", "warn", "log level: debug, info, warn, error, silent")
	pf.String("log-format", "text", "log format: text, json")
	pf.String("tracing", config.TracingNone, "span exporter: none, stdout")

	root.AddCommand(
		a.newValidateCommand(),
		a.newBatchCommand(),
		a.newSchemesCommand(),
		a.newSelfTestCommand(),
		a.newBenchCommand(),
		a.newVersionCommand(),
	)
	return root
}

// setup resolves configuration and builds the logger and tracer.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.ReadFile(a.v, a.configPath); err != nil {
		return fail(constants.ExitProviderError, err)
	}
	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return fail(constants.ExitProviderError, err)
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return fail(constants.ExitProviderError, err)
	}
	a.cfg = cfg

	level, err := metrics.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fail(constants.ExitProviderError, err)
	}
	format, err := metrics.ParseFormat(cfg.Log.Format)
	if err != nil {
		return fail(constants.ExitProviderError, err)
	}
	a.log = metrics.NewLogger(
		metrics.WithOutput(a.errOut),
		metrics.WithLevel(level),
		metrics.WithFormat(format),
		metrics.WithName("keycheck"),
	)
	otelzap.ReplaceGlobals(otelzap.New(a.log))

	switch cfg.Tracing {
	case config.TracingStdout:
		exp, err := stdouttrace.New(stdouttrace.WithWriter(a.errOut), stdouttrace.WithPrettyPrint())
		if err != nil {
			return fail(constants.ExitProviderError, fmt.Errorf("stdout exporter: %w", err))
		}
		a.tp = sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
		a.tracer = metrics.Tracer(a.tp)
	default:
		a.tracer = noop.NewTracerProvider().Tracer(constants.ToolName)
	}

	a.collector = metrics.NewCollector(nil)
	return nil
}

func (a *app) shutdown() {
	if a.tp != nil {
		_ = a.tp.Shutdown(context.Background())
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

// provider resolves the scheme from configuration.
func (a *app) provider(name string) (kem.Provider, error) {
	p, err := kem.Lookup(name)
	if err != nil {
		return nil, fail(constants.ExitProviderError, err)
	}
	return p, nil
}

func (a *app) validator(p kem.Provider, opts ...keycheck.Option) *keycheck.Validator {
	base := []keycheck.Option{
		keycheck.WithTracer(a.tracer),
		keycheck.WithLogger(a.log),
		keycheck.WithCollector(a.collector),
	}
	return keycheck.New(p, append(base, opts...)...)
}

// preflight runs the provider self-test before any key is judged.
func (a *app) preflight(cmd *cobra.Command, v *keycheck.Validator) error {
	res := v.SelfTest(cmd.Context())
	if err := res.Err(); err != nil {
		return fail(constants.ExitProviderError, err)
	}
	otelzap.Ctx(cmd.Context()).Info("provider self-test passed",
		zap.String("scheme", res.Scheme), zap.Duration("elapsed", res.Duration))
	return nil
}
