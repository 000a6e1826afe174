// Command newton finds a root of a function of x with the Newton-Raphson
// method and plots the iterates.
//
// Usage:
//
//	newton --fun "x**2 - 2" --xinit 1 --err 1e-6
//	newton --fun "cos(x) - x" --xmin 0 --xmax 3 --err 1e-9 --seed 1 --plot trace.svg
//
// Every flag can also be given as an environment variable with the NEWTON_
// prefix (NEWTON_MAX_ITER for --max-iter) or in the file named by --config.
//
// The exit status is 0 when the search converged, 2 when it ended without
// converging and 1 on any other error.
package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/btracey/newton/chart"
	"github.com/btracey/newton/common"
	"github.com/btracey/newton/expr"
	"github.com/btracey/newton/univariate"
	"github.com/btracey/newton/write"
)

const (
	exitError        = 1
	exitUnsuccessful = 2
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "newton:", err)
		os.Exit(exitCode(err))
	}
}

// unsuccessfulError is returned when the search ended without converging.
type unsuccessfulError struct {
	status common.Status
}

func (e *unsuccessfulError) Error() string {
	return "search ended without convergence: " + e.status.String()
}

func exitCode(err error) int {
	var u *unsuccessfulError
	if errors.As(err, &u) {
		return exitUnsuccessful
	}
	return exitError
}

type config struct {
	fun   string
	xmin  float64
	xmax  float64
	xinit float64
	tol   float64

	maxIter  int
	derivTol float64
	cycleTol float64

	seed   uint64
	seeded bool

	numericDeriv bool
	plotPath     string
	logPath      string
	quiet        bool
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:           "newton --fun EXPR --err TOL [flags]",
		Short:         "Find a root of f(x) with the Newton-Raphson method",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(*cobra.Command, []string) error {
			return readConfigFile(v)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), cfg)
		},
	}

	f := cmd.Flags()
	f.String("fun", "", `function of x, e.g. "x**2 - 2" (required)`)
	f.Float64("xmin", 0, "lower bound of the random start")
	f.Float64("xmax", 0, "upper bound of the random start")
	f.Float64("xinit", 0, "initial iterate; if omitted an integer in [xmin, xmax] is drawn")
	f.Float64("err", 0, "stop once |f(x)| is below this tolerance (required)")
	f.Int("max-iter", common.DefaultCommonSettings().MaximumIterations, "maximum number of iterations, negative for no limit")
	f.Float64("deriv-tol", 0, "derivative magnitudes at or below this stop the search")
	f.Float64("cycle-tol", -1, "stop when an iterate returns within this distance of the one two steps earlier; non-positive disables")
	f.Uint64("seed", 0, "seed for the random start")
	f.Bool("numeric-deriv", false, "estimate the derivative with finite differences")
	f.String("plot", "trace.png", "image file for the iterate plot, empty to disable")
	f.String("log", "", "csv file receiving one row per iteration")
	f.Bool("quiet", false, "do not display iterations")
	f.String("config", "", "config file (yaml, json or toml)")
	cobra.CheckErr(v.BindPFlags(f))

	v.SetEnvPrefix("NEWTON")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return cmd
}

func readConfigFile(v *viper.Viper) error {
	path := v.GetString("config")
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// optionalFloat returns NaN for a setting given neither as flag, environment
// variable nor in the config file.
func optionalFloat(v *viper.Viper, key string) float64 {
	if !v.IsSet(key) {
		return math.NaN()
	}
	return v.GetFloat64(key)
}

func loadConfig(v *viper.Viper) (config, error) {
	cfg := config{
		fun:          v.GetString("fun"),
		xmin:         optionalFloat(v, "xmin"),
		xmax:         optionalFloat(v, "xmax"),
		xinit:        optionalFloat(v, "xinit"),
		tol:          optionalFloat(v, "err"),
		maxIter:      v.GetInt("max-iter"),
		derivTol:     v.GetFloat64("deriv-tol"),
		cycleTol:     v.GetFloat64("cycle-tol"),
		seed:         v.GetUint64("seed"),
		seeded:       v.IsSet("seed"),
		numericDeriv: v.GetBool("numeric-deriv"),
		plotPath:     v.GetString("plot"),
		logPath:      v.GetString("log"),
		quiet:        v.GetBool("quiet"),
	}
	if strings.TrimSpace(cfg.fun) == "" {
		return cfg, errors.New("--fun is required")
	}
	if math.IsNaN(cfg.tol) {
		return cfg, errors.New("--err is required")
	}
	return cfg, nil
}

func run(out io.Writer, cfg config) error {
	fn, err := expr.Compile(cfg.fun, "x")
	if err != nil {
		return err
	}
	var df univariate.Derivative = fn
	if cfg.numericDeriv {
		df = nil
	}

	settings := univariate.DefaultSettings()
	settings.XMin = cfg.xmin
	settings.XMax = cfg.xmax
	settings.XInit = cfg.xinit
	settings.FunAbsTol = cfg.tol
	settings.MaximumIterations = cfg.maxIter
	settings.LocCycleTol = cfg.cycleTol
	if cfg.seeded {
		settings.Rand = rand.New(rand.NewPCG(cfg.seed, 0))
	}

	settings.DisplayWriters = nil
	if !cfg.quiet {
		settings.DisplayWriters = append(settings.DisplayWriters, write.Writer{Writer: out, T: write.Displayer})
		deriv := fn.DerivString()
		if cfg.numericDeriv {
			deriv = "finite differences"
		}
		fmt.Fprintf(out, "f(x) = %v\nf'(x) = %v\n", fn, deriv)
	}
	if cfg.logPath != "" {
		logFile, err := os.Create(cfg.logPath)
		if err != nil {
			return err
		}
		defer logFile.Close()
		settings.DisplayWriters = append(settings.DisplayWriters, write.Writer{Writer: logFile, T: write.Logger})
	}

	result, err := univariate.FindRoot(fn, df, settings, &univariate.Newton{DerivativeTol: cfg.derivTol})
	if err != nil {
		return err
	}
	if err := univariate.WriteSummary(out, result); err != nil {
		return err
	}

	if cfg.plotPath != "" && result.Trace.Len() > 0 {
		if err := chart.Save(cfg.plotPath, result.Trace, "Newton-Raphson: "+fn.String()); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
		fmt.Fprintf(out, "Trace written to %s\n", cfg.plotPath)
	}

	if !result.Status.Converged() {
		return &unsuccessfulError{status: result.Status}
	}
	return nil
}
