package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hexaflex/zxreset/machine"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the program with the given arguments and returns the exit code.
// All deferred cleanup has happened by the time it returns.
func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}

	cmd := newRootCommand(viper.New(), stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(stderr, err)
	}

	return exitCode(err)
}

// newRootCommand creates the reset command. Flag parsing is left to
// parseArgs, cobra only hands over the raw arguments.
func newRootCommand(v *viper.Viper, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:                "reset [-H|--hard] [-S|--soft] [-r|--reset <value>] [-h|--help] [-v|--version]",
		Short:              AppDescription,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(_ *cobra.Command, args []string) error {
			return execute(v, args, stdout, stderr)
		},
	}
}

// execute opens the machine, boosts the cpu for the duration of the run
// and dispatches the action selected by args.
func execute(v *viper.Viper, args []string, stdout, stderr io.Writer) error {
	settings, err := loadSettings(v)
	if err != nil {
		return err
	}

	logger, err := newLogger(settings.LogLevel, stderr)
	if err != nil {
		return err
	}

	defer logger.Sync()
	defer zap.ReplaceGlobals(logger)()

	m, err := machine.Open(settings.Machine)
	if err != nil {
		return err
	}

	defer func() {
		if err := m.Close(); err != nil {
			logger.Warn("close machine", zap.Error(err))
		}
	}()

	restore, err := m.Boost()
	defer restore()
	if err != nil {
		return err
	}

	config, err := parseArgs(args)
	if err != nil {
		return err
	}

	return NewApp(config, m, stdout).Run()
}
