package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/declogic/setdec"
	"github.com/declogic/setdec/internal/parse"
)

var (
	showTrace bool

	provedStyle    = color.New(color.FgGreen, color.Bold)
	notProvedStyle = color.New(color.FgRed, color.Bold)
	fileStyle      = color.New(color.FgCyan, color.Bold)
)

var proveCmd = &cobra.Command{
	Use:   "prove [files...]",
	Short: "Run the decision procedure on proof script files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide proof script files")
			os.Exit(1)
		}
		failed := 0
		for _, path := range args {
			if !proveFile(path) {
				failed++
			}
		}
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	proveCmd.Flags().BoolVar(&showTrace, "trace", false, "Print the closed case-split tree on success")
}

func proveFile(path string) bool {
	script, err := loadScript(path)
	if err != nil {
		logger.Error("Failed to load script", zap.String("file", path), zap.Error(err))
		return false
	}

	prover := setdec.NewWithOptions(setdec.Options{StepLimit: stepLimit})
	res := prover.Decide(script.Hyps, script.Goal)

	fileStyle.Print(path)
	fmt.Print(": ")
	if res.Verdict == setdec.Proved {
		provedStyle.Println("PROVED")
	} else {
		notProvedStyle.Printf("NOT PROVED (%s)\n", res.Reason)
	}
	for _, name := range res.Dropped {
		fmt.Printf("  dropped hypothesis outside fragment: %s\n", name)
	}
	if showTrace && res.Certificate != nil {
		fmt.Print(res.Certificate.Steps())
	}
	return res.Verdict == setdec.Proved
}

func loadScript(path string) (*parse.Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	script, err := parse.ParseScript(string(src))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return script, nil
}
