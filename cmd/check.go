package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/declogic/setdec"
	"github.com/declogic/setdec/internal/model"
)

var universeSize int

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Model-check proof scripts by exhaustive enumeration",
	Long: "Check evaluates each script under every interpretation of its free\n" +
		"variables over a small finite universe. A counterexample refutes the\n" +
		"goal; exhaustion without one means the goal holds at that size.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide proof script files")
			os.Exit(1)
		}
		failed := 0
		for _, path := range args {
			if !checkFile(path) {
				failed++
			}
		}
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	checkCmd.Flags().IntVar(&universeSize, "size", 3, "Universe size for enumeration")
}

func checkFile(path string) bool {
	script, err := loadScript(path)
	if err != nil {
		logger.Error("Failed to load script", zap.String("file", path), zap.Error(err))
		return false
	}

	hyps := make([]setdec.Formula, len(script.Hyps))
	for i, h := range script.Hyps {
		hyps[i] = h.Formula
	}
	all := append(append([]setdec.Formula{}, hyps...), script.Goal)
	elemVars, setVars, hasApp := model.Vars(all...)
	if hasApp {
		fmt.Printf("%s: UNDECIDED (opaque function applications)\n", path)
		return false
	}

	bar := progressbar.NewOptions(int(model.Count(elemVars, setVars, universeSize)),
		progressbar.OptionSetDescription(path),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
	)

	valid := true
	var counterexample *model.Assignment
	model.ForEach(elemVars, setVars, universeSize, func(a model.Assignment) bool {
		bar.Add(1) //nolint:errcheck
		premises := true
		for _, h := range hyps {
			if v, ok := model.Eval(h, a); !ok || !v {
				premises = false
				break
			}
		}
		if !premises {
			return true
		}
		if v, ok := model.Eval(script.Goal, a); ok && !v {
			valid = false
			ce := a
			ce.Elems = copyInts(a.Elems)
			ce.Sets = copyMasks(a.Sets)
			counterexample = &ce
			return false
		}
		return true
	})
	fmt.Println()

	fileStyle.Print(path)
	fmt.Print(": ")
	if valid {
		provedStyle.Printf("VALID (universe size %d)\n", universeSize)
		return true
	}
	notProvedStyle.Println("INVALID")
	fmt.Printf("  counterexample: elems=%v sets=%v\n", counterexample.Elems, counterexample.Sets)
	return false
}

func copyInts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyMasks(m map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
