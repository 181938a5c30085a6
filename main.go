package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/emotilang/emoti/compiler"
	"github.com/peterh/liner"
)

func main() {
	const (
		inputUsage  = "input file path"
		outputUsage = "output file path (defaults to the input path with a .js extension)"
		runUsage    = "run the generated JavaScript with node"
	)
	var (
		inputPath  string
		outputPath string
		runOutput  bool
	)
	flag.StringVar(&inputPath, "input", "", inputUsage)
	flag.StringVar(&inputPath, "i", "", inputUsage+" (shorthand)")
	flag.StringVar(&outputPath, "output", "", outputUsage)
	flag.StringVar(&outputPath, "o", "", outputUsage+" (shorthand)")
	flag.BoolVar(&runOutput, "run", false, runUsage)
	flag.BoolVar(&runOutput, "r", false, runUsage+" (shorthand)")

	flag.Parse()

	if inputPath == "" {
		err := RunPrompt()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else {
		if err := RunFile(inputPath, outputPath, runOutput); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

var history = filepath.Join(xdg.DataHome, "emoti", ".emoti_history")

func RunPrompt() error {
	line := liner.NewLiner()
	defer func() {
		if err := os.MkdirAll(filepath.Dir(history), os.ModePerm); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if f, err := os.Create(history); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		line.Close()
	}()

	if f, err := os.Open(history); err == nil {
		defer f.Close()
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	for {
		input, err := line.Prompt("emoti> ")
		if err != nil {
			return err
		}
		line.AppendHistory(input)

		result, err := compiler.Compile(input)
		reportDiagnostics(result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)

			continue
		}
		fmt.Println(result.Code)
	}
}

func RunFile(inputPath, outputPath string, runOutput bool) error {
	source, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	result, err := compiler.Compile(string(source))
	reportDiagnostics(result)
	if err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".js"
	}

	if err := os.WriteFile(outputPath, []byte(result.Code+"\n"), 0o644); err != nil {
		return err
	}

	if runOutput {
		cmd := exec.Command("node", outputPath)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		return cmd.Run()
	}

	return nil
}

func reportDiagnostics(result compiler.Result) {
	for _, diag := range result.Diagnostics {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", diag)
	}
}
