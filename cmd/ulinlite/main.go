package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/zakazai/ulin-lite/internal/engine"
	"github.com/zakazai/ulin-lite/internal/storage"
)

func main() {
	dbPath := flag.String("db", "data/ulinlite.json", "path to the database file")
	memory := flag.Bool("memory", false, "run without durable storage")
	flag.Parse()

	config := storage.Config{Type: storage.JSONStoreType, Path: *dbPath}
	if *memory {
		config = storage.Config{Type: storage.MemoryStoreType}
	}

	store, err := storage.New(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	db, err := engine.New(store)
	if err != nil {
		// A corrupt database file is fatal; starting empty would mask data loss.
		fmt.Fprintf(os.Stderr, "Error loading database: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("UlinLite SQL shell")
	fmt.Println("Type 'exit' to quit, 'export <dir>' to write a parquet snapshot")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "ulinlite> ",
		HistoryFile:     historyPath(),
		InterruptPrompt: "^C",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			break
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") {
			break
		}
		if dir, ok := exportCommand(input); ok {
			if err := db.ExportParquet(dir); err != nil {
				fmt.Printf("Error exporting snapshot: %v\n", err)
			} else {
				fmt.Printf("Snapshot written to %s\n", dir)
			}
			continue
		}

		result, err := db.Submit(input)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		printResult(result)
	}

	fmt.Println("Goodbye!")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing storage: %v\n", err)
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.ulinlite_history"
}

func exportCommand(input string) (string, bool) {
	fields := strings.Fields(input)
	if len(fields) == 2 && strings.EqualFold(fields[0], "export") {
		return fields[1], true
	}
	return "", false
}

func printResult(result *engine.Result) {
	if result.Kind != engine.RowSet {
		fmt.Println(result.Message)
		return
	}
	if len(result.Rows) == 0 {
		fmt.Println("Empty result set")
		return
	}

	widths := make([]int, len(result.Headers))
	for i, h := range result.Headers {
		widths[i] = len(h)
	}
	for _, row := range result.Rows {
		for i, v := range row {
			if l := len(v.String()); l > widths[i] {
				widths[i] = l
			}
		}
	}

	for i, h := range result.Headers {
		if i > 0 {
			fmt.Print(" | ")
		}
		fmt.Printf("%-*s", widths[i], h)
	}
	fmt.Println()

	for i := range result.Headers {
		if i > 0 {
			fmt.Print("-+-")
		}
		fmt.Print(strings.Repeat("-", widths[i]))
	}
	fmt.Println()

	for _, row := range result.Rows {
		for i, v := range row {
			if i > 0 {
				fmt.Print(" | ")
			}
			fmt.Printf("%-*s", widths[i], v.String())
		}
		fmt.Println()
	}
}
