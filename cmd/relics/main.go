// Command relics drives the collectible token engine from the terminal:
// it can run a scripted end-to-end simulation and inspect the recorded
// notification journal.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "simulate":
		if err := simulate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "summary":
		if err := summary(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`relics - collectible token engine

Usage:
  relics <command> [options]

Commands:
  simulate   Run a scripted mint/claim/trade/level-up session
  summary    Summarize a recorded journal (sqlite or JSONL)
  help       Show this help

Environment:
  RELICS_MAX_SUPPLY     Supply cap (default 10000)
  RELICS_CLAIM_COST     Claim fee in base units (default 1e17)
  RELICS_LEVELUP_COST   Level-up fee in base units (default 5e16)
  RELICS_DB_PATH        Journal database path (default in-memory)

Run 'relics <command> -h' for command options.`)
}
