package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/payday-community/riskengine/risk"
	"github.com/payday-community/riskengine/risk/detector"
	"github.com/payday-community/riskengine/risk/engine"
	"github.com/payday-community/riskengine/risk/wordlist"

	cli "github.com/urfave/cli/v2"
)

func main() {
	app := cli.App{
		Name:  "risk-cli",
		Usage: "informal debugging CLI tool for local risk evaluation",
	}
	app.Commands = []*cli.Command{
		{
			Name:      "check",
			Usage:     "evaluates text with local detectors only (embedded word list, no network); reads stdin lines when no args given",
			ArgsUsage: "[text...]",
			Action:    runCheck,
		},
		{
			Name:      "contact",
			Usage:     "outputs contact-info pattern matches; reads stdin lines when no args given",
			ArgsUsage: "[text...]",
			Action:    runContact,
		},
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	slog.SetDefault(slog.New(h))
	if err := app.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(-1)
	}
}

// command args if any, otherwise stdin lines
func inputLines(cctx *cli.Context, handle func(line string)) error {
	if cctx.Args().Len() > 0 {
		for _, arg := range cctx.Args().Slice() {
			handle(arg)
		}
		return nil
	}
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		handle(scanner.Text())
	}
	return scanner.Err()
}

func runCheck(cctx *cli.Context) error {
	eng := &engine.Engine{
		Words: wordlist.StaticSource{Words: wordlist.FallbackWords},
	}
	return inputLines(cctx, func(line string) {
		res := eng.Evaluate(context.Background(), line, nil)
		if res.Action == risk.ActionApprove {
			fmt.Printf("%s\t%d\n", res.Action, res.Score)
		} else {
			fmt.Printf("%s\t%d\t%s\n", res.Action, res.Score, res.Reason)
		}
	})
}

func runContact(cctx *cli.Context) error {
	return inputLines(cctx, func(line string) {
		score, reason := detector.DetectContact(line)
		if score > 0 {
			fmt.Printf("MATCH\t%s\t%s\n", reason, line)
		}
	})
}
