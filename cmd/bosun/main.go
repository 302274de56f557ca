// Command bosun invokes an external agent CLI with one or more prompts and
// prints the normalized results.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/casualjim/bosun"
	"github.com/casualjim/bosun/pkg/slogx"
	"github.com/charmbracelet/glamour"
	_ "github.com/joho/godotenv/autoload"
	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Stamp}
	log = zerolog.New(output).With().Timestamp().Logger()
	slog.SetDefault(slog.New(
		zeroslog.NewHandler(log, &zeroslog.HandlerOptions{Level: slog.LevelInfo}),
	))
}

func main() {
	var (
		tool     = flag.String("tool", "", "tool binary to invoke (defaults to the primary)")
		model    = flag.String("model", "", "model identifier passed to the tool")
		timeout  = flag.Duration("timeout", bosun.DefaultTimeout, "per-invocation timeout")
		sandbox  = flag.Bool("sandbox", false, "deliver the prompt over stdin in sandbox mode")
		parallel = flag.Int("parallel", bosun.DefaultMaxConcurrent, "concurrency cap when multiple prompts are given")
		fallback = flag.Bool("fallback", false, "retry through the fallback tool on failure")
		plain    = flag.Bool("plain", false, "print raw output instead of rendered markdown")
	)
	flag.Parse()

	prompts := flag.Args()
	if len(prompts) == 0 {
		fmt.Fprintln(os.Stderr, "usage: bosun [flags] <prompt> [<prompt> ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	o := bosun.New(
		bosun.WithTimeout(*timeout),
		bosun.WithFallbackOnFailure(*fallback),
	)
	ctx := context.Background()

	if len(prompts) > 1 {
		os.Exit(runParallel(ctx, o, prompts, *parallel, *plain))
	}

	res, err := o.Invoke(ctx, bosun.Invocation{
		Tool:    *tool,
		Prompt:  prompts[0],
		Model:   *model,
		Sandbox: *sandbox,
	})
	if err != nil {
		slog.Error("invocation could not be started", slogx.Error(err))
		os.Exit(1)
	}

	slog.Info("invocation finished",
		slogx.Stringer("status", res.Status),
		slog.Int("exit_code", res.ExitCode),
		slog.Duration("duration", res.Duration.Round(time.Millisecond)),
		slog.Bool("fallback_used", res.FallbackUsed),
	)
	render(res.Output, *plain)
	if res.Payload.Exists() {
		fmt.Println(res.Payload.Raw)
	}
	if res.Status != bosun.StatusSuccess {
		os.Exit(1)
	}
}

func runParallel(ctx context.Context, o *bosun.Orchestrator, prompts []string, limit int, plain bool) int {
	results, err := o.InvokeParallel(ctx, prompts, limit)
	if err != nil {
		slog.Error("some invocations could not be started", slogx.Error(err))
	}

	code := 0
	if err != nil {
		code = 1
	}
	for i, res := range results {
		fmt.Printf("--- [%d] %s: %s in %s\n", i, prompts[i], res.Status, res.Duration.Round(time.Millisecond))
		render(res.Output, plain)
		if res.Status != bosun.StatusSuccess {
			code = 1
		}
	}
	return code
}

// render pretty-prints agent output, which is markdown more often than not.
// Any rendering trouble falls back to the raw text.
func render(output string, plain bool) {
	if !plain {
		if glam, err := glamour.NewTermRenderer(glamour.WithAutoStyle()); err == nil {
			if pretty, rerr := glam.Render(output); rerr == nil {
				fmt.Print(pretty)
				return
			}
		}
	}
	fmt.Println(strings.TrimRight(output, "\n"))
}
