package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zhouzirui/ward-bot/backend/internal/analysis/dialogue"
	"github.com/zhouzirui/ward-bot/backend/internal/command"
	"github.com/zhouzirui/ward-bot/backend/internal/model/chat"
	"github.com/zhouzirui/ward-bot/backend/internal/model/content"
)

const rule = "--------------------------------------------------"

type options struct {
	contentPath  string
	seed         uint64
	historyLimit int
	timezone     string
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "chatcli",
		Short: "Talk to the ward assistant in the terminal",
		Long:  "Runs one dialogue session against the built-in or a YAML content file. Type help, summary or quit at any time.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.contentPath, "content", "c", "", "path to a content YAML file (default: built-in tables)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for reproducible replies (0 = random)")
	cmd.Flags().IntVar(&opts.historyLimit, "history-limit", 0, "maximum retained turns (0 = unbounded)")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "Local", "IANA zone for timestamps and greetings")
	return cmd
}

func newEngine(opts options) (*dialogue.Engine, func() time.Time, error) {
	tables := content.Seed()
	if opts.contentPath != "" {
		loaded, err := content.Load(opts.contentPath)
		if err != nil {
			return nil, nil, err
		}
		tables = loaded
	}

	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid timezone %q: %w", opts.timezone, err)
	}
	now := func() time.Time { return time.Now().In(loc) }

	engineOpts := []dialogue.Option{dialogue.WithClock(now), dialogue.WithMaxTurns(opts.historyLimit)}
	if opts.seed != 0 {
		engineOpts = append(engineOpts, dialogue.WithSeed(opts.seed))
	}
	return dialogue.New(content.NewMemoryStore(tables), engineOpts...), now, nil
}

func runChat(cmd *cobra.Command, opts options) error {
	engine, now, err := newEngine(opts)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return converse(engine, now, in, cmd.OutOrStdout(), interactive)
}

// converse runs the read-reply loop until quit or end of input.
func converse(engine *dialogue.Engine, now func() time.Time, in io.Reader, out io.Writer, interactive bool) error {
	fmt.Fprintln(out, strings.Repeat("=", len(rule)))
	fmt.Fprintln(out, "🏥 병원 간호사 도우미 챗봇")
	fmt.Fprintln(out, strings.Repeat("=", len(rule)))
	fmt.Fprintln(out, "종료하려면 'quit' 또는 'exit'를 입력하세요")
	fmt.Fprintln(out, "도움말을 보려면 'help'를 입력하세요")
	fmt.Fprintln(out, rule)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for {
		if interactive {
			fmt.Fprint(out, "👤 당신: ")
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			fmt.Fprintln(out, "\n👋 챗봇을 종료합니다.")
			return nil
		}
		text := scanner.Text()

		var resp chat.Response
		switch command.Parse(text) {
		case command.Quit:
			fmt.Fprintln(out, "👋 챗봇을 종료합니다. 수고하셨습니다!")
			return nil
		case command.Help:
			resp = engine.Help()
		case command.Summary:
			resp = chat.Response{
				Message:   engine.Summarize().String(),
				Category:  chat.CategorySummary,
				Timestamp: now().Format(chat.TimeLayout),
			}
		default:
			resp = engine.Process(text)
		}

		fmt.Fprintf(out, "🤖 챗봇: %s\n", resp.Message)
		fmt.Fprintf(out, "   [카테고리: %s | 시간: %s]\n", resp.Category, resp.Timestamp)
		fmt.Fprintln(out, rule)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
