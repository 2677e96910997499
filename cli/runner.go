package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/lmittmann/tint"
	"github.com/viant/frames"
	"github.com/viant/frames/engine"
	"github.com/viant/frames/stack"
)

// Run parses args and runs an interactive session on stdin and stdout.
func Run(args []string) error {
	return run(context.Background(), args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, in io.Reader, out, logOutput io.Writer) error {
	options, err := parse(ctx, args)
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if options.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(logOutput, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    options.NoColor,
	})))
	if options.HomeframeURL == "" {
		return fmt.Errorf("home frame url was empty")
	}
	console := &Console{out: out}
	eng, err := frames.NewEngine(ctx, &options.EngineOptions, console.Handler())
	if err != nil {
		return err
	}
	console.engine = eng
	if err = eng.ResetInitialFrame(ctx); err != nil {
		return err
	}
	console.Render()
	return console.Loop(ctx, in)
}

// parse reads args, loading the config file first so flags take precedence over it.
func parse(ctx context.Context, args []string) (*Options, error) {
	options := newOptions()
	if _, err := flags.ParseArgs(options, args); err != nil {
		return nil, err
	}
	if options.Config == "" {
		return options, nil
	}
	loaded, err := frames.LoadOptions(ctx, options.Config)
	if err != nil {
		return nil, err
	}
	ret := newOptions()
	ret.EngineOptions = *loaded
	if ret.ProxyAuth == nil {
		ret.ProxyAuth = &frames.ProxyAuth{}
	}
	if ret.Wallet == nil {
		ret.Wallet = &frames.WalletOptions{}
	}
	if _, err = flags.ParseArgs(ret, args); err != nil {
		return nil, err
	}
	return ret, nil
}

func newOptions() *Options {
	return &Options{EngineOptions: frames.EngineOptions{
		ProxyAuth: &frames.ProxyAuth{},
		Signer:    &frames.SignerOptions{},
		Wallet:    &frames.WalletOptions{},
	}}
}

// Console renders engine state as text and turns input lines into engine calls.
type Console struct {
	engine *engine.Engine
	out    io.Writer
}

// Handler returns engine callbacks that print to the console.
func (c *Console) Handler() *engine.Handler {
	return &engine.Handler{
		OnLinkButtonClicked: func(ctx context.Context, target string) error {
			c.printf("link: %v\n", target)
			return nil
		},
		OnMintButtonClicked: func(ctx context.Context, target string) error {
			c.printf("mint: %v\n", target)
			return nil
		},
		OnRedirect: func(ctx context.Context, location string, item stack.Item) {
			c.printf("redirect: %v\n", location)
		},
		OnMessage: func(ctx context.Context, message string, kind stack.MessageKind) {
			c.printf("%v: %v\n", kind, message)
		},
		OnError: func(ctx context.Context, err error) {
			slog.Default().Warn("frame request failed", "error", err)
		},
		OnConnectWallet: func(ctx context.Context) error {
			c.printf("connect a wallet with --address to send transactions\n")
			return nil
		},
		OnTransactionEvent: func(ctx context.Context, event *engine.TransactionEvent) {
			slog.Default().Debug("transaction", "stage", event.Stage, "method", event.Method, "id", event.TransactionID)
		},
	}
}

// Loop executes commands read from in until EOF or quit.
func (c *Console) Loop(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	c.printf("> ")
	for scanner.Scan() {
		quit, err := c.Execute(ctx, strings.TrimSpace(scanner.Text()))
		if err != nil {
			c.printf("error: %v\n", err)
		}
		if quit {
			return nil
		}
		c.printf("> ")
	}
	return scanner.Err()
}

// Execute runs a single command line and reports whether the session should end.
func (c *Console) Execute(ctx context.Context, line string) (bool, error) {
	command, arg, _ := strings.Cut(line, " ")
	switch command {
	case "":
		return false, nil
	case "q", "quit", "exit":
		return true, nil
	case "help":
		c.printf("<n> press button n, input <text>, reset, clear, stack, tx, cancel <id>, quit\n")
	case "i", "input":
		c.engine.SetInputText(arg)
	case "reset":
		if err := c.engine.ResetInitialFrame(ctx); err != nil {
			return false, err
		}
		c.Render()
	case "clear":
		c.engine.Clear()
	case "stack":
		c.PrintStack()
	case "tx":
		pendings, err := c.engine.PendingTransactions(ctx)
		if err != nil {
			return false, err
		}
		for _, entry := range pendings {
			c.printf("%v %v %v\n", entry.ID, entry.Kind, entry.Resource)
		}
	case "cancel":
		return false, c.engine.CancelTransaction(ctx, arg)
	default:
		index, err := strconv.Atoi(command)
		if err != nil {
			return false, fmt.Errorf("unknown command %q", command)
		}
		if err = c.press(ctx, index); err != nil {
			return false, err
		}
		c.Render()
	}
	return false, nil
}

func (c *Console) press(ctx context.Context, index int) error {
	item, ok := c.engine.CurrentStackItem()
	if !ok {
		return fmt.Errorf("no frame loaded")
	}
	frame := item.Frame(c.engine.Specification())
	if frame == nil {
		return fmt.Errorf("current item has no frame: %v", item.Status)
	}
	if index < 1 || index > len(frame.Buttons) {
		return fmt.Errorf("button %d out of range 1..%d", index, len(frame.Buttons))
	}
	return c.engine.OnButtonPress(ctx, frame, frame.Buttons[index-1], index)
}

// Render prints the current stack item.
func (c *Console) Render() {
	item, ok := c.engine.CurrentStackItem()
	if !ok {
		c.printf("(empty)\n")
		return
	}
	switch item.Status {
	case stack.StatusDone:
		frame := item.Frame(c.engine.Specification())
		if frame == nil {
			c.printf("no %v frame\n", c.engine.Specification())
			return
		}
		if frame.Title != "" {
			c.printf("%v\n", frame.Title)
		}
		c.printf("image: %v\n", frame.Image)
		if frame.InputText != "" {
			c.printf("input: %v\n", frame.InputText)
		}
		for i, button := range frame.Buttons {
			c.printf("[%d] %v (%v)\n", i+1, button.Label, button.Action)
		}
	case stack.StatusDoneRedirect:
		c.printf("redirected to %v\n", item.Location)
	case stack.StatusMessage:
		c.printf("%v: %v\n", item.MessageKind, item.Message)
	case stack.StatusRequestError:
		c.printf("error: %v\n", item.Err)
	default:
		c.printf("%v\n", item.Status)
	}
}

// PrintStack prints one line per stack item, newest first.
func (c *Console) PrintStack() {
	for i, item := range c.engine.Stack() {
		var method, URL string
		if item.Request != nil {
			method, URL = item.Request.Method, item.Request.URL
		}
		c.printf("%d %v %v %v\n", i, item.Status, method, URL)
	}
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
