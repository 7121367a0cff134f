// Command holdemctl is a terminal demo that drives a single table end to
// end: it seats a human player against scripted opponents, renders each
// state transition with lipgloss, and logs every action with
// charmbracelet/log.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-core/internal/holdem"
	"github.com/lox/holdem-core/internal/module"
	"github.com/lox/holdem-core/internal/table"
	"github.com/lox/holdem-core/internal/tableconfig"
)

// CLI holds the command-line flags: player count, log level/file, and an
// optional deterministic seed.
type CLI struct {
	Players  int    `short:"p" help:"Number of seats at the table (2-6)" default:"3"`
	Config   string `help:"Path to an HCL table configuration file" default:"table.hcl"`
	LogLevel string `help:"Set the log level" enum:"debug,info,warn,error" default:"info"`
	LogFile  string `help:"The logfile to write logs to" default:"holdemctl.log"`
	Seed     *int64 `help:"Override the table configuration's RNG seed"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	if cli.Players < 2 || cli.Players > 6 {
		fmt.Fprintln(os.Stderr, "players must be between 2 and 6")
		kctx.Exit(1)
	}

	logger, closer, err := createLogger(cli.LogFile, cli.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "creating logger:", err)
		kctx.Exit(1)
	}
	defer closer()

	cfg, err := tableconfig.Load(cli.Config)
	if err != nil {
		logger.Fatal("loading table config", "error", err)
	}
	if cli.Seed != nil {
		cfg.Table.Seed = *cli.Seed
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid table config", "error", err)
	}

	if err := run(cli, cfg, logger); err != nil {
		logger.Fatal("session ended in error", "error", err)
	}
	kctx.Exit(0)
}

func createLogger(logFile, level string) (*log.Logger, func(), error) {
	parsedLevel, err := log.ParseLevel(level)
	if err != nil {
		return nil, func() {}, fmt.Errorf("parsing level %s: %w", level, err)
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
	if err != nil {
		return nil, func() {}, fmt.Errorf("opening log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "holdemctl",
		TimeFormat:      "15:04:05",
		Level:           parsedLevel,
	})
	return logger, func() { _ = f.Close() }, nil
}

// consolePublisher renders the public view to stdout on every publication;
// it ignores per-player views since this demo prints the human's hole cards
// directly from the mediator's query path instead.
type consolePublisher struct{}

func (consolePublisher) PublishPublic(tableID string, view any) {
	pv, ok := view.(holdem.PublicView)
	if !ok {
		return
	}
	fmt.Println(renderPublicView(tableID, pv))
}

func (consolePublisher) PublishPlayer(string, string, any) {}

func run(cli CLI, cfg *tableconfig.Config, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := table.NewRegistry(ctx, logger, quartz.NewReal())

	players := make([]module.PlayerInit, cli.Players)
	players[0] = module.PlayerInit{ID: "you", Stack: cfg.Table.InitialStack}
	for i := 1; i < cli.Players; i++ {
		players[i] = module.PlayerInit{ID: fmt.Sprintf("bot-%d", i), Stack: cfg.Table.InitialStack}
	}

	mediator, err := registry.CreateTable(cfg.Table.Name, holdem.Adapter{}, players, cfg.ToOptions(), consolePublisher{})
	if err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)
	deadline := cfg.ActionTimeout()

	for !mediator.IsGameOver() {
		if _, err := submit(ctx, mediator, deadline, "", module.Action{Type: module.ActionStartHand}); err != nil {
			return fmt.Errorf("starting hand: %w", err)
		}

		for {
			public, byPlayer := mediator.Views()
			pv := public.(holdem.PublicView)
			if pv.ActivePlayerID == "" {
				if _, err := submit(ctx, mediator, deadline, "", module.Action{Type: module.ActionAdvancePhase}); err != nil {
					return fmt.Errorf("advancing phase: %w", err)
				}
				_, afterPlayer := mediator.Views()
				if you, ok := afterPlayer["you"].(holdem.PlayerView); ok && you.Phase == holdem.PhaseHandEnd {
					printShowdown(afterPlayer)
					break
				}
				continue
			}

			active := pv.ActivePlayerID
			view := byPlayer[active].(holdem.PlayerView)
			var act module.Action
			if active == "you" {
				act = promptHuman(reader, view)
			} else {
				act = chooseBotAction(view)
			}

			if _, err := submit(ctx, mediator, deadline, active, act); err != nil {
				logger.Warn("action rejected", "player", active, "kind", module.KindOf(err), "error", err)
				continue
			}
		}
	}

	fmt.Println(WarningStyle.Render("Game over: only one seat has chips left."))
	return nil
}

func submit(ctx context.Context, m *table.Mediator, deadline time.Duration, playerID string, action module.Action) (any, error) {
	callCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()
	return m.Submit(callCtx, playerID, action)
}

// chooseBotAction implements the simplest legal strategy: check if free,
// otherwise call. It never bets or raises, so every hand resolves purely on
// the deal plus the human's decisions.
func chooseBotAction(view holdem.PlayerView) module.Action {
	la := view.AvailableActions
	if la == nil {
		return module.Action{Type: module.ActionCheck}
	}
	if la.CanCheck {
		return module.Action{Type: module.ActionCheck}
	}
	if la.CanCall {
		return module.Action{Type: module.ActionCall}
	}
	return module.Action{Type: module.ActionFold}
}

func promptHuman(reader *bufio.Reader, view holdem.PlayerView) module.Action {
	fmt.Println(renderPlayerView(view))
	for {
		fmt.Print("> ")
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(strings.ToLower(line))
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		la := view.AvailableActions
		switch fields[0] {
		case "fold":
			if la != nil && la.CanFold {
				return module.Action{Type: module.ActionFold}
			}
		case "check":
			if la != nil && la.CanCheck {
				return module.Action{Type: module.ActionCheck}
			}
		case "call":
			if la != nil && la.CanCall {
				return module.Action{Type: module.ActionCall}
			}
		case "bet", "raise":
			if len(fields) < 2 {
				fmt.Println(ErrorStyle.Render("usage: bet <amount>"))
				continue
			}
			amount, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println(ErrorStyle.Render("amount must be a number"))
				continue
			}
			if fields[0] == "bet" && la != nil && la.CanBet {
				return module.Action{Type: module.ActionBet, Amount: amount}
			}
			if fields[0] == "raise" && la != nil && la.CanRaise {
				return module.Action{Type: module.ActionRaise, Amount: amount}
			}
		case "allin", "all_in":
			if la != nil && la.CanAllIn {
				return module.Action{Type: module.ActionAllIn}
			}
		}
		fmt.Println(ErrorStyle.Render("not a legal action right now"))
	}
}

func printShowdown(byPlayer map[string]any) {
	you, ok := byPlayer["you"].(holdem.PlayerView)
	if !ok || you.Showdown == nil {
		return
	}
	fmt.Println(HandInfoStyle.Render(fmt.Sprintf("Hand %d result: %s", you.HandNumber, you.Showdown.Summary)))
}
