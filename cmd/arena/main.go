// Command arena runs hunts and arena challenges against the PostgreSQL store.
//
// Usage:
//
//	arena create -name NAME
//	arena equip -character ID -item ID
//	arena hunt -character ID -hunt ID
//	arena challenge -attacker ID -defender ID
//	arena history -character ID [-limit N]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/battlego/internal/config"
	"github.com/udisondev/battlego/internal/data"
	"github.com/udisondev/battlego/internal/db"
	"github.com/udisondev/battlego/internal/game/arena"
	"github.com/udisondev/battlego/internal/game/combat"
	"github.com/udisondev/battlego/internal/game/hunt"
	"github.com/udisondev/battlego/internal/model"
)

const ConfigPath = "config/battlego.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if err := run(ctx, os.Args[1], os.Args[2:]); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: arena <create|equip|hunt|challenge|history> [flags]")
}

// app bundles the loaded dependencies of a subcommand.
type app struct {
	cfg     config.Server
	db      *db.DB
	catalog *data.Catalog
}

func run(ctx context.Context, cmd string, args []string) error {
	cfgPath := ConfigPath
	if p := os.Getenv("BATTLEGO_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("battlego starting", "command", cmd, "log_level", cfg.LogLevel)

	a := &app{cfg: cfg}

	// Catalog parsing and database setup are independent.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cat, err := data.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		a.catalog = cat
		return nil
	})
	g.Go(func() error {
		dsn := cfg.Database.DSN()
		if err := db.RunMigrations(gctx, dsn); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
		database, err := db.New(gctx, dsn)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		a.db = database
		return nil
	})
	err = g.Wait()
	if a.db != nil {
		defer a.db.Close()
	}
	if err != nil {
		return err
	}

	switch cmd {
	case "create":
		return a.create(ctx, args)
	case "equip":
		return a.equip(ctx, args)
	case "hunt":
		return a.hunt(ctx, args)
	case "challenge":
		return a.challenge(ctx, args)
	case "history":
		return a.history(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	name := fs.String("name", "", "character name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("create: -name is required")
	}

	c := model.NewCharacter(*name)
	if err := a.db.Characters().Create(ctx, c); err != nil {
		return err
	}
	fmt.Printf("created %s (id %d)\n", c.Name, c.ID)
	return nil
}

func (a *app) equip(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("equip", flag.ContinueOnError)
	characterID := fs.Int64("character", 0, "character id")
	itemID := fs.Int64("item", 0, "catalog equipment id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	eq, ok := a.catalog.Equipment(*itemID)
	if !ok {
		return fmt.Errorf("equip: unknown equipment %d", *itemID)
	}
	if err := a.db.Characters().Equip(ctx, *characterID, eq.Slot, eq.ID); err != nil {
		return err
	}
	fmt.Printf("equipped %s in %s\n", eq.Name, eq.Slot)
	return nil
}

func (a *app) hunt(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("hunt", flag.ContinueOnError)
	characterID := fs.Int64("character", 0, "character id")
	huntID := fs.Int64("hunt", 0, "hunt id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := hunt.NewService(a.db, a.catalog, a.cfg.HuntConfig())
	out, err := svc.Hunt(ctx, *characterID, *huntID)
	if err != nil {
		return err
	}
	printLog(out.Log)
	fmt.Printf("%s vs %s: %s | hp %d/%d, level %d, gold %d\n",
		out.Character.Name, out.Monster, out.Winner,
		out.Character.HP, out.Character.MaxHP, out.Character.Level, out.Character.Gold)
	return nil
}

func (a *app) challenge(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("challenge", flag.ContinueOnError)
	attackerID := fs.Int64("attacker", 0, "attacker character id")
	defenderID := fs.Int64("defender", 0, "defender character id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := arena.NewService(a.db, a.catalog, a.cfg.Battle.EngineConfig())
	out, err := svc.Challenge(ctx, *attackerID, *defenderID)
	if err != nil {
		return err
	}
	printLog(out.Log)
	fmt.Printf("%s vs %s: %s | rating %d (%+d) / %d (%+d)\n",
		out.Attacker.Name, out.Defender.Name, out.Winner,
		out.Attacker.ArenaPoints, out.AttackerGot,
		out.Defender.ArenaPoints, out.DefenderGot)
	return nil
}

func (a *app) history(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	characterID := fs.Int64("character", 0, "character id")
	limit := fs.Int("limit", 10, "max encounters")
	if err := fs.Parse(args); err != nil {
		return err
	}

	encs, err := a.db.Encounters().ListByCharacter(ctx, *characterID, *limit)
	if err != nil {
		return err
	}
	for _, e := range encs {
		fmt.Printf("%s %-5s vs %-20s %-8s turns %d seed %d\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.Kind, e.Opponent, e.Winner, e.Stats.TurnsTaken, e.Seed)
	}
	return nil
}

func printLog(lines []string) {
	for _, tl := range combat.GroupByTurn(lines) {
		fmt.Printf("Turn %d\n", tl.Turn)
		for _, m := range tl.Messages {
			fmt.Printf("  %s\n", m)
		}
	}
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
