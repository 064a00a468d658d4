// Command battlesim runs offline battles between catalog monsters.
//
// One battle prints the turn-grouped log; -runs N plays N battles in parallel
// with consecutive seeds and prints the outcome rates.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/battlego/internal/data"
	"github.com/udisondev/battlego/internal/game/combat"
	"github.com/udisondev/battlego/internal/random"
)

func main() {
	catalogPath := flag.String("catalog", "config/catalog.yaml", "catalog YAML file")
	attackerID := flag.Int64("attacker", 0, "attacker monster id")
	defenderID := flag.Int64("defender", 0, "defender monster id")
	seed := flag.Int64("seed", 0, "random seed (0 = random)")
	runs := flag.Int("runs", 1, "number of battles")
	maxTurns := flag.Int("max-turns", combat.MaxTurns, "turn cap, at most 50")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(context.Background(), *catalogPath, *attackerID, *defenderID, *seed, *runs, *maxTurns); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, catalogPath string, attackerID, defenderID, seed int64, runs, maxTurns int) error {
	cat, err := data.LoadCatalog(catalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	attacker, ok := cat.Monster(attackerID)
	if !ok {
		return fmt.Errorf("unknown attacker monster %d", attackerID)
	}
	defender, ok := cat.Monster(defenderID)
	if !ok {
		return fmt.Errorf("unknown defender monster %d", defenderID)
	}

	if seed == 0 {
		if seed, err = random.NewSeed(); err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
	}

	cfg := combat.DefaultConfig()
	cfg.MaxTurns = maxTurns

	if runs <= 1 {
		res := combat.NewEngine(cfg, combat.NewRand(seed)).RunBattle(attacker.Combatant(), defender.Combatant())
		printBattle(seed, res)
		return nil
	}

	sum, err := simulate(ctx, cfg, attacker, defender, seed, runs)
	if err != nil {
		return err
	}
	fmt.Printf("%s vs %s, %d battles from seed %d\n", attacker.Name, defender.Name, runs, seed)
	fmt.Printf("  attacker wins: %6.2f%%\n", sum.rate(sum.attacker))
	fmt.Printf("  defender wins: %6.2f%%\n", sum.rate(sum.defender))
	fmt.Printf("  draws:         %6.2f%%\n", sum.rate(sum.draws))
	fmt.Printf("  avg turns:     %6.2f\n", float64(sum.turns)/float64(sum.total))
	return nil
}

func printBattle(seed int64, res combat.Result) {
	fmt.Printf("seed %d\n", seed)
	for _, tl := range combat.GroupByTurn(res.Log) {
		fmt.Printf("Turn %d\n", tl.Turn)
		for _, m := range tl.Messages {
			fmt.Printf("  %s\n", m)
		}
	}
	fmt.Printf("winner: %s (attacker hp %d, defender hp %d)\n",
		res.Winner, res.FinalAttackerHP, res.FinalDefenderHP)
	s := res.Stats
	fmt.Printf("hits %d/%d crits %d dealt %d | enemy hits %d/%d crits %d dealt %d\n",
		s.Hits, s.Hits+s.Misses, s.Crits, s.TotalDamageDealt,
		s.EnemyHits, s.EnemyHits+s.EnemyMisses, s.EnemyCrits, s.TotalDamageTaken)
}

type summary struct {
	total    int64
	attacker int64
	defender int64
	draws    int64
	turns    int64
}

func (s summary) rate(n int64) float64 {
	return 100 * float64(n) / float64(s.total)
}

// simulate plays battle i with seed+i. Each battle owns its engine and random source.
func simulate(ctx context.Context, cfg combat.Config, attacker, defender *data.Monster, seed int64, runs int) (summary, error) {
	var attackerWins, defenderWins, draws, turns atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range runs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := combat.NewEngine(cfg, combat.NewRand(seed+int64(i))).
				RunBattle(attacker.Combatant(), defender.Combatant())
			switch res.Winner {
			case combat.WinnerAttacker:
				attackerWins.Add(1)
			case combat.WinnerDefender:
				defenderWins.Add(1)
			default:
				draws.Add(1)
			}
			turns.Add(int64(res.Stats.TurnsTaken))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary{}, fmt.Errorf("simulating: %w", err)
	}

	return summary{
		total:    int64(runs),
		attacker: attackerWins.Load(),
		defender: defenderWins.Load(),
		draws:    draws.Load(),
		turns:    turns.Load(),
	}, nil
}
