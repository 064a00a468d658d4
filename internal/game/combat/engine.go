package combat

import (
	"log/slog"

	"github.com/udisondev/battlego/internal/model"
)

// Winner is the outcome tag of a battle.
type Winner string

const (
	WinnerAttacker Winner = "attacker"
	WinnerDefender Winner = "defender"
	WinnerDraw     Winner = "draw"
)

// Result is the full outcome of RunBattle.
type Result struct {
	Log               []string
	Winner            Winner
	Stats             model.BattleStats
	FinalAttackerHP   int32
	FinalDefenderHP   int32
	FinalAttackerMana int32
	FinalDefenderMana int32
}

// Phase is a step of the turn state machine.
type Phase int8

const (
	PhaseIdle Phase = iota
	PhaseTurnStart
	PhaseAttackerActs
	PhaseCheckAttackerWin
	PhaseDefenderActs
	PhaseCheckDefenderWin
	PhaseAttackerWins
	PhaseDefenderWins
	PhaseTurnCapReached
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseTurnStart:
		return "TurnStart"
	case PhaseAttackerActs:
		return "AttackerActs"
	case PhaseCheckAttackerWin:
		return "CheckAttackerWin"
	case PhaseDefenderActs:
		return "DefenderActs"
	case PhaseCheckDefenderWin:
		return "CheckDefenderWin"
	case PhaseAttackerWins:
		return "AttackerWins"
	case PhaseDefenderWins:
		return "DefenderWins"
	case PhaseTurnCapReached:
		return "TurnCapReached"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the battle is over in phase p.
func (p Phase) Terminal() bool {
	return p == PhaseAttackerWins || p == PhaseDefenderWins || p == PhaseTurnCapReached
}

// Engine resolves battles. An Engine owns its random source and is not safe for
// concurrent use: create one per battle (or per worker) with its own Rand.
type Engine struct {
	cfg Config
	rng Rand
}

// NewEngine creates an engine. A nil rng is replaced by a source seeded with 0.
func NewEngine(cfg Config, rng Rand) *Engine {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Engine{cfg: cfg, rng: rng}
}

// battle is the working set of one RunBattle call.
type battle struct {
	cfg      Config
	rng      Rand
	attacker *State
	defender *State
	log      Log
	stats    model.BattleStats
	turn     int
	phase    Phase
}

// RunBattle plays attacker against defender until one side drops to 0 HP or the
// turn cap is reached. The attacker always acts first each turn.
//
// The attacker's final HP (clamped at 0) and mana are written back to attacker;
// defender is left untouched. RunBattle never fails.
func (e *Engine) RunBattle(attacker, defender *model.Combatant) Result {
	if attacker == nil || defender == nil {
		slog.Warn("battle without both combatants", "attacker", attacker != nil, "defender", defender != nil)
		return Result{Winner: WinnerDraw}
	}

	b := &battle{
		cfg:      e.cfg,
		rng:      e.rng,
		attacker: NewState(attacker, e.cfg),
		defender: NewState(defender, e.cfg),
		phase:    PhaseIdle,
	}
	for !b.phase.Terminal() {
		b.step()
	}

	res := b.result()
	attacker.HP = res.FinalAttackerHP
	attacker.Mana = res.FinalAttackerMana

	slog.Debug("battle finished",
		"attacker", attacker.Name,
		"defender", defender.Name,
		"winner", res.Winner,
		"turns", res.Stats.TurnsTaken)
	return res
}

// step advances the state machine by one phase.
func (b *battle) step() {
	switch b.phase {
	case PhaseIdle:
		b.phase = PhaseTurnStart

	case PhaseTurnStart:
		b.turn++
		b.stats.TurnsTaken = int32(b.turn)
		b.log.turn(b.turn)
		ApplyEffects(b.attacker.passives, model.TriggerTurnStart, b.attacker, b.defender, &b.log)
		ApplyEffects(b.defender.passives, model.TriggerTurnStart, b.defender, b.attacker, &b.log)
		b.phase = PhaseAttackerActs

	case PhaseAttackerActs:
		b.act(b.attacker, b.defender, true)
		b.phase = PhaseCheckAttackerWin

	case PhaseCheckAttackerWin:
		if b.defender.Defeated() {
			b.log.Addf("%s was defeated!", b.defender.Combatant.Name)
			b.phase = PhaseAttackerWins
			return
		}
		b.phase = PhaseDefenderActs

	case PhaseDefenderActs:
		b.act(b.defender, b.attacker, false)
		b.phase = PhaseCheckDefenderWin

	case PhaseCheckDefenderWin:
		switch {
		case b.attacker.Defeated():
			b.log.Addf("%s was defeated!", b.attacker.Combatant.Name)
			b.phase = PhaseDefenderWins
		case b.turn >= b.cfg.maxTurns():
			b.log.Add("Battle ended by turn limit.")
			b.phase = PhaseTurnCapReached
		default:
			b.phase = PhaseTurnStart
		}
	}
}

// act resolves one attack of actor against target.
// on_attack passives fire after damage is computed and before it is subtracted.
func (b *battle) act(actor, target *State, attackerSide bool) {
	if !rollChance(b.rng, HitChance(actor, target)) {
		if attackerSide {
			b.stats.Misses++
		} else {
			b.stats.EnemyMisses++
		}
		b.log.Addf("%s misses %s.", actor.Combatant.Name, target.Combatant.Name)
		return
	}

	damageType, style := attackProfile(actor.Combatant)
	dmg, crit := ResolveDamage(actor, target, damageType, style, b.rng)

	ApplyEffects(actor.passives, model.TriggerAttack, actor, target, &b.log)

	target.HP -= dmg
	if attackerSide {
		b.stats.Hits++
		b.stats.TotalDamageDealt += dmg
		if crit {
			b.stats.Crits++
		}
	} else {
		b.stats.EnemyHits++
		b.stats.TotalDamageTaken += dmg
		if crit {
			b.stats.EnemyCrits++
		}
	}

	critNote := ""
	if crit {
		critNote = " (CRITICAL)"
	}
	b.log.Addf("%s hits %s for %d damage%s (hp left: %d).",
		actor.Combatant.Name, target.Combatant.Name, dmg, critNote, target.displayHP())

	ApplyEffects(target.passives, model.TriggerReceiveDamage, target, actor, &b.log)
}

func (b *battle) result() Result {
	var w Winner
	switch b.phase {
	case PhaseAttackerWins:
		w = WinnerAttacker
	case PhaseDefenderWins:
		w = WinnerDefender
	default:
		w = WinnerDraw
	}
	return Result{
		Log:               b.log.Lines(),
		Winner:            w,
		Stats:             b.stats,
		FinalAttackerHP:   b.attacker.displayHP(),
		FinalDefenderHP:   b.defender.displayHP(),
		FinalAttackerMana: b.attacker.Mana,
		FinalDefenderMana: b.defender.Mana,
	}
}
