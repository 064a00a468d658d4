package combat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlego/internal/model"
)

func TestRunBattle_DefeatEndsTurnImmediately(t *testing.T) {
	// Hero deals exactly 8; Dummy has 8 HP.
	res := NewEngine(DefaultConfig(), fixedRand(0.5)).RunBattle(hero(), dummy(8))

	require.Equal(t, WinnerAttacker, res.Winner)
	assert.Equal(t, []string{
		"--- Turn 1 ---",
		"Hero hits Dummy for 8 damage (hp left: 0).",
		"Dummy was defeated!",
	}, res.Log)
	assert.Zero(t, res.Stats.EnemyHits+res.Stats.EnemyMisses, "defender must not act")
	assert.Equal(t, int32(1), res.Stats.TurnsTaken)
	assert.Equal(t, int32(0), res.FinalDefenderHP)
}

func TestRunBattle_PassiveWithoutMana(t *testing.T) {
	rage := &model.PassiveSkill{
		Name:    "Rage",
		Trigger: model.TriggerTurnStart,
		Cost:    20,
		Effects: []model.Effect{model.AttributeMod{Attribute: model.AttrStrength, Value: 5, Duration: 1}},
	}
	h := hero()
	h.Mana = 10
	h.Equip(necklace(rage))

	res := NewEngine(DefaultConfig(), fixedRand(0.5)).RunBattle(h, dummy(8))

	require.Equal(t, WinnerAttacker, res.Winner)
	assert.Contains(t, res.Log, "Passive Rage could not activate: not enough mana.")
	assert.Equal(t, int32(10), res.FinalAttackerMana)
	assert.Equal(t, int32(10), h.Mana)
	// the skipped modifier must not change the damage
	assert.Contains(t, res.Log, "Hero hits Dummy for 8 damage (hp left: 0).")
}

func TestRunBattle_DefenderWinsAndWritesBack(t *testing.T) {
	weak := newCombatant("Weak", attrs(1, 1, 1, 1, 1, 1), 1, 7)
	strong := newCombatant("Strong", attrs(10, 5, 0, 5, 5, 2), 30, 0)

	res := NewEngine(DefaultConfig(), fixedRand(0.5)).RunBattle(weak, strong)

	require.Equal(t, WinnerDefender, res.Winner)
	assert.Equal(t, int32(0), res.FinalAttackerHP)
	assert.Equal(t, int32(29), res.FinalDefenderHP)
	assert.Equal(t, int32(0), weak.HP, "attacker hp is written back clamped at 0")
	assert.Equal(t, int32(7), weak.Mana)
	assert.Equal(t, int32(30), strong.HP, "defender is never written back")
	assert.Equal(t, "Weak was defeated!", res.Log[len(res.Log)-1])

	assert.Equal(t, int32(1), res.Stats.Hits)
	assert.Equal(t, int32(1), res.Stats.TotalDamageDealt)
	assert.Equal(t, int32(1), res.Stats.EnemyHits)
	assert.Equal(t, int32(10), res.Stats.TotalDamageTaken)
}

func TestRunBattle_TurnCap(t *testing.T) {
	// 0.99 misses everything: hit chance never exceeds 95%.
	res := NewEngine(DefaultConfig(), fixedRand(0.99)).RunBattle(hero(), dummy(50))

	assert.Equal(t, WinnerDraw, res.Winner)
	assert.Equal(t, int32(MaxTurns), res.Stats.TurnsTaken)
	assert.Equal(t, int32(MaxTurns), res.Stats.Misses)
	assert.Equal(t, int32(MaxTurns), res.Stats.EnemyMisses)
	assert.Equal(t, "Battle ended by turn limit.", res.Log[len(res.Log)-1])
	assert.Equal(t, "Hero misses Dummy.", res.Log[1])

	cfg := DefaultConfig()
	cfg.MaxTurns = 3
	res = NewEngine(cfg, fixedRand(0.99)).RunBattle(hero(), dummy(50))
	assert.Equal(t, int32(3), res.Stats.TurnsTaken)
	assert.Len(t, GroupByTurn(res.Log), 3)
}

func TestRunBattle_TurnCapCannotBeRaised(t *testing.T) {
	for _, turns := range []int{51, 120} {
		cfg := DefaultConfig()
		cfg.MaxTurns = turns

		res := NewEngine(cfg, fixedRand(0.99)).RunBattle(hero(), dummy(50))
		if res.Stats.TurnsTaken != MaxTurns {
			t.Errorf("MaxTurns=%d: TurnsTaken = %d; want %d", turns, res.Stats.TurnsTaken, MaxTurns)
		}
		assert.Equal(t, WinnerDraw, res.Winner)
	}
}

func TestRunBattle_UnknownWeaknessStyle(t *testing.T) {
	plate := &model.Equipment{
		Slot:    model.SlotChest,
		Defense: &model.DefenseBlock{Weakness: model.DamageStyle(9), Value: 1},
	}
	d := newCombatant("Dummy", attrs(1, 1, 1, 5, 1, 1), 50, 0, plate)

	var res Result
	require.NotPanics(t, func() {
		res = NewEngine(DefaultConfig(), NewRand(3)).RunBattle(hero(), d)
	})
	assert.NotEmpty(t, res.Log)
}

func TestRunBattle_NeverExceedsTurnCap(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		a := newCombatant("A", attrs(3, 4, 1, 6, 2, 10), 200, 0)
		d := newCombatant("D", attrs(3, 4, 1, 6, 2, 10), 200, 0)

		res := NewEngine(DefaultConfig(), NewRand(seed)).RunBattle(a, d)
		if res.Stats.TurnsTaken > MaxTurns {
			t.Fatalf("seed %d: TurnsTaken = %d; want <= %d", seed, res.Stats.TurnsTaken, MaxTurns)
		}
		if res.Stats.TotalDamageDealt < res.Stats.Hits {
			t.Fatalf("seed %d: %d damage over %d hits; every hit deals at least 1",
				seed, res.Stats.TotalDamageDealt, res.Stats.Hits)
		}
		if res.Stats.Crits > res.Stats.Hits {
			t.Fatalf("seed %d: %d crits over %d hits", seed, res.Stats.Crits, res.Stats.Hits)
		}
	}
}

func TestRunBattle_Deterministic(t *testing.T) {
	mk := func() (*model.Combatant, *model.Combatant) {
		a := newCombatant("A", attrs(6, 6, 2, 5, 3, 20), 80, 0)
		d := newCombatant("D", attrs(7, 3, 1, 6, 2, 15), 90, 0)
		return a, d
	}

	a1, d1 := mk()
	a2, d2 := mk()
	r1 := NewEngine(DefaultConfig(), NewRand(42)).RunBattle(a1, d1)
	r2 := NewEngine(DefaultConfig(), NewRand(42)).RunBattle(a2, d2)

	assert.Equal(t, r1, r2)
	assert.Equal(t, a1.HP, a2.HP)
}

func TestRunBattle_NilCombatant(t *testing.T) {
	res := NewEngine(DefaultConfig(), nil).RunBattle(nil, dummy(10))
	assert.Equal(t, WinnerDraw, res.Winner)
	assert.Empty(t, res.Log)
}

func TestRunBattle_PassiveOrder(t *testing.T) {
	mk := func(name string, trig model.Trigger) *model.PassiveSkill {
		return &model.PassiveSkill{
			Name:    name,
			Trigger: trig,
			Effects: []model.Effect{model.StatusEffect{Status: "marked", Duration: 1}},
		}
	}

	h := hero()
	h.Equip(necklace(mk("Focus", model.TriggerTurnStart)))
	h.Equip(&model.Equipment{Slot: model.SlotShoulders, Passive: mk("Strike", model.TriggerAttack)})
	d := dummy(8)
	d.Equip(necklace(mk("Guard", model.TriggerTurnStart)))
	d.Equip(&model.Equipment{Slot: model.SlotChest, Passive: mk("Thorns", model.TriggerReceiveDamage)})

	res := NewEngine(DefaultConfig(), fixedRand(0.5)).RunBattle(h, d)

	var order []string
	for _, line := range res.Log {
		if name, ok := strings.CutPrefix(line, "Passive "); ok {
			order = append(order, name[:strings.Index(name, ":")])
		}
	}
	// on_attack fires before the hit line, on_receive_damage after it
	assert.Equal(t, []string{"Focus", "Guard", "Strike", "Thorns"}, order)

	hitIdx := indexOf(res.Log, "Hero hits Dummy for 8 damage (hp left: 0).")
	strikeIdx := indexOf(res.Log, "Passive Strike: applied status marked to Hero for 1 turn(s).")
	thornsIdx := indexOf(res.Log, "Passive Thorns: applied status marked to Dummy for 1 turn(s).")
	require.NotEqual(t, -1, hitIdx)
	assert.Less(t, strikeIdx, hitIdx)
	assert.Greater(t, thornsIdx, hitIdx)
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		p        Phase
		want     string
		terminal bool
	}{
		{PhaseIdle, "Idle", false},
		{PhaseTurnStart, "TurnStart", false},
		{PhaseCheckDefenderWin, "CheckDefenderWin", false},
		{PhaseAttackerWins, "AttackerWins", true},
		{PhaseDefenderWins, "DefenderWins", true},
		{PhaseTurnCapReached, "TurnCapReached", true},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q; want %q", tt.p, got, tt.want)
		}
		if got := tt.p.Terminal(); got != tt.terminal {
			t.Errorf("%s.Terminal() = %v; want %v", tt.p, got, tt.terminal)
		}
	}
}

func indexOf(lines []string, s string) int {
	for i, l := range lines {
		if l == s {
			return i
		}
	}
	return -1
}

func BenchmarkRunBattle(b *testing.B) {
	sword := &model.Equipment{Slot: model.SlotHands, Attack: &model.AttackBlock{Style: model.StyleSlash, Value: 3}}
	plate := &model.Equipment{Slot: model.SlotChest, Defense: &model.DefenseBlock{Weakness: model.StyleSlash, Value: 3}}
	rng := NewRand(1)
	e := NewEngine(DefaultConfig(), rng)

	b.ReportAllocs()
	for b.Loop() {
		a := newCombatant("A", attrs(6, 6, 2, 5, 3, 20), 200, 0, sword)
		d := newCombatant("D", attrs(7, 3, 1, 6, 2, 15), 200, 0, plate)
		_ = e.RunBattle(a, d)
	}
}
