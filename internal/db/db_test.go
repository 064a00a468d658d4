package db_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/udisondev/battlego/internal/db"
	"github.com/udisondev/battlego/internal/game/arena"
	"github.com/udisondev/battlego/internal/game/combat"
	"github.com/udisondev/battlego/internal/game/hunt"
	"github.com/udisondev/battlego/internal/game/store"
	"github.com/udisondev/battlego/internal/model"
	"github.com/udisondev/battlego/internal/testutil"
)

// RepositorySuite — интеграционные тесты репозиториев на реальном PostgreSQL.
// Контейнер создаётся один раз на suite, таблицы очищаются перед каждым тестом.
type RepositorySuite struct {
	suite.Suite
	db  *db.DB
	ctx context.Context
}

// SetupSuite выполняется один раз перед всеми тестами в suite.
func (s *RepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	s.db = testutil.SetupTestDB(s.T())
}

// SetupTest выполняется перед каждым тестом для очистки данных.
func (s *RepositorySuite) SetupTest() {
	if err := s.cleanupTestData(); err != nil {
		s.T().Fatalf("failed to cleanup test data: %v", err)
	}
}

func (s *RepositorySuite) cleanupTestData() error {
	_, err := s.db.Pool().Exec(s.ctx,
		"TRUNCATE TABLE encounters, inventory_items, characters RESTART IDENTITY CASCADE")
	if err != nil {
		return fmt.Errorf("truncating test tables: %w", err)
	}
	return nil
}

func (s *RepositorySuite) createCharacter(name string, attr int32) *model.Character {
	c := testutil.NewTestCharacter(name, attr)
	s.Require().NoError(s.db.Characters().Create(s.ctx, c))
	s.Require().NotZero(c.ID)
	return c
}

func (s *RepositorySuite) TestCharacter_CreateLoadUpdate() {
	repo := s.db.Characters()

	c := testutil.NewTestCharacter("Aria", 4)
	c.Equipped[model.SlotHands] = 7
	s.Require().NoError(repo.Create(s.ctx, c))

	loaded, err := repo.LoadByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Require().NotNil(loaded)
	s.Equal(*c, *loaded)

	loaded.Gold = 99
	loaded.Attributes[model.AttrLuck] = 9
	loaded.Equipped[model.SlotHands] = 0
	s.Require().NoError(repo.Update(s.ctx, loaded))

	again, err := repo.LoadByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(int64(99), again.Gold)
	s.Equal(int32(9), again.Attributes[model.AttrLuck])
	s.Zero(again.Equipped[model.SlotHands])

	missing, err := repo.LoadByID(s.ctx, c.ID+1000)
	s.NoError(err)
	s.Nil(missing)

	s.Error(repo.Create(s.ctx, testutil.NewTestCharacter("Aria", 1)), "names are unique")
}

func (s *RepositorySuite) TestCharacter_Equip() {
	c := s.createCharacter("Bram", 1)
	s.Require().NoError(s.db.Characters().Equip(s.ctx, c.ID, model.SlotHead, 2))

	loaded, err := s.db.Characters().LoadByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), loaded.Equipped[model.SlotHead])

	err = s.db.Characters().Equip(s.ctx, c.ID+1000, model.SlotHead, 2)
	s.ErrorIs(err, store.ErrCharacterNotFound)
}

func (s *RepositorySuite) TestInTx_Commit() {
	c := s.createCharacter("Cyra", 2)

	err := s.db.InTx(s.ctx, func(ctx context.Context, tx store.Tx) error {
		locked, err := tx.LockCharacter(ctx, c.ID)
		if err != nil {
			return err
		}
		locked.Gold += 10
		if err := tx.SaveCharacter(ctx, locked); err != nil {
			return err
		}
		if err := tx.AddInventoryItem(ctx, c.ID, 4, 2); err != nil {
			return err
		}
		if err := tx.AddInventoryItem(ctx, c.ID, 4, 1); err != nil {
			return err
		}
		enc := model.NewEncounter(model.EncounterHunt, c.ID, "Wolf")
		enc.Winner = "attacker"
		enc.Log = []string{"--- Turn 1 ---", "Cyra hits Wolf for 3 damage (hp left: 0)."}
		enc.Stats.Hits = 1
		return tx.RecordEncounter(ctx, enc)
	})
	s.Require().NoError(err)

	loaded, err := s.db.Characters().LoadByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(int64(10), loaded.Gold)

	inv, err := s.db.Inventory().LoadInventory(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Require().Len(inv, 1)
	s.Equal(int32(3), inv[0].Quantity)

	encs, err := s.db.Encounters().ListByCharacter(s.ctx, c.ID, 10)
	s.Require().NoError(err)
	s.Require().Len(encs, 1)
	s.Equal(model.EncounterHunt, encs[0].Kind)
	s.Equal(int32(1), encs[0].Stats.Hits)
	s.Len(encs[0].Log, 2)
	s.Zero(encs[0].DefenderID)
}

func (s *RepositorySuite) TestInTx_Rollback() {
	c := s.createCharacter("Dara", 2)
	boom := errors.New("boom")

	err := s.db.InTx(s.ctx, func(ctx context.Context, tx store.Tx) error {
		locked, err := tx.LockCharacter(ctx, c.ID)
		if err != nil {
			return err
		}
		locked.Gold = 1_000_000
		if err := tx.SaveCharacter(ctx, locked); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	loaded, err := s.db.Characters().LoadByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Zero(loaded.Gold)

	err = s.db.InTx(s.ctx, func(ctx context.Context, tx store.Tx) error {
		_, err := tx.LockCharacter(ctx, c.ID+1000)
		return err
	})
	s.ErrorIs(err, store.ErrCharacterNotFound)
}

func (s *RepositorySuite) TestHuntAndChallenge() {
	cat := testutil.LoadTestCatalog(s.T())
	hero := s.createCharacter("Hero", 10)
	rival := s.createCharacter("Rival", 1)

	hs := hunt.NewService(s.db, cat, hunt.Config{Battle: combat.DefaultConfig(), LevelGrowthRate: 1.5})
	hs.SetSeedSource(testutil.FixedSeed(3))
	hout, err := hs.Hunt(s.ctx, hero.ID, testutil.HuntForest)
	s.Require().NoError(err)
	s.Equal(combat.WinnerAttacker, hout.Winner)

	inv, err := s.db.Inventory().LoadInventory(s.ctx, hero.ID)
	s.Require().NoError(err)
	s.Equal([]db.InventoryItem{{ItemID: testutil.ItemWolfPelt, Quantity: 1}}, inv)

	as := arena.NewService(s.db, cat, combat.DefaultConfig())
	as.SetSeedSource(testutil.FixedSeed(5))
	aout, err := as.Challenge(s.ctx, hero.ID, rival.ID)
	s.Require().NoError(err)
	s.Equal(combat.WinnerAttacker, aout.Winner)

	loadedRival, err := s.db.Characters().LoadByID(s.ctx, rival.ID)
	s.Require().NoError(err)
	s.Equal(int32(model.StartingArenaPoints-30), loadedRival.ArenaPoints)

	encs, err := s.db.Encounters().ListByCharacter(s.ctx, rival.ID, 10)
	s.Require().NoError(err)
	s.Require().Len(encs, 1)
	s.Equal(model.EncounterArena, encs[0].Kind)
	s.Equal(rival.ID, encs[0].DefenderID)

	encs, err = s.db.Encounters().ListByCharacter(s.ctx, hero.ID, 10)
	s.Require().NoError(err)
	s.Len(encs, 2)
}

// TestRepositorySuite — entry point для запуска RepositorySuite.
func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	suite.Run(t, new(RepositorySuite))
}
