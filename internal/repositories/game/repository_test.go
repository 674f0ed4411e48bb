package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dutch/internal/models"
	"github.com/KirkDiggler/dutch/internal/repositories/kv"
	kvMocks "github.com/KirkDiggler/dutch/internal/repositories/kv/mocks"
)

type GameRepositoryTestSuite struct {
	suite.Suite
	store   kv.Store
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *GameRepositoryTestSuite) SetupTest() {
	s.store = kv.NewMemory()
	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)

	repo, err := New(&Config{Store: s.store})
	s.Require().NoError(err)
	s.repo = repo
}

func TestGameRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GameRepositoryTestSuite))
}

// twoRoundGame is Alice and Bob after rounds [15, 20] and [85, 10] with Bob calling Dutch
func (s *GameRepositoryTestSuite) twoRoundGame() *models.Game {
	g := &models.Game{
		ID: "test-game-id",
		Players: []*models.Player{
			{ID: "alice-id", Name: "Alice", Rounds: []models.RoundEntry{{Score: 15}, {Score: 85}}},
			{ID: "bob-id", Name: "Bob", Rounds: []models.RoundEntry{{Score: 20}, {Score: 10, IsDutch: true}}},
		},
		RoundHistory: []*models.RoundRecord{
			{Scores: []int{15, 20}},
			{Scores: []int{85, 10}, DutchPlayerID: "bob-id"},
		},
		ScoreLimit:    100,
		GameStartTime: s.testNow,
	}
	g.Recompute()
	return g
}

func (s *GameRepositoryTestSuite) TestSaveAndLoadRoundTrip() {
	game := s.twoRoundGame()

	out, err := s.repo.SaveGame(s.ctx, &SaveGameInput{Game: game, Sequence: 4})
	s.Require().NoError(err)
	s.False(out.Skipped)

	loaded, err := s.repo.LoadGame(s.ctx, &LoadGameInput{})
	s.Require().NoError(err)
	s.Equal(LoadStatusOK, loaded.Status)
	s.False(loaded.Migrated)
	s.Equal(uint64(4), loaded.Sequence)
	s.Equal(game, loaded.Game)
	s.True(loaded.Game.IsGameOver)
}

func (s *GameRepositoryTestSuite) TestSavedShape() {
	_, err := s.repo.SaveGame(s.ctx, &SaveGameInput{Game: s.twoRoundGame()})
	s.Require().NoError(err)

	raw, err := s.store.Get(s.ctx, &kv.GetInput{Key: canonicalKey})
	s.Require().NoError(err)

	s.JSONEq(`{
		"version": 2,
		"sequence": 0,
		"id": "test-game-id",
		"players": [
			{"id": "alice-id", "name": "Alice", "totalScore": 100,
			 "rounds": [{"score": 15, "isDutch": false}, {"score": 85, "isDutch": false}]},
			{"id": "bob-id", "name": "Bob", "totalScore": 30,
			 "rounds": [{"score": 20, "isDutch": false}, {"score": 10, "isDutch": true}]}
		],
		"roundHistory": [
			{"scores": [15, 20], "dutchPlayerId": null},
			{"scores": [85, 10], "dutchPlayerId": "bob-id"}
		],
		"scoreLimit": 100,
		"gameStartTime": "2025-04-05T10:00:00Z",
		"isGameOver": true
	}`, string(raw.Value))
}

func (s *GameRepositoryTestSuite) TestLoadNothingSaved() {
	out, err := s.repo.LoadGame(s.ctx, &LoadGameInput{})
	s.Require().NoError(err)
	s.Equal(LoadStatusAbsent, out.Status)
	s.Nil(out.Game)
}

func (s *GameRepositoryTestSuite) TestLoadMigratesLegacySave() {
	legacy := `{
		"players": [
			{"id": "a", "name": "Alice", "scores": [15, 85], "dutchRounds": []},
			{"id": "b", "name": "Bob", "scores": [20, 10], "dutchRounds": [1]}
		],
		"scoreLimit": 100,
		"startedAt": 1743847200000
	}`
	s.Require().NoError(s.store.Put(s.ctx, &kv.PutInput{Key: "dutchGameState", Value: []byte(legacy)}))

	out, err := s.repo.LoadGame(s.ctx, &LoadGameInput{})
	s.Require().NoError(err)
	s.Require().Equal(LoadStatusOK, out.Status)
	s.True(out.Migrated)
	s.Equal(100, out.Game.Players[0].TotalScore)
	s.Equal(30, out.Game.Players[1].TotalScore)
	s.Equal("b", out.Game.RoundHistory[1].DutchPlayerID)
	s.True(out.Game.Players[1].Rounds[1].IsDutch)
	s.True(out.Game.IsGameOver)
	s.Equal(s.testNow, out.Game.GameStartTime)

	// The legacy key is gone and the canonical key now holds the game
	_, err = s.store.Get(s.ctx, &kv.GetInput{Key: "dutchGameState"})
	s.ErrorIs(err, kv.ErrNotFound)

	again, err := s.repo.LoadGame(s.ctx, &LoadGameInput{})
	s.Require().NoError(err)
	s.Equal(LoadStatusOK, again.Status)
	s.False(again.Migrated)
	s.Equal(out.Game, again.Game)
}

func (s *GameRepositoryTestSuite) TestLegacyKeyPriority() {
	first := `{"players":[{"name":"First","scores":[1]},{"name":"Other","scores":[2]}],"startedAt":1743847200000}`
	second := `{"players":[{"name":"Second","scores":[1]},{"name":"Other","scores":[2]}],"startedAt":1743847200000}`
	s.Require().NoError(s.store.Put(s.ctx, &kv.PutInput{Key: "gameState", Value: []byte(second)}))
	s.Require().NoError(s.store.Put(s.ctx, &kv.PutInput{Key: "dutch-game-state", Value: []byte(first)}))

	out, err := s.repo.LoadGame(s.ctx, &LoadGameInput{})
	s.Require().NoError(err)
	s.Require().Equal(LoadStatusOK, out.Status)
	s.Equal("First", out.Game.Players[0].Name)
	s.Equal("player-1", out.Game.Players[0].ID)
	s.Equal(models.DefaultScoreLimit, out.Game.ScoreLimit)
}

func (s *GameRepositoryTestSuite) TestLegacyKeyInCurrentFormat() {
	data, err := encodeGame(s.twoRoundGame(), 0)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Put(s.ctx, &kv.PutInput{Key: "gameState", Value: data}))

	out, err := s.repo.LoadGame(s.ctx, &LoadGameInput{})
	s.Require().NoError(err)
	s.Equal(LoadStatusOK, out.Status)
	s.True(out.Migrated)
	s.Equal(s.twoRoundGame(), out.Game)
}

func (s *GameRepositoryTestSuite) TestCorruptCanonicalSave() {
	s.Require().NoError(s.store.Put(s.ctx, &kv.PutInput{Key: canonicalKey, Value: []byte("{not json")}))

	out, err := s.repo.LoadGame(s.ctx, &LoadGameInput{})
	s.Require().NoError(err)
	s.Equal(LoadStatusMalformed, out.Status)
	s.Nil(out.Game)
}

func (s *GameRepositoryTestSuite) TestCorruptLegacySaveIsSkipped() {
	good := `{"players":[{"name":"A","scores":[3]},{"name":"B","scores":[4]}],"startedAt":1743847200000}`
	s.Require().NoError(s.store.Put(s.ctx, &kv.PutInput{Key: "dutch-game-state", Value: []byte(`[1,2,3]`)}))
	s.Require().NoError(s.store.Put(s.ctx, &kv.PutInput{Key: "gameState", Value: []byte(good)}))

	out, err := s.repo.LoadGame(s.ctx, &LoadGameInput{})
	s.Require().NoError(err)
	s.Require().Equal(LoadStatusOK, out.Status)
	s.Equal(3, out.Game.Players[0].TotalScore)
}

func (s *GameRepositoryTestSuite) TestStaleSaveIsSkipped() {
	newer := s.twoRoundGame()
	older := s.twoRoundGame()
	older.RoundHistory = older.RoundHistory[:1]
	for _, p := range older.Players {
		p.Rounds = p.Rounds[:1]
	}
	older.Recompute()

	_, err := s.repo.SaveGame(s.ctx, &SaveGameInput{Game: newer, Sequence: 2})
	s.Require().NoError(err)

	out, err := s.repo.SaveGame(s.ctx, &SaveGameInput{Game: older, Sequence: 1})
	s.Require().NoError(err)
	s.True(out.Skipped)

	loaded, err := s.repo.LoadGame(s.ctx, &LoadGameInput{})
	s.Require().NoError(err)
	s.Equal(2, loaded.Game.RoundCount())
}

func (s *GameRepositoryTestSuite) TestClearGame() {
	_, err := s.repo.SaveGame(s.ctx, &SaveGameInput{Game: s.twoRoundGame()})
	s.Require().NoError(err)
	s.Require().NoError(s.store.Put(s.ctx, &kv.PutInput{Key: "gameState", Value: []byte("{}")}))

	s.Require().NoError(s.repo.ClearGame(s.ctx, &ClearGameInput{}))

	for _, key := range append([]string{canonicalKey}, legacyKeys...) {
		_, err := s.store.Get(s.ctx, &kv.GetInput{Key: key})
		s.ErrorIs(err, kv.ErrNotFound, key)
	}
}

func (s *GameRepositoryTestSuite) TestStorageFailures() {
	ctrl := gomock.NewController(s.T())
	store := kvMocks.NewMockStore(ctrl)
	repo, err := New(&Config{Store: store})
	s.Require().NoError(err)

	boom := errors.New("quota exceeded")
	store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(boom)
	store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, boom).Times(1 + len(legacyKeys))
	store.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(boom).Times(1 + len(legacyKeys))

	_, err = repo.SaveGame(s.ctx, &SaveGameInput{Game: s.twoRoundGame()})
	s.ErrorIs(err, ErrPersistence)

	// Reads degrade to "no saved game"
	out, err := repo.LoadGame(s.ctx, &LoadGameInput{})
	s.Require().NoError(err)
	s.Equal(LoadStatusAbsent, out.Status)

	s.ErrorIs(repo.ClearGame(s.ctx, &ClearGameInput{}), ErrPersistence)
}

func (s *GameRepositoryTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{})
	s.Error(err)
}

// switchableStore is a memory store that fails every call while down
type switchableStore struct {
	kv.Store
	down bool
}

func (f *switchableStore) Get(ctx context.Context, input *kv.GetInput) (*kv.GetOutput, error) {
	if f.down {
		return nil, errors.New("store offline")
	}
	return f.Store.Get(ctx, input)
}

func (f *switchableStore) Put(ctx context.Context, input *kv.PutInput) error {
	if f.down {
		return errors.New("store offline")
	}
	return f.Store.Put(ctx, input)
}

func (f *switchableStore) Delete(ctx context.Context, input *kv.DeleteInput) error {
	if f.down {
		return errors.New("store offline")
	}
	return f.Store.Delete(ctx, input)
}

func (s *GameRepositoryTestSuite) newTieredRepo(primary, fallback kv.Store) Repository {
	store, err := kv.NewTiered(&kv.TieredConfig{
		Primary:  primary,
		Fallback: fallback,
		Resolve:  NewerSave,
	})
	s.Require().NoError(err)

	repo, err := New(&Config{Store: store})
	s.Require().NoError(err)
	return repo
}

func (s *GameRepositoryTestSuite) TestSavesDuringPrimaryOutageSurviveRestart() {
	primary := &switchableStore{Store: kv.NewMemory()}
	fallback := kv.NewMemory()
	repo := s.newTieredRepo(primary, fallback)

	game := s.twoRoundGame()
	_, err := repo.SaveGame(s.ctx, &SaveGameInput{Game: game, Sequence: 1})
	s.Require().NoError(err)

	primary.down = true
	game.Players[0].Rounds = append(game.Players[0].Rounds, models.RoundEntry{Score: 3})
	game.Players[1].Rounds = append(game.Players[1].Rounds, models.RoundEntry{Score: 4})
	game.RoundHistory = append(game.RoundHistory, &models.RoundRecord{Scores: []int{3, 4}})
	game.Recompute()
	_, err = repo.SaveGame(s.ctx, &SaveGameInput{Game: game, Sequence: 2})
	s.Require().NoError(err)
	primary.down = false

	// A fresh repository stands in for a restart
	restarted := s.newTieredRepo(primary, fallback)
	out, err := restarted.LoadGame(s.ctx, &LoadGameInput{})
	s.Require().NoError(err)
	s.Require().Equal(LoadStatusOK, out.Status)
	s.Equal(uint64(2), out.Sequence)
	s.Equal(3, out.Game.RoundCount())

	// The next successful save lands in the primary and clears the fallback copy
	_, err = restarted.SaveGame(s.ctx, &SaveGameInput{Game: out.Game, Sequence: 3})
	s.Require().NoError(err)
	_, err = fallback.Get(s.ctx, &kv.GetInput{Key: canonicalKey})
	s.ErrorIs(err, kv.ErrNotFound)
}

func (s *GameRepositoryTestSuite) TestClearFailsWhenPrimaryIsDown() {
	primary := &switchableStore{Store: kv.NewMemory()}
	repo := s.newTieredRepo(primary, kv.NewMemory())

	_, err := repo.SaveGame(s.ctx, &SaveGameInput{Game: s.twoRoundGame(), Sequence: 1})
	s.Require().NoError(err)

	primary.down = true
	s.ErrorIs(repo.ClearGame(s.ctx, &ClearGameInput{}), ErrPersistence)
	primary.down = false

	// The game is still there, so the failed clear was reported honestly
	out, err := repo.LoadGame(s.ctx, &LoadGameInput{})
	s.Require().NoError(err)
	s.Equal(LoadStatusOK, out.Status)
}

func (s *GameRepositoryTestSuite) TestLegacyNamesAreNormalized() {
	legacy := `{
		"players": [
			{"id": "a", "name": "   ", "scores": [1], "dutchRounds": []},
			{"id": "b", "name": "  Bartholomew the Magnificent  ", "scores": [2], "dutchRounds": []}
		],
		"scoreLimit": 100,
		"startedAt": 1743847200000
	}`
	s.Require().NoError(s.store.Put(s.ctx, &kv.PutInput{Key: "gameState", Value: []byte(legacy)}))

	out, err := s.repo.LoadGame(s.ctx, &LoadGameInput{})
	s.Require().NoError(err)
	s.Require().Equal(LoadStatusOK, out.Status)
	s.Equal("Player 1", out.Game.Players[0].Name)
	s.Equal("Bartholomew the Magn", out.Game.Players[1].Name)
}
