package kv

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type SQLiteStoreTestSuite struct {
	suite.Suite
	db    *sql.DB
	store Store
}

func (s *SQLiteStoreTestSuite) SetupTest() {
	db, err := OpenSQLite(filepath.Join(s.T().TempDir(), "dutch.db"))
	s.Require().NoError(err)
	s.db = db

	store, err := NewSQLite(&SQLiteConfig{DB: db})
	s.Require().NoError(err)
	s.store = store
}

func (s *SQLiteStoreTestSuite) TearDownTest() {
	s.db.Close()
}

func TestSQLiteStoreTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteStoreTestSuite))
}

func (s *SQLiteStoreTestSuite) TestPutGetOverwrite() {
	ctx := context.Background()

	s.Require().NoError(s.store.Put(ctx, &PutInput{Key: "game", Value: []byte("first")}))
	s.Require().NoError(s.store.Put(ctx, &PutInput{Key: "game", Value: []byte("second")}))

	out, err := s.store.Get(ctx, &GetInput{Key: "game"})
	s.Require().NoError(err)
	s.Equal("second", string(out.Value))
}

func (s *SQLiteStoreTestSuite) TestGetMissing() {
	_, err := s.store.Get(context.Background(), &GetInput{Key: "missing"})
	s.ErrorIs(err, ErrNotFound)
}

func (s *SQLiteStoreTestSuite) TestDelete() {
	ctx := context.Background()

	s.Require().NoError(s.store.Put(ctx, &PutInput{Key: "game", Value: []byte("x")}))
	s.Require().NoError(s.store.Delete(ctx, &DeleteInput{Key: "game"}))

	_, err := s.store.Get(ctx, &GetInput{Key: "game"})
	s.ErrorIs(err, ErrNotFound)
}

func (s *SQLiteStoreTestSuite) TestReopenKeepsData() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, &PutInput{Key: "game", Value: []byte("kept")}))

	// A second store over the same database sees the table and the row
	again, err := NewSQLite(&SQLiteConfig{DB: s.db})
	s.Require().NoError(err)

	out, err := again.Get(ctx, &GetInput{Key: "game"})
	s.Require().NoError(err)
	s.Equal("kept", string(out.Value))
}

func (s *SQLiteStoreTestSuite) TestClosedDatabase() {
	s.db.Close()

	err := s.store.Put(context.Background(), &PutInput{Key: "game", Value: []byte("x")})
	s.Error(err)
}

func TestOpenSQLiteEmptyPath(t *testing.T) {
	_, err := OpenSQLite("")
	if err == nil {
		t.Fatal("expected error for empty path")
	}
}
