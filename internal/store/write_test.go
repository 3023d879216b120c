package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lexweb/internal/model"
)

func TestInsertLexicon_DuplicateName(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustLexicon(t, s, "lx1", "alice", "Animals")

	err := s.InsertLexicon(ctx, model.NewLexicon("lx2", "alice", "Animals", at(1)))
	require.Error(t, err)
	assert.True(t, model.IsDuplicateName(err), "got %v", err)

	// Same name, different owner is fine.
	require.NoError(t, s.InsertLexicon(ctx, model.NewLexicon("lx3", "bob", "Animals", at(1))))

	// Same name, other kind is fine.
	require.NoError(t, s.InsertWeb(ctx, model.NewWeb("w1", "alice", "Animals", at(1))))
}

func TestInsertWeb_CausalityRejected(t *testing.T) {
	s := createTestStore(t)

	w := model.NewWeb("w1", "alice", "Food Chain", at(10))
	w.LastModified = at(5)

	err := s.InsertWeb(context.Background(), w)
	require.Error(t, err)
	assert.True(t, model.IsCausalityViolation(err), "got %v", err)
}

func TestRenameLexicon(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	animals := mustLexicon(t, s, "lx1", "alice", "Animals")
	mustLexicon(t, s, "lx2", "alice", "Plants")

	require.NoError(t, s.RenameLexicon(ctx, animals, "Fauna"))
	got, err := s.GetLexicon(ctx, "lx1")
	require.NoError(t, err)
	assert.Equal(t, "Fauna", got.Name)
	assert.Equal(t, animals.LastModified, got.LastModified, "rename does not touch last_modified")

	err = s.RenameLexicon(ctx, got, "Plants")
	assert.True(t, model.IsDuplicateName(err), "got %v", err)

	missing := model.NewLexicon("nope", "alice", "Ghost", t0)
	err = s.RenameLexicon(ctx, missing, "Other")
	assert.True(t, model.IsNotFound(err), "got %v", err)
}

func TestInsertLexeme_StampsLexicon(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustLexicon(t, s, "lx1", "alice", "Animals")

	lx := mustLexeme(t, s, "lx1", "cat", at(3))

	got, err := s.GetLexicon(ctx, "lx1")
	require.NoError(t, err)
	assert.Equal(t, t0, got.DateCreated)
	assert.Equal(t, lx.DateAdded, got.LastModified)
}

func TestInsertLexeme_DuplicateTextRollsBack(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustLexicon(t, s, "lx1", "alice", "Animals")
	mustLexeme(t, s, "lx1", "dog", at(1))

	err := s.InsertLexeme(ctx, model.NewLexeme("other-id", "lx1", "dog", at(2)))
	require.Error(t, err)
	assert.True(t, model.IsDuplicateText(err), "got %v", err)

	got, err := s.GetLexicon(ctx, "lx1")
	require.NoError(t, err)
	assert.Equal(t, at(1), got.LastModified, "failed insert must not stamp lexicon")
}

func TestInsertLexeme_MissingLexicon(t *testing.T) {
	s := createTestStore(t)

	err := s.InsertLexeme(context.Background(), model.NewLexeme("lm1", "missing", "cat", at(1)))
	assert.True(t, model.IsNotFound(err), "got %v", err)
}

func TestInsertLexeme_BeforeCreationIsCausalityViolation(t *testing.T) {
	s := createTestStore(t)
	mustLexicon(t, s, "lx1", "alice", "Animals")

	err := s.InsertLexeme(context.Background(), model.NewLexeme("lm1", "lx1", "cat", at(-1)))
	require.Error(t, err)
	assert.True(t, model.IsCausalityViolation(err), "got %v", err)

	lexemes, err := s.ListLexemes(context.Background(), "lx1")
	require.NoError(t, err)
	assert.Empty(t, lexemes)
}

func TestStamp_LastModifiedNeverMovesBack(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustLexicon(t, s, "lx1", "alice", "Animals")
	mustLexeme(t, s, "lx1", "eats", at(1))
	cat := mustLexeme(t, s, "lx1", "cat", at(3600))
	mustWeb(t, s, "w1", "alice", "Food Chain")
	eats, err := s.FindLexeme(ctx, "lx1", "eats")
	require.NoError(t, err)
	r := mustRelation(t, s, "r1", "w1", eats, cat, cat, at(3600))

	tests := []struct {
		name  string
		write func() error
		table collectionTable
		id    string
	}{
		{"insert lexeme earlier", func() error {
			return s.InsertLexeme(ctx, model.NewLexeme("lm-dog", "lx1", "dog", at(60)))
		}, lexiconTable, "lx1"},
		{"insert lexeme same instant", func() error {
			return s.InsertLexeme(ctx, model.NewLexeme("lm-dog", "lx1", "dog", at(3600)))
		}, lexiconTable, "lx1"},
		{"delete lexeme earlier", func() error {
			_, err := s.DeleteLexeme(ctx, "lx1", cat.ID, at(60))
			return err
		}, lexiconTable, "lx1"},
		{"insert relation earlier", func() error {
			return s.InsertRelation(ctx, model.NewRelation("r2", "w1", eats, eats, cat, false, at(60)))
		}, webTable, "w1"},
		{"delete relation same instant", func() error {
			return s.DeleteRelation(ctx, "w1", r.ID, at(3600))
		}, webTable, "w1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.write()
			require.Error(t, err)
			assert.True(t, model.IsCausalityViolation(err), "got %v", err)

			var nanos int64
			require.NoError(t, s.db.QueryRow(
				"SELECT last_modified FROM "+tt.table.table+" WHERE id = ?", tt.id,
			).Scan(&nanos))
			assert.Equal(t, at(3600), fromNanos(nanos), "last_modified unchanged")
		})
	}

	lexemes, err := s.ListLexemes(ctx, "lx1")
	require.NoError(t, err)
	assert.Len(t, lexemes, 2, "nothing committed")
	rels, err := s.ListRelations(ctx, "w1")
	require.NoError(t, err)
	assert.Len(t, rels, 1, "nothing committed")
}

func TestInsertLexeme_ConcurrentDuplicate(t *testing.T) {
	s := createTestStore(t)
	mustLexicon(t, s, "lx1", "alice", "Animals")

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lx := model.NewLexeme("lm-"+string(rune('a'+i)), "lx1", "cat", at(i+1))
			errs[i] = s.InsertLexeme(context.Background(), lx)
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case model.IsDuplicateText(err):
			dup++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, dup)
}

func TestDeleteLexeme_NotMember(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustLexicon(t, s, "lx1", "alice", "Animals")
	mustLexicon(t, s, "lx2", "alice", "Plants")
	cat := mustLexeme(t, s, "lx1", "cat", at(1))

	_, err := s.DeleteLexeme(ctx, "lx2", cat.ID, at(2))
	require.Error(t, err)
	assert.True(t, model.IsNotFound(err), "got %v", err)

	plants, err := s.GetLexicon(ctx, "lx2")
	require.NoError(t, err)
	assert.Equal(t, t0, plants.LastModified, "failed delete must not stamp lexicon")

	_, err = s.GetLexeme(ctx, cat.ID)
	assert.NoError(t, err, "lexeme must survive")
}

func TestDeleteLexeme_CascadesRelationsAcrossWebs(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustLexicon(t, s, "lx1", "alice", "Animals")
	mustLexicon(t, s, "lx2", "alice", "Verbs")
	cat := mustLexeme(t, s, "lx1", "cat", at(1))
	mouse := mustLexeme(t, s, "lx1", "mouse", at(2))
	eats := mustLexeme(t, s, "lx2", "eats", at(3))
	mustWeb(t, s, "w1", "alice", "Food Chain")
	mustWeb(t, s, "w2", "bob", "Pets")
	mustRelation(t, s, "r1", "w1", eats, cat, mouse, at(4))
	mustRelation(t, s, "r2", "w2", eats, mouse, cat, at(5))
	mustRelation(t, s, "r3", "w2", cat, mouse, mouse, at(6))

	n, err := s.DeleteLexeme(ctx, "lx1", cat.ID, at(7))
	require.NoError(t, err)
	assert.Equal(t, 3, n, "cascade count covers every web")

	for _, web := range []string{"w1", "w2"} {
		rels, err := s.ListRelations(ctx, web)
		require.NoError(t, err)
		assert.Empty(t, rels, "web %s", web)
	}
	_, err = s.GetLexeme(ctx, mouse.ID)
	assert.NoError(t, err, "unrelated lexeme survives")
}

func TestDeleteLexicon_Cascades(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustLexicon(t, s, "lx1", "alice", "Animals")
	cat := mustLexeme(t, s, "lx1", "cat", at(1))
	mouse := mustLexeme(t, s, "lx1", "mouse", at(2))
	mustLexicon(t, s, "lx2", "alice", "Verbs")
	eats := mustLexeme(t, s, "lx2", "eats", at(3))
	mustWeb(t, s, "w1", "alice", "Food Chain")
	mustRelation(t, s, "r1", "w1", eats, cat, mouse, at(4))

	require.NoError(t, s.DeleteLexicon(ctx, "lx1"))

	_, err := s.GetLexeme(ctx, cat.ID)
	assert.True(t, model.IsNotFound(err))
	rels, err := s.ListRelations(ctx, "w1")
	require.NoError(t, err)
	assert.Empty(t, rels)
	_, err = s.GetLexeme(ctx, eats.ID)
	assert.NoError(t, err)

	assert.True(t, model.IsNotFound(s.DeleteLexicon(ctx, "lx1")))
}

func TestInsertRelation_StampsAndDetectsDuplicate(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustLexicon(t, s, "lx1", "alice", "Animals")
	eats := mustLexeme(t, s, "lx1", "eats", at(1))
	cat := mustLexeme(t, s, "lx1", "cat", at(2))
	mouse := mustLexeme(t, s, "lx1", "mouse", at(3))
	mustWeb(t, s, "w1", "alice", "Food Chain")

	r := mustRelation(t, s, "r1", "w1", eats, cat, mouse, at(4))
	web, err := s.GetWeb(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, r.DateAdded, web.LastModified)

	err = s.InsertRelation(ctx, model.NewRelation("r2", "w1", eats, cat, mouse, true, at(5)))
	require.Error(t, err)
	assert.True(t, model.IsDuplicateRelation(err), "got %v", err)

	web, err = s.GetWeb(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, at(4), web.LastModified)
}

func TestInsertRelation_MissingLexeme(t *testing.T) {
	s := createTestStore(t)
	mustLexicon(t, s, "lx1", "alice", "Animals")
	cat := mustLexeme(t, s, "lx1", "cat", at(1))
	mustWeb(t, s, "w1", "alice", "Food Chain")
	ghost := model.NewLexeme("ghost", "lx1", "ghost", at(1))

	err := s.InsertRelation(context.Background(), model.NewRelation("r1", "w1", ghost, cat, cat, false, at(2)))
	require.Error(t, err)
	assert.True(t, model.IsNotFound(err), "got %v", err)
}

func TestDeleteRelation(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustLexicon(t, s, "lx1", "alice", "Animals")
	eats := mustLexeme(t, s, "lx1", "eats", at(1))
	cat := mustLexeme(t, s, "lx1", "cat", at(2))
	mouse := mustLexeme(t, s, "lx1", "mouse", at(3))
	mustWeb(t, s, "w1", "alice", "Food Chain")
	mustWeb(t, s, "w2", "alice", "Other")
	r := mustRelation(t, s, "r1", "w1", eats, cat, mouse, at(4))

	err := s.DeleteRelation(ctx, "w2", r.ID, at(5))
	assert.True(t, model.IsNotFound(err), "relation is not a member of w2")

	require.NoError(t, s.DeleteRelation(ctx, "w1", r.ID, at(6)))
	web, err := s.GetWeb(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, at(6), web.LastModified)

	_, err = s.GetRelation(ctx, r.ID)
	assert.True(t, model.IsNotFound(err))
}

func TestDeleteWeb_Cascades(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustLexicon(t, s, "lx1", "alice", "Animals")
	eats := mustLexeme(t, s, "lx1", "eats", at(1))
	cat := mustLexeme(t, s, "lx1", "cat", at(2))
	mustWeb(t, s, "w1", "alice", "Food Chain")
	r := mustRelation(t, s, "r1", "w1", eats, cat, cat, at(3))

	require.NoError(t, s.DeleteWeb(ctx, "w1"))

	_, err := s.GetRelation(ctx, r.ID)
	assert.True(t, model.IsNotFound(err))
	_, err = s.GetLexeme(ctx, cat.ID)
	assert.NoError(t, err, "lexemes are not owned by webs")
}
