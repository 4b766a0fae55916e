package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/katiba/pkg/citation"
	"github.com/coolbeans/katiba/pkg/extract"
)

func parseFixture(t *testing.T) *extract.Document {
	t.Helper()

	data, err := os.ReadFile("../../testdata/kenya-excerpt.txt")
	require.NoError(t, err)
	return extract.ParseString(string(data))
}

func openStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(t.Context(), filepath.Join(t.TempDir(), "katiba.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func savedStore(t *testing.T) (*Store, *extract.Document) {
	t.Helper()

	s := openStore(t)
	doc := parseFixture(t)
	_, err := s.Save(t.Context(), "kenya", doc)
	require.NoError(t, err)
	return s, doc
}

func TestLookup(t *testing.T) {
	t.Parallel()

	s, _ := savedStore(t)

	tcs := map[string]struct {
		ref    string
		kind   NodeKind
		cite   string
		number string
		title  string
		text   string
	}{
		"mini-clause": {
			ref:    "Article 73(1)(a)(ii)",
			kind:   KindMiniClause,
			cite:   "Article 73(1)(a)(ii)",
			number: "ii",
			text:   "demonstrates respect for the people;",
		},
		"sub-clause": {
			ref:    "art. 43 (1) (e)",
			kind:   KindSubClause,
			cite:   "Article 43(1)(e)",
			number: "e",
			text:   "to social security; and",
		},
		"sub-clause of unnumbered clause": {
			ref:    "Article 174(b)",
			kind:   KindSubClause,
			cite:   "Article 174(b)",
			number: "b",
			text:   "to foster national unity by recognising diversity;",
		},
		"clause": {
			ref:    "Article 26(2)",
			kind:   KindClause,
			cite:   "Article 26(2)",
			number: "2",
			text:   "The life of a person begins at conception.",
		},
		"article": {
			ref:    "Article 26",
			kind:   KindArticle,
			cite:   "Article 26",
			number: "26",
			title:  "Right to life",
			text:   "Right to life.\n26. (1) Every person has the right to life.\n(2) The life of a person begins at conception.",
		},
		"part": {
			ref:    "Chapter Four, Part 2",
			kind:   KindPart,
			cite:   "Chapter 4, Part 2",
			number: "2",
			title:  "RIGHTS AND FUNDAMENTAL FREEDOMS",
		},
		"chapter": {
			ref:    "CHAPTER FOUR",
			kind:   KindChapter,
			cite:   "Chapter 4",
			number: "4",
			title:  "THE BILL OF RIGHTS",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			node, err := s.Lookup(t.Context(), "kenya", tc.ref)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, node.Kind)
			assert.Equal(t, tc.cite, node.Citation)
			assert.Equal(t, tc.number, node.Number)
			assert.Equal(t, tc.title, node.Title)
			assert.Equal(t, tc.text, node.Text)
		})
	}
}

func TestLookupSchedule(t *testing.T) {
	t.Parallel()

	s, _ := savedStore(t)

	node, err := s.Lookup(t.Context(), "kenya", "First Schedule")
	require.NoError(t, err)
	assert.Equal(t, KindSchedule, node.Kind)
	assert.Equal(t, "Schedule 1", node.Citation)
	assert.Equal(t, "COUNTIES", node.Title)
	assert.Zero(t, node.ParentID)
	assert.True(t, strings.HasPrefix(node.Text, "FIRST SCHEDULE (Article 6(1))\nCOUNTIES\n1. Mombasa"))
}

func TestLookupErrors(t *testing.T) {
	t.Parallel()

	s, _ := savedStore(t)

	_, err := s.Lookup(t.Context(), "kenya", "Article 7")
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, `Article 7 in "kenya": not found`)

	_, err = s.Lookup(t.Context(), "other", "Article 1")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.Lookup(t.Context(), "kenya", "Section 3")
	require.ErrorIs(t, err, citation.ErrInvalidCitation)
}

func TestChildren(t *testing.T) {
	t.Parallel()

	s, _ := savedStore(t)

	art, err := s.Lookup(t.Context(), "kenya", "Article 43")
	require.NoError(t, err)

	clauses, err := s.Children(t.Context(), art.ID)
	require.NoError(t, err)
	require.Len(t, clauses, 2)
	assert.Equal(t, "1", clauses[0].Number)
	assert.Equal(t, "2", clauses[1].Number)
	assert.Less(t, clauses[0].Seq, clauses[1].Seq)

	subs, err := s.Children(t.Context(), clauses[0].ID)
	require.NoError(t, err)
	require.Len(t, subs, 6)
	assert.Equal(t, "Article 43(1)(f)", subs[5].Citation)

	sub, err := s.Lookup(t.Context(), "kenya", "Article 174(a)")
	require.NoError(t, err)
	unnumbered, err := s.Children(t.Context(), sub.ParentID)
	require.NoError(t, err)
	assert.Len(t, unnumbered, 4)

	row := s.db.QueryRowContext(t.Context(), `SELECT `+nodeColumns+` FROM nodes n WHERE n.id = ?`, sub.ParentID)
	parent, err := scanNode(row)
	require.NoError(t, err)
	assert.Equal(t, KindClause, parent.Kind)
	assert.Empty(t, parent.Citation)
	assert.Equal(t, "The objects of the devolution of government are—", parent.Text)
}

func TestSaveReplacesAndLoads(t *testing.T) {
	t.Parallel()

	s, doc := savedStore(t)

	docs, err := s.Documents(t.Context())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	first := docs[0]
	assert.Equal(t, "kenya", first.Name)
	assert.Len(t, first.Checksum, 64)
	assert.Positive(t, first.Nodes)
	assert.False(t, first.CreatedAt.IsZero())

	_, err = s.Save(t.Context(), "kenya", doc)
	require.NoError(t, err)

	docs, err = s.Documents(t.Context())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, first.Nodes, docs[0].Nodes)
	assert.Equal(t, first.Checksum, docs[0].Checksum)

	loaded, err := s.Load(t.Context(), "kenya")
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)

	_, err = s.Load(t.Context(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSaveEmptyName(t *testing.T) {
	t.Parallel()

	_, err := openStore(t).Save(t.Context(), "", &extract.Document{})
	require.Error(t, err)
}

func TestSearch(t *testing.T) {
	t.Parallel()

	s, _ := savedStore(t)

	nodes, err := s.Search(t.Context(), "kenya", "SOVEREIGN POWER", 0)
	require.NoError(t, err)
	require.NotEmpty(t, nodes)
	for _, n := range nodes {
		assert.Contains(t, strings.ToLower(n.Text), "sovereign power")
	}

	limited, err := s.Search(t.Context(), "kenya", "the", 3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)

	none, err := s.Search(t.Context(), "kenya", "100%_", 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	assert.Equal(t, `a\%b\_c\\`, escapeLike(`a%b_c\`))
}

func TestDelete(t *testing.T) {
	t.Parallel()

	s, _ := savedStore(t)

	require.NoError(t, s.Delete(t.Context(), "kenya"))
	require.ErrorIs(t, s.Delete(t.Context(), "kenya"), ErrNotFound)

	var count int
	require.NoError(t, s.db.QueryRowContext(t.Context(), `SELECT COUNT(*) FROM nodes`).Scan(&count))
	assert.Zero(t, count)

	docs, err := s.Documents(t.Context())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestReopenKeepsData(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "katiba.db")

	s, err := Open(t.Context(), path)
	require.NoError(t, err)
	_, err = s.Save(t.Context(), "kenya", parseFixture(t))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(t.Context(), path)
	require.NoError(t, err)
	defer s.Close()

	node, err := s.Lookup(t.Context(), "kenya", "Article 1(1)")
	require.NoError(t, err)
	assert.Contains(t, node.Text, "All sovereign power belongs to the people of Kenya")
}
