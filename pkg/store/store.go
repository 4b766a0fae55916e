// Package store persists parsed constitutions to SQLite and looks nodes up
// by citation.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/coolbeans/katiba/pkg/citation"
	"github.com/coolbeans/katiba/pkg/export"
	"github.com/coolbeans/katiba/pkg/extract"
)

// ErrNotFound is returned when a document or node does not exist.
var ErrNotFound = errors.New("not found")

// NodeKind classifies a stored node.
type NodeKind string

const (
	KindChapter    NodeKind = "chapter"
	KindPart       NodeKind = "part"
	KindArticle    NodeKind = "article"
	KindClause     NodeKind = "clause"
	KindSubClause  NodeKind = "sub_clause"
	KindMiniClause NodeKind = "mini_clause"
	KindSchedule   NodeKind = "schedule"
)

// Node is one row of the flattened tree. ParentID is zero for chapters and
// schedules. Citation is empty for unnumbered clauses.
type Node struct {
	ID       int64    `json:"id"`
	DocID    int64    `json:"doc_id"`
	ParentID int64    `json:"parent_id,omitempty"`
	Seq      int      `json:"seq"`
	Kind     NodeKind `json:"kind"`
	Citation string   `json:"citation,omitempty"`
	Number   string   `json:"number,omitempty"`
	Title    string   `json:"title,omitempty"`
	Text     string   `json:"text,omitempty"`
}

// DocumentInfo describes a saved document.
type DocumentInfo struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Checksum  string    `json:"checksum"`
	Nodes     int       `json:"nodes"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is a SQLite database of parsed documents.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, SchemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db, logger: slog.New(slog.DiscardHandler)}, nil
}

// SetLogger sets the logger for save and delete events.
func (s *Store) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores doc under name, replacing any document with the same name.
// It returns the document id.
func (s *Store) Save(ctx context.Context, name string, doc *extract.Document) (int64, error) {
	if name == "" {
		return 0, errors.New("document name cannot be empty")
	}

	tree, err := export.Marshal(doc, export.FormatJSON)
	if err != nil {
		return 0, err
	}
	sum := sha256.Sum256(tree)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE name = ?`, name); err != nil {
		return 0, fmt.Errorf("replacing %s: %w", name, err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO documents (name, checksum, tree) VALUES (?, ?, ?)`,
		name, hex.EncodeToString(sum[:]), string(tree))
	if err != nil {
		return 0, fmt.Errorf("inserting %s: %w", name, err)
	}
	docID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO nodes (doc_id, parent_id, seq, kind, citation, number, title, text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	w := &nodeWriter{ctx: ctx, stmt: stmt, docID: docID}
	w.document(doc)
	if w.err != nil {
		return 0, fmt.Errorf("inserting nodes: %w", w.err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	s.logger.Info("saved document",
		slog.String("name", name),
		slog.Int64("id", docID),
		slog.Int("nodes", w.seq),
	)
	return docID, nil
}

// nodeWriter inserts nodes in document order. The first error stops
// further inserts.
type nodeWriter struct {
	ctx   context.Context
	stmt  *sql.Stmt
	docID int64
	seq   int
	err   error
}

func (w *nodeWriter) insert(parent int64, kind NodeKind, cite, number, title, text string) int64 {
	if w.err != nil {
		return 0
	}
	w.seq++

	var parentArg, citeArg any
	if parent != 0 {
		parentArg = parent
	}
	if cite != "" {
		citeArg = cite
	}

	res, err := w.stmt.ExecContext(w.ctx, w.docID, parentArg, w.seq, string(kind), citeArg, number, title, text)
	if err != nil {
		w.err = err
		return 0
	}
	id, err := res.LastInsertId()
	if err != nil {
		w.err = err
	}
	return id
}

func (w *nodeWriter) document(doc *extract.Document) {
	for _, ch := range doc.Chapters {
		chCite := fmt.Sprintf("Chapter %d", ch.Number)
		chID := w.insert(0, KindChapter, chCite, strconv.Itoa(ch.Number), ch.Title, "")
		for _, art := range ch.Articles {
			w.article(chID, art)
		}
		for _, part := range ch.Parts {
			partID := w.insert(chID, KindPart, fmt.Sprintf("%s, Part %d", chCite, part.Number),
				strconv.Itoa(part.Number), part.Title, "")
			for _, art := range part.Articles {
				w.article(partID, art)
			}
		}
	}

	for _, sch := range doc.Schedules {
		w.insert(0, KindSchedule, fmt.Sprintf("Schedule %d", sch.Number), strconv.Itoa(sch.Number),
			sch.Title, strings.TrimSuffix(extract.RenderSchedule(sch), "\n"))
	}
}

func (w *nodeWriter) article(parent int64, art extract.Article) {
	artCite := fmt.Sprintf("Article %d", art.Number)
	artID := w.insert(parent, KindArticle, artCite, strconv.Itoa(art.Number), art.Title,
		strings.TrimSuffix(extract.RenderArticle(art), "\n"))

	for _, cl := range art.Clauses {
		clCite := ""
		prefix := artCite
		if cl.Number != "" {
			clCite = artCite + "(" + cl.Number + ")"
			prefix = clCite
		}
		clID := w.insert(artID, KindClause, clCite, cl.Number, "", cl.Text)

		for _, sub := range cl.SubClauses {
			subCite := prefix + "(" + sub.Label + ")"
			subID := w.insert(clID, KindSubClause, subCite, sub.Label, "", sub.Text)
			for _, mini := range sub.MiniClauses {
				w.insert(subID, KindMiniClause, subCite+"("+mini.Label+")", mini.Label, "", mini.Text)
			}
		}
	}
}

// Documents lists the saved documents by name.
func (s *Store) Documents(ctx context.Context) ([]DocumentInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.name, d.checksum, d.created_at, COUNT(n.id)
		FROM documents d LEFT JOIN nodes n ON n.doc_id = d.id
		GROUP BY d.id
		ORDER BY d.name`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentInfo
	for rows.Next() {
		var d DocumentInfo
		if err := rows.Scan(&d.ID, &d.Name, &d.Checksum, &d.CreatedAt, &d.Nodes); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Load decodes the saved tree of the named document.
func (s *Store) Load(ctx context.Context, name string) (*extract.Document, error) {
	var tree string
	err := s.db.QueryRowContext(ctx, `SELECT tree FROM documents WHERE name = ?`, name).Scan(&tree)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return export.Unmarshal([]byte(tree), export.FormatJSON)
}

// Delete removes the named document and its nodes.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("document %q: %w", name, ErrNotFound)
	}
	s.logger.Info("deleted document", slog.String("name", name))
	return nil
}

const nodeColumns = `n.id, n.doc_id, n.parent_id, n.seq, n.kind, n.citation, n.number, n.title, n.text`

// Lookup returns the first node of the named document matching ref, which
// may be written in any form citation.Parse accepts.
func (s *Store) Lookup(ctx context.Context, name, ref string) (*Node, error) {
	c, err := citation.Parse(ref)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+nodeColumns+`
		FROM nodes n JOIN documents d ON d.id = n.doc_id
		WHERE d.name = ? AND n.citation = ?
		ORDER BY n.seq
		LIMIT 1`, name, c.String())

	node, err := scanNode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s in %q: %w", c, name, ErrNotFound)
	}
	return node, err
}

// Children returns the direct children of a node in document order.
func (s *Store) Children(ctx context.Context, id int64) ([]Node, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+nodeColumns+`
		FROM nodes n
		WHERE n.parent_id = ?
		ORDER BY n.seq`, id)
	if err != nil {
		return nil, fmt.Errorf("listing children of %d: %w", id, err)
	}
	return scanNodes(rows)
}

// Search returns nodes of the named document whose text contains query,
// case-insensitively, up to limit rows. A limit of zero means no limit.
func (s *Store) Search(ctx context.Context, name, query string, limit int) ([]Node, error) {
	if limit <= 0 {
		limit = -1
	}
	pattern := "%" + escapeLike(query) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+nodeColumns+`
		FROM nodes n JOIN documents d ON d.id = n.doc_id
		WHERE d.name = ? AND n.text LIKE ? ESCAPE '\'
		ORDER BY n.seq
		LIMIT ?`, name, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", name, err)
	}
	return scanNodes(rows)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNode(row rowScanner) (*Node, error) {
	var (
		n                         Node
		parent                    sql.NullInt64
		cite, number, title, text sql.NullString
		kind                      string
	)
	if err := row.Scan(&n.ID, &n.DocID, &parent, &n.Seq, &kind, &cite, &number, &title, &text); err != nil {
		return nil, err
	}
	n.ParentID = parent.Int64
	n.Kind = NodeKind(kind)
	n.Citation = cite.String
	n.Number = number.String
	n.Title = title.String
	n.Text = text.String
	return &n, nil
}

func scanNodes(rows *sql.Rows) ([]Node, error) {
	defer rows.Close()

	var nodes []Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, *n)
	}
	return nodes, rows.Err()
}
