package store

// SchemaSQL defines the database structure.
const SchemaSQL = `
-- Documents: one row per saved parse. tree holds the JSON encoding.
CREATE TABLE IF NOT EXISTS documents (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    checksum TEXT NOT NULL,           -- SHA256 of tree
    tree TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Nodes: the tree flattened, one row per chapter, part, article, clause,
-- sub-clause, mini-clause and schedule.
CREATE TABLE IF NOT EXISTS nodes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    doc_id INTEGER NOT NULL,
    parent_id INTEGER,
    seq INTEGER NOT NULL,             -- document order
    kind TEXT NOT NULL,
    citation TEXT,                    -- canonical citation, NULL for unnumbered clauses
    number TEXT,
    title TEXT,
    text TEXT,
    FOREIGN KEY(doc_id) REFERENCES documents(id) ON DELETE CASCADE,
    FOREIGN KEY(parent_id) REFERENCES nodes(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS nodes_citation ON nodes(doc_id, citation);
CREATE INDEX IF NOT EXISTS nodes_parent ON nodes(parent_id);
`
