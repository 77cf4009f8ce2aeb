package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docpage"
)

var _ docpage.PageStore = (*PageStore)(nil)

// PageStore saves rendered pages inside one transaction, opened by the first
// Save. Commit makes every saved page visible at once; Abort discards them.
// Saving a URL that is already stored replaces its row.
//
// PageStore is safe for concurrent use.
type PageStore struct {
	db  *DB
	now func() time.Time

	mu sync.Mutex
	tx *sql.Tx
}

// NewPageStore returns a PageStore writing to db.
func NewPageStore(db *DB) *PageStore {
	return &PageStore{db: db, now: time.Now}
}

// Save stores page in the pending transaction.
func (s *PageStore) Save(ctx context.Context, page *docpage.RenderedPage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if page.URL == "" {
		return docpage.Errorf(docpage.EINVALID, "page URL required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		tx, err := s.db.BeginTx(ctx)
		if err != nil {
			return fmt.Errorf("begin: %w", err)
		}
		s.tx = tx
	}

	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO pages (url, format, content, content_hash, rendered_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			format = excluded.format,
			content = excluded.content,
			content_hash = excluded.content_hash,
			rendered_at = excluded.rendered_at
	`, page.URL, string(page.Format), page.Content, hashContent(page.Content),
		s.now().UTC().Format(time.RFC3339))
	return err
}

// Commit commits the pending transaction. Commit without a prior Save is a
// no-op.
func (s *PageStore) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		return nil
	}
	err := s.tx.Commit()
	s.tx = nil
	return err
}

// Abort rolls back the pending transaction.
func (s *PageStore) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		return nil
	}
	err := s.tx.Rollback()
	s.tx = nil
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

// FindPage returns the committed page stored for url. It fails while a
// transaction is pending, since the database has a single connection.
func (s *PageStore) FindPage(ctx context.Context, url string) (*docpage.RenderedPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx != nil {
		return nil, docpage.Errorf(docpage.EINVALID, "uncommitted pages pending")
	}

	var page docpage.RenderedPage
	var format string
	err := s.db.QueryRowContext(ctx, `
		SELECT url, format, content FROM pages WHERE url = ?
	`, url).Scan(&page.URL, &format, &page.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, docpage.Errorf(docpage.ENOTFOUND, "page not found: %s", url)
	}
	if err != nil {
		return nil, err
	}
	page.Format = docpage.Format(format)
	return &page, nil
}

func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
