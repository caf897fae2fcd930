package client

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/deepeshsaheb-tal/bookcritic/model"
)

const bookCacheSize = 256

// bookCache keeps book details with stale-while-revalidate semantics:
// a cached entry is returned immediately while a background refetch
// updates it. Refetches are deduplicated per key.
type bookCache struct {
	entries *lru.Cache[int32, *model.Book]

	mu       sync.Mutex
	inflight map[int32]struct{}
}

func newBookCache() *bookCache {
	entries, _ := lru.New[int32, *model.Book](bookCacheSize)
	return &bookCache{
		entries:  entries,
		inflight: make(map[int32]struct{}),
	}
}

func (bc *bookCache) get(id int32) (*model.Book, bool) {
	return bc.entries.Get(id)
}

func (bc *bookCache) put(book *model.Book) {
	bc.entries.Add(book.ID, book)
}

func (bc *bookCache) invalidate(id int32) {
	bc.entries.Remove(id)
}

// beginRefresh reports whether the caller owns the refetch for id.
func (bc *bookCache) beginRefresh(id int32) bool {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	if _, ok := bc.inflight[id]; ok {
		return false
	}
	bc.inflight[id] = struct{}{}
	return true
}

func (bc *bookCache) endRefresh(id int32) {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	delete(bc.inflight, id)
}

// GetBookCached returns the book from the cache when present, kicking
// off a background refetch, or fetches it synchronously on a miss.
func (c *Client) GetBookCached(id int32) (*model.Book, error) {
	if book, ok := c.books.get(id); ok {
		if c.books.beginRefresh(id) {
			go func() {
				defer c.books.endRefresh(id)
				if fresh, err := c.GetBook(id); err == nil {
					c.books.put(fresh)
				}
			}()
		}
		return book, nil
	}

	book, err := c.GetBook(id)
	if err != nil {
		return nil, err
	}
	c.books.put(book)
	return book, nil
}
