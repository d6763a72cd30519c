// Package testutil provides an in-memory employee REST backend for tests.
package testutil

import (
	"bytes"
	"empdir/internal/types"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const CollectionPath = "/api/employees"

// Backend serves the employee REST contract from memory. Records are listed in id order.
type Backend struct {
	mu       sync.Mutex
	nextID   int64
	records  map[int64]types.Employee
	requests map[string]int
	failures map[string]int
	encoding string

	Server *httptest.Server
}

// NewBackend starts a backend preloaded with seed. Call Close when done.
func NewBackend(seed ...types.Employee) *Backend {
	b := &Backend{
		nextID:   1,
		records:  make(map[int64]types.Employee),
		requests: make(map[string]int),
		failures: make(map[string]int),
	}
	for _, e := range seed {
		b.records[e.ID] = e
		if e.ID >= b.nextID {
			b.nextID = e.ID + 1
		}
	}
	b.Server = httptest.NewServer(b.Router())
	return b
}

// URL is the collection endpoint.
func (b *Backend) URL() string {
	return b.Server.URL + CollectionPath
}

func (b *Backend) Close() {
	b.Server.Close()
}

// FailWith makes every request with the given method answer status until cleared with status 0.
func (b *Backend) FailWith(method string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if status == 0 {
		delete(b.failures, method)
		return
	}
	b.failures[method] = status
}

// Encode compresses every response body with "gzip" or "zstd"; "" disables it.
func (b *Backend) Encode(encoding string) {
	b.mu.Lock()
	b.encoding = encoding
	b.mu.Unlock()
}

// Requests returns how many requests with method were received.
func (b *Backend) Requests(method string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[method]
}

// Records returns the stored employees in id order.
func (b *Backend) Records() []types.Employee {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sortedLocked()
}

func (b *Backend) sortedLocked() []types.Employee {
	out := make([]types.Employee, 0, len(b.records))
	for _, e := range b.records {
		out = append(out, e)
	}
	slices.SortFunc(out, func(x, y types.Employee) int {
		switch {
		case x.ID < y.ID:
			return -1
		case x.ID > y.ID:
			return 1
		}
		return 0
	})
	return out
}

func (b *Backend) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(CollectionPath, b.handleCollection)
	mux.HandleFunc(CollectionPath+"/", b.handleItem)
	return mux
}

func (b *Backend) handleCollection(w http.ResponseWriter, r *http.Request) {
	if b.intercept(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		b.mu.Lock()
		list := b.sortedLocked()
		b.mu.Unlock()
		b.writeJSON(w, r, http.StatusOK, list)
	case http.MethodPost:
		d, ok := readDraft(w, r)
		if !ok {
			return
		}
		b.mu.Lock()
		e := types.Employee{ID: b.nextID, FirstName: d.FirstName, LastName: d.LastName, Email: d.Email}
		b.records[e.ID] = e
		b.nextID++
		b.mu.Unlock()
		b.writeJSON(w, r, http.StatusCreated, e)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (b *Backend) handleItem(w http.ResponseWriter, r *http.Request) {
	if b.intercept(w, r) {
		return
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, CollectionPath+"/"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet:
		b.mu.Lock()
		e, ok := b.records[id]
		b.mu.Unlock()
		if !ok {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}
		b.writeJSON(w, r, http.StatusOK, e)
	case http.MethodPut:
		d, ok := readDraft(w, r)
		if !ok {
			return
		}
		b.mu.Lock()
		_, exists := b.records[id]
		e := types.Employee{ID: id, FirstName: d.FirstName, LastName: d.LastName, Email: d.Email}
		if exists {
			b.records[id] = e
		}
		b.mu.Unlock()
		if !exists {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}
		b.writeJSON(w, r, http.StatusOK, e)
	case http.MethodDelete:
		b.mu.Lock()
		_, exists := b.records[id]
		delete(b.records, id)
		b.mu.Unlock()
		if !exists {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// intercept counts the request and answers injected failures.
func (b *Backend) intercept(w http.ResponseWriter, r *http.Request) bool {
	b.mu.Lock()
	b.requests[r.Method]++
	status := b.failures[r.Method]
	b.mu.Unlock()
	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return true
	}
	return false
}

func readDraft(w http.ResponseWriter, r *http.Request) (types.Draft, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "read error", http.StatusBadRequest)
		return types.Draft{}, false
	}
	var d types.Draft
	if err := json.Unmarshal(body, &d); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return types.Draft{}, false
	}
	return d, true
}

func (b *Backend) writeJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to marshal payload", http.StatusInternalServerError)
		return
	}
	b.mu.Lock()
	enc := b.encoding
	b.mu.Unlock()
	if enc != "" && strings.Contains(r.Header.Get("Accept-Encoding"), enc) {
		compressed, err := compress(enc, payload)
		if err != nil {
			http.Error(w, "failed to compress payload", http.StatusInternalServerError)
			return
		}
		payload = compressed
		w.Header().Set("Content-Encoding", enc)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(payload)
}

func compress(enc string, payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	switch enc {
	case "gzip":
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(payload); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
	case "zstd":
		zw, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return nil, err
		}
		if _, err := zw.Write(payload); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
	default:
		return payload, nil
	}
	return buf.Bytes(), nil
}
