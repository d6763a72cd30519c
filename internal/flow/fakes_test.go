package flow

import (
	"context"
	"empdir/internal/types"
	"errors"
	"slices"
	"sync"
)

// fakeAPI is an in-memory ports.EmployeeAPI with call counters and failure injection.
type fakeAPI struct {
	mu      sync.Mutex
	records []types.Employee
	nextID  int64
	calls   map[string]int

	failList   error
	failWrite  error
	lowerEmail bool
	// onList runs after the list was snapshotted, outside the lock.
	onList func(call int)
}

func newFakeAPI(seed ...types.Employee) *fakeAPI {
	f := &fakeAPI{nextID: 1, calls: map[string]int{}}
	for _, e := range seed {
		f.records = append(f.records, e)
		if e.ID >= f.nextID {
			f.nextID = e.ID + 1
		}
	}
	return f
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) writes() int {
	return f.count("create") + f.count("update") + f.count("delete")
}

func (f *fakeAPI) List(_ context.Context) ([]types.Employee, error) {
	f.mu.Lock()
	f.calls["list"]++
	call := f.calls["list"]
	out, err := slices.Clone(f.records), f.failList
	hook := f.onList
	f.mu.Unlock()
	if hook != nil {
		hook(call)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakeAPI) Get(_ context.Context, id int64) (types.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["get"]++
	for _, e := range f.records {
		if e.ID == id {
			return e, nil
		}
	}
	return types.Employee{}, types.Err(types.ErrNotFound, nil, "id %d", id)
}

func (f *fakeAPI) Create(_ context.Context, d types.Draft) (types.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["create"]++
	if f.failWrite != nil {
		return types.Employee{}, f.failWrite
	}
	e := f.stored(f.nextID, d)
	f.nextID++
	f.records = append(f.records, e)
	return e, nil
}

func (f *fakeAPI) Update(_ context.Context, id int64, d types.Draft) (types.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["update"]++
	if f.failWrite != nil {
		return types.Employee{}, f.failWrite
	}
	for i, e := range f.records {
		if e.ID == id {
			f.records[i] = f.stored(id, d)
			return f.records[i], nil
		}
	}
	return types.Employee{}, types.Err(types.ErrNotFound, nil, "id %d", id)
}

func (f *fakeAPI) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["delete"]++
	if f.failWrite != nil {
		return f.failWrite
	}
	for i, e := range f.records {
		if e.ID == id {
			f.records = slices.Delete(f.records, i, i+1)
			return nil
		}
	}
	return types.Err(types.ErrNotFound, nil, "id %d", id)
}

// stored is what the backend keeps for d; with lowerEmail it normalizes the address,
// which a client could not have predicted.
func (f *fakeAPI) stored(id int64, d types.Draft) types.Employee {
	e := types.Employee{ID: id, FirstName: d.FirstName, LastName: d.LastName, Email: d.Email}
	if f.lowerEmail {
		e.Email = lower(e.Email)
	}
	return e
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

type notes struct {
	mu  sync.Mutex
	got []types.Notification
	err error
}

func (n *notes) Notify(_ context.Context, nt types.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, nt)
	return n.err
}

func (n *notes) all() []types.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.got)
}

type frame struct {
	view  []types.Employee
	stats types.Stats
}

type screen struct {
	mu     sync.Mutex
	frames []frame
}

func (s *screen) Render(view []types.Employee, stats types.Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, frame{view: view, stats: stats})
}

func (s *screen) last() frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return frame{}
	}
	return s.frames[len(s.frames)-1]
}

type answer struct {
	yes   bool
	err   error
	asked []string
}

func (a *answer) Confirm(_ context.Context, q string) (bool, error) {
	a.asked = append(a.asked, q)
	return a.yes, a.err
}

var errDown = errors.New("connection refused")
