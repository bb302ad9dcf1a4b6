package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// DatasourceRepo holds datasources in memory, newest first.
type DatasourceRepo struct {
	mu      sync.RWMutex
	rows    []Datasource
	nextID  int
	options Options
	owner   string
	now     Clock
}

// NewDatasourceRepo seeds the repo with rows. owner is written as createdBy
// on rows added later.
func NewDatasourceRepo(rows []Datasource, opts Options, owner string, now Clock) *DatasourceRepo {
	if now == nil {
		now = time.Now
	}
	r := &DatasourceRepo{rows: slices.Clone(rows), options: opts, owner: owner, now: now, nextID: 1}
	for _, d := range rows {
		if d.ID >= r.nextID {
			r.nextID = d.ID + 1
		}
	}
	return r
}

// Options returns the closed type and status sets.
func (r *DatasourceRepo) Options() Options { return r.options }

// List returns a snapshot of all rows.
func (r *DatasourceRepo) List(ctx context.Context) ([]Datasource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.rows), nil
}

// Add validates in and prepends the new row. IDs are never handed out twice,
// even after the highest one is deleted.
func (r *DatasourceRepo) Add(ctx context.Context, in NewDatasource) (Datasource, error) {
	if err := ctx.Err(); err != nil {
		return Datasource{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Datasource{}, fmt.Errorf("add datasource: %w", ErrNameRequired)
	}
	typ, err := MatchOption("type", in.Type, r.options.Types)
	if err != nil {
		return Datasource{}, fmt.Errorf("add datasource: %w", err)
	}
	status, err := MatchOption("status", in.Status, r.options.Statuses)
	if err != nil {
		return Datasource{}, fmt.Errorf("add datasource: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	d := Datasource{
		ID:        r.nextID,
		Name:      name,
		Type:      typ,
		Status:    status,
		CreatedAt: r.now().Format(DateLayout),
		CreatedBy: r.owner,
	}
	r.nextID++
	r.rows = append([]Datasource{d}, r.rows...)
	return d, nil
}

// Delete removes every row whose id is in ids and reports how many went.
// Unknown ids are ignored.
func (r *DatasourceRepo) Delete(ctx context.Context, ids []int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	before := len(r.rows)
	r.rows = slices.DeleteFunc(r.rows, func(d Datasource) bool {
		return slices.Contains(ids, d.ID)
	})
	return before - len(r.rows), nil
}

func (r *DatasourceRepo) AllIDs() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int, len(r.rows))
	for i, d := range r.rows {
		ids[i] = d.ID
	}
	return ids
}
