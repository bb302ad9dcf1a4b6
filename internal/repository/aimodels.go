package repository

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"time"
)

// ModelRepo holds custom model cards in memory, newest first.
type ModelRepo struct {
	mu      sync.RWMutex
	rows    []Model
	nextID  int
	options Options
	now     Clock
}

func NewModelRepo(rows []Model, opts Options, now Clock) *ModelRepo {
	if now == nil {
		now = time.Now
	}
	r := &ModelRepo{rows: slices.Clone(rows), options: opts, now: now, nextID: 1}
	for _, m := range rows {
		if m.ID >= r.nextID {
			r.nextID = m.ID + 1
		}
	}
	return r
}

func (r *ModelRepo) Options() Options { return r.options }

func (r *ModelRepo) List(ctx context.Context) ([]Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.rows), nil
}

// Build validates in and prepends a model in the Training state.
func (r *ModelRepo) Build(ctx context.Context, in NewModel) (Model, error) {
	if err := ctx.Err(); err != nil {
		return Model{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Model{}, fmt.Errorf("build model: %w", ErrNameRequired)
	}
	typ, err := MatchOption("model type", in.Type, r.options.ModelTypes)
	if err != nil {
		return Model{}, fmt.Errorf("build model: %w", err)
	}
	base, err := MatchOption("base model", in.BaseModel, r.options.BaseModels)
	if err != nil {
		return Model{}, fmt.Errorf("build model: %w", err)
	}
	if in.Temperature < 0 || in.Temperature > 1 {
		return Model{}, fmt.Errorf("build model: temperature %.2f: %w", in.Temperature, ErrOutOfRange)
	}
	if in.MaxTokens < MinMaxTokens || in.MaxTokens > MaxMaxTokens {
		return Model{}, fmt.Errorf("build model: max tokens %d: %w", in.MaxTokens, ErrOutOfRange)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	m := Model{
		ID:          r.nextID,
		Name:        name,
		Type:        typ,
		BaseModel:   base,
		Status:      StatusTraining,
		CreatedAt:   r.now().Format(DateLayout),
		Temperature: RoundTemperature(in.Temperature),
		MaxTokens:   in.MaxTokens,
	}
	r.nextID++
	r.rows = append([]Model{m}, r.rows...)
	return m, nil
}

func (r *ModelRepo) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.rows, func(m Model) bool { return m.ID == id })
	if i < 0 {
		return fmt.Errorf("delete model %d: %w", id, ErrNotFound)
	}
	r.rows = slices.Delete(r.rows, i, i+1)
	return nil
}

// RoundTemperature snaps t to the slider's 0.1 step.
func RoundTemperature(t float64) float64 {
	return math.Round(t*10) / 10
}
