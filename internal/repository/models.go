package repository

import (
	"errors"
	"time"

	"github.com/jask/zams/internal/tableview"
)

// DateLayout is how createdAt strings are written for new rows.
const DateLayout = "Jan 2, 2006"

var (
	ErrNameRequired  = errors.New("name is required")
	ErrUnknownOption = errors.New("unknown option")
	ErrOutOfRange    = errors.New("value out of range")
	ErrNotFound      = errors.New("not found")
)

// Datasource represents a datasource row.
type Datasource struct {
	ID        int    `yaml:"id"`
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Status    string `yaml:"status"`
	CreatedAt string `yaml:"created_at"`
	CreatedBy string `yaml:"created_by"`
}

func (d Datasource) RecordID() int { return d.ID }

func (d Datasource) Field(f tableview.Field) string {
	switch f {
	case tableview.FieldName:
		return d.Name
	case tableview.FieldType:
		return d.Type
	case tableview.FieldStatus:
		return d.Status
	case tableview.FieldCreatedAt:
		return d.CreatedAt
	case tableview.FieldCreatedBy:
		return d.CreatedBy
	}
	return ""
}

// NewDatasource is the input of the Add Data dialog.
type NewDatasource struct {
	Name   string
	Type   string
	Status string
}

// Model represents a custom AI model card.
type Model struct {
	ID          int     `yaml:"id"`
	Name        string  `yaml:"name"`
	Type        string  `yaml:"type"`
	BaseModel   string  `yaml:"base_model"`
	Status      string  `yaml:"status"`
	CreatedAt   string  `yaml:"created_at"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// Model build defaults and bounds.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2048
	MinMaxTokens       = 1
	MaxMaxTokens       = 8192
	StatusTraining     = "Training"
	StatusActive       = "Active"
)

// NewModel is the input of the Build a Model dialog.
type NewModel struct {
	Name        string
	Type        string
	BaseModel   string
	Temperature float64
	MaxTokens   int
}

// Clock returns the current time. Repos take one so tests can pin dates.
type Clock func() time.Time
