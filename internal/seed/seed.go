package seed

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jask/zams/internal/repository"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

// User is the signed-in user shown in the sidebar.
type User struct {
	Name     string `yaml:"name"`
	Initials string `yaml:"initials"`
	Email    string `yaml:"email"`
}

// Workflow is a placeholder card on the workflows page.
type Workflow struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Fixtures is the mock data set.
type Fixtures struct {
	User        User                    `yaml:"user"`
	Datasources []repository.Datasource `yaml:"datasources"`
	Models      []repository.Model      `yaml:"models"`
	Workflows   []Workflow              `yaml:"workflows"`
}

// Load returns the built-in fixtures.
func Load() (Fixtures, error) {
	return decode(fixturesYAML)
}

// LoadFile reads fixtures from path, falling back to the built-in set when
// path is empty.
func LoadFile(path string) (Fixtures, error) {
	if path == "" {
		return Load()
	}
	f, err := os.Open(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return Fixtures{}, fmt.Errorf("read fixtures: %w", err)
	}
	return decode(data)
}

func decode(data []byte) (Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return Fixtures{}, fmt.Errorf("decode fixtures: %w", err)
	}
	if err := fx.validate(); err != nil {
		return Fixtures{}, err
	}
	return fx, nil
}

func (fx Fixtures) validate() error {
	seen := map[int]bool{}
	for _, d := range fx.Datasources {
		if seen[d.ID] {
			return fmt.Errorf("fixtures: duplicate datasource id %d", d.ID)
		}
		seen[d.ID] = true
	}
	seen = map[int]bool{}
	for _, m := range fx.Models {
		if seen[m.ID] {
			return fmt.Errorf("fixtures: duplicate model id %d", m.ID)
		}
		seen[m.ID] = true
	}
	return nil
}

// Repos bundles the repos built by Seed.
type Repos struct {
	Datasources *repository.DatasourceRepo
	Models      *repository.ModelRepo
}

// Seed builds in-memory repos from fixtures. New datasources are attributed
// to owner.
func Seed(fx Fixtures, opts repository.Options, owner string, now repository.Clock) Repos {
	return Repos{
		Datasources: repository.NewDatasourceRepo(fx.Datasources, opts, owner, now),
		Models:      repository.NewModelRepo(fx.Models, opts, now),
	}
}
