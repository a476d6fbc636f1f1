// Package careers serves the open positions applicants can apply to.
package careers

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/atoolsera/agency-backend/internal/intake/domain"
)

//go:embed jobs.yaml
var defaultJobs []byte

type Job struct {
	ID           string         `yaml:"id" json:"id"`
	Title        string         `yaml:"title" json:"title"`
	Type         domain.JobType `yaml:"type" json:"type"`
	Level        string         `yaml:"level" json:"level"`
	Location     string         `yaml:"location" json:"location"`
	Description  string         `yaml:"description" json:"description"`
	Requirements []string       `yaml:"requirements" json:"requirements"`
	Benefits     []string       `yaml:"benefits" json:"benefits"`
}

// Catalog is an immutable, ordered list of jobs.
type Catalog struct {
	jobs []Job
	byID map[string]int
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultJobs)
}

// Parse loads a catalog from YAML, rejecting unknown job types and duplicate ids.
func Parse(data []byte) (*Catalog, error) {
	var jobs []Job
	if err := yaml.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("parse job catalog: %w", err)
	}

	c := &Catalog{jobs: jobs, byID: make(map[string]int, len(jobs))}
	for i, j := range jobs {
		if j.ID == "" || j.Title == "" {
			return nil, fmt.Errorf("job catalog entry %d: id and title are required", i)
		}
		if !j.Type.Valid() {
			return nil, fmt.Errorf("job %s: unknown type %q", j.ID, j.Type)
		}
		if _, dup := c.byID[j.ID]; dup {
			return nil, fmt.Errorf("job %s: duplicate id", j.ID)
		}
		c.byID[j.ID] = i
	}
	return c, nil
}

// List returns the jobs of the given type, or all jobs when jobType is empty.
func (c *Catalog) List(jobType domain.JobType) []Job {
	out := make([]Job, 0, len(c.jobs))
	for _, j := range c.jobs {
		if jobType == "" || j.Type == jobType {
			out = append(out, j)
		}
	}
	return out
}

func (c *Catalog) Find(id string) (Job, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Job{}, false
	}
	return c.jobs[i], true
}
