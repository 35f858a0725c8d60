// Package candidates loads batches of candidates to rank against a job.
package candidates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Entry is one candidate as described in a batch file.
type Entry struct {
	ID         string   `mapstructure:"id" json:"id"`
	Name       string   `mapstructure:"name" json:"name,omitempty"`
	Resume     string   `mapstructure:"resume" json:"resume,omitempty" validate:"required_without=ResumeFile"`
	ResumeFile string   `mapstructure:"resume-file" json:"resume_file,omitempty" validate:"required_without=Resume"`
	Experience float64  `mapstructure:"experience" json:"experience" validate:"gte=0"`
	Skills     []string `mapstructure:"skills" json:"skills"`
}

// Batch is a job together with the candidates to rank against it.
type Batch struct {
	Job        string   `mapstructure:"job" json:"job,omitempty"`
	JobFile    string   `mapstructure:"job-file" json:"job_file,omitempty"`
	Candidates []*Entry `mapstructure:"candidates" json:"candidates" validate:"dive"`

	dir string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads a YAML or JSON batch file. Entries without an id get a random one.
// Relative resume and job files are resolved against the batch file directory.
func Load(path string) (*Batch, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading candidates file: %w", err)
	}

	var batch Batch
	if err := v.Unmarshal(&batch); err != nil {
		return nil, fmt.Errorf("decoding candidates file: %w", err)
	}
	batch.dir = filepath.Dir(path)

	if err := batch.Validate(); err != nil {
		return nil, err
	}

	batch.AssignIDs()
	return &batch, nil
}

// Validate checks every entry. Errors name the offending field.
func (b *Batch) Validate() error {
	err := validate.Struct(b)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating candidates: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid candidates: %s", strings.Join(msgs, "; "))
}

// AssignIDs sets a random id on every entry without one and trims the rest.
func (b *Batch) AssignIDs() {
	for _, e := range b.Candidates {
		e.ID = strings.TrimSpace(e.ID)
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
	}
}

func (b *Batch) Len() int {
	return len(b.Candidates)
}

func (b *Batch) FindByID(id string) *Entry {
	for _, e := range b.Candidates {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// JobText returns the inline job description or the content of the job file.
func (b *Batch) JobText() (string, error) {
	if strings.TrimSpace(b.Job) != "" {
		return b.Job, nil
	}
	if b.JobFile == "" {
		return "", nil
	}
	return readText(b.resolve(b.JobFile))
}

// ResumeText returns the inline resume or the content of the resume file.
func (b *Batch) ResumeText(e *Entry) (string, error) {
	if strings.TrimSpace(e.Resume) != "" {
		return e.Resume, nil
	}
	return readText(b.resolve(e.ResumeFile))
}

func (b *Batch) resolve(path string) string {
	if filepath.IsAbs(path) || b.dir == "" {
		return path
	}
	return filepath.Join(b.dir, path)
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", path, err)
	}
	return string(data), nil
}
