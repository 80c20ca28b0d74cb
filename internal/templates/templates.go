// Package templates holds the per-mail-type subject/body templates and the
// placeholder substitution engine.
//
// Substitution is plain text replacement applied once, left to right over a
// fixed placeholder sequence. There is no escaping and no fixed-point
// iteration: placeholder-like text inside substituted values survives
// unchanged.
package templates

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/mail-composer/internal/apperror"
)

// Mail-type keys used by the two top-level operations.
const (
	TypeWorkStart = "remote_work_start"
	TypeWorkEnd   = "remote_work_end"
)

// TypeConfig is the template for one mail type. Recipient name lists may
// contain duplicates; nothing downstream deduplicates them.
type TypeConfig struct {
	ToNames         []string `json:"to_names"`
	CcNames         []string `json:"cc_names"`
	SubjectTemplate string   `json:"subject_template"`
	BodyTemplate    string   `json:"body_template"`
}

// FormatSubject substitutes every occurrence of {department}, {from}, and
// {time} in that order.
func (c TypeConfig) FormatSubject(department, from, tm string) string {
	s := strings.ReplaceAll(c.SubjectTemplate, "{department}", department)
	s = strings.ReplaceAll(s, "{from}", from)
	return strings.ReplaceAll(s, "{time}", tm)
}

// FormatBody substitutes {work_time} when a value is supplied. With a nil
// value the template is returned verbatim, literal {work_time} tokens
// included.
func (c TypeConfig) FormatBody(workTime *string) string {
	if workTime == nil {
		return c.BodyTemplate
	}
	return strings.ReplaceAll(c.BodyTemplate, "{work_time}", *workTime)
}

// Set maps mail-type keys to their templates.
type Set struct {
	types map[string]TypeConfig
}

// Type returns the template for the given key.
func (s *Set) Type(key string) (TypeConfig, bool) {
	cfg, ok := s.types[key]
	return cfg, ok
}

// Load reads a JSON object whose keys are mail-type names. Entries are
// decoded one by one so a malformed entry can be reported by key.
func Load(path string) (*Set, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, apperror.New(apperror.NotFound,
			"failed to read the mail templates file").
			WithHint("check that the mail templates file exists and is readable").
			WithCause(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, apperror.New(apperror.UnprocessableEntity,
			"failed to parse the mail templates file").
			WithHint("the top level must be a JSON object keyed by mail type").
			WithCause(err)
	}

	types := make(map[string]TypeConfig, len(raw))
	for key, value := range raw {
		var cfg TypeConfig
		if err := json.Unmarshal(value, &cfg); err != nil {
			return nil, apperror.Newf(apperror.UnprocessableEntity,
				"failed to decode mail type %q", key).
				WithHint("check the template entry's fields").
				WithCause(err)
		}
		types[key] = cfg
	}

	return &Set{types: types}, nil
}

// Source loads the template set from {baseDir}/config/mail_templates.json on
// demand.
type Source struct {
	path string
}

// NewSource points a loader at the workspace's template file.
func NewSource(baseDir string) Source {
	return Source{path: filepath.Join(baseDir, "config", "mail_templates.json")}
}

// Load reads and decodes the template set.
func (s Source) Load() (*Set, error) {
	return Load(s.path)
}
