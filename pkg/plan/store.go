package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Achintharya/eightfold-bot/pkg/logger"
)

// Document is the persisted form of an account plan. It round-trips
// losslessly through Save and Load.
type Document struct {
	Subject         string            `json:"subject"`
	Generated       time.Time         `json:"generated"`
	Sections        map[string]string `json:"sections"`
	ResearchSummary string            `json:"research_summary,omitempty"`
}

// SaveResult lists the files written by one Save call
type SaveResult struct {
	MarkdownPath string
	LatestPath   string
	JSONPath     string
}

// Store persists account plans under a directory as markdown for
// reading and JSON for reloading.
type Store struct {
	dir string
}

// NewStore creates a plan store rooted at dir
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the plan as a timestamped markdown file, a "latest"
// markdown file, and a JSON document.
func (s *Store) Save(p *AccountPlan, narrative string) (SaveResult, error) {
	if p == nil || p.Subject == "" {
		return SaveResult{}, fmt.Errorf("no plan to save")
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return SaveResult{}, fmt.Errorf("failed to create plans directory: %w", err)
	}

	base := fileBase(p.Subject)
	timestamp := time.Now().Format("20060102_150405")

	result := SaveResult{
		MarkdownPath: filepath.Join(s.dir, fmt.Sprintf("%s_account_plan_%s.md", base, timestamp)),
		LatestPath:   filepath.Join(s.dir, fmt.Sprintf("%s_account_plan_latest.md", base)),
		JSONPath:     filepath.Join(s.dir, fmt.Sprintf("%s_account_plan_latest.json", base)),
	}

	markdown := Format(p)
	if err := os.WriteFile(result.MarkdownPath, []byte(markdown), 0644); err != nil {
		return SaveResult{}, fmt.Errorf("failed to write plan: %w", err)
	}
	if err := os.WriteFile(result.LatestPath, []byte(markdown), 0644); err != nil {
		return SaveResult{}, fmt.Errorf("failed to write latest plan: %w", err)
	}

	doc := Document{
		Subject:         p.Subject,
		Generated:       p.CreatedAt,
		Sections:        p.Sections,
		ResearchSummary: narrative,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return SaveResult{}, fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := os.WriteFile(result.JSONPath, data, 0644); err != nil {
		return SaveResult{}, fmt.Errorf("failed to write plan document: %w", err)
	}

	logger.Info("saved account plan for %s to %s", p.Subject, s.dir)
	return result, nil
}

// LoadLatest reads back the most recently saved plan for subject.
// A missing file is reported as an error; corrupt files are not
// silently repaired.
func (s *Store) LoadLatest(subject string) (*AccountPlan, string, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("%s_account_plan_latest.json", fileBase(subject)))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read plan document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, "", fmt.Errorf("failed to decode plan document: %w", err)
	}

	return &AccountPlan{
		Subject:   doc.Subject,
		Sections:  doc.Sections,
		CreatedAt: doc.Generated,
	}, doc.ResearchSummary, nil
}

func fileBase(subject string) string {
	return strings.ReplaceAll(strings.TrimSpace(subject), " ", "_")
}
