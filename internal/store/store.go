package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lead-insights/backend/internal/models"
)

// Store persists the whole application state as one pretty-printed JSON
// document. Access is serialized with a mutex; every Save normalizes the
// document and bumps its revision counter.
type Store struct {
	path string
	mu   sync.Mutex
	log  *zap.Logger
}

func New(path string, log *zap.Logger) *Store {
	return &Store{path: path, log: log}
}

// EnsureSeed creates the store file with seed data when it does not exist.
func (s *Store) EnsureSeed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	s.log.Info("seeding store", zap.String("path", s.path))
	return s.write(s.Normalize(models.SeedDocument()))
}

// Load reads and normalizes the document. A corrupt file is replaced with
// seed data rather than failing the request.
func (s *Store) Load() (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (*models.Document, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		doc := s.Normalize(models.SeedDocument())
		if err := s.write(doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, err
	}

	doc := &models.Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		s.log.Warn("store file unreadable, reseeding", zap.String("path", s.path), zap.Error(err))
		doc = models.SeedDocument()
	}
	return s.Normalize(doc), nil
}

// Save normalizes the document, bumps its revision, and writes it back.
func (s *Store) Save(doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc = s.Normalize(doc)
	doc.Revision++
	return s.write(doc)
}

// Update runs fn against the current document under the store lock and
// persists the result when fn reports success.
func (s *Store) Update(fn func(doc *models.Document) error) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	if err := fn(doc); err != nil {
		return nil, err
	}
	doc = s.Normalize(doc)
	doc.Revision++
	if err := s.write(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Store) write(doc *models.Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}

// Normalize reconstructs the document defensively: seeds missing customers,
// coerces enums back into their sets, drops unroutable jobs, and enforces
// the retention caps.
func (s *Store) Normalize(doc *models.Document) *models.Document {
	if doc == nil {
		doc = &models.Document{}
	}

	if len(doc.Customers) == 0 {
		doc.Customers = models.SeedDocument().Customers
	}
	for i := range doc.Customers {
		doc.Customers[i] = models.NormalizeCustomer(doc.Customers[i], "")
	}

	if doc.CustomerByID(doc.SelectedCustomerID) == nil {
		doc.SelectedCustomerID = doc.Customers[0].ID
	}

	if doc.Guardrails.BudgetCap <= 0 {
		doc.Guardrails.BudgetCap = models.DefaultGuardrails().BudgetCap
	}
	if doc.Guardrails.CpaCap <= 0 {
		doc.Guardrails.CpaCap = models.DefaultGuardrails().CpaCap
	}

	if evicted := len(doc.Campaigns) - models.MaxCampaigns; evicted > 0 {
		s.log.Info("evicting campaigns over retention cap", zap.Int("count", evicted))
		doc.Campaigns = doc.Campaigns[:models.MaxCampaigns]
	}
	for i := range doc.Campaigns {
		c := &doc.Campaigns[i]
		if c.ID == "" {
			c.ID = models.NewID("cmp")
		}
		c.Channels = models.FilterChannels(c.Channels)
		if !models.IsValidStage(c.Stage) {
			c.Stage = models.StageIntake
		}
		if c.Mode != models.ModeAutopilot {
			c.Mode = models.ModeHybrid
		}
		c.Reclassify(doc.Guardrails)
	}

	if evicted := len(doc.Assets) - models.MaxAssets; evicted > 0 {
		s.log.Info("evicting assets over retention cap", zap.Int("count", evicted))
		doc.Assets = doc.Assets[:models.MaxAssets]
	}
	for i := range doc.Assets {
		if doc.Assets[i].ID == "" {
			doc.Assets[i].ID = models.NewID("asset")
		}
	}

	if evicted := len(doc.AdInputRuns) - models.MaxAdInputRuns; evicted > 0 {
		s.log.Info("evicting generation runs over retention cap", zap.Int("count", evicted))
		doc.AdInputRuns = doc.AdInputRuns[:models.MaxAdInputRuns]
	}
	for i := range doc.AdInputRuns {
		run := &doc.AdInputRuns[i]
		if run.ID == "" {
			run.ID = models.NewID("run")
		}
		run.Channels = models.FilterChannels(run.Channels)
		if run.Objective == "" {
			run.Objective = "Leads"
		}
		if run.CTA == "" {
			run.CTA = "Learn More"
		}
		run.CreativeType = models.NormalizeCreativeType(run.CreativeType)
		if run.CreatedAt.IsZero() {
			run.CreatedAt = time.Now().UTC()
		}
		if len(run.Options) > 3 {
			run.Options = run.Options[:3]
		}
	}

	jobs := doc.PublishJobs
	if evicted := len(jobs) - models.MaxPublishJobs; evicted > 0 {
		s.log.Info("evicting publish jobs over retention cap", zap.Int("count", evicted))
		jobs = jobs[:models.MaxPublishJobs]
	}
	kept := make([]models.PublishJob, 0, len(jobs))
	for _, job := range jobs {
		job = models.NormalizeJob(job)
		if job.Platform == "" {
			continue
		}
		kept = append(kept, job)
	}
	doc.PublishJobs = kept

	if doc.AdInputRuns == nil {
		doc.AdInputRuns = []models.AdInputRun{}
	}
	if doc.Campaigns == nil {
		doc.Campaigns = []models.Campaign{}
	}
	if doc.Assets == nil {
		doc.Assets = []models.Asset{}
	}

	return doc
}
