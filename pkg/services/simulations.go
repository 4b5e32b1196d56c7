package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reglens-inc/reglens-engine/pkg/apperrors"
	"github.com/reglens-inc/reglens-engine/pkg/catalog"
	"github.com/reglens-inc/reglens-engine/pkg/models"
	"github.com/reglens-inc/reglens-engine/pkg/store"
)

// CreateSimulationInput holds the caller-supplied fields for a new
// simulation.
type CreateSimulationInput struct {
	Title       string
	Description string
	Standard    string
}

// SimulationUpdate holds partial fields to merge into a simulation.
// Nil fields are left unchanged.
type SimulationUpdate struct {
	Title       *string
	Description *string
	Status      *models.SimulationStatus
}

// FindingInput holds the caller-supplied fields for a new finding.
// Section is a section ID under the simulation's standard; its validity is
// not checked here — that is the caller's responsibility.
type FindingInput struct {
	Title       string
	Description string
	Severity    models.FindingSeverity
	Section     string
	Evidence    string
}

// SimulationStats aggregates counts for the dashboard view.
type SimulationStats struct {
	Total              int                             `json:"total"`
	ByStatus           map[models.SimulationStatus]int `json:"by_status"`
	TotalFindings      int                             `json:"total_findings"`
	FindingsBySeverity map[models.FindingSeverity]int  `json:"findings_by_severity"`
}

// SimulationService manages audit simulation records and their findings.
// All mutations read, modify, and write the entire persisted list as a
// whole; a service-level mutex keeps that cycle atomic within the process.
type SimulationService interface {
	// List returns all simulations in creation order.
	List(ctx context.Context) ([]models.AuditSimulation, error)

	// Get returns the simulation with the given ID, or
	// apperrors.ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*models.AuditSimulation, error)

	// Create validates the input, generates identity fields, and persists a
	// new draft simulation with no findings.
	Create(ctx context.Context, input CreateSimulationInput) (*models.AuditSimulation, error)

	// Update merges the given fields into the matching record. A status
	// change must follow the draft -> active -> completed progression or
	// the call fails with apperrors.ErrInvalidTransition. An unknown ID is
	// a silent no-op.
	Update(ctx context.Context, id uuid.UUID, update SimulationUpdate) error

	// Delete removes the matching record. An unknown ID is a silent no-op.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddFinding validates the input, generates an ID, and appends the
	// finding to the matching simulation. If the simulation does not exist
	// the constructed finding is still returned but nothing is persisted.
	AddFinding(ctx context.Context, simulationID uuid.UUID, input FindingInput) (*models.AuditFinding, error)

	// Stats aggregates simulation and finding counts.
	Stats(ctx context.Context) (*SimulationStats, error)
}

type simulationService struct {
	kv      store.KV
	catalog *catalog.Catalog
	logger  *zap.Logger

	// Serializes the read-modify-write cycle over the persisted list.
	mu sync.Mutex
}

// NewSimulationService creates a new simulation service.
func NewSimulationService(kv store.KV, cat *catalog.Catalog, logger *zap.Logger) SimulationService {
	return &simulationService{
		kv:      kv,
		catalog: cat,
		logger:  logger.Named("simulations"),
	}
}

var _ SimulationService = (*simulationService)(nil)

func (s *simulationService) List(ctx context.Context) ([]models.AuditSimulation, error) {
	return s.load(ctx)
}

func (s *simulationService) Get(ctx context.Context, id uuid.UUID) (*models.AuditSimulation, error) {
	simulations, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range simulations {
		if simulations[i].ID == id {
			return &simulations[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *simulationService) Create(ctx context.Context, input CreateSimulationInput) (*models.AuditSimulation, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", apperrors.ErrValidation)
	}
	if _, ok := s.catalog.GetStandardByID(input.Standard); !ok {
		return nil, fmt.Errorf("%w: unknown standard %q", apperrors.ErrValidation, input.Standard)
	}

	simulation := models.AuditSimulation{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Standard:    input.Standard,
		Status:      models.SimulationStatusDraft,
		Findings:    []models.AuditFinding{},
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	simulations, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, append(simulations, simulation)); err != nil {
		return nil, err
	}

	s.logger.Info("Simulation created",
		zap.String("id", simulation.ID.String()),
		zap.String("standard", simulation.Standard))

	return &simulation, nil
}

func (s *simulationService) Update(ctx context.Context, id uuid.UUID, update SimulationUpdate) error {
	if update.Status != nil && !models.IsValidSimulationStatus(*update.Status) {
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *update.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	simulations, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i := range simulations {
		if simulations[i].ID != id {
			continue
		}

		if update.Status != nil && *update.Status != simulations[i].Status {
			if !simulations[i].Status.CanTransitionTo(*update.Status) {
				return fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition,
					simulations[i].Status, *update.Status)
			}
			simulations[i].Status = *update.Status
		}
		if update.Title != nil {
			simulations[i].Title = *update.Title
		}
		if update.Description != nil {
			simulations[i].Description = *update.Description
		}

		return s.save(ctx, simulations)
	}

	// Unknown ID: leave the list untouched.
	return nil
}

func (s *simulationService) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	simulations, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := simulations[:0]
	found := false
	for _, sim := range simulations {
		if sim.ID == id {
			found = true
			continue
		}
		kept = append(kept, sim)
	}
	if !found {
		return nil
	}

	if err := s.save(ctx, kept); err != nil {
		return err
	}

	s.logger.Info("Simulation deleted", zap.String("id", id.String()))
	return nil
}

func (s *simulationService) AddFinding(ctx context.Context, simulationID uuid.UUID, input FindingInput) (*models.AuditFinding, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", apperrors.ErrValidation)
	}
	if !models.IsValidFindingSeverity(input.Severity) {
		return nil, fmt.Errorf("%w: unknown severity %q", apperrors.ErrValidation, input.Severity)
	}

	finding := models.AuditFinding{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Severity:    input.Severity,
		Section:     input.Section,
		Evidence:    input.Evidence,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	simulations, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range simulations {
		if simulations[i].ID != simulationID {
			continue
		}
		simulations[i].Findings = append(simulations[i].Findings, finding)
		if err := s.save(ctx, simulations); err != nil {
			return nil, err
		}
		s.logger.Info("Finding added",
			zap.String("simulation_id", simulationID.String()),
			zap.String("severity", string(finding.Severity)))
		return &finding, nil
	}

	// Unknown simulation: the constructed finding is returned but nothing
	// is persisted.
	s.logger.Warn("Finding constructed for unknown simulation",
		zap.String("simulation_id", simulationID.String()))
	return &finding, nil
}

func (s *simulationService) Stats(ctx context.Context) (*SimulationStats, error) {
	simulations, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	stats := &SimulationStats{
		Total:              len(simulations),
		ByStatus:           make(map[models.SimulationStatus]int),
		FindingsBySeverity: make(map[models.FindingSeverity]int),
	}
	for _, sim := range simulations {
		stats.ByStatus[sim.Status]++
		stats.TotalFindings += len(sim.Findings)
		for _, f := range sim.Findings {
			stats.FindingsBySeverity[f.Severity]++
		}
	}
	return stats, nil
}

func (s *simulationService) load(ctx context.Context) ([]models.AuditSimulation, error) {
	raw, ok, err := s.kv.Get(ctx, store.KeySimulations)
	if err != nil {
		return nil, fmt.Errorf("failed to load simulations: %w", err)
	}
	if !ok {
		return []models.AuditSimulation{}, nil
	}

	var simulations []models.AuditSimulation
	if err := json.Unmarshal(raw, &simulations); err != nil {
		return nil, fmt.Errorf("failed to decode simulations: %w", err)
	}
	return simulations, nil
}

func (s *simulationService) save(ctx context.Context, simulations []models.AuditSimulation) error {
	raw, err := json.Marshal(simulations)
	if err != nil {
		return fmt.Errorf("failed to encode simulations: %w", err)
	}
	return s.kv.Set(ctx, store.KeySimulations, raw)
}
