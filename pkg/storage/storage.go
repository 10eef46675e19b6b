package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/golangdaddy/roadkill/pkg/models"
)

// Run modes
const (
	ModeCampaign = "campaign"
	ModeSurvival = "survival"
)

// RunRecord is one finished run
type RunRecord struct {
	gorm.Model
	Mode       string    `json:"mode" gorm:"size:16;index"`
	Car        string    `json:"car" gorm:"size:64"`
	GameLevel  int       `json:"gameLevel"`
	Outcome    string    `json:"outcome" gorm:"size:16"`
	Distance   float64   `json:"distance"`
	Kills      int       `json:"kills"`
	Money      int       `json:"money"`
	Score      int       `json:"score"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Duration is the wall time the run took
func (r RunRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// ProfileRecord is the persisted form of models.Profile
type ProfileRecord struct {
	gorm.Model
	Name              string `gorm:"size:64;uniqueIndex"`
	Money             int
	Level             int
	CurrentCar        string `gorm:"size:64"`
	DistanceTravelled float64
	Kills             int
	Created           time.Time
	LastPlayed        time.Time
}

// Store persists run history and profiles
type Store struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// Open connects to the SQLite database at path and migrates the schema.
// An empty path opens a shared in-memory database.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database %q: %w", dsn, err)
	}

	if err := db.AutoMigrate(&RunRecord{}, &ProfileRecord{}); err != nil {
		return nil, fmt.Errorf("migrating tables: %w", err)
	}

	log = log.With().Str("component", "storage").Logger()
	log.Info().Str("dsn", dsn).Msg("database ready")
	return &Store{db: db, logger: log}, nil
}

// Close releases the underlying connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveRun stores a finished run
func (s *Store) SaveRun(r *RunRecord) error {
	if err := s.db.Create(r).Error; err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	s.logger.Debug().
		Str("mode", r.Mode).
		Str("outcome", r.Outcome).
		Int("score", r.Score).
		Msg("run saved")
	return nil
}

// RecentRuns returns up to limit runs of the given mode, newest first.
// An empty mode matches every run.
func (s *Store) RecentRuns(mode string, limit int) ([]RunRecord, error) {
	var runs []RunRecord
	q := s.db.Order("finished_at desc").Order("id desc")
	if mode != "" {
		q = q.Where("mode = ?", mode)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// BestScore returns the highest score recorded for a mode, or 0
func (s *Store) BestScore(mode string) (int, error) {
	var best RunRecord
	err := s.db.Where("mode = ?", mode).Order("score desc").First(&best).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("best score: %w", err)
	}
	return best.Score, nil
}

// LoadProfile fetches a profile by name. A missing profile is returned as a
// new one with found false.
func (s *Store) LoadProfile(name string) (*models.Profile, bool, error) {
	var rec ProfileRecord
	err := s.db.Where("name = ?", name).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewProfile(name), false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading profile %q: %w", name, err)
	}

	p := &models.Profile{}
	if err := copier.Copy(p, &rec); err != nil {
		return nil, false, fmt.Errorf("copying profile %q: %w", name, err)
	}
	return p, true, nil
}

// SaveProfile inserts or updates a profile by name
func (s *Store) SaveProfile(p *models.Profile) error {
	var rec ProfileRecord
	err := s.db.Where("name = ?", p.Name).First(&rec).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("loading profile %q: %w", p.Name, err)
	}
	if err := copier.Copy(&rec, p); err != nil {
		return fmt.Errorf("copying profile %q: %w", p.Name, err)
	}
	if err := s.db.Save(&rec).Error; err != nil {
		return fmt.Errorf("saving profile %q: %w", p.Name, err)
	}
	return nil
}
