package service

import (
	"database/sql"
	"strconv"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/database"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/model"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/reference"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/version"
)

// SystemService reports on the reference database and the pipeline inputs.
type SystemService struct {
	db            *sql.DB
	store         *reference.Store
	pricesEnabled bool
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, store *reference.Store, pricesEnabled bool) *SystemService {
	return &SystemService{
		db:            db,
		store:         store,
		pricesEnabled: pricesEnabled,
	}
}

// CheckHealth pings the reference database.
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// ReferenceStatus counts the rows of the snapshot reports are computed against.
func (s *SystemService) ReferenceStatus() model.ReferenceStatus {
	data := s.store.Current().Export()
	return model.ReferenceStatus{
		Splits:        len(data.Splits),
		ExchangeRates: len(data.ExchangeRates),
	}
}

// PricesEnabled reports whether market price lookups are configured.
func (s *SystemService) PricesEnabled() bool {
	return s.pricesEnabled
}

// CheckVersion returns the application version and the applied schema version.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	v, err := database.Version(s.db)
	if err != nil {
		return model.VersionInfo{AppVersion: version.Version}, err
	}
	return model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  strconv.FormatInt(v, 10),
	}, nil
}
