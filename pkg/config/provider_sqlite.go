package config

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	provider := &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}

	if err := provider.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create configuration tables: %w", err)
	}

	return provider, nil
}

func (s *SQLiteProvider) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS station (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		name TEXT NOT NULL,
		latitude REAL NOT NULL DEFAULT 0,
		longitude REAL NOT NULL DEFAULT 0,
		language TEXT NOT NULL DEFAULT 'en'
	);

	CREATE TABLE IF NOT EXISTS rest_server (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		listen_addr TEXT NOT NULL DEFAULT '',
		port INTEGER NOT NULL DEFAULT 0
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// LoadConfig loads the complete configuration from the SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	station, err := s.GetStation()
	if err != nil {
		return nil, err
	}

	rest, err := s.GetREST()
	if err != nil {
		return nil, err
	}

	return &ConfigData{
		Station: *station,
		REST:    *rest,
	}, nil
}

// GetStation returns the station configuration section
func (s *SQLiteProvider) GetStation() (*StationData, error) {
	var station StationData
	err := s.db.QueryRow(
		"SELECT name, latitude, longitude, language FROM station WHERE id = 1",
	).Scan(&station.Name, &station.Latitude, &station.Longitude, &station.Language)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no station configured in %s", s.dbPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load station configuration: %w", err)
	}
	return &station, nil
}

// GetREST returns the REST server configuration section
func (s *SQLiteProvider) GetREST() (*RESTData, error) {
	var rest RESTData
	err := s.db.QueryRow(
		"SELECT listen_addr, port FROM rest_server WHERE id = 1",
	).Scan(&rest.ListenAddr, &rest.Port)
	if err == sql.ErrNoRows {
		// REST section is optional; the server falls back to defaults
		return &RESTData{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load REST server configuration: %w", err)
	}
	return &rest, nil
}

// SaveConfig writes the complete configuration, replacing any existing rows
func (s *SQLiteProvider) SaveConfig(cfg *ConfigData) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	language := cfg.Station.Language
	if language == "" {
		language = "en"
	}

	_, err = tx.Exec(
		`INSERT INTO station (id, name, latitude, longitude, language) VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, latitude = excluded.latitude,
		 longitude = excluded.longitude, language = excluded.language`,
		cfg.Station.Name, cfg.Station.Latitude, cfg.Station.Longitude, language,
	)
	if err != nil {
		return fmt.Errorf("failed to save station configuration: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO rest_server (id, listen_addr, port) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET listen_addr = excluded.listen_addr, port = excluded.port`,
		cfg.REST.ListenAddr, cfg.REST.Port,
	)
	if err != nil {
		return fmt.Errorf("failed to save REST server configuration: %w", err)
	}

	return tx.Commit()
}

// IsReadOnly returns false: SQLite configurations can be modified at runtime
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the underlying database handle
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}
