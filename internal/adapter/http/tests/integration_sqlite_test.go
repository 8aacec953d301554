//go:build !integration

package tests

import (
	"context"

	"taskboard/internal/adapter/db"
	"taskboard/internal/config"
)

func (s *IntegrationSuiteBase) SetupSuite() {
	conn, err := db.ConnectDB(&config.Config{DbDriver: config.DriverSQLite, SQLitePath: ":memory:"})
	s.Require().NoError(err)
	s.DB = conn
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}
}

func (s *IntegrationSuiteBase) ResetDatabase() {
	_, err := s.DB.Exec("DROP TABLE IF EXISTS tasks")
	s.Require().NoError(err)
	_, err = s.DB.Exec("DROP TABLE IF EXISTS schema_migrations")
	s.Require().NoError(err)
	s.Require().NoError(db.Migrate(context.Background(), s.DB))
	s.seedTasks()
}
