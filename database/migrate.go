package database

import (
	"fmt"
)

// Migrate migrates the database schema
func (c *DBConnection) Migrate() error {
	c.logger.Info("migrating database schema", "name", c.Name)
	if err := c.DB.AutoMigrate(c.Models...); err != nil {
		return fmt.Errorf("failed to migrate %s database: %w", c.Name, err)
	}
	c.logger.Info("database schema migrated", "name", c.Name)
	return nil
}
