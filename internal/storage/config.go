package storage

import "fmt"

// Config for the Azure blob storage system.
type Config struct {
	ConnectionString string
	ContainerName    string
}

func (c *Config) Validate() error {
	if c.ConnectionString == "" {
		return fmt.Errorf("storage connection string is required")
	}
	if c.ContainerName == "" {
		return fmt.Errorf("storage container name is required")
	}
	return nil
}
