package store

// Config holds configuration for the Store.
type Config struct {
	// Table is the name of the DynamoDB users table.
	// Its partition key must be the string attribute "userid".
	// Default: "users"
	Table string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Table: "users",
	}
}

// validate fills in defaults for unset values.
func (c *Config) validate() {
	if c.Table == "" {
		c.Table = "users"
	}
}
