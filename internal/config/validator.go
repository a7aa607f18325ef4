package config

// Warnings returns non-fatal configuration issues worth logging at startup
func (c *Config) Warnings() []string {
	var warnings []string

	if c.DBPassword == exampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}

	if c.APIKey == exampleAPIKey {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	if c.APIKey == "" {
		warnings = append(warnings, "API_KEY is not set - plan endpoints accept unauthenticated writes")
	}

	if c.HypixelAPIKey == "" {
		warnings = append(warnings, "HYPIXEL_API_KEY is not set - player lookups will be rejected upstream")
	}

	if !c.DatabaseEnabled() {
		warnings = append(warnings, "DB_HOST is not set - saved plans are kept in memory and lost on restart")
	}

	return warnings
}
