package preflight

// =============================================================================
// Stack Defaults
// =============================================================================

// RequiredKeys returns the configuration keys the document-processing stack
// cannot run without. These mirror the settings the services read at boot.
func RequiredKeys() []string {
	return []string{
		"AWS_REGION",
		"AWS_ACCESS_KEY_ID",
		"AWS_SECRET_ACCESS_KEY",
		"OPENAI_API_KEY",
		"DB_HOST",
		"DB_NAME",
		"DB_USER",
		"DB_PASSWORD",
	}
}

// Placeholders returns the known template values shipped in .env.example.
// A key still holding its placeholder was never actually configured.
func Placeholders() map[string]string {
	return map[string]string{
		"AWS_ACCESS_KEY_ID":     "your-access-key-id",
		"AWS_SECRET_ACCESS_KEY": "your-secret-access-key",
		"OPENAI_API_KEY":        "sk-your-openai-api-key-here",
		"DB_HOST":               "your-db-host",
		"DB_PASSWORD":           "changeme",
	}
}
