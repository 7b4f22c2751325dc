package backend

// Config holds configuration for the backend gateway connection.
type Config struct {
	// BaseURL is the root URL of the license manager backend API.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:8000"`
	// Token is the bearer token presented on every request.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds bounds every HTTP request to the backend.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
