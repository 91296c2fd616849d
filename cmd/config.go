package cmd

// Config carries all startup settings, loaded from the environment in main.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// SolverBackend selects the VRP backend: "ors" or "twogis".
	SolverBackend    string
	ORSBaseURL       string
	ORSAPIKey        string
	TwoGISBaseURL    string
	TwoGISRoutingURL string
	TwoGISAPIKey     string

	RedisAddr     string
	RedisPassword string

	// PlanningSchedule is the cron expression for the morning planning job
	// (six-field, with seconds). Empty selects the default.
	PlanningSchedule string
}
