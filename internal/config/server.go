package config

// ServerConfig holds settings for the local stand-in site
type ServerConfig struct {
	Port string
}

// LoadServerConfig loads the stand-in site port from PORT
func LoadServerConfig(getenv func(string) string) ServerConfig {
	port := getenv("PORT")
	if port == "" {
		port = "7080"
	}

	return ServerConfig{
		Port: port,
	}
}
