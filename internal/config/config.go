// Package config loads the application configuration from a TOML file with
// environment variable overlays, plus the genre vocabulary from disk.
package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration.
type Config struct {
	Spotify     SpotifyConfig     `toml:"spotify"`
	Groq        GroqConfig        `toml:"groq"`
	Server      ServerConfig      `toml:"server"`
	Recommender RecommenderConfig `toml:"recommender"`
}

// SpotifyConfig contains the catalog application credential pair.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// GroqConfig contains the inference API key and model name.
type GroqConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// RecommenderConfig contains engine settings.
type RecommenderConfig struct {
	GenresPath string `toml:"genres_path"`
}

// Addr returns the host:port the server should bind.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:      ServerConfig{Port: 8080},
		Recommender: RecommenderConfig{GenresPath: "genres.json"},
	}
}

// Load reads a TOML configuration file and overlays environment variables on
// top. A missing file is not an error; defaults plus the environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fall through to env overlay
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	overlay(&c.Spotify.ClientID, "SPOTIFY_CLIENT_ID")
	overlay(&c.Spotify.ClientSecret, "SPOTIFY_CLIENT_SECRET")
	overlay(&c.Groq.APIKey, "GROQ_API_KEY")
	overlay(&c.Groq.Model, "GROQ_MODEL")
	overlay(&c.Recommender.GenresPath, "GENRES_PATH")
}

func overlay(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// LoadGenres reads the genre vocabulary, a JSON array of strings.
func LoadGenres(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read genres file: %w", err)
	}
	var genres []string
	if err := json.Unmarshal(data, &genres); err != nil {
		return nil, fmt.Errorf("failed to parse genres file: %w", err)
	}
	return genres, nil
}
