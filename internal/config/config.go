package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings dapur needs to reach the recipe API and to
// render the profile page.
type Config struct {
	APIURL         string
	UserIdentifier string
	ShareBaseURL   string
	LogDir         string
	LogLevel       string
	RequestTimeout time.Duration
	PageSize       int
	Profile        Profile
}

// Profile is the static owner information shown on the profile screen.
type Profile struct {
	Name      string `toml:"name"`
	StudentID string `toml:"student_id"`
	Group     string `toml:"group"`
	AvatarURL string `toml:"avatar_url"`
}

const (
	defaultConfigPath     = "~/.config/dapur/config.toml"
	defaultAPIURL         = "http://127.0.0.1:3000"
	defaultShareBaseURL   = "http://localhost:5173/"
	defaultLogDir         = "~/.local/share/dapur/logs"
	defaultLogLevel       = "info"
	defaultRequestTimeout = 5 * time.Second
	defaultPageSize       = 12

	logFileName = "dapur.log"
)

// Environment variables that override the file.
const (
	EnvAPIURL   = "DAPUR_API_URL"
	EnvUser     = "DAPUR_USER"
	EnvLogLevel = "DAPUR_LOG_LEVEL"
)

// DotEnvFile is read from the working directory when present. Real
// environment variables win over its values.
var DotEnvFile = ".env"

var defaultProfile = Profile{
	Name:      "Faiz Abdul Hanif",
	StudentID: "21120123140138",
	Group:     "Kelompok 21",
	AvatarURL: "https://avatars.githubusercontent.com/atvouzx",
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		ShareBaseURL:   defaultShareBaseURL,
		LogDir:         mustExpand(defaultLogDir),
		LogLevel:       defaultLogLevel,
		RequestTimeout: defaultRequestTimeout,
		PageSize:       defaultPageSize,
		Profile:        defaultProfile,
	}
}

// Load locates and parses the dapur config, falling back to defaults when
// missing, then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg, err := loadFile(resolved)
	if err != nil {
		return Config{}, err
	}
	applyEnv(&cfg, environ())
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL         string  `toml:"api_url"`
		UserIdentifier string  `toml:"user_identifier"`
		ShareBaseURL   string  `toml:"share_base_url"`
		LogDir         string  `toml:"log_dir"`
		LogLevel       string  `toml:"log_level"`
		RequestTimeout string  `toml:"request_timeout"`
		PageSize       int     `toml:"page_size"`
		Profile        Profile `toml:"profile"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIURL = orDefault(raw.APIURL, defaultAPIURL)
	cfg.UserIdentifier = strings.TrimSpace(raw.UserIdentifier)
	cfg.ShareBaseURL = orDefault(raw.ShareBaseURL, defaultShareBaseURL)
	cfg.LogDir = mustExpand(orDefault(raw.LogDir, defaultLogDir))
	cfg.LogLevel = strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel))

	if timeout := strings.TrimSpace(raw.RequestTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout: %w", err)
		}
		if d > 0 {
			cfg.RequestTimeout = d
		}
	}
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}

	cfg.Profile = Profile{
		Name:      orDefault(raw.Profile.Name, defaultProfile.Name),
		StudentID: orDefault(raw.Profile.StudentID, defaultProfile.StudentID),
		Group:     orDefault(raw.Profile.Group, defaultProfile.Group),
		AvatarURL: orDefault(raw.Profile.AvatarURL, defaultProfile.AvatarURL),
	}
	return cfg, nil
}

// environ merges the .env file under the process environment.
func environ() map[string]string {
	env, err := godotenv.Read(DotEnvFile)
	if err != nil {
		env = map[string]string{}
	}
	for _, key := range []string{EnvAPIURL, EnvUser, EnvLogLevel} {
		if v := os.Getenv(key); strings.TrimSpace(v) != "" {
			env[key] = v
		}
	}
	return env
}

func applyEnv(cfg *Config, env map[string]string) {
	if v := strings.TrimSpace(env[EnvAPIURL]); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(env[EnvUser]); v != "" {
		cfg.UserIdentifier = v
	}
	if v := strings.TrimSpace(env[EnvLogLevel]); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
}

// LogPath returns the path of dapur's own log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/" + logFileName)
	}
	return filepath.Join(c.LogDir, logFileName)
}

// ShareLink builds the link copied by the share action.
func (c Config) ShareLink(recipeID string) string {
	base := strings.TrimSpace(c.ShareBaseURL)
	if base == "" {
		base = defaultShareBaseURL
	}
	return base + "?recipe=" + recipeID
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
