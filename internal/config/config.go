package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port               string
	DBConnectionString string
	CacheTTL           time.Duration
	Timezone           *time.Location
	GitHub             *GitHubConfig
	Batch              *BatchConfig
	// LegacyOwner and LegacyRepo name the single repository of the older
	// one-repo-per-session workflow. Both empty disables the fallback.
	LegacyOwner string
	LegacyRepo  string
}

// Load reads the configuration from the environment, using defaults for
// unset variables.
func Load() (*Config, error) {
	port := getEnv("PORT", "8080")
	dbConnStr := getEnv("DB_CONNECTION_STRING", "")

	cacheTTL, err := getIntEnv("CACHE_TTL_MINUTES", 5)
	if err != nil {
		return nil, err
	}

	tz, err := time.LoadLocation(getEnv("INSIGHTS_TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid INSIGHTS_TIMEZONE: %w", err)
	}

	gh := DefaultGitHubConfig()
	gh.APIBaseURL = getEnv("GITHUB_API_URL", gh.APIBaseURL)
	gh.Token = getEnv("GITHUB_TOKEN", "")
	timeout, err := getIntEnv("HTTP_TIMEOUT_SECONDS", int(gh.Timeout/time.Second))
	if err != nil {
		return nil, err
	}
	gh.Timeout = time.Duration(timeout) * time.Second
	if rps := getEnv("GITHUB_REQUESTS_PER_SECOND", ""); rps != "" {
		gh.RequestsPerSecond, err = strconv.ParseFloat(rps, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid GITHUB_REQUESTS_PER_SECOND: %w", err)
		}
	}

	batch := DefaultBatchConfig()
	for key, dst := range map[string]*int{
		"DETAIL_WORKERS":   &batch.Workers,
		"DETAIL_CAP":       &batch.DetailCap,
		"SKILL_DETAIL_CAP": &batch.SkillCap,
		"HERO_DETAIL_CAP":  &batch.HeroCap,
	} {
		if *dst, err = getIntEnv(key, *dst); err != nil {
			return nil, err
		}
	}

	return &Config{
		Port:               port,
		DBConnectionString: dbConnStr,
		CacheTTL:           time.Duration(cacheTTL) * time.Minute,
		Timezone:           tz,
		GitHub:             gh,
		Batch:              batch,
		LegacyOwner:        getEnv("LEGACY_GITHUB_OWNER", ""),
		LegacyRepo:         getEnv("LEGACY_GITHUB_REPO", ""),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
