package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Host            string
	Port            int
	AllowOrigins    []string
	LogLevel        string
	MaxUploadMB     int
	LogFile         string
	WidthRatio      float64
	DefaultSelector string
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "32"))
	ratio, _ := strconv.ParseFloat(getenv("WIDTH_RATIO", "0.14"), 64)
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return Config{
		Host:            getenv("HOST", "127.0.0.1"),
		Port:            port,
		AllowOrigins:    origins,
		LogLevel:        getenv("LOG_LEVEL", "info"),
		MaxUploadMB:     mb,
		LogFile:         os.Getenv("LOG_FILE"),
		WidthRatio:      ratio,
		DefaultSelector: getenv("DEFAULT_SELECTOR", "table"),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// MaxUploadBytes is the request body limit; 0 disables it.
func (c Config) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 0
	}
	return int64(c.MaxUploadMB) << 20
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
