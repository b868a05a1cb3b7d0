package config

import (
	"os"
	"strconv"

	"github.com/expensio/receipt-analyzer/extraction"
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	MaxFileSize       int64
	Engine            extraction.Config
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/5/tessdata/"
	}

	engine := extraction.DefaultConfig()
	engine.ConfidenceFloor = envFloat("EXTRACTION_CONFIDENCE_FLOOR", engine.ConfidenceFloor)
	engine.RowBands = envInt("EXTRACTION_ROW_BANDS", engine.RowBands)
	engine.MaxGap = envFloat("EXTRACTION_MAX_GAP", engine.MaxGap)

	return &Config{
		ServerPort:        serverPort,
		TesseractDataPath: tesseractDataPath,
		MaxFileSize:       10 * 1024 * 1024, // 10 MB
		Engine:            engine,
	}
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
