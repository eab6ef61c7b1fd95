package config

import (
	"os"
)

type Config struct {
	ProjectID       string
	Region          string
	LogLevel        string
	Port            string
	VertexModel     string
	SpreadsheetName string
	CaptureBucket   string
	KMSKeyName      string
	ClientIDSecret  string
}

func New() *Config {
	return &Config{
		ProjectID:       os.Getenv("PROJECTID"),
		Region:          os.Getenv("REGION"),
		LogLevel:        os.Getenv("LOGLEVEL"),
		Port:            getDefault("PORT", "8080"),
		VertexModel:     os.Getenv("VERTEXMODEL"),
		SpreadsheetName: getDefault("SPREADSHEETNAME", "BankYield_Data"),
		CaptureBucket:   os.Getenv("CAPTUREBUCKET"),
		KMSKeyName:      os.Getenv("KMSKEYNAME"),
		ClientIDSecret:  os.Getenv("CLIENTIDSECRET"),
	}
}

func getDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
