package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gardar/pdfutils/pkg/gdocai"
	"github.com/gardar/pdfutils/pkg/ocr"
)

type yamlConfig struct {
	Engine string `yaml:"engine"`

	OCRmyPDF struct {
		Path      string   `yaml:"path"`
		Language  []string `yaml:"language"`
		ExtraArgs []string `yaml:"extra_args"`
	} `yaml:"ocrmypdf"`

	GDocAI struct {
		ProjectID       string `yaml:"project_id"`
		Location        string `yaml:"location"`
		ProcessorID     string `yaml:"processor_id"`
		CredentialsFile string `yaml:"credentials_file"`
		LayerName       string `yaml:"layer_name"`
		ResponseFile    string `yaml:"response_file"`
	} `yaml:"gdocai"`
}

// loadEnv reads variables from a .env file without overriding the
// environment. A missing file is not an error.
func loadEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// loadConfig reads the YAML configuration. An empty path returns the
// defaults: the ocrmypdf engine found on PATH.
func loadConfig(path string) (*yamlConfig, error) {
	var yc yamlConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &yc); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if yc.GDocAI.CredentialsFile == "" {
		yc.GDocAI.CredentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	return &yc, nil
}

// settings builds the engine settings. Progress goes to stdout, the output
// of external tools to stderr.
func (yc *yamlConfig) settings(stdout, stderr io.Writer) ocr.Settings {
	return ocr.Settings{
		OCRmyPDF: ocr.OCRmyPDF{
			Path:      yc.OCRmyPDF.Path,
			Languages: yc.OCRmyPDF.Language,
			ExtraArgs: yc.OCRmyPDF.ExtraArgs,
			Stderr:    stderr,
		},
		DocumentAI: ocr.DocumentAI{
			Config: &gdocai.Config{
				ProjectID:       yc.GDocAI.ProjectID,
				Location:        yc.GDocAI.Location,
				ProcessorID:     yc.GDocAI.ProcessorID,
				CredentialsFile: yc.GDocAI.CredentialsFile,
			},
			LayerName:    yc.GDocAI.LayerName,
			ResponseFile: yc.GDocAI.ResponseFile,
			Logger:       stdout,
		},
	}
}
