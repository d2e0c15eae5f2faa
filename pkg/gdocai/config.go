package gdocai

import "fmt"

// Config identifies the Document AI processor to call
type Config struct {
	ProjectID       string
	Location        string // Processor region, e.g. "us" or "eu"
	ProcessorID     string
	CredentialsFile string // Service account key; empty uses application default credentials

	// NativePDFParsing lets Document AI use the text already embedded in a
	// PDF instead of running OCR on the page images.
	NativePDFParsing bool
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	switch {
	case c == nil:
		return fmt.Errorf("no Document AI configuration")
	case c.ProjectID == "":
		return fmt.Errorf("document AI project ID is not set")
	case c.Location == "":
		return fmt.Errorf("document AI location is not set")
	case c.ProcessorID == "":
		return fmt.Errorf("document AI processor ID is not set")
	}
	return nil
}

// processorName is the resource name of the configured processor.
func (c *Config) processorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", c.ProjectID, c.Location, c.ProcessorID)
}

func (c *Config) endpoint() string {
	return fmt.Sprintf("%s-documentai.googleapis.com:443", c.Location)
}
