package mapquest

// DefaultBaseURL is the MapQuest static map endpoint
const DefaultBaseURL = "https://www.mapquestapi.com/staticmap/v5/map"

// Config represents the configuration for the MapQuest client
type Config struct {
	// APIKey is the MapQuest consumer key
	APIKey string

	// BaseURL is the static map endpoint; DefaultBaseURL when empty
	BaseURL string

	// Zoom is the map zoom level; 15 when zero
	Zoom int

	// Size is the rendered size parameter; "@2x" when empty
	Size string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.BaseURL == "" {
		out.BaseURL = DefaultBaseURL
	}
	if out.Zoom == 0 {
		out.Zoom = 15
	}
	if out.Size == "" {
		out.Size = "@2x"
	}
	return out
}
