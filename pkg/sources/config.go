package sources

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParamMapping captures one JSON provider's request contract: how the
// query, language, page size, and API key travel on the wire.
type ParamMapping struct {
	Query        string `json:"query" yaml:"query"`
	Language     string `json:"language" yaml:"language"`
	LanguageVal  string `json:"language_value" yaml:"language_value"`
	PageSize     string `json:"page_size" yaml:"page_size"`
	PageSizeVal  string `json:"page_size_value" yaml:"page_size_value"`
	APIKeyParam  string `json:"api_key_param" yaml:"api_key_param"`
	APIKeyHeader string `json:"api_key_header" yaml:"api_key_header"`
	Narrow       bool   `json:"narrow" yaml:"narrow"`
}

// ResponseMapping captures one JSON provider's payload shape: the envelope
// field holding the article list and the per-item field names.
type ResponseMapping struct {
	ListField   string `json:"list_field" yaml:"list_field"`
	TitleField  string `json:"title_field" yaml:"title_field"`
	DescField   string `json:"description_field" yaml:"description_field"`
	URLField    string `json:"url_field" yaml:"url_field"`
	DateField   string `json:"date_field" yaml:"date_field"`
	SourceField string `json:"source_field" yaml:"source_field"`
}

// SourceConfig declares one upstream source. Read-only after load; a
// missing credential does not invalidate the config, it only makes the
// built adapter skip itself.
type SourceConfig struct {
	Name          string          `json:"name" yaml:"name"`
	Kind          string          `json:"kind" yaml:"kind"`
	Endpoint      string          `json:"endpoint" yaml:"endpoint"`
	CredentialEnv string          `json:"credential_env" yaml:"credential_env"`
	Params        ParamMapping    `json:"params" yaml:"params"`
	Response      ResponseMapping `json:"response" yaml:"response"`
}

type registryFile struct {
	Sources []SourceConfig `json:"sources" yaml:"sources"`
}

// LoadRegistryFile reads source configs from a YAML or JSON file, expanding
// environment references in the raw text before decoding.
func LoadRegistryFile(path string) ([]SourceConfig, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sources file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sources file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(raw)))

	reg, err := parseRegistryFile(expanded, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(reg.Sources) == 0 {
		return nil, errors.New("sources file contains no sources entries")
	}

	seen := make(map[string]struct{}, len(reg.Sources))
	out := make([]SourceConfig, 0, len(reg.Sources))
	for i := range reg.Sources {
		cfg := sanitizeSourceConfig(reg.Sources[i])
		if err := validateSourceConfig(cfg); err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}
		key := strings.ToLower(cfg.Name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate source name %q", cfg.Name)
		}
		seen[key] = struct{}{}
		out = append(out, cfg)
	}
	return out, nil
}

func parseRegistryFile(data []byte, ext string) (registryFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var reg registryFile
		if err := d.fn(data, &reg); err == nil {
			return reg, nil
		}
	}

	return registryFile{}, errors.New("sources file format not recognized (expected YAML or JSON)")
}

func sanitizeSourceConfig(cfg SourceConfig) SourceConfig {
	cfg.Name = strings.TrimSpace(cfg.Name)
	cfg.Kind = strings.ToLower(strings.TrimSpace(cfg.Kind))
	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)
	cfg.CredentialEnv = strings.TrimSpace(cfg.CredentialEnv)
	return cfg
}

func validateSourceConfig(cfg SourceConfig) error {
	if cfg.Name == "" {
		return errors.New("name is required")
	}
	if cfg.Endpoint == "" {
		return fmt.Errorf("endpoint is required for source %q", cfg.Name)
	}
	switch cfg.Kind {
	case KindJSONAPI:
		if cfg.Params.Query == "" {
			return fmt.Errorf("params.query is required for json_api source %q", cfg.Name)
		}
		if cfg.Params.APIKeyParam == "" && cfg.Params.APIKeyHeader == "" {
			return fmt.Errorf("api key placement is required for json_api source %q", cfg.Name)
		}
		if cfg.Response.ListField == "" || cfg.Response.TitleField == "" || cfg.Response.URLField == "" {
			return fmt.Errorf("response mapping is incomplete for json_api source %q", cfg.Name)
		}
	case KindRSSFeed:
		// RSS sources need nothing beyond the feed endpoint.
	default:
		return fmt.Errorf("kind %q not supported for source %q", cfg.Kind, cfg.Name)
	}
	return nil
}

// DefaultSources returns the built-in registry: seven JSON search APIs,
// each with its own parameter contract, plus three world-news RSS feeds.
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{
			Name:          "newsapi",
			Kind:          KindJSONAPI,
			Endpoint:      "https://newsapi.org/v2/everything",
			CredentialEnv: "NEWSAPI_KEY",
			Params: ParamMapping{
				Query:       "q",
				Language:    "language",
				LanguageVal: "en",
				PageSize:    "pageSize",
				PageSizeVal: "20",
				APIKeyParam: "apiKey",
				Narrow:      true,
			},
			Response: ResponseMapping{
				ListField:   "articles",
				TitleField:  "title",
				DescField:   "description",
				URLField:    "url",
				DateField:   "publishedAt",
				SourceField: "source.name",
			},
		},
		{
			Name:          "gnews",
			Kind:          KindJSONAPI,
			Endpoint:      "https://gnews.io/api/v4/search",
			CredentialEnv: "GNEWS_KEY",
			Params: ParamMapping{
				Query:       "q",
				Language:    "lang",
				LanguageVal: "en",
				PageSize:    "max",
				PageSizeVal: "20",
				APIKeyParam: "apikey",
				Narrow:      true,
			},
			Response: ResponseMapping{
				ListField:   "articles",
				TitleField:  "title",
				DescField:   "description",
				URLField:    "url",
				DateField:   "publishedAt",
				SourceField: "source.name",
			},
		},
		{
			Name:          "newsdata",
			Kind:          KindJSONAPI,
			Endpoint:      "https://newsdata.io/api/1/news",
			CredentialEnv: "NEWSDATA_KEY",
			Params: ParamMapping{
				Query:       "q",
				Language:    "language",
				LanguageVal: "en",
				PageSize:    "size",
				PageSizeVal: "10",
				APIKeyParam: "apikey",
			},
			Response: ResponseMapping{
				ListField:   "results",
				TitleField:  "title",
				DescField:   "description",
				URLField:    "link",
				DateField:   "pubDate",
				SourceField: "source_id",
			},
		},
		{
			Name:          "mediastack",
			Kind:          KindJSONAPI,
			Endpoint:      "http://api.mediastack.com/v1/news",
			CredentialEnv: "MEDIASTACK_KEY",
			Params: ParamMapping{
				Query:       "keywords",
				Language:    "languages",
				LanguageVal: "en",
				PageSize:    "limit",
				PageSizeVal: "25",
				APIKeyParam: "access_key",
			},
			Response: ResponseMapping{
				ListField:   "data",
				TitleField:  "title",
				DescField:   "description",
				URLField:    "url",
				DateField:   "published_at",
				SourceField: "source",
			},
		},
		{
			Name:          "currents",
			Kind:          KindJSONAPI,
			Endpoint:      "https://api.currentsapi.services/v1/search",
			CredentialEnv: "CURRENTS_KEY",
			Params: ParamMapping{
				Query:        "keywords",
				Language:     "language",
				LanguageVal:  "en",
				PageSize:     "page_size",
				PageSizeVal:  "20",
				APIKeyHeader: "Authorization",
			},
			Response: ResponseMapping{
				ListField:   "news",
				TitleField:  "title",
				DescField:   "description",
				URLField:    "url",
				DateField:   "published",
				SourceField: "author",
			},
		},
		{
			Name:          "thenewsapi",
			Kind:          KindJSONAPI,
			Endpoint:      "https://api.thenewsapi.com/v1/news/all",
			CredentialEnv: "THENEWSAPI_TOKEN",
			Params: ParamMapping{
				Query:       "search",
				Language:    "language",
				LanguageVal: "en",
				PageSize:    "limit",
				PageSizeVal: "25",
				APIKeyParam: "api_token",
				Narrow:      true,
			},
			Response: ResponseMapping{
				ListField:   "data",
				TitleField:  "title",
				DescField:   "description",
				URLField:    "url",
				DateField:   "published_at",
				SourceField: "source",
			},
		},
		{
			Name:          "worldnewsapi",
			Kind:          KindJSONAPI,
			Endpoint:      "https://api.worldnewsapi.com/search-news",
			CredentialEnv: "WORLDNEWS_KEY",
			Params: ParamMapping{
				Query:        "text",
				Language:     "language",
				LanguageVal:  "en",
				PageSize:     "number",
				PageSizeVal:  "20",
				APIKeyHeader: "x-api-key",
			},
			Response: ResponseMapping{
				ListField:   "news",
				TitleField:  "title",
				DescField:   "text",
				URLField:    "url",
				DateField:   "publish_date",
				SourceField: "source_country",
			},
		},
		{
			Name:     "bbc-world",
			Kind:     KindRSSFeed,
			Endpoint: "https://feeds.bbci.co.uk/news/world/rss.xml",
		},
		{
			Name:     "aljazeera",
			Kind:     KindRSSFeed,
			Endpoint: "https://www.aljazeera.com/xml/rss/all.xml",
		},
		{
			Name:     "reuters-world",
			Kind:     KindRSSFeed,
			Endpoint: "https://feeds.reuters.com/Reuters/worldNews",
		},
	}
}
