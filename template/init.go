package template

import (
	"fmt"
	"strings"
)

type ProjectTemplate struct {
	BaseURL  string
	TokenEnv string
}

func NewProjectTemplate(baseURL string) *ProjectTemplate {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &ProjectTemplate{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		TokenEnv: "STOCKPANEL_API_TOKEN",
	}
}

func (pt *ProjectTemplate) GetConfig() string {
	return fmt.Sprintf(`{
  "version": "1",
  "export_path": "exports",
  "api": {
    "base_url": "%s",
    "timeout": "15s",
    "retries": 2,
    "retry_backoff": "300ms",
    "token_env": "%s"
  },
  "list": {
    "page_size": 10,
    "debounce": "500ms"
  },
  "reports": {
    "page_size": 20
  },
  "studio": {
    "port": 5555,
    "session_ttl": "30m"
  },
  "log": {
    "level": "info",
    "format": "text"
  }
}
`, pt.BaseURL, pt.TokenEnv)
}

func (pt *ProjectTemplate) GetEnvTemplate() string {
	return fmt.Sprintf("# Bearer token sent to the inventory API, if it requires one\n%s=\n", pt.TokenEnv)
}

func (pt *ProjectTemplate) GetDirectoryStructure() []string {
	return []string{"exports"}
}
