package common

// Response is a standard API response
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// PageRequest moves a view to a page. Action "next" or "prev" wins over Page.
type PageRequest struct {
	Page   int    `json:"page"`
	Action string `json:"action,omitempty"`
}

// FilterRequest carries the raw text of the filter box. Immediate skips the
// debounce window, as on Enter.
type FilterRequest struct {
	Text      string `json:"text"`
	Immediate bool   `json:"immediate,omitempty"`
}

type SortRequest struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

type SizeRequest struct {
	Size int `json:"size"`
}
