package dto

type QueryRequest struct {
	Query  string            `json:"query" binding:"required"`
	Params map[string]string `json:"params"`
}

type QueryResponse struct {
	Query   string                   `json:"query"`
	Count   int                      `json:"count"`
	Results []map[string]interface{} `json:"results"`
}

type TemplateResponse struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Params      []string `json:"params"`
}
