package dto

// GeminiAPIRequest is the request body for the generateContent endpoint.
type GeminiAPIRequest struct {
	Contents []Content `json:"contents"`
}

// Content is one content block in a Gemini request or response.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is one text part of a content block.
type Part struct {
	Text string `json:"text"`
}

// GeminiAPIResponse is the response body of the generateContent endpoint.
type GeminiAPIResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
}

// GeminiCandidate is one generation candidate.
type GeminiCandidate struct {
	Content Content `json:"content"`
}
