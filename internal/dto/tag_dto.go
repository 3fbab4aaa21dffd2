package dto

import "github.com/sainanduk/problemsolving-go/internal/models"

// TagRequest is the payload for creating or updating a tag.
type TagRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
}

// TagResponse represents a tag to API consumers.
type TagResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// NewTagResponse builds a response DTO from a model.
func NewTagResponse(tag models.Tag) TagResponse {
	return TagResponse{
		ID:          tag.ID,
		Name:        tag.Name,
		Description: tag.Description,
	}
}

// NewTagResponses maps a slice of tags.
func NewTagResponses(tags []models.Tag) []TagResponse {
	responses := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		responses = append(responses, NewTagResponse(tag))
	}
	return responses
}
