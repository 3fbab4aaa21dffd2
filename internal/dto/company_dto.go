package dto

import "github.com/sainanduk/problemsolving-go/internal/models"

// CompanyRequest is the payload for creating or updating a company.
type CompanyRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=150"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// CompanyResponse represents a company to API consumers.
type CompanyResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// Pagination carries page metadata for list responses.
type Pagination struct {
	TotalItems   int64 `json:"total_items"`
	TotalPages   int   `json:"total_pages"`
	CurrentPage  int   `json:"current_page"`
	ItemsPerPage int   `json:"items_per_page"`
}

// CompanyListResponse is a paginated company listing.
type CompanyListResponse struct {
	Companies  []CompanyResponse `json:"companies"`
	Pagination Pagination        `json:"pagination"`
}

// NewCompanyResponse builds a response DTO from a model.
func NewCompanyResponse(company models.Company) CompanyResponse {
	return CompanyResponse{
		ID:          company.ID,
		Name:        company.Name,
		Slug:        company.Slug,
		Description: company.Description,
	}
}

// NewCompanyResponses maps a slice of companies.
func NewCompanyResponses(companies []models.Company) []CompanyResponse {
	responses := make([]CompanyResponse, 0, len(companies))
	for _, company := range companies {
		responses = append(responses, NewCompanyResponse(company))
	}
	return responses
}
