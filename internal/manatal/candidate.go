package manatal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const apiCandidatesPath = "/candidates/"

type Candidate struct {
	ID           int                    `json:"id" mapstructure:"id"`
	FullName     string                 `json:"full_name,omitempty" mapstructure:"full_name"`
	Email        string                 `json:"email,omitempty" mapstructure:"email"`
	CustomFields map[string]interface{} `json:"custom_fields,omitempty" mapstructure:"custom_fields"`
	CreatedAt    string                 `json:"created_at,omitempty" mapstructure:"created_at"`
	UpdatedAt    string                 `json:"updated_at,omitempty" mapstructure:"updated_at"`
	// Raw is the full object returned by the API.
	Raw map[string]interface{} `json:"-" mapstructure:"-"`
}

type candidateList struct {
	Count   int                      `json:"count"`
	Next    string                   `json:"next"`
	Results []map[string]interface{} `json:"results"`
}

// CandidatePage is one page of the candidate listing.
type CandidatePage struct {
	Count      int          `json:"count"`
	Next       string       `json:"next,omitempty"`
	Candidates []*Candidate `json:"-"`
}

type createCandidateRequest struct {
	FullName     string       `json:"full_name"`
	Email        string       `json:"email"`
	CustomFields CustomFields `json:"custom_fields"`
}

type updateCandidateRequest struct {
	CustomFields CustomFields `json:"custom_fields"`
}

// CreateCandidate registers a new candidate with the registration custom fields.
func (c *Client) CreateCandidate(ctx context.Context, fullName, email string) (*Candidate, error) {
	body := &createCandidateRequest{
		FullName:     fullName,
		Email:        email,
		CustomFields: RegistrationFields(),
	}

	var raw map[string]interface{}
	if err := c.doJSON(ctx, "create_candidate", http.MethodPost, c.candidatesURL(), body, &raw); err != nil {
		return nil, err
	}

	candidate, err := decodeCandidate(raw)
	if err != nil {
		return nil, err
	}

	if candidate.ID == 0 {
		return nil, errors.New("candidate id is missing in the create response")
	}

	c.logger.Info("candidate created", zap.Int("candidate_id", candidate.ID))

	return candidate, nil
}

// UpdateCustomFields patches the custom fields of an existing candidate.
func (c *Client) UpdateCustomFields(ctx context.Context, id int, fields CustomFields) (*Candidate, error) {
	body := &updateCandidateRequest{CustomFields: fields}

	var raw map[string]interface{}
	if err := c.doJSON(ctx, "update_candidate", http.MethodPatch, c.candidateURL(id), body, &raw); err != nil {
		return nil, err
	}

	c.logger.Info("candidate custom fields updated", zap.Int("candidate_id", id), zap.Int("fields", len(fields)))

	return decodeCandidate(raw)
}

// GetCandidate fetches a single candidate.
func (c *Client) GetCandidate(ctx context.Context, id int) (*Candidate, error) {
	var raw map[string]interface{}
	if err := c.doJSON(ctx, "get_candidate", http.MethodGet, c.candidateURL(id), nil, &raw); err != nil {
		return nil, err
	}

	return decodeCandidate(raw)
}

// FindCandidateByEmail returns the first candidate registered with email, or nil if there is none.
func (c *Client) FindCandidateByEmail(ctx context.Context, email string) (*Candidate, error) {
	q := url.Values{}
	q.Set("email", email)

	var list candidateList
	if err := c.doJSON(ctx, "find_candidate", http.MethodGet, c.candidatesURL()+"?"+q.Encode(), nil, &list); err != nil {
		return nil, err
	}

	c.logger.Debug("got candidates by email", zap.Int("count", len(list.Results)))

	if len(list.Results) == 0 {
		return nil, nil
	}

	return decodeCandidate(list.Results[0])
}

// ListCandidates returns a page of candidates. Pages start at 1, a non-positive page asks for the first one.
func (c *Client) ListCandidates(ctx context.Context, page int) (*CandidatePage, error) {
	u := c.candidatesURL()
	if page > 1 {
		u += "?" + url.Values{"page": {strconv.Itoa(page)}}.Encode()
	}

	var list candidateList
	if err := c.doJSON(ctx, "list_candidates", http.MethodGet, u, nil, &list); err != nil {
		return nil, err
	}

	result := &CandidatePage{
		Count:      list.Count,
		Next:       list.Next,
		Candidates: make([]*Candidate, 0, len(list.Results)),
	}

	for _, raw := range list.Results {
		candidate, err := decodeCandidate(raw)
		if err != nil {
			return nil, err
		}
		result.Candidates = append(result.Candidates, candidate)
	}

	c.logger.Debug("got candidates", zap.Int("count", list.Count), zap.Int("page_size", len(result.Candidates)))

	return result, nil
}

func (c *Client) candidatesURL() string {
	return fmt.Sprintf("%s%s", c.APIURL, apiCandidatesPath)
}

func (c *Client) candidateURL(id int) string {
	return fmt.Sprintf("%s%s%d/", c.APIURL, apiCandidatesPath, id)
}

func decodeCandidate(raw map[string]interface{}) (*Candidate, error) {
	if raw == nil {
		raw = make(map[string]interface{})
	}

	var candidate Candidate
	if err := mapstructure.Decode(raw, &candidate); err != nil {
		return nil, fmt.Errorf("decode candidate: %w", err)
	}
	candidate.Raw = raw

	return &candidate, nil
}
