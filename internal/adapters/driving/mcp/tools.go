package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
)

// ExtractInput is the input schema for the extract_property tool.
type ExtractInput struct {
	Message string `json:"message" jsonschema:"the broker message to extract property details from"`
}

// DraftOutput is an extracted, unsaved listing.
type DraftOutput struct {
	Fields     map[string]string `json:"fields"`
	Confidence float64           `json:"confidence"`
	Level      string            `json:"level"`
}

// SaveInput is the input schema for the save_property tool.
type SaveInput struct {
	Message   string            `json:"message" jsonschema:"the broker message to extract and save"`
	Overrides map[string]string `json:"overrides,omitempty" jsonschema:"field values that replace extracted ones, keyed by field name such as location or price"`
}

// SaveOutput reports a saved listing.
type SaveOutput struct {
	ID      string            `json:"id"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

// ListInput is the input schema for the list_properties tool.
type ListInput struct {
	PropertyType    string `json:"property_type,omitempty" jsonschema:"Residential, Commercial or Land"`
	TransactionType string `json:"transaction_type,omitempty" jsonschema:"Rent or Sale"`
	BHK             string `json:"bhk,omitempty" jsonschema:"configuration such as 2BHK"`
	Location        string `json:"location,omitempty" jsonschema:"location substring"`
	Search          string `json:"search,omitempty" jsonschema:"free-text search over the listing"`
}

// ListOutput is the output schema for the list_properties tool.
type ListOutput struct {
	Properties []PropertyOutput `json:"properties"`
	Count      int              `json:"count"`
}

// PropertyOutput summarises a saved listing.
type PropertyOutput struct {
	ID              string   `json:"id"`
	URI             string   `json:"uri"`
	PropertyType    string   `json:"property_type,omitempty"`
	BHK             string   `json:"bhk,omitempty"`
	TransactionType string   `json:"transaction_type,omitempty"`
	Location        string   `json:"location,omitempty"`
	Price           string   `json:"price,omitempty"`
	IsFavorite      bool     `json:"is_favorite"`
	Tags            []string `json:"tags,omitempty"`
	HasImage        bool     `json:"has_image"`
}

// StatsInput is the empty input of the get_stats tool.
type StatsInput struct{}

// StatsOutput is the output schema for the get_stats tool.
type StatsOutput struct {
	Total         int              `json:"total_properties"`
	Favorites     int              `json:"favorites"`
	ByTransaction map[string]int   `json:"by_transaction"`
	ByType        map[string]int   `json:"by_type"`
	Recent        []PropertyOutput `json:"recent"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_property",
		Description: "Extract structured property details from a broker message without saving",
	}, s.handleExtract)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save_property",
		Description: "Extract a broker message, apply overrides and save it as a listing",
	}, s.handleSave)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_properties",
		Description: "List saved properties, optionally filtered",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_stats",
		Description: "Summarise the saved property collection",
	}, s.handleStats)
}

func (s *Server) handleExtract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, DraftOutput, error) {
	draft, err := s.ports.Properties.Extract(ctx, input.Message)
	if err != nil {
		return nil, DraftOutput{}, err
	}
	score := draft.Confidence()
	return nil, DraftOutput{
		Fields:     draftFields(draft),
		Confidence: score,
		Level:      domain.LevelFor(score).String(),
	}, nil
}

func (s *Server) handleSave(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SaveInput,
) (*mcp.CallToolResult, SaveOutput, error) {
	draft, err := s.ports.Properties.Extract(ctx, input.Message)
	if err != nil {
		return nil, SaveOutput{}, err
	}
	for field, value := range input.Overrides {
		if err := draft.Set(field, value); err != nil {
			return nil, SaveOutput{}, fmt.Errorf("override %s: %w", field, err)
		}
	}

	outcome, err := s.ports.Properties.Save(ctx, draft, nil)
	if err != nil {
		return nil, SaveOutput{}, err
	}
	return nil, SaveOutput{
		ID:      outcome.ID,
		Message: outcome.Message,
		Fields:  draftFields(draft),
	}, nil
}

func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	criteria := domain.FilterCriteria{
		PropertyType:    input.PropertyType,
		TransactionType: input.TransactionType,
		BHK:             input.BHK,
		Location:        input.Location,
		Search:          input.Search,
	}
	props, err := s.ports.Properties.List(ctx, criteria)
	if err != nil {
		return nil, ListOutput{}, err
	}
	return nil, ListOutput{Properties: summarise(props), Count: len(props)}, nil
}

func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	stats, err := s.ports.Properties.Stats(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}
	return nil, StatsOutput{
		Total:         stats.TotalProperties,
		Favorites:     stats.Favorites,
		ByTransaction: counts(stats.ByTransaction),
		ByType:        counts(stats.ByType),
		Recent:        summarise(stats.Recent),
	}, nil
}

// counts never returns nil; the output schema requires an object.
func counts(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}

// draftFields returns the non-empty editable fields of d.
func draftFields(d *domain.Draft) map[string]string {
	fields := make(map[string]string)
	for _, field := range domain.EditableFields() {
		if v := d.Get(field); v != "" {
			fields[field] = v
		}
	}
	return fields
}

func summarise(props []domain.Property) []PropertyOutput {
	out := make([]PropertyOutput, len(props))
	for i := range props {
		p := &props[i]
		out[i] = PropertyOutput{
			ID:              p.ID,
			URI:             propertyURI(p.ID),
			PropertyType:    string(p.PropertyType),
			BHK:             p.BHK,
			TransactionType: string(p.TransactionType),
			Location:        p.Location,
			Price:           p.Price,
			IsFavorite:      p.IsFavorite,
			Tags:            p.Tags,
			HasImage:        p.HasImage(),
		}
	}
	return out
}
