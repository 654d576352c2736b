// ABOUTME: Tests for MCP server, tools, and resources
// ABOUTME: Verifies MCP integration with repository interface

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/harper/eci2ecef/internal/frames"
	"github.com/harper/eci2ecef/internal/models"
	"github.com/harper/eci2ecef/internal/storage"
)

// mockRepo implements storage.Repository for testing.
type mockRepo struct {
	conversions map[uuid.UUID]*models.Conversion

	createErr error
	listErr   error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		conversions: make(map[uuid.UUID]*models.Conversion),
	}
}

func (m *mockRepo) CreateConversion(c *models.Conversion) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.conversions[c.ID] = c
	return nil
}

func (m *mockRepo) GetConversion(id uuid.UUID) (*models.Conversion, error) {
	c, ok := m.conversions[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return c, nil
}

func (m *mockRepo) ListConversions(limit int) ([]*models.Conversion, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	all := make([]*models.Conversion, 0, len(m.conversions))
	for _, c := range m.conversions {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *mockRepo) CountConversions() (int, error) {
	return len(m.conversions), nil
}

func (m *mockRepo) DeleteConversion(id uuid.UUID) error {
	if _, ok := m.conversions[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.conversions, id)
	return nil
}

func (m *mockRepo) Reset() error {
	m.conversions = make(map[uuid.UUID]*models.Conversion)
	return nil
}

func (m *mockRepo) Close() error {
	return nil
}

func goldenInput() ConvertInput {
	return ConvertInput{Year: 2023, Month: 3, Day: 15, Hour: 12, X: 7000}
}

// Tests

func TestNewServer(t *testing.T) {
	repo := newMockRepo()
	server, err := NewServer(repo, frames.ModelLegacy, nil)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	if server.repo == nil {
		t.Error("expected non-nil repo")
	}
	if server.mcp == nil {
		t.Error("expected non-nil mcp server")
	}
	if server.logger == nil {
		t.Error("expected nop logger when nil is passed")
	}
}

func TestNewServer_NilRepo(t *testing.T) {
	_, err := NewServer(nil, frames.ModelLegacy, nil)
	if err == nil {
		t.Error("expected error for nil repo")
	}
}

func TestNewServer_UnknownModel(t *testing.T) {
	_, err := NewServer(newMockRepo(), frames.Model("fk5"), nil)
	if !errors.Is(err, frames.ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
}

func TestHandleConvert(t *testing.T) {
	repo := newMockRepo()
	server, _ := NewServer(repo, frames.ModelLegacy, nil)

	result, output, err := server.handleConvert(context.Background(), nil, goldenInput())
	if err != nil {
		t.Fatalf("handleConvert failed: %v", err)
	}
	if result == nil || len(result.Content) != 1 {
		t.Fatal("expected one content block")
	}
	if output.Model != "legacy" {
		t.Errorf("expected model legacy, got %q", output.Model)
	}
	if math.Abs(output.X-6997.6118076275425) > 1e-9 {
		t.Errorf("unexpected x: %v", output.X)
	}
	if math.Abs(output.Y-182.83596405413493) > 1e-9 {
		t.Errorf("unexpected y: %v", output.Y)
	}
	if output.Z != 0 {
		t.Errorf("expected z 0, got %v", output.Z)
	}
	if want := frames.JulianDayNumber(2023, 3, 15); output.JulianDate != want {
		t.Errorf("expected julian date %v, got %v", want, output.JulianDate)
	}
	if output.ID != "" {
		t.Error("expected no ID when not recording")
	}
	if len(repo.conversions) != 0 {
		t.Error("expected nothing recorded")
	}
}

func TestHandleConvert_ModelOverride(t *testing.T) {
	server, _ := NewServer(newMockRepo(), frames.ModelLegacy, nil)

	model := "iau82"
	input := goldenInput()
	input.Model = &model

	_, output, err := server.handleConvert(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("handleConvert failed: %v", err)
	}
	if output.Model != "iau82" {
		t.Errorf("expected model iau82, got %q", output.Model)
	}
	if output.GMST < 0 || output.GMST >= 2*math.Pi {
		t.Errorf("expected normalised GMST, got %v", output.GMST)
	}
}

func TestHandleConvert_InvalidModel(t *testing.T) {
	server, _ := NewServer(newMockRepo(), frames.ModelLegacy, nil)

	model := "bogus"
	input := goldenInput()
	input.Model = &model

	_, _, err := server.handleConvert(context.Background(), nil, input)
	if !errors.Is(err, frames.ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
}

func TestHandleConvert_Record(t *testing.T) {
	repo := newMockRepo()
	server, _ := NewServer(repo, frames.ModelLegacy, nil)

	input := goldenInput()
	input.Record = true

	_, output, err := server.handleConvert(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("handleConvert failed: %v", err)
	}
	id, err := uuid.Parse(output.ID)
	if err != nil {
		t.Fatalf("expected valid ID, got %q", output.ID)
	}
	c, err := repo.GetConversion(id)
	if err != nil {
		t.Fatalf("conversion not recorded: %v", err)
	}
	if c.Output.Y != output.Y {
		t.Errorf("recorded output %v does not match %v", c.Output.Y, output.Y)
	}
}

func TestHandleConvert_RecordError(t *testing.T) {
	repo := newMockRepo()
	repo.createErr = errors.New("disk full")
	server, _ := NewServer(repo, frames.ModelLegacy, nil)

	input := goldenInput()
	input.Record = true

	_, _, err := server.handleConvert(context.Background(), nil, input)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected wrapped create error, got %v", err)
	}
}

func TestHandleListConversions(t *testing.T) {
	repo := newMockRepo()
	server, _ := NewServer(repo, frames.ModelLegacy, nil)

	input := goldenInput()
	input.Record = true
	for i := 0; i < 3; i++ {
		if _, _, err := server.handleConvert(context.Background(), nil, input); err != nil {
			t.Fatalf("handleConvert failed: %v", err)
		}
	}

	_, output, err := server.handleListConversions(context.Background(), nil, ListConversionsInput{Limit: 2})
	if err != nil {
		t.Fatalf("handleListConversions failed: %v", err)
	}
	if output.Count != 2 {
		t.Errorf("expected 2 conversions, got %d", output.Count)
	}

	_, output, err = server.handleListConversions(context.Background(), nil, ListConversionsInput{})
	if err != nil {
		t.Fatalf("handleListConversions failed: %v", err)
	}
	if output.Count != 3 {
		t.Errorf("expected 3 conversions, got %d", output.Count)
	}
}

func TestHandleListConversions_Error(t *testing.T) {
	repo := newMockRepo()
	repo.listErr = errors.New("locked")
	server, _ := NewServer(repo, frames.ModelLegacy, nil)

	_, _, err := server.handleListConversions(context.Background(), nil, ListConversionsInput{})
	if err == nil {
		t.Error("expected error when list fails")
	}
}

func TestHandleHistoryResource(t *testing.T) {
	repo := newMockRepo()
	server, _ := NewServer(repo, frames.ModelLegacy, nil)

	input := goldenInput()
	input.Record = true
	if _, _, err := server.handleConvert(context.Background(), nil, input); err != nil {
		t.Fatalf("handleConvert failed: %v", err)
	}

	result, err := server.handleHistoryResource(context.Background(), nil)
	if err != nil {
		t.Fatalf("handleHistoryResource failed: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("expected 1 content, got %d", len(result.Contents))
	}
	if result.Contents[0].URI != "eci2ecef://history" {
		t.Errorf("expected URI 'eci2ecef://history', got %q", result.Contents[0].URI)
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("expected MIME type 'application/json', got %q", result.Contents[0].MIMEType)
	}

	var decoded ListConversionsOutput
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &decoded); err != nil {
		t.Fatalf("resource is not valid JSON: %v", err)
	}
	if decoded.Count != 1 {
		t.Errorf("expected 1 conversion, got %d", decoded.Count)
	}
}

func TestHandleHistoryResource_NaN(t *testing.T) {
	repo := newMockRepo()
	c := models.NewConversion("legacy", models.Epoch{Year: 2023, Month: 3, Day: 15},
		models.Vector3{X: math.NaN()}, models.Vector3{X: math.NaN()}, 1, 2460019)
	_ = repo.CreateConversion(c)
	server, _ := NewServer(repo, frames.ModelLegacy, nil)

	_, err := server.handleHistoryResource(context.Background(), nil)
	if err == nil {
		t.Error("expected encode error for NaN history")
	}
}
