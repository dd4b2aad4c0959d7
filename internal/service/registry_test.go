package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folderguard/folderguard/internal/types"
)

type stubProvider struct {
	id       string
	category types.Category
	lastTool string
}

func (p *stubProvider) Definition() types.Service {
	return types.Service{
		ID:       p.id,
		Name:     p.id,
		Category: p.category,
		Tools: []types.Tool{
			{ID: p.id + ".noop", Name: "Noop"},
		},
	}
}

func (p *stubProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, opCtx *types.Context) (*types.Result, error) {
	p.lastTool = toolID
	return &types.Result{Success: true, Data: map[string]interface{}{"tool": toolID}}, nil
}

func TestRegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	provider := &stubProvider{id: "files", category: types.CategoryFiles}

	require.NoError(t, registry.Register(provider))

	got, ok := registry.Get("files")
	assert.True(t, ok)
	assert.Equal(t, provider, got)

	_, ok = registry.Get("missing")
	assert.False(t, ok)
}

func TestRegisterEmptyID(t *testing.T) {
	registry := NewRegistry()
	assert.Error(t, registry.Register(&stubProvider{id: ""}))
}

func TestUnregister(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(&stubProvider{id: "files"}))

	registry.Unregister("files")
	_, ok := registry.Get("files")
	assert.False(t, ok)
}

func TestListFiltersByCategory(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(&stubProvider{id: "files", category: types.CategoryFiles}))
	require.NoError(t, registry.Register(&stubProvider{id: "scan", category: types.CategoryScan}))

	all := registry.List(nil)
	assert.Len(t, all, 2)

	cat := types.CategoryScan
	scoped := registry.List(&cat)
	require.Len(t, scoped, 1)
	assert.Equal(t, "scan", scoped[0].ID)
}

func TestExecuteRoutesToProvider(t *testing.T) {
	registry := NewRegistry()
	provider := &stubProvider{id: "files"}
	require.NoError(t, registry.Register(provider))

	result, err := registry.Execute(context.Background(), "files.noop", nil, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "files.noop", provider.lastTool)
}

func TestExecuteInvalidToolID(t *testing.T) {
	registry := NewRegistry()

	result, err := registry.Execute(context.Background(), "malformed", nil, nil)
	require.Error(t, err)
	assert.False(t, result.Success)
}

func TestExecuteUnknownService(t *testing.T) {
	registry := NewRegistry()

	result, err := registry.Execute(context.Background(), "ghost.noop", nil, nil)
	require.Error(t, err)
	assert.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Contains(t, *result.Error, "ghost")
}

func TestStats(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(&stubProvider{id: "files", category: types.CategoryFiles}))
	require.NoError(t, registry.Register(&stubProvider{id: "scan", category: types.CategoryScan}))

	stats := registry.Stats()
	assert.Equal(t, 2, stats["total_services"])
	assert.Equal(t, 2, stats["total_tools"])
	assert.Equal(t, map[string]int{"files": 1, "scan": 1}, stats["categories"])
}
