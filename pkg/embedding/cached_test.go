package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return []float32{float32(len(text)), 0, 0}, nil
}

func TestCachedMemoizesByText(t *testing.T) {
	backend := &countingProvider{}
	cached := NewCached(backend)

	first, err := cached.Embed(context.Background(), "hello")
	require.NoError(t, err)
	second, err := cached.Embed(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, backend.calls)
}

func TestCachedDistinctTextsHitBackend(t *testing.T) {
	backend := &countingProvider{}
	cached := NewCached(backend)

	_, err := cached.Embed(context.Background(), "one")
	require.NoError(t, err)
	_, err = cached.Embed(context.Background(), "two")
	require.NoError(t, err)

	assert.Equal(t, 2, backend.calls)
}

func TestCachedDoesNotCacheFailures(t *testing.T) {
	backend := &countingProvider{err: errors.New("provider down")}
	cached := NewCached(backend)

	_, err := cached.Embed(context.Background(), "hello")
	require.Error(t, err)

	backend.err = nil
	vec, err := cached.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.NotNil(t, vec)
	assert.Equal(t, 2, backend.calls)
}
