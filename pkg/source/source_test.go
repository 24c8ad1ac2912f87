package source

import (
	"context"
	"testing"

	"github.com/steveant/mgit/pkg/bulk"
	"github.com/steveant/mgit/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nullSource struct{}

func (nullSource) ListRepositories(ctx context.Context, project string) ([]bulk.Repository, error) {
	return nil, nil
}

func TestNew_UnknownSourceListsOptions(t *testing.T) {
	Register("test-null", func(ctx context.Context, cfg *config.Config) (bulk.Source, error) {
		return nullSource{}, nil
	})

	src, err := New(context.Background(), &config.Config{Source: "test-null"})
	require.NoError(t, err)
	assert.NotNil(t, src)

	_, err = New(context.Background(), &config.Config{Source: "gitlab"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gitlab not found")
	assert.Contains(t, err.Error(), "test-null")
}
