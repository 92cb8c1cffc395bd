package platform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/eventcast/pkg/logger"
)

func TestRegistryFactoryLazyCreate(t *testing.T) {
	r := NewRegistry(logger.Discard)

	created := 0
	r.RegisterFactory("blog", func(logger.Logger) (Adapter, error) {
		created++
		return NewFakeAdapter("blog"), nil
	})

	a1, err := r.Get("blog")
	require.NoError(t, err)
	a2, err := r.Get("blog")
	require.NoError(t, err)

	assert.Same(t, a1, a2, "instance should be cached")
	assert.Equal(t, 1, created)
}

func TestRegistryUnknownPlatform(t *testing.T) {
	r := NewRegistry(logger.Discard)
	_, err := r.Get("nope")
	assert.Error(t, err)
}

func TestRegistryFactoryError(t *testing.T) {
	r := NewRegistry(logger.Discard)
	r.RegisterFactory("broken", func(logger.Logger) (Adapter, error) {
		return nil, errors.New("bad credentials file")
	})
	_, err := r.Get("broken")
	assert.ErrorContains(t, err, "broken")
}

func TestRegistryResolvePreservesOrder(t *testing.T) {
	r := NewRegistry(logger.Discard)
	r.RegisterAdapter(NewFakeAdapter("calendar"))
	r.RegisterAdapter(NewFakeAdapter("scheduler"))
	r.RegisterAdapter(NewFakeAdapter("manual"))

	adapters, err := r.Resolve([]string{"scheduler", "manual", "calendar"})
	require.NoError(t, err)
	require.Len(t, adapters, 3)
	assert.Equal(t, "scheduler", adapters[0].Name())
	assert.Equal(t, "manual", adapters[1].Name())
	assert.Equal(t, "calendar", adapters[2].Name())
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry(logger.Discard)
	r.RegisterAdapter(NewFakeAdapter("manual"))
	r.RegisterFactory("blog", func(logger.Logger) (Adapter, error) {
		return NewFakeAdapter("blog"), nil
	})

	names := r.List()
	assert.ElementsMatch(t, []string{"manual", "blog"}, names)
}
