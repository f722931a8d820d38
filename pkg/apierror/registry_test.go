package apierror_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/apikit/pkg/apierror"
)

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	expected := map[string]int{
		"throttled":        http.StatusServiceUnavailable,
		"unauthenticated":  http.StatusUnauthorized,
		"invalid_version":  http.StatusNotFound,
		"not_implemented":  http.StatusServiceUnavailable,
		"not_found":        http.StatusNotFound,
		"bad_request":      http.StatusBadRequest,
		"conflict":         http.StatusConflict,
		"forbidden":        http.StatusForbidden,
		"invalid_resource": http.StatusUnprocessableEntity,
	}

	for name, status := range expected {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			c := apierror.Lookup(name)
			require.NotNil(t, c)
			assert.Equal(t, name, c.Name())
			assert.Equal(t, status, c.HTTPStatus())
		})
	}

	t.Run("every registered name round trips", func(t *testing.T) {
		t.Parallel()
		for name, c := range apierror.All() {
			assert.Equal(t, name, apierror.Lookup(name).Name())
			assert.Same(t, c, apierror.Lookup(name))
		}
	})
}

func TestRegistry_All_ReturnsCopy(t *testing.T) {
	r := apierror.NewRegistry()
	_, err := r.Register("teapot", apierror.WithStatusName("im_a_teapot"))
	require.NoError(t, err)

	all := r.All()
	delete(all, "teapot")

	assert.NotNil(t, r.Lookup("teapot"))
}

func TestRegistry_Lookup(t *testing.T) {
	r := apierror.NewRegistry()
	c, err := r.Register("rate_limited", apierror.WithHTTPStatus(http.StatusTooManyRequests))
	require.NoError(t, err)

	t.Run("canonical form", func(t *testing.T) {
		assert.Same(t, c, r.Lookup("rate_limited"))
		assert.Same(t, c, r.Lookup("RateLimited"))
		assert.Same(t, c, r.Lookup(" rate_limited "))
	})

	t.Run("missing name", func(t *testing.T) {
		assert.Nil(t, r.Lookup("nope"))
	})

	t.Run("by qualified class name", func(t *testing.T) {
		assert.Same(t, c, r.Class("apierror.RateLimited"))
	})
}

func TestRegistry_Add(t *testing.T) {
	r := apierror.NewRegistry()

	t.Run("nil class", func(t *testing.T) {
		assert.ErrorIs(t, r.Add(nil), apierror.ErrNilClass)
	})

	t.Run("overwrites same name", func(t *testing.T) {
		first, err := apierror.NewClass("GoneError", nil)
		require.NoError(t, err)
		second, err := apierror.NewClass("GoneError", apierror.NotFound)
		require.NoError(t, err)

		require.NoError(t, r.Add(first))
		require.NoError(t, r.Add(second))
		assert.Same(t, second, r.Lookup("gone"))
		assert.Len(t, r.All(), 1)
	})
}

func TestRegistry_Register(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r := apierror.NewRegistry()
		c, err := r.Register("payment_required")
		require.NoError(t, err)

		assert.Equal(t, "payment_required", c.Name())
		assert.Equal(t, "payment_required", c.Key())
		assert.Equal(t, http.StatusBadRequest, c.HTTPStatus())
		assert.Equal(t, "PaymentRequired", c.ClassName())
		assert.Equal(t, "apierror.PaymentRequired", c.QualifiedName())
		assert.Same(t, apierror.Root, c.Base())
	})

	t.Run("options", func(t *testing.T) {
		r := apierror.NewRegistry()
		c, err := r.Register("ninjas_unavailable",
			apierror.WithStatusName("service_unavailable"),
			apierror.WithErrorName("no_ninjas"),
			apierror.WithKey("ninjas.unavailable"),
			apierror.WithClassName("NinjaShortage"),
			apierror.WithNamespace("dojo"),
		)
		require.NoError(t, err)

		assert.Equal(t, "no_ninjas", c.Name())
		assert.Equal(t, "ninjas.unavailable", c.Key())
		assert.Equal(t, http.StatusServiceUnavailable, c.HTTPStatus())
		assert.Equal(t, "dojo.NinjaShortage", c.QualifiedName())
		assert.Same(t, c, r.Lookup("no_ninjas"))
		assert.Nil(t, r.Lookup("ninjas_unavailable"))
	})

	t.Run("inherits status from base", func(t *testing.T) {
		r := apierror.NewRegistry()
		c, err := r.Register("user_not_found", apierror.WithBase(apierror.NotFound))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, c.HTTPStatus())
		assert.True(t, c.IsA(apierror.NotFound))
		assert.True(t, c.IsA(apierror.Root))
		assert.Equal(t, []*apierror.Class{c, apierror.NotFound, apierror.Root}, c.Ancestors())
	})

	t.Run("base outside the taxonomy", func(t *testing.T) {
		r := apierror.NewRegistry()
		_, err := r.Register("orphan", apierror.WithBase(&apierror.Class{}))
		assert.ErrorIs(t, err, apierror.ErrInvalidBase)
		assert.Nil(t, r.Lookup("orphan"))
	})

	t.Run("empty name", func(t *testing.T) {
		r := apierror.NewRegistry()
		_, err := r.Register("  ")
		assert.ErrorIs(t, err, apierror.ErrEmptyName)
	})

	t.Run("unknown status name", func(t *testing.T) {
		r := apierror.NewRegistry()
		_, err := r.Register("weird", apierror.WithStatusName("not_a_status"))
		assert.ErrorIs(t, err, apierror.ErrUnknownStatus)
	})

	t.Run("frozen registry", func(t *testing.T) {
		r := apierror.NewRegistry()
		r.Freeze()
		_, err := r.Register("late")
		assert.ErrorIs(t, err, apierror.ErrRegistryFrozen)
	})

	t.Run("snapshot is frozen and detached", func(t *testing.T) {
		r := apierror.NewRegistry()
		r.MustRegister("first")
		snap := r.Snapshot()
		r.MustRegister("second")

		assert.NotNil(t, snap.Lookup("first"))
		assert.Nil(t, snap.Lookup("second"))
		_, err := snap.Register("third")
		assert.ErrorIs(t, err, apierror.ErrRegistryFrozen)
	})

	t.Run("must register panics", func(t *testing.T) {
		r := apierror.NewRegistry()
		assert.Panics(t, func() {
			r.MustRegister("bad", apierror.WithBase(&apierror.Class{}))
		})
	})
}

func TestRaise(t *testing.T) {
	t.Run("registered name", func(t *testing.T) {
		err := apierror.Raise("not_found")
		assert.Equal(t, "not_found", err.Name())
		assert.Equal(t, http.StatusNotFound, err.HTTPStatus())
		assert.Same(t, apierror.NotFound, err.Class())
		assert.False(t, err.HasMessage())
		assert.Equal(t, "apierror.NotFound", err.Error())
	})

	t.Run("unregistered name falls back to root", func(t *testing.T) {
		var err *apierror.Error
		require.NotPanics(t, func() {
			err = apierror.Raise("custom_unregistered_name")
		})
		assert.Same(t, apierror.Root, err.Class())
		assert.Equal(t, "unknown", err.Name())
		assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
	})

	t.Run("message and context", func(t *testing.T) {
		cause := assert.AnError
		err := apierror.Raise("conflict", "already taken", apierror.Context{"field": "email"}, cause)
		assert.Equal(t, "already taken", err.Error())
		assert.True(t, err.HasMessage())
		assert.Equal(t, "email", err.Context()["field"])
		assert.ErrorIs(t, err, cause)
	})

	t.Run("context defaults to empty and is settable", func(t *testing.T) {
		err := apierror.Raise("forbidden")
		assert.NotNil(t, err.Context())
		assert.Empty(t, err.Context())

		err.SetContext(apierror.Context{"role": "guest"})
		assert.Equal(t, "guest", err.Context()["role"])
	})
}
