package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/leapstack-labs/leapodbc/internal/testutil"
	"github.com/leapstack-labs/leapodbc/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func showSearchPath(path string) testutil.FakeResult {
	return testutil.FakeResult{
		Columns: []core.ColumnDescriptor{core.NewColumn("search_path", core.TypeVarchar, -1, -1, -1)},
		Rows:    []core.RawRow{{path}},
	}
}

func TestSchemaSearchPath_Lazy(t *testing.T) {
	a, fake := openFake(t, redshiftInfo(), core.ConnectionConfig{})
	fake.On("SHOW search_path", showSearchPath("$user, public"))

	path, err := a.SchemaSearchPath(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "$user, public", path)

	path, err = a.SchemaSearchPath(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "$user, public", path)
	assert.Equal(t, []string{"SHOW search_path"}, fake.Statements())
}

func TestSetSchemaSearchPath(t *testing.T) {
	a, fake := openFake(t, redshiftInfo(), core.ConnectionConfig{})

	require.NoError(t, a.SetSchemaSearchPath(context.Background(), "analytics"))

	path, err := a.SchemaSearchPath(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "analytics", path)
	assert.Equal(t, []string{"SET search_path TO analytics"}, fake.Statements())
}

func TestSetSchemaSearchPath_ResendsCachedValue(t *testing.T) {
	ctx := context.Background()
	a, fake := openFake(t, redshiftInfo(), core.ConnectionConfig{})

	require.NoError(t, a.Execute(ctx, "BEGIN"))
	require.NoError(t, a.SetSchemaSearchPath(ctx, "analytics"))
	require.NoError(t, a.Execute(ctx, "ROLLBACK"))
	require.NoError(t, a.SetSchemaSearchPath(ctx, "analytics"))

	assert.Equal(t, []string{
		"BEGIN",
		"SET search_path TO analytics",
		"ROLLBACK",
		"SET search_path TO analytics",
	}, fake.Statements())
}

func TestWithSchemaSearchPath(t *testing.T) {
	bodyErr := errors.New("body failed")

	tests := []struct {
		name    string
		body    error
		wantErr error
	}{
		{"success", nil, nil},
		{"body error", bodyErr, bodyErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			a, fake := openFake(t, redshiftInfo(), core.ConnectionConfig{})
			fake.On("SHOW search_path", showSearchPath("$user, public"))

			var inside string
			err := a.WithSchemaSearchPath(ctx, "staging", func(ctx context.Context) error {
				inside, _ = a.SchemaSearchPath(ctx)
				return tt.body
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, "staging", inside)
			assert.Equal(t, []string{
				"SHOW search_path",
				"SET search_path TO staging",
				`SET search_path TO "$user", public`,
			}, fake.Statements())

			path, err := a.SchemaSearchPath(ctx)
			require.NoError(t, err)
			assert.Equal(t, `"$user", public`, path)
		})
	}
}

func TestWithSchemaSearchPath_RestoresOnPanic(t *testing.T) {
	a, fake := openFake(t, redshiftInfo(), core.ConnectionConfig{})
	fake.On("SHOW search_path", showSearchPath("public"))

	assert.Panics(t, func() {
		_ = a.WithSchemaSearchPath(context.Background(), "staging", func(context.Context) error {
			panic("boom")
		})
	})
	assert.Equal(t, "SET search_path TO public", fake.Statements()[2])
}

func TestWithSchemaSearchPath_EmptySchema(t *testing.T) {
	a, fake := openFake(t, redshiftInfo(), core.ConnectionConfig{})

	called := false
	require.NoError(t, a.WithSchemaSearchPath(context.Background(), "", func(context.Context) error {
		called = true
		return nil
	}))
	assert.True(t, called)
	assert.Empty(t, fake.Statements())
}

func TestWithSchemaSearchPath_RestoreFailure(t *testing.T) {
	a, fake := openFake(t, redshiftInfo(), core.ConnectionConfig{})
	fake.On("SHOW search_path", showSearchPath("public"))
	fake.Fail("SET search_path TO public", assert.AnError)

	err := a.WithSchemaSearchPath(context.Background(), "staging", func(context.Context) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to restore search path")
}

func TestQuoteSearchPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"$user, public", `"$user", public`},
		{`"$user", public`, `"$user", public`},
		{"public,analytics", "public, analytics"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, QuoteSearchPath(tt.in))
	}
}
