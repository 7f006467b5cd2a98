package fixture_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/fixrun/internal/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"\n", []string{""}},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\nb", []string{"a", "b"}},
		{"a\n\nb\n", []string{"a", "", "b"}},
		{"a\n\n", []string{"a", ""}},
		{"=\n", []string{"="}},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			fx := fixture.Split(c.in)
			assert.Equal(t, c.want, fx.Lines)
			assert.Equal(t, len(c.want), fx.Len())
		})
	}
}

func TestIsDelimiter(t *testing.T) {
	assert.True(t, fixture.IsDelimiter("="))
	assert.True(t, fixture.IsDelimiter("===="))
	assert.True(t, fixture.IsDelimiter("= a comment"))
	assert.False(t, fixture.IsDelimiter(""))
	assert.False(t, fixture.IsDelimiter(" ="))
	assert.False(t, fixture.IsDelimiter("a = 1"))
}

func TestCollapse(t *testing.T) {
	assert.Equal(t, "", fixture.Collapse(""))
	assert.Equal(t, "a\nb", fixture.Collapse("a\nb"))
	assert.Equal(t, "a\nb", fixture.Collapse("a\n\nb"))
	assert.Equal(t, "a\n\nb", fixture.Collapse("a\n\n\nb"))
	assert.Equal(t, "a\n\nb", fixture.Collapse("a\n\n\n\nb"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tests.txt")
	require.NoError(t, os.WriteFile(path, []byte("a = 1\n=\nb = 2\n"), 0600))

	fx, err := fixture.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, fx.Name)
	assert.Equal(t, []string{"a = 1", "=", "b = 2"}, fx.Lines)
	assert.Equal(t, "a = 1\n=\nb = 2", fx.Text())

	_, err = fixture.Load(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorContains(t, err, "load fixture")
}
