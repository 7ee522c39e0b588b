package eventcodes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	label, ok := table.Lookup(1)
	assert.True(t, ok)
	assert.Equal(t, "StartSession", label)

	// Every marker the metrics rely on must be present.
	for _, want := range []string{
		"StartSession", "EndSession", "DipOn", "DipOff", "PokeOn1", "PokeOff1",
		"RLeverOn", "LLeverOn", "LightOn1", "LightOn2", "RPressOn",
		"SuccessfulGoTrial", "SuccessfulNoGoTrial",
	} {
		assert.True(t, table.HasLabel(want), "default table missing %s", want)
	}

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, table, again)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		codes   map[int]string
		wantErr bool
	}{
		{name: "valid", codes: map[int]string{1: "StartSession", 2: "EndSession"}},
		{name: "empty", codes: map[int]string{}, wantErr: true},
		{name: "negative id", codes: map[int]string{-1: "X"}, wantErr: true},
		{name: "id too large", codes: map[int]string{10000: "X"}, wantErr: true},
		{name: "blank label", codes: map[int]string{1: "  "}, wantErr: true},
		{name: "duplicate label", codes: map[int]string{1: "X", 2: "X"}, wantErr: true},
		{name: "max id", codes: map[int]string{MaxID: "Last"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("v", tt.codes)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	codes := map[int]string{1: "StartSession"}
	table, err := New("v", codes)
	require.NoError(t, err)

	codes[1] = "Changed"
	codes[2] = "Added"

	label, _ := table.Lookup(1)
	assert.Equal(t, "StartSession", label)
	assert.Equal(t, 1, table.Len())
}

func TestLoadFile(t *testing.T) {
	table, err := LoadFile(filepath.Join("testdata", "small.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "test-1", table.Version())
	assert.Equal(t, []int{1, 2, 5}, table.IDs())

	_, ok := table.Lookup(3)
	assert.False(t, ok)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("codes: [not, a, map]"), 0644))
	_, err = LoadFile(bad)
	assert.Error(t, err)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)

	def, err := Default()
	require.NoError(t, err)
	assert.Same(t, def, table)
}
