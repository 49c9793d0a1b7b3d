package workitems

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeItemsFile writes a work items JSON file and returns its path
func writeItemsFile(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "work-items.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

// TestLoad_FullPayload verifies a complete search payload is parsed
func TestLoad_FullPayload(t *testing.T) {
	path := writeItemsFile(t, `[{"payload": {"search": {"phrase": "economy", "months": 3, "topic": "Business"}}}]`)

	inputs, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, inputs.Len())

	params := ParametersFrom(inputs.Current())
	assert.Equal(t, "economy", params.Phrase)
	assert.Equal(t, 3, params.Months)
	assert.Equal(t, "Business", params.Topic)
}

// TestLoad_EmptyPath verifies an unset input path yields an empty queue,
// not an error
func TestLoad_EmptyPath(t *testing.T) {
	inputs, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0, inputs.Len())
}

// TestLoad_MalformedFile verifies unparseable input is an error
func TestLoad_MalformedFile(t *testing.T) {
	path := writeItemsFile(t, `{not json`)

	_, err := Load(path)
	assert.Error(t, err)
}

// TestParametersFrom_MissingSearch verifies a payload without a search
// object falls back to defaults
func TestParametersFrom_MissingSearch(t *testing.T) {
	path := writeItemsFile(t, `[{"payload": {"other": true}}]`)

	inputs, err := Load(path)
	require.NoError(t, err)

	params := ParametersFrom(inputs.Current())
	assert.Equal(t, "", params.Phrase)
	assert.Equal(t, 0, params.Months)
	assert.Equal(t, "", params.Topic)
}

// TestParametersFrom_PartialKeys verifies missing individual keys keep
// their defaults
func TestParametersFrom_PartialKeys(t *testing.T) {
	path := writeItemsFile(t, `[{"payload": {"search": {"phrase": "housing"}}}]`)

	inputs, err := Load(path)
	require.NoError(t, err)

	params := ParametersFrom(inputs.Current())
	assert.Equal(t, "housing", params.Phrase)
	assert.Equal(t, 0, params.Months)
	assert.Equal(t, "", params.Topic)
}

// TestParametersFrom_EmptyQueue verifies Current on an empty queue yields
// an item whose parameters are all defaults
func TestParametersFrom_EmptyQueue(t *testing.T) {
	inputs, err := Load("")
	require.NoError(t, err)

	item := inputs.Current()
	require.NotNil(t, item)

	params := ParametersFrom(item)
	assert.Equal(t, Parameters{}, params)
}

// TestParametersFrom_NegativeMonths verifies negative month counts are
// treated as no cutoff
func TestParametersFrom_NegativeMonths(t *testing.T) {
	path := writeItemsFile(t, `[{"payload": {"search": {"months": -2}}}]`)

	inputs, err := Load(path)
	require.NoError(t, err)

	params := ParametersFrom(inputs.Current())
	assert.Equal(t, 0, params.Months)
}
