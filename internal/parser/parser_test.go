package parser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	stderrors "errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jshape/internal/errors"
	"github.com/mcncl/jshape/internal/models"
)

func TestParse_SimpleObject(t *testing.T) {
	jsonStr := `{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`
	doc, err := Parse(strings.NewReader(jsonStr))
	require.NoError(t, err)

	expectedRoot := models.JSONObject{
		"name":      "John Doe",
		"age":       json.Number("30"),
		"isStudent": false,
		"city":      nil,
	}

	actualRoot, ok := doc.Root.(models.JSONObject)
	require.True(t, ok, "root is not a models.JSONObject, got %T", doc.Root)
	if !reflect.DeepEqual(actualRoot, expectedRoot) {
		t.Errorf("Parse() root = %v, want %v", actualRoot, expectedRoot)
	}
}

func TestParse_SimpleArray(t *testing.T) {
	jsonStr := `[1, "test", true, null, 3.14]`
	doc, err := Parse(strings.NewReader(jsonStr))
	require.NoError(t, err)

	expectedRoot := models.JSONArray{
		json.Number("1"),
		"test",
		true,
		nil,
		json.Number("3.14"),
	}
	actualRoot, ok := doc.Root.(models.JSONArray)
	require.True(t, ok, "root is not a models.JSONArray, got %T", doc.Root)
	assert.Equal(t, expectedRoot, actualRoot)
}

func TestParse_NestedContainersNormalized(t *testing.T) {
	jsonStr := `{"user": {"name": "Jane", "id": 123}, "tags": ["go", "json"]}`
	doc, err := Parse(strings.NewReader(jsonStr))
	require.NoError(t, err)

	root := doc.Root.(models.JSONObject)
	_, ok := root["user"].(models.JSONObject)
	assert.True(t, ok, "nested object should be models.JSONObject, got %T", root["user"])
	_, ok = root["tags"].(models.JSONArray)
	assert.True(t, ok, "nested array should be models.JSONArray, got %T", root["tags"])
}

func TestParse_ScalarRoot(t *testing.T) {
	doc, err := Parse(strings.NewReader(`42`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("42"), doc.Root)
}

func TestParse_NullRoot(t *testing.T) {
	doc, err := Parse(strings.NewReader(`null`))
	require.NoError(t, err)
	assert.Nil(t, doc.Root)
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrEmptyInput))
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"a": }`))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidJSON))
	assert.Contains(t, err.Error(), "offset")
}

func TestParse_TrailingValueRejected(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"a": 1} {"b": 2}`))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrMultipleJSON))
}

func TestParse_TrailingWhitespaceAllowed(t *testing.T) {
	_, err := Parse(strings.NewReader("{\"a\": 1}  \n\t "))
	assert.NoError(t, err)
}

func TestParseString_Empty(t *testing.T) {
	_, err := ParseString("   \n ")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrEmptyInput))
}

func TestParseStringRepair_ValidInputPassesThrough(t *testing.T) {
	doc, err := ParseStringRepair(`{"a": 1}`)
	require.NoError(t, err)
	root := doc.Root.(models.JSONObject)
	assert.Equal(t, json.Number("1"), root["a"])
}

func TestParseStringRepair_FixesTrailingComma(t *testing.T) {
	doc, err := ParseStringRepair(`{"a": 1, "b": [1, 2,],}`)
	require.NoError(t, err)
	root := doc.Root.(models.JSONObject)
	assert.Equal(t, json.Number("1"), root["a"])
	assert.Len(t, root["b"], 2)
}

func TestParseString_TrailingCommaFailsWithoutRepair(t *testing.T) {
	_, err := ParseString(`{"a": 1,}`)
	assert.Error(t, err)
}

func TestParseFile_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ok": true}`), 0644))

	doc, err := ParseFile(path, false)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)
	root := doc.Root.(models.JSONObject)
	assert.Equal(t, true, root["ok"])
}

func TestParseFile_NotFound(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.json"), false)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrFileNotFound))
}

func TestParseFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := ParseFile(path, false)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrFileEmpty))
}

func TestParseFile_EmptyPath(t *testing.T) {
	_, err := ParseFile("  ", false)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidFilePath))
}

func TestParseFile_WithRepair(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": 1,}`), 0644))

	_, err := ParseFile(path, false)
	require.Error(t, err)

	doc, err := ParseFile(path, true)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)
}
