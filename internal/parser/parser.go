package parser

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/mcncl/jshape/internal/errors"
	"github.com/mcncl/jshape/internal/models"
)

// Parse decodes a single JSON value from reader into a Document.
// Numbers are decoded as json.Number so the shape model can display the
// literal exactly as it appeared in the input.
func Parse(reader io.Reader) (models.Document, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()

	var root models.JSONValue
	if err := decoder.Decode(&root); err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.Document{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return models.Document{}, errors.NewParsingError(
				fmt.Sprintf("JSON syntax error at offset %d: %v", syntaxError.Offset, syntaxError),
				errors.ErrInvalidJSON,
			)
		}
		return models.Document{}, errors.NewParsingError("failed to decode JSON", err)
	}

	// A document holds exactly one root value. Anything but trailing
	// whitespace after it is rejected.
	if decoder.More() {
		var trailing interface{}
		if err := decoder.Decode(&trailing); err != nil {
			if !stderrors.Is(err, io.EOF) {
				return models.Document{}, errors.NewParsingError("invalid trailing data after first JSON value", err)
			}
		} else {
			return models.Document{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
		}
	}

	return models.Document{Root: normalizeJSONValue(root)}, nil
}

// normalizeJSONValue converts raw decoded containers into our model types
func normalizeJSONValue(val models.JSONValue) models.JSONValue {
	switch v := val.(type) {
	case map[string]interface{}:
		obj := make(models.JSONObject, len(v))
		for key, value := range v {
			obj[key] = normalizeJSONValue(value)
		}
		return obj
	case []interface{}:
		arr := make(models.JSONArray, len(v))
		for i, value := range v {
			arr[i] = normalizeJSONValue(value)
		}
		return arr
	default:
		return v // Primitives (string, json.Number, bool, nil) are returned as is
	}
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Document, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Document{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseStringRepair parses JSON from a string, and on a parse failure runs
// the input through jsonrepair and retries once. The original parse error is
// returned when the repair itself fails; this keeps error offsets pointing
// at the input the user actually supplied.
func ParseStringRepair(jsonString string) (models.Document, error) {
	doc, err := ParseString(jsonString)
	if err == nil {
		return doc, nil
	}
	if stderrors.Is(err, errors.ErrEmptyInput) {
		return models.Document{}, err
	}

	repaired, repairErr := jsonrepair.JSONRepair(jsonString)
	if repairErr != nil {
		return models.Document{}, err
	}
	doc, retryErr := ParseString(repaired)
	if retryErr != nil {
		return models.Document{}, err
	}
	return doc, nil
}

// ParseFile parses JSON from a file path. When repair is true the file
// content goes through the jsonrepair fallback of ParseStringRepair.
func ParseFile(filePath string, repair bool) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	var doc models.Document
	if repair {
		doc, err = ParseStringRepair(string(data))
	} else {
		doc, err = ParseString(string(data))
	}
	if err != nil {
		return models.Document{}, err
	}
	doc.Source = filePath
	return doc, nil
}
