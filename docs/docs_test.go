package docs

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type openAPIDoc struct {
	OpenAPI    string                                `json:"openapi"`
	Info       map[string]string                     `json:"info"`
	Paths      map[string]map[string]json.RawMessage `json:"paths"`
	Components struct {
		Schemas map[string]json.RawMessage `json:"schemas"`
	} `json:"components"`
}

func readDoc(t *testing.T) (string, openAPIDoc) {
	t.Helper()
	raw := SwaggerInfo.ReadDoc()
	var doc openAPIDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return raw, doc
}

func TestSwaggerInfo_ReadDoc(t *testing.T) {
	raw, doc := readDoc(t)

	t.Run("info is rendered", func(t *testing.T) {
		assert.Equal(t, "3.1.0", doc.OpenAPI)
		assert.Equal(t, "Faktura API", doc.Info["title"])
		assert.Equal(t, "1.0", doc.Info["version"])
	})

	t.Run("resource routes are documented", func(t *testing.T) {
		routes := map[string][]string{
			"/companies":                 {"get", "post"},
			"/companies/{id}":            {"get", "put"},
			"/customers":                 {"get", "post"},
			"/products":                  {"get", "post"},
			"/invoices":                  {"get", "post"},
			"/invoices/{id}":             {"get", "put", "delete"},
			"/invoices/{id}/issue":       {"post"},
			"/invoices/{id}/payments":    {"post"},
			"/invoices/{id}/cancel":      {"post"},
			"/invoices/{id}/correct":     {"post"},
			"/invoices/{id}/write-off":   {"post"},
			"/invoices/{id}/escalate":    {"post"},
			"/dunning/runs":              {"get", "post"},
			"/dunning/runs/{id}/notices": {"get"},
			"/dunning/preview":           {"get"},
			"/offers/{id}/convert":       {"post"},
			"/expenses":                  {"get", "post"},
			"/reports/open-items":        {"get"},
		}
		for path, methods := range routes {
			ops, ok := doc.Paths[path]
			require.True(t, ok, path)
			for _, m := range methods {
				assert.Contains(t, ops, m, path)
			}
		}
	})

	t.Run("schema references resolve", func(t *testing.T) {
		const prefix = `"#/components/schemas/`
		for rest := raw; ; {
			i := strings.Index(rest, prefix)
			if i < 0 {
				break
			}
			rest = rest[i+len(prefix):]
			name := rest[:strings.IndexByte(rest, '"')]
			assert.Contains(t, doc.Components.Schemas, name)
		}
	})
}
