package supabase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vlavem/adapters/database"
	"vlavem/adapters/supabase"
)

func TestClient_ListTables(t *testing.T) {
	fs, server := newFakeService(t, map[string]http.HandlerFunc{
		"GET /rest/v1/": func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("apikey") != "service-key" {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "permission denied for schema public"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"swagger": "2.0",
				"info":    map[string]any{"title": "PostgREST API", "version": "12.0.2"},
				"paths": map[string]any{
					"/":           map[string]any{},
					"/auctions":   map[string]any{},
					"/categories": map[string]any{},
				},
				"definitions": map[string]any{
					"categories": map[string]any{"type": "object"},
					"auctions":   map[string]any{"type": "object"},
				},
			})
		},
	})
	public, admin, err := supabase.NewClients(server.URL, "anon-key", "service-key")
	require.NoError(t, err)

	tables, err := admin.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"auctions", "categories"}, tables)
	assert.Equal(t, "Bearer service-key", fs.last().Header.Get("Authorization"))

	_, err = public.ListTables(context.Background())
	qe, ok := database.AsQueryError(err)
	require.True(t, ok)
	assert.Contains(t, qe.Message(), "permission denied")
}

func TestClient_Version(t *testing.T) {
	_, server := newFakeService(t, map[string]http.HandlerFunc{
		"POST /rest/v1/rpc/version": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, "PostgreSQL 15.1 on aarch64-unknown-linux-gnu")
		},
	})
	client, err := supabase.NewClient(server.URL, "anon-key")
	require.NoError(t, err)

	version, err := client.Version(context.Background())
	require.NoError(t, err)
	assert.Contains(t, version, "PostgreSQL 15.1")
}
