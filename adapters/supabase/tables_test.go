package supabase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vlavem/adapters/database"
	"vlavem/adapters/supabase"
	"vlavem/models"
)

func TestClient_ListAuctions(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantCount int
		wantErr   bool
	}{
		{
			name: "success",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Range", "0-1/*")
				writeJSON(w, http.StatusOK, []map[string]any{
					{"id": "0190f1c2-7c1e-7d2a-9a4e-1d2c3b4a5f60", "name": "Spring Sale", "location": "Warehouse A", "auction_date": "2024-05-01", "status": "active", "description": nil, "created_at": "2024-04-01T10:00:00Z"},
					{"id": "0190f1c2-7c1e-7d2a-9a4e-1d2c3b4a5f61", "name": "Winter Sale", "location": "Warehouse B", "auction_date": "2024-01-01", "status": "completed", "description": "old", "created_at": "2023-12-01T10:00:00Z"},
				})
			},
			wantCount: 2,
		},
		{
			name: "empty",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Range", "*/*")
				writeJSON(w, http.StatusOK, []map[string]any{})
			},
			wantCount: 0,
		},
		{
			name: "query error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"code": "42501", "message": "permission denied for table auctions"})
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, server := newFakeService(t, map[string]http.HandlerFunc{
				"GET /rest/v1/auctions": tt.handler,
			})
			client, err := supabase.NewClient(server.URL, "anon-key")
			require.NoError(t, err)

			got, err := client.ListAuctions(context.Background())
			req := fs.last()
			require.NotNil(t, req)
			assert.Equal(t, "anon-key", req.Header.Get("apikey"))
			assert.Contains(t, req.URL.Query().Get("order"), "created_at.desc")

			if tt.wantErr {
				qe, ok := database.AsQueryError(err)
				require.True(t, ok)
				assert.Contains(t, qe.Message(), "permission denied")
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.wantCount)
		})
	}
}

func TestClient_CreateAuction(t *testing.T) {
	var received map[string]any
	fs, server := newFakeService(t, map[string]http.HandlerFunc{
		"POST /rest/v1/auctions": func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&received)
			row := map[string]any{
				"id":           "0190f1c2-7c1e-7d2a-9a4e-1d2c3b4a5f60",
				"name":         received["name"],
				"location":     received["location"],
				"auction_date": received["auction_date"],
				"status":       received["status"],
				"description":  nil,
				"created_at":   "2024-04-01T10:00:00Z",
			}
			writeJSON(w, http.StatusCreated, row)
		},
	})
	client, err := supabase.NewClient(server.URL, "anon-key")
	require.NoError(t, err)

	created, err := client.CreateAuction(context.Background(), models.NewAuction{
		Name:        "Spring Sale",
		Location:    "Warehouse A",
		AuctionDate: "2024-05-01",
		Status:      models.AuctionStatusInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, "Spring Sale", created.Name)
	assert.Equal(t, models.AuctionStatusInProgress, created.Status)
	assert.Equal(t, "2024-05-01", created.AuctionDate)
	assert.Nil(t, created.Description)

	// description 未提供時不應送出
	_, ok := received["description"]
	assert.False(t, ok)
	assert.Contains(t, fs.last().Header.Get("Prefer"), "return=representation")
}

func TestClient_CreateAuction_NotNullViolation(t *testing.T) {
	_, server := newFakeService(t, map[string]http.HandlerFunc{
		"POST /rest/v1/auctions": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"code":    "23502",
				"message": `null value in column "name" of relation "auctions" violates not-null constraint`,
			})
		},
	})
	client, err := supabase.NewClient(server.URL, "anon-key")
	require.NoError(t, err)

	created, err := client.CreateAuction(context.Background(), models.NewAuction{
		Location:    "Warehouse A",
		AuctionDate: "2024-05-01",
		Status:      models.AuctionStatusInProgress,
	})
	assert.Nil(t, created)
	qe, ok := database.AsQueryError(err)
	require.True(t, ok)
	assert.Contains(t, qe.Message(), "violates not-null constraint")
}

func TestClient_ListActiveCategories(t *testing.T) {
	fs, server := newFakeService(t, map[string]http.HandlerFunc{
		"GET /rest/v1/categories": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Range", "0-0/*")
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": "0190f1c2-7c1e-7d2a-9a4e-1d2c3b4a5f70", "name": "Furniture", "description": nil, "active": true},
			})
		},
	})
	client, err := supabase.NewClient(server.URL, "anon-key")
	require.NoError(t, err)

	categories, err := client.ListActiveCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Furniture", categories[0].Name)
	assert.True(t, categories[0].Active)

	query := fs.last().URL.Query()
	assert.Equal(t, "eq.true", query.Get("active"))
	assert.Contains(t, query.Get("order"), "name.asc")
}

func TestClient_Probe(t *testing.T) {
	fs, server := newFakeService(t, map[string]http.HandlerFunc{
		"GET /rest/v1/auctions": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Range", "*/*")
			writeJSON(w, http.StatusOK, []map[string]any{})
		},
	})
	client, err := supabase.NewClient(server.URL, "anon-key")
	require.NoError(t, err)

	assert.NoError(t, client.Probe(context.Background(), models.TableAuctions))
	assert.Equal(t, "1", fs.last().URL.Query().Get("limit"))

	err = client.Probe(context.Background(), "missing_table")
	_, ok := database.AsQueryError(err)
	assert.True(t, ok)
}

func TestClient_Unreachable(t *testing.T) {
	_, server := newFakeService(t, nil)
	client, err := supabase.NewClient(server.URL, "anon-key")
	require.NoError(t, err)
	server.Close()

	_, err = client.ListAuctions(context.Background())
	require.Error(t, err)
	_, ok := database.AsQueryError(err)
	assert.False(t, ok)
	assert.True(t, database.IsNetworkError(err))
}
