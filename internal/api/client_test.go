package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/petnolja/petcli/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestItemsServer(t *testing.T, token string, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token != "" {
			assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"), "Authorization header mismatch")
		} else {
			assert.Empty(t, r.Header.Get("Authorization"))
		}
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestFetchItems_BareArray(t *testing.T) {
	srv := newTestItemsServer(t, "secret", `[
		{"id": 1, "name": "연어 사료", "sellStatus": "SELL", "stock": 5, "price": "10,000", "categories": ["강아지", "사료"]},
		{"id": "2", "name": "캣타워", "sellStatus": "SOLD_OUT", "stock": null, "price": 55000, "tags": [{"name": "캣타워"}]}
	]`)
	defer srv.Close()

	client := api.NewClient(srv.URL, "secret")
	items, err := client.FetchItems(context.Background(), api.ItemQuery{})

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID.String())
	assert.Equal(t, "10,000", items[0].Price.String())
	assert.Equal(t, api.Labels{"강아지", "사료"}, items[0].Categories)
	assert.False(t, items[1].Stock.Valid)
	assert.Equal(t, "55000", items[1].Price.String())
	assert.Equal(t, api.Labels{"캣타워"}, items[1].Tags)
}

func TestFetchItems_Envelopes(t *testing.T) {
	bodies := map[string]string{
		"items":   `{"items": [{"id": 1, "name": "a"}], "total": 1}`,
		"data":    `{"data": [{"id": 1, "name": "a"}]}`,
		"content": `{"content": [{"id": 1, "name": "a"}]}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := newTestItemsServer(t, "", body)
			defer srv.Close()

			items, err := api.NewClient(srv.URL, "").FetchItems(context.Background(), api.ItemQuery{})
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, "a", items[0].Name)
		})
	}
}

func TestFetchItems_QueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "연어", r.URL.Query().Get("keyword"))
		assert.Equal(t, "DOG", r.URL.Query().Get("category"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	items, err := api.NewClient(srv.URL+"/", "").FetchItems(context.Background(), api.ItemQuery{Keyword: "연어", Category: "DOG"})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFetchItems_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := api.NewClient(srv.URL, "").FetchItems(context.Background(), api.ItemQuery{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	var statusErr *api.StatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestFetchItems_TrailingContent(t *testing.T) {
	srv := newTestItemsServer(t, "", `[] []`)
	defer srv.Close()

	_, err := api.NewClient(srv.URL, "").FetchItems(context.Background(), api.ItemQuery{})
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrMalformedResponse)
	assert.Contains(t, err.Error(), "trailing JSON content")
}

func TestFetchItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/items/7":
			_, _ = w.Write([]byte(`{"data": {"id": 7, "name": "노즈워크 담요", "category": {"categoryName": "장난감"}}}`))
		case "/items/8":
			_, _ = w.Write([]byte(`{"id": 8, "name": "하네스", "data": "ignored"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, "")

	item, err := client.FetchItem(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "노즈워크 담요", item.Name)
	assert.Equal(t, api.Labels{"장난감"}, item.Category)

	item, err = client.FetchItem(context.Background(), "8")
	require.NoError(t, err)
	assert.Equal(t, "하네스", item.Name)

	_, err = client.FetchItem(context.Background(), "404")
	assert.ErrorIs(t, err, api.ErrNotFound)

	_, err = client.FetchItem(context.Background(), " ")
	assert.Error(t, err)
}

func TestFetchItems_ContextCanceled(t *testing.T) {
	srv := newTestItemsServer(t, "", `[]`)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := api.NewClient(srv.URL, "").FetchItems(ctx, api.ItemQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executing request")
}

func TestLabels_UnmarshalShapes(t *testing.T) {
	tests := []struct {
		input string
		want  api.Labels
	}{
		{`"강아지"`, api.Labels{"강아지"}},
		{`["dog", "cat"]`, api.Labels{"dog", "cat"}},
		{`[{"name": "사료"}, {"value": "TOY"}, {"label": "간식"}]`, api.Labels{"사료", "TOY", "간식"}},
		{`{"categoryName": "의류"}`, api.Labels{"의류"}},
		{`[1, true, "", {"id": 3}, "dog"]`, api.Labels{"dog"}},
		{`null`, nil},
	}
	for _, tt := range tests {
		var got api.Labels
		require.NoError(t, json.Unmarshal([]byte(tt.input), &got), "input %s", tt.input)
		assert.Equal(t, tt.want, got, "input %s", tt.input)
	}
}

func TestScalar_RoundTrip(t *testing.T) {
	var item api.Item
	require.NoError(t, json.Unmarshal([]byte(`{"price": 1500, "stock": "3", "id": null}`), &item))
	assert.Equal(t, "1500", item.Price.String())
	assert.Equal(t, "3", item.Stock.String())
	assert.False(t, item.ID.Valid)

	out, err := json.Marshal(struct {
		A api.Scalar `json:"a"`
		B api.Scalar `json:"b"`
		C api.Scalar `json:"c"`
	}{api.NewScalar("12"), api.NewScalar("10,000"), api.Scalar{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 12, "b": "10,000", "c": null}`, string(out))
}
