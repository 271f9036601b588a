package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"pet-adoption-tracker/internal/adapters/storage/sqlite"
	"pet-adoption-tracker/internal/router"
)

type ownerBody struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	NumberOfPets int64  `json:"number_of_pets"`
}

type petBody struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	PetType   string  `json:"pet_type"`
	IsAdopted bool    `json:"is_adopted"`
	OwnerName *string `json:"owner_name"`
}

func TestHTTP_EndToEnd_AdoptionFlow(t *testing.T) {
	db, err := sqlite.Open(context.Background(), sqlite.Options{Path: filepath.Join(t.TempDir(), "pets.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	ts := httptest.NewServer(router.NewRouter(router.Options{DB: db}))
	defer ts.Close()

	// 1) Alta de dueño y mascotas
	ownerID := create(t, ts.URL, "/owners", map[string]any{"name": "Ana"})
	dogID := create(t, ts.URL, "/pets", map[string]any{"name": "Rex", "age": 3, "pet_type": "Dog"})
	create(t, ts.URL, "/pets", map[string]any{"name": "Flipper", "age": 9, "pet_type": "Dolphin"})
	create(t, ts.URL, "/pets", map[string]any{"name": "Tom", "age": 2, "pet_type": "Cat"})

	// 2) Filtro por prefijo de tipo
	{
		var items []petBody
		getJSON(t, ts.URL, "/pets?type=Do", &items)
		if len(items) != 2 {
			t.Fatalf("expected 2 pets for type=Do, got %d", len(items))
		}
	}

	// 3) Adopción
	{
		st, body := doReq(t, ts.URL, "POST", "/owners/"+ownerID+"/pets", map[string]any{"pet_id": dogID})
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 adopt, got %d body=%s", st, string(body))
		}
	}

	// 4) El perro ya no está disponible y figura adoptado con el nombre del dueño
	{
		var available []petBody
		getJSON(t, ts.URL, "/pets", &available)
		for _, p := range available {
			if p.ID == dogID {
				t.Fatalf("adopted pet still listed as available")
			}
		}

		var adopted []petBody
		getJSON(t, ts.URL, "/pets/adopted", &adopted)
		if len(adopted) != 1 || adopted[0].ID != dogID {
			t.Fatalf("expected only the dog adopted, got %+v", adopted)
		}
		if adopted[0].OwnerName == nil || *adopted[0].OwnerName != "Ana" {
			t.Fatalf("expected owner_name Ana, got %v", adopted[0].OwnerName)
		}
	}

	// 5) Conteo de mascotas en el listado de dueños
	{
		var items []ownerBody
		getJSON(t, ts.URL, "/owners", &items)
		if len(items) != 1 || items[0].NumberOfPets != 1 {
			t.Fatalf("expected Ana with 1 pet, got %+v", items)
		}
	}

	// 6) Borrar dueño se lleva sus mascotas
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/owners/"+ownerID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete owner, got %d", st)
		}

		var owners []ownerBody
		getJSON(t, ts.URL, "/owners", &owners)
		if len(owners) != 0 {
			t.Fatalf("expected no owners, got %+v", owners)
		}

		var adopted []petBody
		getJSON(t, ts.URL, "/pets/adopted", &adopted)
		if len(adopted) != 0 {
			t.Fatalf("expected adopted pets gone with owner, got %+v", adopted)
		}

		var available []petBody
		getJSON(t, ts.URL, "/pets", &available)
		if len(available) != 2 {
			t.Fatalf("expected the other 2 pets to remain, got %d", len(available))
		}
	}
}

func TestHTTP_Validation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	cases := []struct {
		name string
		path string
		body any
	}{
		{"owner without name", "/owners", map[string]any{"name": "  "}},
		{"pet with negative age", "/pets", map[string]any{"name": "Rex", "age": -1, "pet_type": "Dog"}},
		{"pet without type", "/pets", map[string]any{"name": "Rex", "age": 1}},
		{"adopt without pet id", "/owners/o-1/pets", map[string]any{}},
		{"bad json", "/owners", "not an object"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, body := doReq(t, ts.URL, "POST", tc.path, tc.body)
			if st != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", st, string(body))
			}
		})
	}
}

func TestHTTP_DeleteUnknown_IsNoop(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	for _, path := range []string{"/owners/missing", "/pets/missing"} {
		st, _ := doReq(t, ts.URL, "DELETE", path, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 for %s, got %d", path, st)
		}
	}
}

func TestHTTP_HealthAndSwagger(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	if st, _ := doReq(t, ts.URL, "GET", "/health", nil); st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}

	st, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 swagger doc, got %d", st)
	}
	if !bytes.Contains(body, []byte(`"/pets/adopted"`)) {
		t.Fatalf("swagger doc missing /pets/adopted: %s", string(body))
	}
}

func create(t *testing.T, baseURL, path string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 POST %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("POST %s: missing id body=%s", path, string(body))
	}
	return resp.ID
}

func getJSON(t *testing.T, baseURL, path string, out any) {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", path, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 GET %s, got %d body=%s", path, st, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("decode GET %s: %v body=%s", path, err, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
