package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"halifax-hub/internal/dtos"
)

func TestCreateAndListPins(t *testing.T) {
	r := newTestRouter(&cannedModel{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/pins",
		`{"name":"Ralph's Barbecue","category":"Food","description":"Chopped pork","lat":36.44,"lon":-77.66,"geocode":false}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created dtos.PinView
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad create response: %v", err)
	}
	if created.Name != "Ralph's Barbecue" || created.Category != "Food" {
		t.Errorf("unexpected pin: %+v", created)
	}
	if created.Color != [3]int{255, 99, 132} {
		t.Errorf("Food pins should be red-ish, got %v", created.Color)
	}

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("creating a pin should start a session")
	}

	list := doRequest(t, r, http.MethodGet, "/api/v1/pins", nil, "", cookies)
	if list.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", list.Code)
	}
	var listed dtos.ListPinsResponse
	if err := json.Unmarshal(list.Body.Bytes(), &listed); err != nil {
		t.Fatalf("bad list response: %v", err)
	}
	if listed.Count != 1 || len(listed.Pins) != 1 {
		t.Errorf("expected the created pin back, got %+v", listed)
	}

	// A caller without the cookie sees an empty map.
	other := doRequest(t, r, http.MethodGet, "/api/v1/pins", nil, "", nil)
	var otherList dtos.ListPinsResponse
	if err := json.Unmarshal(other.Body.Bytes(), &otherList); err != nil {
		t.Fatalf("bad list response: %v", err)
	}
	if otherList.Count != 0 {
		t.Errorf("sessions must not leak pins, got %+v", otherList)
	}
}

func TestCreatePinValidation(t *testing.T) {
	r := newTestRouter(&cannedModel{})

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"category":"Food"}`},
		{"whitespace name", `{"name":"   "}`},
		{"broken json", `{"name":`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/v1/pins", tc.body, nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestLikePinEndpoint(t *testing.T) {
	r := newTestRouter(&cannedModel{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/pins",
		`{"name":"River Road Park","category":"Sports","lat":36.32,"lon":-77.58,"geocode":false}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", w.Code)
	}
	cookies := w.Result().Cookies()

	like := doJSON(t, r, http.MethodPost, "/api/v1/pins/like",
		`{"name":"River Road Park","category":"Sports","lat":36.32,"lon":-77.58}`, cookies)
	if like.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", like.Code, like.Body.String())
	}
	var liked dtos.PinView
	if err := json.Unmarshal(like.Body.Bytes(), &liked); err != nil {
		t.Fatalf("bad like response: %v", err)
	}
	if liked.Likes != 1 {
		t.Errorf("expected 1 like, got %d", liked.Likes)
	}

	miss := doJSON(t, r, http.MethodPost, "/api/v1/pins/like",
		`{"name":"River Road Park","category":"Sports","lat":1,"lon":2}`, cookies)
	if miss.Code != http.StatusNotFound {
		t.Errorf("mismatched tuple should 404, got %d", miss.Code)
	}
}

func TestListPinsFilterParams(t *testing.T) {
	r := newTestRouter(&cannedModel{})

	first := doJSON(t, r, http.MethodPost, "/api/v1/pins",
		`{"name":"Ralph's Barbecue","category":"Food","description":"Chopped pork","geocode":false}`, nil)
	cookies := first.Result().Cookies()
	doJSON(t, r, http.MethodPost, "/api/v1/pins",
		`{"name":"Halifax Library","category":"Study Spot","description":"Quiet tables","geocode":false}`, cookies)

	tests := []struct {
		name  string
		path  string
		count int
	}{
		{"all", "/api/v1/pins", 2},
		{"by category", "/api/v1/pins?categories=Food", 1},
		{"by category list", "/api/v1/pins?categories=Food,Study%20Spot", 2},
		{"by query", "/api/v1/pins?q=quiet", 1},
		{"query and category", "/api/v1/pins?q=pork&categories=Study%20Spot", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodGet, tc.path, nil, "", cookies)
			var listed dtos.ListPinsResponse
			if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
				t.Fatalf("bad list response: %v", err)
			}
			if listed.Count != tc.count {
				t.Errorf("expected %d pins, got %d", tc.count, listed.Count)
			}
		})
	}
}

func TestImportAndExportPins(t *testing.T) {
	r := newTestRouter(&cannedModel{})

	csvData := "name,category,description,address,lat,lon,likes,added_at\n" +
		"Ralph's Barbecue,Food,Chopped pork,Hwy 158,36.4415,-77.6633,4,2026-08-20 17:05:00\n" +
		",Food,nameless,,36.4,-77.6,0,\n"
	body, contentType := multipartCSV(t, csvData)

	up := doRequest(t, r, http.MethodPost, "/api/v1/pins/import", body, contentType, nil)
	if up.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", up.Code, up.Body.String())
	}
	var result dtos.ImportPinsResponse
	if err := json.Unmarshal(up.Body.Bytes(), &result); err != nil {
		t.Fatalf("bad import response: %v", err)
	}
	if result.Imported != 1 || result.Skipped != 1 || result.Total != 1 {
		t.Errorf("unexpected import result: %+v", result)
	}

	cookies := up.Result().Cookies()
	down := doRequest(t, r, http.MethodGet, "/api/v1/pins/export", nil, "", cookies)
	if down.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", down.Code)
	}
	if ct := down.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("expected a CSV content type, got %q", ct)
	}
	if cd := down.Header().Get("Content-Disposition"); !strings.Contains(cd, "halifax_pins.csv") {
		t.Errorf("expected the halifax_pins.csv filename, got %q", cd)
	}
	if !strings.Contains(down.Body.String(), "Ralph's Barbecue,Food,Chopped pork,Hwy 158,36.4415,-77.6633,4,2026-08-20 17:05:00") {
		t.Errorf("exported CSV should reproduce the imported row:\n%s", down.Body.String())
	}
}

func TestImportPinsRejectsMissingFile(t *testing.T) {
	r := newTestRouter(&cannedModel{})

	w := doRequest(t, r, http.MethodPost, "/api/v1/pins/import", nil, "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a file, got %d", w.Code)
	}
}

func TestImportPinsRejectsBadColumns(t *testing.T) {
	r := newTestRouter(&cannedModel{})

	body, contentType := multipartCSV(t, "foo,bar\n1,2\n")
	w := doRequest(t, r, http.MethodPost, "/api/v1/pins/import", body, contentType, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "CSV missing required columns.") {
		t.Errorf("expected the missing-columns message, got %s", w.Body.String())
	}
}

func TestMapViewEndpoint(t *testing.T) {
	r := newTestRouter(&cannedModel{})

	w := doRequest(t, r, http.MethodGet, "/api/v1/pins/map", nil, "", nil)
	var view dtos.MapViewResponse
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("bad map response: %v", err)
	}
	if view.Latitude != 36.33 || view.Longitude != -77.59 || view.Zoom != 12 {
		t.Errorf("empty session should center on Halifax at zoom 12, got %+v", view)
	}

	created := doJSON(t, r, http.MethodPost, "/api/v1/pins",
		`{"name":"A","lat":36.0,"lon":-77.0,"geocode":false}`, nil)
	cookies := created.Result().Cookies()
	doJSON(t, r, http.MethodPost, "/api/v1/pins",
		`{"name":"B","lat":37.0,"lon":-78.0,"geocode":false}`, cookies)

	w = doRequest(t, r, http.MethodGet, "/api/v1/pins/map", nil, "", cookies)
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("bad map response: %v", err)
	}
	if view.Latitude != 36.5 || view.Longitude != -77.5 || view.Pins != 2 {
		t.Errorf("expected the pin average, got %+v", view)
	}

	w = doRequest(t, r, http.MethodGet, "/api/v1/pins/map?center_default=true", nil, "", cookies)
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("bad map response: %v", err)
	}
	if view.Latitude != 36.33 || view.Longitude != -77.59 {
		t.Errorf("center_default should force the Halifax center, got %+v", view)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	r := newTestRouter(&cannedModel{})

	w := doRequest(t, r, http.MethodGet, "/api/v1/pins/categories", nil, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp dtos.CategoriesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad categories response: %v", err)
	}
	if len(resp.Categories) != 7 {
		t.Fatalf("expected 7 categories, got %d", len(resp.Categories))
	}
	if resp.Categories[0].Name != "Food" || resp.Categories[0].Color != [3]int{255, 99, 132} {
		t.Errorf("unexpected first category: %+v", resp.Categories[0])
	}
	if resp.Categories[6].Name != "Other" {
		t.Errorf("Other should come last, got %+v", resp.Categories[6])
	}
}
