//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// fakeVehicle is the subset of the listing payload the UI renders
type fakeVehicle struct {
	ID         int            `json:"id"`
	Title      string         `json:"title"`
	Make       string         `json:"make"`
	Model      string         `json:"model"`
	Year       int            `json:"year"`
	Price      float64        `json:"price"`
	Mileage    float64        `json:"mileage"`
	FuelType   string         `json:"fuel_type"`
	Location   string         `json:"location"`
	SellerType string         `json:"seller_type"`
	PostedByID int            `json:"posted_by_id"`
	PostedBy   map[string]any `json:"posted_by,omitempty"`
}

var lankaMotors = map[string]any{
	"id":            7,
	"business_name": "Lanka Motors",
	"city":          "Colombo",
	"verified":      true,
}

var inventory = []fakeVehicle{
	{ID: 1, Title: "Toyota Aqua G", Make: "Toyota", Model: "Aqua", Year: 2015, Price: 5200000, Mileage: 84000,
		FuelType: "Hybrid", Location: "Colombo", SellerType: "Dealer", PostedByID: 70,
		PostedBy: map[string]any{"id": 70, "dealer_profile": lankaMotors}},
	{ID: 2, Title: "Nissan Leaf X", Make: "Nissan", Model: "Leaf", Year: 2018, Price: 6100000, Mileage: 42000,
		FuelType: "Electric", Location: "Kandy", SellerType: "Private", PostedByID: 71},
	{ID: 3, Title: "Toyota Prius S", Make: "Toyota", Model: "Prius", Year: 2012, Price: 4300000, Mileage: 120000,
		FuelType: "Hybrid", Location: "Galle", SellerType: "Dealer", PostedByID: 70,
		PostedBy: map[string]any{"id": 70, "dealer_profile": lankaMotors}},
}

// fakeAPI serves the marketplace endpoints the app calls and records the
// search queries it receives
type fakeAPI struct {
	server *httptest.Server

	mu       sync.Mutex
	searches []string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/vehicles/public", f.search)
	mux.HandleFunc("GET /api/vehicles/{id}", f.vehicle)
	mux.HandleFunc("GET /dealers/{id}", f.dealer)
	mux.HandleFunc("GET /dealers/{id}/vehicles", f.dealerVehicles)
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) URL() string { return f.server.URL }

// Searches returns the raw queries of the listing searches so far
func (f *fakeAPI) Searches() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searches...)
}

func (f *fakeAPI) search(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.searches = append(f.searches, r.URL.RawQuery)
	f.mu.Unlock()

	q := r.URL.Query()
	var out []fakeVehicle
	for _, v := range inventory {
		if m := q.Get("make"); m != "" && !strings.EqualFold(m, v.Make) {
			continue
		}
		out = append(out, v)
	}
	writePage(w, out)
}

func (f *fakeAPI) vehicle(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.PathValue("id"))
	for _, v := range inventory {
		if v.ID == id {
			writeJSON(w, http.StatusOK, v)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Vehicle not found"})
}

func (f *fakeAPI) dealer(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("id") != "7" {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Dealer not found"})
		return
	}
	writeJSON(w, http.StatusOK, lankaMotors)
}

func (f *fakeAPI) dealerVehicles(w http.ResponseWriter, r *http.Request) {
	var out []fakeVehicle
	if r.PathValue("id") == "7" {
		for _, v := range inventory {
			if v.PostedBy != nil {
				out = append(out, v)
			}
		}
	}
	writePage(w, out)
}

func writePage(w http.ResponseWriter, vehicles []fakeVehicle) {
	if vehicles == nil {
		vehicles = []fakeVehicle{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vehicles": vehicles,
		"total":    len(vehicles),
		"page":     1,
		"limit":    20,
		"pages":    1,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
