package main

import (
	"encoding/json"
	"encoding/xml"
	"net/http"
	"strings"
)

// respond writes v as JSON or XML according to the request's Accept header.
func respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if wantsXML(r.Header.Get("Accept")) {
		w.Header().Set("Content-Type", "text/xml")
		w.WriteHeader(status)
		if v != nil {
			xml.NewEncoder(w).Encode(v)
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// decode reads the request body as JSON or XML by Content-Type, defaulting
// to JSON.
func decode(r *http.Request, v any) error {
	ct := strings.TrimSpace(strings.SplitN(r.Header.Get("Content-Type"), ";", 2)[0])
	if ct == "text/xml" || ct == "application/xml" {
		return xml.NewDecoder(r.Body).Decode(v)
	}
	return json.NewDecoder(r.Body).Decode(v)
}

func wantsXML(accept string) bool {
	for _, part := range strings.Split(accept, ",") {
		mt := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if mt == "text/xml" || mt == "application/xml" {
			return true
		}
	}
	return false
}
