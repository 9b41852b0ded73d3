// Package models defines the core data structures for the collaboration graph.
// It includes the normalized entity definitions and the wire format served to
// the browser-side renderer.
package models

import "encoding/json"

// Dataset mirrors the raw exhibition-records document as published. The link
// array appears under either "links" or "edges" depending on the export, and
// endpoints are given either as bare identifiers or as embedded node objects.
// Both shapes are tolerated here and resolved once, at ingestion.
type Dataset struct {
	Nodes []DatasetNode `json:"nodes"`
	Links []DatasetLink `json:"links"`
	Edges []DatasetLink `json:"edges"`
}

type DatasetNode struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	Nationality string `json:"nationality"`
}

type DatasetLink struct {
	Source EndpointRef `json:"source"`
	Target EndpointRef `json:"target"`
	Weight float64     `json:"weight"`
}

// AllLinks returns whichever link array the document carried. When both are
// present, "links" wins.
func (d *Dataset) AllLinks() []DatasetLink {
	if len(d.Links) > 0 {
		return d.Links
	}
	return d.Edges
}

// EndpointRef is an edge endpoint that may arrive as a bare numeric id or as
// an embedded object carrying an "id" field. Unresolvable endpoints are
// marked invalid rather than failing the whole document, so the parser can
// drop just the offending edge.
type EndpointRef struct {
	ID    int64
	Valid bool
}

func (r *EndpointRef) UnmarshalJSON(data []byte) error {
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		r.Valid = true
		return nil
	}

	var embedded struct {
		ID *int64 `json:"id"`
	}
	if err := json.Unmarshal(data, &embedded); err == nil && embedded.ID != nil {
		r.ID = *embedded.ID
		r.Valid = true
		return nil
	}

	r.Valid = false
	return nil
}

func (r EndpointRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}
