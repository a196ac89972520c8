// ABOUTME: Deliverable catalogue lookups and role distribution of deliverable hours
// ABOUTME: Unknown deliverables are treated as documents

package services

import (
	"sort"

	"github.com/engestimate/estimator/backend/models"
)

// ClassifyDeliverable returns the catalogue entry for a deliverable name.
// Names outside the catalogue classify as documents.
func (t *Tables) ClassifyDeliverable(name string) DeliverableInfo {
	if info, ok := t.Deliverables[name]; ok {
		return info
	}
	return DeliverableInfo{Type: models.DeliverableDocument, Description: "Engineering deliverable"}
}

// DeliverableCatalogue returns the standard deliverables sorted by name.
func (t *Tables) DeliverableCatalogue() []CatalogueEntry {
	entries := make([]CatalogueEntry, 0, len(t.Deliverables))
	for name, info := range t.Deliverables {
		entries = append(entries, CatalogueEntry{Name: name, DeliverableInfo: info})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// CatalogueEntry is a named deliverable with its classification.
type CatalogueEntry struct {
	Name string `json:"name"`
	DeliverableInfo
}

// distribution returns the role shares for a type, defaulting to document.
func (t *Tables) distribution(dt models.DeliverableType) []RoleShare {
	if d, ok := t.RoleDistributions[dt]; ok {
		return d
	}
	return t.RoleDistributions[models.DeliverableDocument]
}

// RoleBreakdown splits hours across the roles of a deliverable type so
// that the parts always sum to hours. Each share is rounded half-to-even;
// the rounding remainder goes to the role with the largest share, the
// earliest listed role winning ties.
func (t *Tables) RoleBreakdown(hours int, dt models.DeliverableType) []models.RoleHours {
	dist := t.distribution(dt)
	out := make([]models.RoleHours, len(dist))
	allocated := 0
	largest := 0
	for i, rs := range dist {
		h := roundHalfEven(float64(hours) * rs.Share)
		out[i] = models.RoleHours{Role: rs.Role, Hours: h}
		allocated += h
		if rs.Share > dist[largest].Share {
			largest = i
		}
	}
	if len(out) > 0 && allocated != hours {
		out[largest].Hours += hours - allocated
	}
	return out
}
