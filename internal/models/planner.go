package models

import "time"

// PlanItemStatus represents the lifecycle state of a plan item.
// Progression is forward-only: planned -> generated -> published.
type PlanItemStatus string

const (
	PlanItemStatusPlanned   PlanItemStatus = "planned"
	PlanItemStatusGenerated PlanItemStatus = "generated"
	PlanItemStatusPublished PlanItemStatus = "published"
)

// PlanItem is a single scheduled article within a planner folder
type PlanItem struct {
	ID               string          `json:"id"`
	Keyword          string          `json:"keyword"`
	Title            string          `json:"title"`
	Slug             string          `json:"slug"`
	SuggestedDate    string          `json:"suggestedDate"` // YYYY-MM-DD
	Status           PlanItemStatus  `json:"status"`
	GeneratedContent *ArticleContent `json:"generatedContent,omitempty"`
}

// CanGenerate reports whether content generation is allowed for the item
func (i *PlanItem) CanGenerate() bool {
	return i.Status == PlanItemStatusPlanned || i.Status == PlanItemStatusGenerated
}

// CanPublish reports whether the item is ready to be published
func (i *PlanItem) CanPublish() bool {
	return (i.Status == PlanItemStatusGenerated || i.Status == PlanItemStatusPublished) &&
		i.GeneratedContent != nil
}

// PlannerFolder groups keywords and their derived plan items
type PlannerFolder struct {
	ID        string     `json:"id" badgerhold:"key"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	Keywords  []string   `json:"keywords"`
	PlanItems []PlanItem `json:"planItems"`
}

// FindItem returns a pointer into PlanItems for the given item ID, or nil
func (f *PlannerFolder) FindItem(itemID string) *PlanItem {
	for i := range f.PlanItems {
		if f.PlanItems[i].ID == itemID {
			return &f.PlanItems[i]
		}
	}
	return nil
}
