package categories

// Category classifies startups (fintech, agritech, and so on).
type Category struct {
	ID   int64  `json:"category_id"`
	Name string `json:"name"`
}
