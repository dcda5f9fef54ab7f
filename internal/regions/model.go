package regions

// Region is the geographic area a startup operates in.
type Region struct {
	ID   int64  `json:"region_id"`
	Name string `json:"name"`
}
