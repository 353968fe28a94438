package models

// Section represents a class section (paralelo) that students enroll in
type Section struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
