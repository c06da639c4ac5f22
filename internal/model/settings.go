package model

// Settings is the snapshot of persisted app preferences.
type Settings struct {
	Logged   bool   `json:"logged"`
	Age      int    `json:"age"`
	Username string `json:"username"`
}
