// Package model defines domain entities for the application.
package model

// GitHubUser is the public profile summary resolved for a GitHub username.
// Values are immutable once decoded.
type GitHubUser struct {
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
	Name      string `json:"name"`
}
