package github

// Alert is the user-visible text shown when a profile fetch fails.
type Alert struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

const alertMessage = "There was an issue fetching your GitHub data. Please try again."

var alertTitles = map[ErrorKind]string{
	KindInvalidURL:      "Invalid Username",
	KindInvalidResponse: "Invalid Response",
	KindInvalidData:     "Invalid Data or Username",
	KindUnknown:         "Unknown Error",
}

// AlertFor returns the fixed alert text for a failure kind.
func AlertFor(kind ErrorKind) Alert {
	title, ok := alertTitles[kind]
	if !ok {
		title = alertTitles[KindUnknown]
	}
	return Alert{Title: title, Message: alertMessage}
}
