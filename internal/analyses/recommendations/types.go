package recommendations

// Course is a course or certification suggested by the analysis.
type Course struct {
	Name        string `json:"name"`
	Platform    string `json:"platform"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	URL         string `json:"url"`
}

// Video is a video tutorial suggested by the analysis.
type Video struct {
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	Platform    string `json:"platform"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	URL         string `json:"url"`
}

// Set groups everything the recommendations view needs from one response.
type Set struct {
	Courses       []Course `json:"courses"`
	Videos        []Video  `json:"videos"`
	CurrentSkills []string `json:"currentSkills"`
	MissingSkills []string `json:"missingSkills"`
}
