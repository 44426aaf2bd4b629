package store

// DefaultLinks returns a fresh copy of the links an empty store is seeded with.
func DefaultLinks() []*Link {
	return []*Link{
		{Title: "LMS Kampus", URL: "https://lms.example.edu", Emoji: "📚", Description: "Platform e-learning utama"},
		{Title: "Google Classroom", URL: "https://classroom.google.com", Emoji: "🎓", Description: "Kelas online"},
		{Title: "Zoom Meeting", URL: "https://zoom.us", Emoji: "💻", Description: "Video conference"},
		{Title: "Microsoft Teams", URL: "https://teams.microsoft.com", Emoji: "👥", Description: "Kolaborasi tim"},
		{Title: "Google Drive", URL: "https://drive.google.com", Emoji: "📁", Description: "Penyimpanan file"},
		{Title: "Quizizz", URL: "https://quizizz.com", Emoji: "🎮", Description: "Kuis interaktif"},
	}
}
