package dto

// StudentStats summarizes the student population.
type StudentStats struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// CourseStats summarizes catalog usage.
type CourseStats struct {
	Total       int64 `json:"total"`
	Enrollments int64 `json:"enrollments"`
}

// InternshipStats summarizes the job board.
type InternshipStats struct {
	Total        int64 `json:"total"`
	Applications int64 `json:"applications"`
}

// AnalyticsOverviewResponse is the faculty dashboard overview payload.
type AnalyticsOverviewResponse struct {
	Students    StudentStats    `json:"students"`
	Courses     CourseStats     `json:"courses"`
	Internships InternshipStats `json:"internships"`
	CacheHit    bool            `json:"-"`
}

// UploadResponse describes a stored asset.
type UploadResponse struct {
	URL       string `json:"url"`
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
	Checksum  string `json:"checksum"`
}
