package dto

type PlatformStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalMentors     int64 `json:"totalMentors"`
	TotalMentees     int64 `json:"totalMentees"`
	TotalSessions    int64 `json:"totalSessions"`
	UpcomingSessions int64 `json:"upcomingSessions"`
	TotalDocuments   int64 `json:"totalDocuments"`
}
