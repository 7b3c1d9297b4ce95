package response

import "github.com/siaksi/siaksi-api/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type AttendanceRecapResponse struct {
	ScheduleID uint                      `json:"schedule_id"`
	Counts     map[string]int            `json:"counts"`
	Records    []domain.AttendanceRecord `json:"records"`
}

type CloseOutResponse struct {
	ScheduleID  uint `json:"schedule_id"`
	MarkedAlpha int  `json:"marked_alpha"`
}

type FinanceListResponse struct {
	Entries []domain.FinanceEntry `json:"entries"`
	Summary domain.FinanceSummary `json:"summary"`
}
