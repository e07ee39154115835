package attendance

import "context"

type AttendanceService interface {
	Create(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	BulkMark(ctx context.Context, req BulkMarkAttendanceRequest) ([]AttendanceResponse, error)
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, req SummaryRequest) (Summary, error)
}
