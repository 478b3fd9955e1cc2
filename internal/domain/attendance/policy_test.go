package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(h, m int) time.Time {
	return time.Date(2025, 6, 11, h, m, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestCheckIn(t *testing.T) {
	rec := Attendance{Date: ts(0, 0)}

	require.NoError(t, CheckIn(&rec, ts(8, 55)))
	require.NotNil(t, rec.CheckIn)
	assert.Equal(t, ts(8, 55), *rec.CheckIn)

	err := CheckIn(&rec, ts(9, 30))
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	assert.Equal(t, ts(8, 55), *rec.CheckIn, "second check-in must not overwrite the first")
}

func TestCheckIn_AfterCheckOutStillRejected(t *testing.T) {
	rec := Attendance{Date: ts(0, 0), CheckIn: ptr(ts(9, 0)), CheckOut: ptr(ts(12, 0))}
	assert.ErrorIs(t, CheckIn(&rec, ts(13, 0)), ErrAlreadyCheckedIn)
}

func TestCheckOut(t *testing.T) {
	tests := []struct {
		name    string
		rec     *Attendance
		now     time.Time
		wantErr error
		wantOut time.Time
	}{
		{name: "no record", rec: nil, now: ts(17, 0), wantErr: ErrNotCheckedIn},
		{name: "no check-in", rec: &Attendance{}, now: ts(17, 0), wantErr: ErrNotCheckedIn},
		{name: "already out", rec: &Attendance{CheckIn: ptr(ts(9, 0)), CheckOut: ptr(ts(12, 0))}, now: ts(17, 0), wantErr: ErrAlreadyCheckedOut},
		{name: "open", rec: &Attendance{CheckIn: ptr(ts(9, 0))}, now: ts(17, 0), wantOut: ts(17, 0)},
		{name: "clock skew clamps", rec: &Attendance{CheckIn: ptr(ts(9, 0))}, now: ts(8, 59), wantOut: ts(9, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckOut(tt.rec, tt.now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, tt.rec.CheckOut)
			assert.Equal(t, tt.wantOut, *tt.rec.CheckOut)
			assert.False(t, tt.rec.CheckOut.Before(*tt.rec.CheckIn))
		})
	}
}

func TestValidateTimes(t *testing.T) {
	assert.NoError(t, ValidateTimes(nil, nil))
	assert.NoError(t, ValidateTimes(ptr(ts(9, 0)), nil))
	assert.NoError(t, ValidateTimes(ptr(ts(9, 0)), ptr(ts(9, 0))))
	assert.ErrorIs(t, ValidateTimes(nil, ptr(ts(9, 0))), ErrCheckOutWithoutIn)
	assert.ErrorIs(t, ValidateTimes(ptr(ts(9, 0)), ptr(ts(8, 0))), ErrInvalidTimeRange)
}

func TestAutoCheckoutTime(t *testing.T) {
	rec := Attendance{Date: ts(0, 0), CheckIn: ptr(ts(9, 0))}
	assert.Equal(t, ts(18, 0), AutoCheckoutTime(rec, 18, 0, time.UTC))

	lateStart := Attendance{Date: ts(0, 0), CheckIn: ptr(ts(19, 30))}
	assert.Equal(t, ts(19, 30), AutoCheckoutTime(lateStart, 18, 0, time.UTC))
}

func TestUpdateAttendanceRequest_Validate(t *testing.T) {
	id := "0190a2b4-1c2d-7e3f-8a9b-0c1d2e3f4a5b"
	in := "2025-06-11T09:00:00+03:30"
	out := "2025-06-11T17:00:00+03:30"
	bad := "yesterday"

	ok := UpdateAttendanceRequest{ID: id, CheckIn: &in, CheckOut: &out}
	require.NoError(t, ok.Validate())
	require.NotNil(t, ok.CheckInTime)
	require.NotNil(t, ok.CheckOutTime)
	assert.Equal(t, 8*time.Hour, ok.CheckOutTime.Sub(*ok.CheckInTime))

	assert.Error(t, (&UpdateAttendanceRequest{ID: id}).Validate())
	assert.Error(t, (&UpdateAttendanceRequest{ID: "nope", CheckIn: &in}).Validate())
	assert.Error(t, (&UpdateAttendanceRequest{ID: id, CheckIn: &bad}).Validate())
	assert.Error(t, (&UpdateAttendanceRequest{ID: id, CheckOut: &out, ClearCheckOut: true}).Validate())
	assert.NoError(t, (&UpdateAttendanceRequest{ID: id, ClearCheckOut: true}).Validate())
}
