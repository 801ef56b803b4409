package dto

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unipem/lms/internal/app/models"
)

func TestNewCourseDetailResponse_CountsFromSections(t *testing.T) {
	course := &models.Course{
		ID:    uuid.New(),
		Code:  "INF202",
		Title: "Pemrograman Web Lanjut",
		Sections: []models.Section{
			{ID: uuid.New(), Title: "Minggu 1", Order: 0, Activities: []models.Activity{{ID: uuid.New(), Type: models.ActivityFile}, {ID: uuid.New(), Type: models.ActivityForum}}},
			{ID: uuid.New(), Title: "Minggu 2", Order: 1, Activities: []models.Activity{{ID: uuid.New(), Type: models.ActivityAssignment}}},
		},
	}

	resp := NewCourseDetailResponse(course, true)
	assert.Equal(t, 2, resp.SectionCount)
	assert.Equal(t, 3, resp.ActivityCount)
	assert.True(t, resp.CanEdit)
	require.Len(t, resp.Sections, 2)
	assert.Len(t, resp.Sections[0].Activities, 2)
	assert.Nil(t, resp.Instructor)
}

func TestNewActivityDetailResponse(t *testing.T) {
	courseID := uuid.New()
	activity := &models.Activity{
		ID:    uuid.New(),
		Type:  models.ActivityAssignment,
		Title: "Tugas 1",
		Section: &models.Section{
			ID:     uuid.New(),
			Title:  "Minggu 2",
			Course: &models.Course{ID: courseID, Code: "INF202"},
		},
	}
	grade := 90
	mine := &models.Submission{ID: uuid.New(), Status: models.SubmissionGraded, Grade: &grade, SubmittedAt: time.Now()}

	student := NewActivityDetailResponse(activity, mine, models.RoleStudent)
	assert.True(t, student.CanSubmit)
	assert.False(t, student.CanGrade)
	require.NotNil(t, student.MySubmission)
	assert.Equal(t, 90, *student.MySubmission.Grade)
	assert.Equal(t, courseID, student.Course.ID)

	teacher := NewActivityDetailResponse(activity, nil, models.RoleTeacher)
	assert.True(t, teacher.CanGrade)
	assert.False(t, teacher.CanSubmit)
	assert.Nil(t, teacher.MySubmission)
}

func TestHandleValidationError(t *testing.T) {
	v := validator.New()
	type form struct {
		Email string `validate:"required,email"`
	}

	detail := HandleValidationError(v.Struct(form{Email: "nope"}))
	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, "email", detail.Field)
	assert.Equal(t, "email must be a valid email address", detail.Message)

	detail = HandleValidationError(errors.New("unexpected EOF"))
	assert.Equal(t, ErrorCodeBadRequest, detail.Code)
}

func TestNewErrorResponse_MirrorsMessage(t *testing.T) {
	resp := NewErrorResponse(NewErrorDetail(ErrorCodeInvalidCredentials, "NPM/NIP tidak terdaftar."))
	assert.False(t, resp.Success)
	assert.Equal(t, "NPM/NIP tidak terdaftar.", resp.Message)
}
