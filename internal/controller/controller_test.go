package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mvhien/learnhub/internal/datamanager"
	"github.com/mvhien/learnhub/internal/dto"
	"github.com/stretchr/testify/require"
)

func TestStatusForKind(t *testing.T) {
	cases := []struct {
		kind   datamanager.Kind
		status int
	}{
		{datamanager.KindAlreadyEnrolled, http.StatusConflict},
		{datamanager.KindDuplicateRequest, http.StatusConflict},
		{datamanager.KindInvalidState, http.StatusConflict},
		{datamanager.KindNotEnrolled, http.StatusNotFound},
		{datamanager.KindNotFound, http.StatusNotFound},
		{datamanager.KindForbidden, http.StatusForbidden},
		{datamanager.KindOperationFailed, http.StatusInternalServerError},
		{datamanager.Kind(""), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.status, StatusForKind(tc.kind), "kind %q", tc.kind)
	}
}

func TestRespondErrorMasksInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)

	RespondError(ctx, errors.New("pq: relation enrollments does not exist"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Operation failed, please try again", body.Message)
	require.NotContains(t, body.Message, "relation")
}
