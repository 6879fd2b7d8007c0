//go:build e2e_test || all_tests

package test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/2beens/gymreports/internal/reports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path, body string, headers map[string]string) (int, http.Header, []byte) {
	t := s.T()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header, respBytes
}

func (s *IntegrationTestSuite) TestReports() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	// each request comes from its own client address, so the generate limit does not kick in here
	fwd := func(i int) map[string]string {
		return map[string]string{"X-Real-Ip": fmt.Sprintf("198.51.100.%d", i)}
	}

	status, _, body := s.doRequest(ctx, "POST", "/generate_report", `{
		"patient_id": "E2E-1",
		"heart_rate": 72,
		"weight": 70,
		"height": 175,
		"bmi": 22.9,
		"blood_pressure": "125/82",
		"exercise_duration": 90,
		"coach_email": "coach@example.com"
	}`, fwd(1))
	require.Equal(t, http.StatusOK, status, string(body))

	var genResp reports.GenerateResponse
	require.NoError(t, json.Unmarshal(body, &genResp))
	assert.Equal(t, "success", genResp.Status)
	assert.Equal(t, reports.MsgGenerated, genResp.Message)
	require.Positive(t, genResp.ReportID)
	assert.Nil(t, genResp.EmailResults)

	// row written straight to postgres
	var (
		patientID, pdfPath, reportStatus string
		coachEmail                       sql.NullString
	)
	err := s.DB.QueryRowContext(ctx,
		`SELECT patient_id, pdf_path, coach_email, status FROM health_reports WHERE id = $1`, genResp.ReportID,
	).Scan(&patientID, &pdfPath, &coachEmail, &reportStatus)
	require.NoError(t, err)
	assert.Equal(t, "E2E-1", patientID)
	assert.True(t, strings.HasPrefix(pdfPath, s.outputDir))
	assert.Equal(t, "coach@example.com", coachEmail.String)
	assert.Equal(t, reports.StatusGenerated, reportStatus)
	_, err = os.Stat(pdfPath)
	require.NoError(t, err)

	status, _, body = s.doRequest(ctx, "GET", genResp.ViewURL, "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "data:image/png;base64,")
	assert.Contains(t, string(body), "125/82")

	status, headers, body := s.doRequest(ctx, "GET", genResp.DownloadURL, "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/pdf", headers.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	status, _, body = s.doRequest(ctx, "POST", "/generate_report", `{"patient_id": "E2E-1", "heart_rate": 80}`, fwd(2))
	require.Equal(t, http.StatusOK, status, string(body))

	status, _, body = s.doRequest(ctx, "GET", "/reports/E2E-1", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "共 2 份報告")

	// deleted out of band
	require.NoError(t, os.Remove(pdfPath))
	status, _, body = s.doRequest(ctx, "GET", genResp.DownloadURL, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, string(body), reports.MsgReportFileNotFound)

	status, _, _ = s.doRequest(ctx, "GET", "/view_report/99999999", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _, body = s.doRequest(ctx, "POST", "/generate_report", `{"patient_id": "E2E-1", "send_email": true}`, fwd(3))
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), reports.MsgSenderRequired)
}

func (s *IntegrationTestSuite) TestGenerateRateLimit() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	headers := map[string]string{"X-Real-Ip": "203.0.113.77"}
	limited := 0
	for range testGenerateRatePerMin + 2 {
		// invalid body: rejected by the handler, but still counted by the limiter
		status, _, _ := s.doRequest(ctx, "POST", "/generate_report", `[]`, headers)
		if status == http.StatusTooManyRequests {
			limited++
			continue
		}
		assert.Equal(t, http.StatusBadRequest, status)
	}
	assert.Equal(t, 2, limited)
}
