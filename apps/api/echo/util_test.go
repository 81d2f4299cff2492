package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/core/attendance"
	"github.com/kalashala/kalashala/core/fee"
	"github.com/kalashala/kalashala/core/report"
	"github.com/kalashala/kalashala/core/school"
	"github.com/kalashala/kalashala/core/student"
	logsvc "github.com/kalashala/kalashala/services/logger"
	dummydb "github.com/kalashala/kalashala/storage/database/dummy"
)

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

type testApp struct {
	server   Server
	schools  *school.Service
	students *student.Service
	attend   *attendance.Service
	fees     *fee.Service

	singing, slokha, bharatanatyam school.Class
	jpNagar, pride                 school.Location
}

func setup(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()

	conf := core.NewTestConfig()
	logger := logsvc.NewRollbarLogger(log.New(ioutil.Discard, "", 0), "api", conf)
	logger.Enable(false)

	db, err := dummydb.Open()
	require.NoError(t, err)

	app := &testApp{schools: school.NewService(dummydb.NewSchoolRepository(db))}
	app.students = student.NewService(dummydb.NewStudentRepository(db))
	app.attend = attendance.NewService(dummydb.NewAttendanceRepository(db), app.schools)
	app.fees = fee.NewService(dummydb.NewFeeRepository(db))

	validate, translator := core.NewValidator()
	student.InitValidators(validate, translator)

	app.server = NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		SchoolSvc:  app.schools,
		StudentSvc: app.students,
		AttendSvc:  app.attend,
		FeeSvc:     app.fees,
		ReportSvc:  report.NewService(dummydb.NewReportRepository(db)),
		Validate:   validate,
		Translator: translator,
	})

	app.singing, err = app.schools.EnsureClass(ctx, "Singing")
	require.NoError(t, err)
	app.slokha, err = app.schools.EnsureClass(ctx, "Slokha")
	require.NoError(t, err)
	app.bharatanatyam, err = app.schools.EnsureClass(ctx, "Bharatanatyam")
	require.NoError(t, err)
	app.jpNagar, err = app.schools.EnsureLocation(ctx, "JP Nagar")
	require.NoError(t, err)
	app.pride, err = app.schools.EnsureLocation(ctx, "Pride Apartment")
	require.NoError(t, err)
	return app
}

// admit creates a student at loc enrolled in classes.
func (app *testApp) admit(t *testing.T, name string, loc school.Location, classes ...school.Class) student.Student {
	t.Helper()
	ns := student.NewStudent{Name: name, LocationID: loc.ID, AdmissionDate: "2024-01-15"}
	for _, c := range classes {
		ns.ClassIDs = append(ns.ClassIDs, c.ID)
	}
	s, err := app.students.Create(context.Background(), ns)
	require.NoError(t, err)
	return s
}

func (app *testApp) do(method, path string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newRequest(method, path, data...)
	app.server.ServeHTTP(rec, req)
	return rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func unmarshall(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("unmarshall(%s) failed: %v", rec.Body.String(), err)
	}
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHttpTests(t *testing.T, app *testApp, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.do(tt.method, tt.path, tt.body))
		})
	}
}
