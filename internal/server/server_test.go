package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/vibhandikyash/MediCare-BE/internal/common"
	"github.com/vibhandikyash/MediCare-BE/internal/entity"
	"github.com/vibhandikyash/MediCare-BE/internal/export"
	"github.com/vibhandikyash/MediCare-BE/internal/pipeline"
)

type fakePatientRepo struct {
	patients  map[uuid.UUID]*entity.Patient
	createErr error
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: map[uuid.UUID]*entity.Patient{}}
}

func (f *fakePatientRepo) Create(_ context.Context, p *entity.Patient) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.patients[p.ID] = p
	return nil
}

func (f *fakePatientRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, common.NotFoundError("patient not found")
	}
	return p, nil
}

func (f *fakePatientRepo) List(_ context.Context) ([]*entity.Patient, error) {
	var out []*entity.Patient
	for _, p := range f.patients {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePatientRepo) UpdateFollowups(_ context.Context, id uuid.UUID, followups []entity.Followup) error {
	p, ok := f.patients[id]
	if !ok {
		return common.NotFoundError("patient not found")
	}
	p.Followups = followups
	return nil
}

type fakeProcessor struct {
	err     error
	lastReq pipeline.Request
}

func (f *fakeProcessor) Run(_ context.Context, req pipeline.Request) (entity.Patient, pipeline.Summary, error) {
	f.lastReq = req
	if f.err != nil {
		return entity.Patient{}, pipeline.Summary{}, f.err
	}
	return entity.Patient{
		ID:            uuid.New(),
		PatientName:   req.Intake.PatientName,
		AdmissionDate: req.Intake.AdmissionDate,
	}, pipeline.Summary{BillsTotal: len(req.Bills), BillsSucceeded: len(req.Bills)}, nil
}

func newTestServer(repo *fakePatientRepo, proc DocumentProcessor) *Server {
	return New(Options{
		Patients:  repo,
		Processor: proc,
		Exporter:  export.NewService(repo, nil),
	})
}

func multipartSubmission(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for field, data := range files {
		fw, err := mw.CreateFormFile(field, field+".pdf")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return body, mw.FormDataContentType()
}

func validIntakeFields() map[string]string {
	return map[string]string{
		"patient_name":    "Jane Doe",
		"patient_contact": "9876543210",
		"admission_date":  "2026-02-20",
		"age":             "54",
	}
}

func TestCreatePatient(t *testing.T) {
	repo := newFakePatientRepo()
	proc := &fakeProcessor{}
	srv := newTestServer(repo, proc)

	body, contentType := multipartSubmission(t, validIntakeFields(), map[string][]byte{
		"discharge_summary": []byte("%PDF-1.7 summary"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp createPatientResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Patient.PatientName != "Jane Doe" {
		t.Errorf("patient name = %q", resp.Patient.PatientName)
	}
	if proc.lastReq.Discharge.Name != "discharge_summary.pdf" {
		t.Errorf("discharge file not forwarded: %+v", proc.lastReq.Discharge)
	}
	if _, err := repo.GetByID(context.Background(), resp.Patient.ID); err != nil {
		t.Errorf("patient not persisted: %v", err)
	}
}

func TestCreatePatientValidatesIntake(t *testing.T) {
	srv := newTestServer(newFakePatientRepo(), &fakeProcessor{})

	fields := validIntakeFields()
	fields["patient_contact"] = "12345" // not 10 digits
	body, contentType := multipartSubmission(t, fields, map[string][]byte{
		"discharge_summary": []byte("%PDF-1.7"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreatePatientRequiresDischargeSummary(t *testing.T) {
	srv := newTestServer(newFakePatientRepo(), &fakeProcessor{})

	body, contentType := multipartSubmission(t, validIntakeFields(), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreatePatientSurfacesPipelineFailure(t *testing.T) {
	proc := &fakeProcessor{err: errors.New("discharge summary processing failed: AI returned invalid JSON that could not be parsed: unexpected end of input")}
	srv := newTestServer(newFakePatientRepo(), proc)

	body, contentType := multipartSubmission(t, validIntakeFields(), map[string][]byte{
		"discharge_summary": []byte("%PDF-1.7"),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("AI returned invalid JSON")) {
		t.Errorf("body should carry the actionable parse error: %s", rec.Body.String())
	}
}

func TestGetPatient(t *testing.T) {
	repo := newFakePatientRepo()
	id := uuid.New()
	repo.patients[id] = &entity.Patient{ID: id, PatientName: "Jane Doe"}
	srv := newTestServer(repo, &fakeProcessor{})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/patients/"+id.String(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/patients/"+uuid.NewString(), nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing patient status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/patients/not-a-uuid", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id status = %d, want 400", rec.Code)
	}
}

func TestExportPatient(t *testing.T) {
	repo := newFakePatientRepo()
	id := uuid.New()
	repo.patients[id] = &entity.Patient{
		ID:          id,
		PatientName: "Jane Doe",
		MedicationDetails: entity.DischargeSummary{
			Medications: []entity.Medication{
				{Name: "Metformin", Dosage: "500mg", Reminders: []entity.Reminder{
					{Date: entity.NewDate(2026, 3, 2), Time: "2026-03-02T10:00:00Z"},
				}},
			},
		},
	}
	srv := newTestServer(repo, &fakeProcessor{})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/patients/"+id.String()+"/export", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("content type = %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("export body is empty")
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(newFakePatientRepo(), &fakeProcessor{})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
