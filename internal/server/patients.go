package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vibhandikyash/MediCare-BE/internal/common"
	"github.com/vibhandikyash/MediCare-BE/internal/entity"
	"github.com/vibhandikyash/MediCare-BE/internal/pipeline"
)

type createPatientResponse struct {
	Patient entity.Patient   `json:"patient"`
	Batch   pipeline.Summary `json:"batch"`
}

// handleCreatePatient accepts a multipart submission: intake form fields, one
// discharge_summary PDF, and any number of bills and reports. The discharge
// summary must parse; bill and report failures come back as counts in the
// batch summary instead of failing the request.
func (s *Server) handleCreatePatient(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeBadRequest(w, "request must be multipart/form-data within the upload limit")
		return
	}

	intake, err := parseIntake(r)
	if err != nil {
		writeError(w, err)
		return
	}

	discharge, err := readOneFile(r, "discharge_summary")
	if err != nil {
		writeBadRequest(w, "discharge_summary file is required")
		return
	}
	bills, err := readAllFiles(r, "bills")
	if err != nil {
		writeBadRequest(w, "could not read bill uploads")
		return
	}
	reports, err := readAllFiles(r, "reports")
	if err != nil {
		writeBadRequest(w, "could not read report uploads")
		return
	}

	patient, batch, err := s.processor.Run(r.Context(), pipeline.Request{
		Intake:    intake,
		Discharge: discharge,
		Bills:     bills,
		Reports:   reports,
	})
	if err != nil {
		s.logger.Error("patients.create.failed", "patient", intake.PatientName, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	if err := s.patients.Create(r.Context(), &patient); err != nil {
		s.logger.Error("patients.create.persist_failed", "patient_id", patient.ID, "error", err)
		writeError(w, err)
		return
	}

	s.logger.Info("patients.create.ok",
		"patient_id", patient.ID,
		"bills_ok", batch.BillsSucceeded,
		"reports_ok", batch.ReportsSucceeded,
	)
	writeJSON(w, http.StatusCreated, createPatientResponse{Patient: patient, Batch: batch})
}

func (s *Server) handleGetPatient(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "patientID"))
	if err != nil {
		writeBadRequest(w, "patient id must be a UUID")
		return
	}

	patient, err := s.patients.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patient)
}

func (s *Server) handleListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := s.patients.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if patients == nil {
		patients = []*entity.Patient{}
	}
	writeJSON(w, http.StatusOK, patients)
}

func (s *Server) handleExportPatient(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "patientID"))
	if err != nil {
		writeBadRequest(w, "patient id must be a UUID")
		return
	}

	xlsx, err := s.exporter.ExportPatientXLSX(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "patient-"+id.String()+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(xlsx)
}

func parseIntake(r *http.Request) (pipeline.Intake, error) {
	intake := pipeline.Intake{
		PatientName:      strings.TrimSpace(r.FormValue("patient_name")),
		PatientContact:   strings.TrimSpace(r.FormValue("patient_contact")),
		PatientEmail:     strings.TrimSpace(r.FormValue("patient_email")),
		EmergencyName:    strings.TrimSpace(r.FormValue("emergency_name")),
		EmergencyContact: strings.TrimSpace(r.FormValue("emergency_contact")),
		EmergencyEmail:   strings.TrimSpace(r.FormValue("emergency_email")),
		Gender:           strings.TrimSpace(r.FormValue("gender")),
		MedicalCondition: strings.TrimSpace(r.FormValue("medical_condition")),
		AssignedDoctor:   strings.TrimSpace(r.FormValue("assigned_doctor")),
		DoctorNotes:      strings.TrimSpace(r.FormValue("doctor_notes")),
	}

	v := common.NewValidator().
		Field("patient_name", intake.PatientName, common.Required).
		Field("patient_contact", intake.PatientContact, common.Required, common.Contact).
		Field("admission_date", r.FormValue("admission_date"), common.Required)
	if intake.PatientEmail != "" {
		v.Field("patient_email", intake.PatientEmail, common.Email)
	}
	if intake.EmergencyContact != "" {
		v.Field("emergency_contact", intake.EmergencyContact, common.Contact)
	}
	if err := common.ValidateAndReturnError(v); err != nil {
		return pipeline.Intake{}, err
	}

	if raw := strings.TrimSpace(r.FormValue("age")); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil || age < 0 {
			return pipeline.Intake{}, common.InvalidArgumentError("age must be a non-negative integer")
		}
		intake.Age = age
	}

	admission, err := entity.ParseDate(r.FormValue("admission_date"))
	if err != nil {
		return pipeline.Intake{}, common.InvalidArgumentError("admission_date must be YYYY-MM-DD")
	}
	intake.AdmissionDate = admission

	return intake, nil
}

func readOneFile(r *http.Request, field string) (pipeline.Document, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return pipeline.Document{}, err
	}
	defer file.Close()
	return readDocument(file, header)
}

func readAllFiles(r *http.Request, field string) ([]pipeline.Document, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	docs := make([]pipeline.Document, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		doc, err := readDocument(file, header)
		file.Close()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func readDocument(file multipart.File, header *multipart.FileHeader) (pipeline.Document, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return pipeline.Document{}, err
	}
	return pipeline.Document{Name: header.Filename, Data: data}, nil
}
