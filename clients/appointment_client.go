package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Appointment mirrors the response of the appointments service.
type Appointment struct {
	ID              uint      `json:"id"`
	PatientID       uint      `json:"patient_id"`
	DoctorID        uint      `json:"doctor_id"`
	Date            time.Time `json:"date"`
	Reason          string    `json:"reason"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
	PatientName     string    `json:"patient_name"`
	DoctorName      string    `json:"doctor_name"`
	DoctorSpecialty string    `json:"doctor_specialty"`
	PatientEmail    string    `json:"patient_email"`
}

// AppointmentLookup fetches appointment context by id.
type AppointmentLookup interface {
	GetByID(ctx context.Context, id uint) (*Appointment, error)
}

// AppointmentClient communicates with the appointments service via HTTP.
type AppointmentClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAppointmentClient creates a new AppointmentClient.
func NewAppointmentClient(baseURL string, timeout time.Duration) *AppointmentClient {
	return &AppointmentClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetByID fetches a single appointment. Returns ErrNotFound on 404 and
// ErrUnavailable on any other failure.
func (c *AppointmentClient) GetByID(ctx context.Context, id uint) (*Appointment, error) {
	url := fmt.Sprintf("%s/appointments/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: appointment service request failed: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: appointment %d", ErrNotFound, id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: appointment service returned %d", ErrUnavailable, resp.StatusCode)
	}

	var appt Appointment
	if err := json.NewDecoder(resp.Body).Decode(&appt); err != nil {
		return nil, fmt.Errorf("%w: decoding appointment response: %v", ErrUnavailable, err)
	}
	return &appt, nil
}
