package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"testing"
	"time"
)

func renderTemplate(t *testing.T, file MailTemplateFile, data any) (string, string) {
	t.Helper()

	tmpl, err := template.ParseFS(FS, "templates/"+string(file))
	if err != nil {
		t.Fatalf("Failed to parse template %s: %v", file, err)
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		t.Fatalf("Failed to render subject of %s: %v", file, err)
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		t.Fatalf("Failed to render body of %s: %v", file, err)
	}

	return subject.String(), body.String()
}

func TestSignRequestTemplate(t *testing.T) {
	subject, body := renderTemplate(t, TemplateSignRequest, SignRequestData{
		CustomerName:   "Marie Dupont",
		ContractNumber: "CT-2025-0042",
		SignURL:        "https://app.example.com/sign/tok-1",
		ExpiresAt:      "08/06/2025",
	})

	if !strings.Contains(subject, "CT-2025-0042") {
		t.Errorf("Expected contract number in subject, got %q", subject)
	}
	if !strings.Contains(body, "https://app.example.com/sign/tok-1") {
		t.Errorf("Expected sign link in body")
	}
	if !strings.Contains(body, "Marie Dupont") {
		t.Errorf("Expected customer name in body")
	}
}

func TestContractSignedTemplate(t *testing.T) {
	subject, body := renderTemplate(t, TemplateContractSigned, ContractSignedData{
		CustomerName:   "Marie Dupont",
		ContractNumber: "CT-2025-0042",
		SignedAt:       "02/06/2025 à 09:00",
		DownloadURL:    "https://app.example.com/contracts/c-1/download/tok-1",
	})

	if !strings.Contains(subject, "CT-2025-0042") {
		t.Errorf("Expected contract number in subject, got %q", subject)
	}
	if !strings.Contains(body, "download/tok-1") {
		t.Errorf("Expected download link in body")
	}
}

func TestSendWithRetry(t *testing.T) {
	noSleep := func(time.Duration) {}

	t.Run("Succeeds after a failed attempt", func(t *testing.T) {
		calls := 0
		status, err := sendWithRetry(func() (int, error) {
			calls++
			if calls == 1 {
				return -1, errors.New("connection reset")
			}
			return http.StatusAccepted, nil
		}, MAX_RETRY, noSleep)

		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if status != http.StatusAccepted {
			t.Errorf("Expected status 202, got %d", status)
		}
		if calls != 2 {
			t.Errorf("Expected two attempts, got %d", calls)
		}
	})

	t.Run("Reports the last attempt's error", func(t *testing.T) {
		calls := 0
		_, err := sendWithRetry(func() (int, error) {
			calls++
			return -1, fmt.Errorf("attempt %d failed", calls)
		}, MAX_RETRY, noSleep)

		if err == nil {
			t.Fatal("Expected an error after exhausting attempts")
		}
		if calls != MAX_RETRY {
			t.Errorf("Expected %d attempts, got %d", MAX_RETRY, calls)
		}
		if !strings.Contains(err.Error(), "attempt 3 failed") {
			t.Errorf("Expected last attempt's cause in error, got %v", err)
		}
	})
}
