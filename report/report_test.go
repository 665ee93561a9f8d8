package report

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"classroom-tools/models"

	"github.com/shopspring/decimal"
)

func sales() []models.Sale {
	return []models.Sale{
		{ID: 1, Date: "2026-03-14", ProductName: "Notebook", ClientName: "Ana | Torres", Quantity: 4,
			UnitPrice: decimal.RequireFromString("2.5"), Total: decimal.RequireFromString("10")},
		{ID: 2, Date: "2026-03-15", ProductName: "Pencil", ClientName: "Luis", Quantity: 1,
			UnitPrice: decimal.RequireFromString("0.75"), Total: decimal.RequireFromString("0.75"), Voided: true},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sales()); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"id|date|product|client|quantity|unit_price|total|voided",
		"1|2026-03-14|Notebook|Ana / Torres|4|2.50|10.00|false",
		"2|2026-03-15|Pencil|Luis|1|0.75|0.75|true",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	now := time.Date(2026, 3, 14, 9, 5, 7, 0, time.UTC)

	path, err := WriteFile(dir, sales(), now)
	if err != nil {
		t.Fatalf("write file: %v", err)
	}
	if filepath.Base(path) != "ventas_20260314_090507.txt" {
		t.Fatalf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Count(string(data), "\n") != 3 {
		t.Fatalf("content = %q", data)
	}
}

func TestSMTPMailerRequiresCredentials(t *testing.T) {
	m := NewSMTPMailer("smtp.example.com", 587, "", "")
	err := m.Send(context.Background(), Message{To: []string{"a@example.com"}})
	if !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("err = %v, want ErrNoCredentials", err)
	}
}

func TestSMTPMailerRejectsEmptyRecipients(t *testing.T) {
	m := NewSMTPMailer("smtp.example.com", 587, "me@example.com", "pw")
	if err := m.Send(context.Background(), Message{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestSMTPMailerHonorsCanceledContext(t *testing.T) {
	m := NewSMTPMailer("smtp.example.com", 587, "me@example.com", "pw")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Send(ctx, Message{To: []string{"a@example.com"}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestSMTPMailerMessage(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteFile(dir, sales(), time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("write file: %v", err)
	}
	m := NewSMTPMailer("smtp.example.com", 587, "me@example.com", "pw")
	gm := m.message(Message{
		To:         []string{"boss@example.com"},
		Subject:    "Sales report",
		Body:       "attached",
		Attachment: path,
	})

	var buf bytes.Buffer
	if _, err := gm.WriteTo(&buf); err != nil {
		t.Fatalf("render message: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"From: me@example.com", "To: boss@example.com", "Subject: Sales report", "ventas_20260314_000000.txt"} {
		if !strings.Contains(out, want) {
			t.Fatalf("message missing %q:\n%s", want, out)
		}
	}
}
