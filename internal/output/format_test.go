package output

import (
	"bytes"
	"testing"
	"time"

	"taskpad/internal/service"
)

func TestFormatTask(t *testing.T) {
	work := service.Work
	due := time.Date(2025, 3, 1, 8, 5, 0, 0, time.UTC)

	tests := []struct {
		name string
		num  int
		task service.Task
		want string
	}{
		{"plain", 1, service.Task{Description: "Buy milk"}, "   1  [ ] Buy milk\n"},
		{"done", 12, service.Task{Description: "Ship it", Completed: true}, "  12  [x] Ship it\n"},
		{"category", 3, service.Task{Description: "Report", Category: &work}, "   3  [ ] Report  #Work\n"},
		{"reminder", 4, service.Task{Description: "Call", Reminder: &due}, "   4  [ ] Call  @ 2025-03-01 08:05\n"},
		{"multiline", 5, service.Task{Description: "a\r\nb"}, "   5  [ ] a  b\n"},
		{"blank", 6, service.Task{Description: "  "}, "   6  [ ] (untitled)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, tt.num, tt.task)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatHeader(t *testing.T) {
	var buf bytes.Buffer
	FormatHeader(&buf, "Shopping")
	want := "------------\nShopping\n------------\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatCategory(t *testing.T) {
	var buf bytes.Buffer
	FormatCategory(&buf, service.Health, 1, 3)
	if got, want := buf.String(), "Health     1 open / 3 total\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
