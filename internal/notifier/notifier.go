package notifier

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Notifier delivers a rendered digest to the operator.
type Notifier interface {
	Notify(subject, body string) error
}

// ConsoleNotifier writes digests to the process log.
type ConsoleNotifier struct{}

func (ConsoleNotifier) Notify(subject, body string) error {
	log.Printf("[INFO] %s\n%s", subject, body)
	return nil
}

// FileNotifier drops each digest as a timestamped text file into Dir.
type FileNotifier struct {
	Dir string
}

func NewFileNotifier(dir string) (*FileNotifier, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create reports dir: %w", err)
	}
	return &FileNotifier{Dir: dir}, nil
}

func (f *FileNotifier) Notify(subject, body string) error {
	name := fmt.Sprintf("%s-%s.txt", time.Now().Format("20060102-150405"), slugify(subject))
	content := subject + "\n\n" + body
	if err := os.WriteFile(filepath.Join(f.Dir, name), []byte(content), 0644); err != nil {
		return fmt.Errorf("write digest: %w", err)
	}
	return nil
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
