package internal

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCategorizeError_DiskSpace(t *testing.T) {
	err := errors.New("write failed: no space left on device")
	procErr := CategorizeError("/test/file.jpg", err)

	if procErr.Category != ErrorCategoryIO {
		t.Errorf("Expected IO category, got %s", procErr.Category)
	}
	if procErr.Severity != ErrorSeverityCritical {
		t.Errorf("Expected critical severity, got %s", procErr.Severity)
	}
	if !strings.Contains(procErr.Suggestion, "disk space") {
		t.Errorf("Expected disk space suggestion, got: %s", procErr.Suggestion)
	}
}

func TestCategorizeError_Permission(t *testing.T) {
	err := errors.New("open /photos/file.jpg: permission denied")
	procErr := CategorizeError("/test/file.jpg", err)

	if procErr.Category != ErrorCategoryIO {
		t.Errorf("Expected IO category, got %s", procErr.Category)
	}
	if procErr.Severity != ErrorSeverityCritical {
		t.Errorf("Expected critical severity, got %s", procErr.Severity)
	}
}

func TestCategorizeError_NoBackup(t *testing.T) {
	err := fmt.Errorf("%w for /photos/file.jpg", ErrNoBackup)
	procErr := CategorizeError("/photos/file.jpg", err)

	if procErr.Category != ErrorCategoryBackup {
		t.Errorf("Expected backup category, got %s", procErr.Category)
	}
}

func TestCategorizeError_ImplausibleDate(t *testing.T) {
	err := fmt.Errorf("%w: 1800-01-01", ErrImplausibleDate)
	procErr := CategorizeError("/photos/file.jpg", err)

	if procErr.Category != ErrorCategoryImplausible {
		t.Errorf("Expected implausible category, got %s", procErr.Category)
	}
	if procErr.Severity != ErrorSeverityWarning {
		t.Errorf("Expected warning severity, got %s", procErr.Severity)
	}
}

func TestCategorizeError_Parse(t *testing.T) {
	err := errors.New(`parsing time "garbled" as "2006:01:02 15:04:05": cannot parse`)
	procErr := CategorizeError("/test/file.jpg", err)

	if procErr.Category != ErrorCategoryParse {
		t.Errorf("Expected parse category, got %s", procErr.Category)
	}
	if procErr.Severity != ErrorSeverityWarning {
		t.Errorf("Expected warning severity, got %s", procErr.Severity)
	}
}

func TestCategorizeError_Unsupported(t *testing.T) {
	err := errors.New("unsupported format .png")
	procErr := CategorizeError("/test/file.png", err)

	if procErr.Category != ErrorCategoryUnsupported {
		t.Errorf("Expected unsupported category, got %s", procErr.Category)
	}
}

func TestCategorizeError_Unknown(t *testing.T) {
	err := errors.New("something entirely unexpected")
	procErr := CategorizeError("/test/file.jpg", err)

	if procErr.Category != ErrorCategoryUnknown {
		t.Errorf("Expected unknown category, got %s", procErr.Category)
	}
}

func TestCategorizeError_Nil(t *testing.T) {
	if procErr := CategorizeError("/test/file.jpg", nil); procErr != nil {
		t.Errorf("Expected nil for nil error, got %v", procErr)
	}
}

func TestProcessError_Unwrap(t *testing.T) {
	procErr := CategorizeError("/x.jpg", fmt.Errorf("wrap: %w", ErrNoBackup))
	if !errors.Is(procErr, ErrNoBackup) {
		t.Error("Expected errors.Is to see through ProcessError")
	}
}
