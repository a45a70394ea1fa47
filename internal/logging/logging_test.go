package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/nhle/tempmail/internal/model"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tempmail.log")

	logger, closer, err := Setup(model.LogConfig{File: path, Level: "debug"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v; want debug", logger.GetLevel())
	}

	logger.WithField("id", "m1").Info("message saved")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{"level=info", `msg="message saved"`, "id=m1"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log missing %q:\n%s", want, data)
		}
	}
}

func TestSetupDefaults(t *testing.T) {
	logger, closer, err := Setup(model.LogConfig{Level: "loud"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer closer.Close()

	if logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("invalid level should fall back to info, got %v", logger.GetLevel())
	}
	logger.Info("discarded")
}
