package jobs

import (
	"os"
	"testing"

	"github.com/gpp-woo/publicationbank/internal/tester"
)

func TestMain(m *testing.M) {
	tester.Setup()
	code := m.Run()

	os.Exit(code)
}
