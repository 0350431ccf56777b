package constants

import (
	"regexp"
	"strings"
	"testing"
)

func TestTimeFormat(t *testing.T) {
	// Check that the global regexp can match constant TimeFormatYearSeconds.
	re := regexp.MustCompile(TimeFormatYearSecondsRegex)
	if !re.MatchString(TimeFormatYearSeconds) {
		t.Fatal("Mismatch between TimeFormatYearSeconds and regexp in constant TimeFormatYearSecondsRegex.")
	}
}

func TestEnvVarPrefix(t *testing.T) {
	if !strings.HasPrefix(EnvVarAnnotationURL, EnvVarPrefix+"_") {
		t.Fatalf("expected %v to start with %v_", EnvVarAnnotationURL, EnvVarPrefix)
	}
	// Secrets keep the names used by the orchestrator.
	for _, v := range []string{EnvVarAnnotationToken, EnvVarWarehouseToken} {
		if strings.HasPrefix(v, EnvVarPrefix+"_") {
			t.Fatalf("secret %v must not be prefixed", v)
		}
	}
}
