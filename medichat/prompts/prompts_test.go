package prompts

import (
	"os"
	"path/filepath"
	"testing"

	"medichat/medichat/utils/logging"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logging.InitTestLogger()
	m.Run()
}

func Test_Fill_Substitutes_Hospital_Token(t *testing.T) {
	req := require.New(t)
	req.Equal("Welcome to St. Mary's.", Fill("Welcome to {hospital}.", "St. Mary's"))
	req.Equal("No token here.", Fill("No token here.", "St. Mary's"))
}

func Test_Load_Missing_File_Uses_Defaults(t *testing.T) {
	req := require.New(t)
	pc := Load("does-not-exist.properties")

	req.Contains(pc.SystemPrompt, "{hospital}")
	req.Contains(Fill(pc.SystemPrompt, "General Hospital"), "General Hospital")
	req.Len(pc.GenericClarifications, 3)
	req.Len(pc.HospitalClarifications, 3)
}

func Test_Load_Override_Without_Token_Renders_Verbatim(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "custom.properties")
	require.NoError(t, os.WriteFile(path,
		[]byte("system_prompt = You are the front desk assistant.\n"), 0o644))

	pc := Load(path)

	req.Equal("You are the front desk assistant.",
		Fill(pc.SystemPrompt, "General Hospital"))
	// untouched keys still fall back to defaults
	req.NotEmpty(pc.ErrorResponse)
}

func Test_Load_Splits_Pipe_Lists(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "custom.properties")
	require.NoError(t, os.WriteFile(path,
		[]byte("generic_clarifications = First? | Second?\n"), 0o644))

	pc := Load(path)

	req.Equal([]string{"First?", "Second?"}, pc.GenericClarifications)
}
